package model

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryGood     Category = "good"
	CategoryBad      Category = "bad"
	CategoryQuestion Category = "question"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryGood, CategoryBad, CategoryQuestion}
}

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryGood, CategoryBad, CategoryQuestion:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

type DiscussionItem struct {
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Category  Category  `json:"category"`
	Content   string    `json:"content"`
	ID        int64     `json:"id"`
	RetroID   int64     `json:"retro_id"`
}

// DiscussionItemsByCategory partitions items, preserving order within each category.
func DiscussionItemsByCategory(items []DiscussionItem) map[Category][]DiscussionItem {
	grouped := make(map[Category][]DiscussionItem, 3)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}
