package queue

import (
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RefreshMessage asks the worker to republish one user's home tab.
type RefreshMessage struct {
	TeamID  string
	UserID  string
	TraceID *string
	Attempt int
}

// Message is a RefreshMessage read back from the stream.
type Message struct {
	ID      string
	TeamID  string
	UserID  string
	Attempt int
	TraceID string
	Raw     redis.XMessage
}

func ParseMessage(msg redis.XMessage) (Message, error) {
	teamID, err := parseString(msg.Values, "team_id")
	if err != nil {
		return Message{}, err
	}
	userID, err := parseString(msg.Values, "user_id")
	if err != nil {
		return Message{}, err
	}
	if teamID == "" || userID == "" {
		return Message{}, fmt.Errorf("empty team_id or user_id")
	}

	attempt, err := parseOptionalInt(msg.Values, "attempt")
	if err != nil {
		return Message{}, err
	}
	if attempt <= 0 {
		attempt = 1
	}

	return Message{
		ID:      msg.ID,
		TeamID:  teamID,
		UserID:  userID,
		Attempt: attempt,
		TraceID: parseOptionalString(msg.Values, "trace_id"),
		Raw:     msg,
	}, nil
}

func messageValues(msg Message, attempt int) map[string]any {
	values := map[string]any{
		"team_id": msg.TeamID,
		"user_id": msg.UserID,
		"attempt": attempt,
	}
	if msg.TraceID != "" {
		values["trace_id"] = msg.TraceID
	}
	return values
}

func parseString(values map[string]any, key string) (string, error) {
	raw, ok := values[key]
	if !ok {
		return "", fmt.Errorf("missing %s", key)
	}
	return fmt.Sprint(raw), nil
}

func parseOptionalInt(values map[string]any, key string) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, nil
	}
	num, err := strconv.Atoi(fmt.Sprint(raw))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func parseOptionalString(values map[string]any, key string) string {
	raw, ok := values[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(raw)
}
