package service

import (
	"context"
	"fmt"

	"github.com/denwilliams/slack-retro/internal/service/chat"
	"github.com/denwilliams/slack-retro/internal/view"
)

// HomeService re-renders a user's home tab from the team's active retro.
type HomeService interface {
	Publish(ctx context.Context, teamID, userID string) error
}

type homeService struct {
	retros    RetroService
	platforms chat.Resolver
}

func NewHomeService(retros RetroService, platforms chat.Resolver) HomeService {
	return &homeService{retros: retros, platforms: platforms}
}

func (s *homeService) Publish(ctx context.Context, teamID, userID string) error {
	board, err := s.retros.Board(ctx, teamID)
	if err != nil {
		return fmt.Errorf("loading board: %w", err)
	}

	platform, err := s.platforms.ForTeam(ctx, teamID)
	if err != nil {
		return err
	}

	home := view.HomeView(board.DiscussionItems, board.ActionItems, userID)
	return platform.PublishHomeView(ctx, userID, home)
}
