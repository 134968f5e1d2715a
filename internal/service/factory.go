package service

import (
	"time"

	"github.com/denwilliams/slack-retro/core/config"
	"github.com/denwilliams/slack-retro/internal/queue"
	"github.com/denwilliams/slack-retro/internal/service/chat"
	"github.com/denwilliams/slack-retro/internal/store"
)

type Services struct {
	stores    *store.Stores
	txRunner  TxRunner
	platforms chat.Resolver
	oauth     chat.OAuthExchanger
	producer  queue.Producer
	refresh   config.RefreshMode
	now       func() time.Time
}

// NewServices wires the service layer. producer may be nil unless refresh mode is queue.
func NewServices(
	stores *store.Stores,
	txRunner TxRunner,
	platforms chat.Resolver,
	oauth chat.OAuthExchanger,
	producer queue.Producer,
	refresh config.RefreshMode,
) *Services {
	return &Services{
		stores:    stores,
		txRunner:  txRunner,
		platforms: platforms,
		oauth:     oauth,
		producer:  producer,
		refresh:   refresh,
		now:       time.Now,
	}
}

func (s *Services) Retros() RetroService {
	return NewRetroService(
		s.stores.Retrospectives(),
		s.stores.DiscussionItems(),
		s.stores.ActionItems(),
		s.txRunner,
		s.now,
	)
}

func (s *Services) Home() HomeService {
	return NewHomeService(s.Retros(), s.platforms)
}

func (s *Services) Installations() InstallationService {
	return NewInstallationService(s.stores.Installations(), s.oauth)
}

func (s *Services) Dispatcher() Dispatcher {
	refresher := NewRefresher(s.refresh, s.Home(), s.producer)
	return NewDispatcher(s.Retros(), s.platforms, refresher)
}
