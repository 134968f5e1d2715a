package store

import (
	"github.com/denwilliams/slack-retro/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Installations() InstallationStore {
	return newInstallationStore(s.queries)
}

func (s *Stores) Retrospectives() RetrospectiveStore {
	return newRetrospectiveStore(s.queries)
}

func (s *Stores) DiscussionItems() DiscussionItemStore {
	return newDiscussionItemStore(s.queries)
}

func (s *Stores) ActionItems() ActionItemStore {
	return newActionItemStore(s.queries)
}
