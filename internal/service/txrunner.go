package service

import (
	"context"

	"github.com/denwilliams/slack-retro/core/db"
	"github.com/denwilliams/slack-retro/core/db/sqlc"
	"github.com/denwilliams/slack-retro/internal/store"
)

// StoreProvider exposes the stores bound to one transaction.
type StoreProvider interface {
	Retrospectives() store.RetrospectiveStore
	DiscussionItems() store.DiscussionItemStore
	ActionItems() store.ActionItemStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
}
