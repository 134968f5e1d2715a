package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/denwilliams/slack-retro/core/config"
	"github.com/denwilliams/slack-retro/internal/domain"
	"github.com/denwilliams/slack-retro/internal/queue"
	"github.com/denwilliams/slack-retro/internal/service"
)

var _ = Describe("Refresher", func() {
	var (
		ctx    context.Context
		intent domain.RefreshIntent
	)

	BeforeEach(func() {
		ctx = context.Background()
		intent = domain.RefreshIntent{TeamID: "T1", UserID: "U1"}
	})

	Describe("sync", func() {
		It("publishes for the requesting user", func() {
			var gotTeam, gotUser string
			home := &mockHomeService{publishFn: func(_ context.Context, teamID, userID string) error {
				gotTeam, gotUser = teamID, userID
				return nil
			}}

			service.NewRefresher(config.RefreshModeSync, home, nil).Refresh(ctx, intent)
			Expect(gotTeam).To(Equal("T1"))
			Expect(gotUser).To(Equal("U1"))
		})

		It("swallows publish failures", func() {
			home := &mockHomeService{publishFn: func(context.Context, string, string) error {
				return errors.New("not_authed")
			}}

			Expect(func() {
				service.NewSyncRefresher(home).Refresh(ctx, intent)
			}).NotTo(Panic())
		})

		It("does nothing for an empty intent", func() {
			called := false
			home := &mockHomeService{publishFn: func(context.Context, string, string) error {
				called = true
				return nil
			}}

			service.NewSyncRefresher(home).Refresh(ctx, domain.RefreshIntent{})
			Expect(called).To(BeFalse())
		})
	})

	Describe("async", func() {
		It("publishes after the caller's context is cancelled", func() {
			done := make(chan error, 1)
			home := &mockHomeService{publishFn: func(ctx context.Context, _, _ string) error {
				done <- ctx.Err()
				return nil
			}}

			reqCtx, cancel := context.WithCancel(ctx)
			service.NewRefresher(config.RefreshModeAsync, home, nil).Refresh(reqCtx, intent)
			cancel()

			var err error
			Eventually(done, time.Second).Should(Receive(&err))
			Expect(err).NotTo(HaveOccurred())
		})

		It("recovers from a panicking publish", func() {
			done := make(chan struct{})
			home := &mockHomeService{publishFn: func(context.Context, string, string) error {
				defer close(done)
				panic("boom")
			}}

			service.NewAsyncRefresher(home).Refresh(ctx, intent)
			Eventually(done, time.Second).Should(BeClosed())
		})
	})

	Describe("queue", func() {
		It("enqueues the team and user", func() {
			producer := &mockQueueProducer{}

			service.NewRefresher(config.RefreshModeQueue, nil, producer).Refresh(ctx, intent)
			Expect(producer.messages).To(HaveLen(1))
			Expect(producer.messages[0].TeamID).To(Equal("T1"))
			Expect(producer.messages[0].UserID).To(Equal("U1"))
		})

		It("logs enqueue failures without returning them", func() {
			producer := &mockQueueProducer{enqueueFn: func(context.Context, queue.RefreshMessage) error {
				return errors.New("redis down")
			}}

			Expect(func() {
				service.NewQueueRefresher(producer).Refresh(ctx, intent)
			}).NotTo(Panic())
			Expect(producer.messages).To(HaveLen(1))
		})

		It("does nothing for an empty intent", func() {
			producer := &mockQueueProducer{}

			service.NewQueueRefresher(producer).Refresh(ctx, domain.RefreshIntent{})
			Expect(producer.messages).To(BeEmpty())
		})
	})
})
