package worker_test

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/denwilliams/slack-retro/internal/queue"
	"github.com/denwilliams/slack-retro/internal/worker"
)

type mockConsumer struct {
	mu       sync.Mutex
	batches  [][]queue.Message
	acked    []string
	requeued []string
	dlq      []string
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.batches) == 0 {
		return nil, nil
	}
	batch := m.batches[0]
	m.batches = m.batches[1:]
	return batch, nil
}

func (m *mockConsumer) Ack(_ context.Context, msg queue.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acked = append(m.acked, msg.ID)
	return nil
}

func (m *mockConsumer) Requeue(_ context.Context, msg queue.Message, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requeued = append(m.requeued, msg.ID)
	return nil
}

func (m *mockConsumer) SendDLQ(_ context.Context, msg queue.Message, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dlq = append(m.dlq, msg.ID)
	return nil
}

func (m *mockConsumer) snapshot() (acked, requeued, dlq []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.acked...), append([]string(nil), m.requeued...), append([]string(nil), m.dlq...)
}

type mockPublisher struct {
	mu        sync.Mutex
	publishFn func(ctx context.Context, teamID, userID string) error
	published []string
}

func (m *mockPublisher) Publish(ctx context.Context, teamID, userID string) error {
	m.mu.Lock()
	m.published = append(m.published, teamID+"/"+userID)
	m.mu.Unlock()
	if m.publishFn != nil {
		return m.publishFn(ctx, teamID, userID)
	}
	return nil
}

func (m *mockPublisher) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.published...)
}

var _ = Describe("Worker", func() {
	var (
		ctx       context.Context
		consumer  *mockConsumer
		publisher *mockPublisher
		w         *worker.Worker
		msg       queue.Message
	)

	BeforeEach(func() {
		ctx = context.Background()
		consumer = &mockConsumer{}
		publisher = &mockPublisher{}
		w = worker.New(consumer, publisher, worker.Config{MaxAttempts: 3})
		msg = queue.Message{ID: "1-0", TeamID: "T1", UserID: "U1", Attempt: 1}
	})

	It("publishes and acks", func() {
		Expect(w.HandleMessage(ctx, msg)).To(Succeed())
		Expect(publisher.calls()).To(Equal([]string{"T1/U1"}))

		acked, requeued, dlq := consumer.snapshot()
		Expect(acked).To(Equal([]string{"1-0"}))
		Expect(requeued).To(BeEmpty())
		Expect(dlq).To(BeEmpty())
	})

	It("requeues a failed refresh below the attempt limit", func() {
		publisher.publishFn = func(context.Context, string, string) error {
			return errors.New("ratelimited")
		}

		Expect(w.HandleMessage(ctx, msg)).To(MatchError(ContainSubstring("ratelimited")))

		acked, requeued, dlq := consumer.snapshot()
		Expect(acked).To(BeEmpty())
		Expect(requeued).To(Equal([]string{"1-0"}))
		Expect(dlq).To(BeEmpty())
	})

	It("sends the last attempt to the DLQ", func() {
		publisher.publishFn = func(context.Context, string, string) error {
			return errors.New("ratelimited")
		}
		msg.Attempt = 3

		Expect(w.HandleMessage(ctx, msg)).To(HaveOccurred())

		_, requeued, dlq := consumer.snapshot()
		Expect(requeued).To(BeEmpty())
		Expect(dlq).To(Equal([]string{"1-0"}))
	})

	It("turns a panicking publish into a retry", func() {
		publisher.publishFn = func(context.Context, string, string) error {
			panic("boom")
		}

		Expect(w.HandleMessage(ctx, msg)).To(MatchError(ContainSubstring("panic: boom")))

		_, requeued, _ := consumer.snapshot()
		Expect(requeued).To(Equal([]string{"1-0"}))
	})

	It("drains batches until stopped", func() {
		consumer.batches = [][]queue.Message{
			{msg, {ID: "2-0", TeamID: "T1", UserID: "U2", Attempt: 1}},
		}

		go func() { _ = w.Run(ctx) }()
		Eventually(publisher.calls, time.Second).Should(Equal([]string{"T1/U1", "T1/U2"}))
		w.Stop()

		acked, _, _ := consumer.snapshot()
		Expect(acked).To(Equal([]string{"1-0", "2-0"}))
	})

	It("returns when the context is cancelled", func() {
		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- w.Run(runCtx) }()

		cancel()
		Eventually(done, time.Second).Should(Receive(MatchError(context.Canceled)))
	})
})
