package events_test

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudnative-amadeus/extrahours/internal/core/events"
)

func TestEventBus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "EventBus Suite")
}

var _ = Describe("EventBus", func() {
	var (
		bus    *events.EventBus
		logger *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
	})

	It("should deliver an event to every subscriber", func() {
		var delivered int64

		handler := func(ctx context.Context, event events.Event) error {
			atomic.AddInt64(&delivered, 1)
			return nil
		}
		bus.Subscribe(events.EventTypeExtraHourFiled, handler)
		bus.Subscribe(events.EventTypeExtraHourFiled, handler)

		event := events.NewExtraHourFiledEvent(1, 10, 2, 1)
		Expect(bus.Publish(context.Background(), event)).To(Succeed())

		drainCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		Expect(bus.Drain(drainCtx)).To(Succeed())
		Expect(atomic.LoadInt64(&delivered)).To(Equal(int64(2)))
	})

	It("should not fail the publisher when a handler errors", func() {
		bus.Subscribe(events.EventTypeExtraHourApproved, func(ctx context.Context, event events.Event) error {
			return context.Canceled
		})

		event := events.NewExtraHourDecidedEvent(1, 10, 1, "approved", 2, "ok")
		Expect(bus.Publish(context.Background(), event)).To(Succeed())

		drainCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		Expect(bus.Drain(drainCtx)).To(Succeed())
	})

	It("should ignore events nobody subscribed to", func() {
		event := events.NewExtraHourFiledEvent(1, 10, 2, 1)
		Expect(bus.Publish(context.Background(), event)).To(Succeed())
	})

	It("should route a rejection to the rejected event type", func() {
		event := events.NewExtraHourDecidedEvent(5, 10, 1, "rejected", 3, "not justified")
		Expect(event.EventType()).To(Equal(events.EventTypeExtraHourRejected))
		Expect(event.EventID()).NotTo(BeEmpty())
	})

	It("should time out draining a stuck handler", func() {
		release := make(chan struct{})
		bus.Subscribe(events.EventTypeExtraHourFiled, func(ctx context.Context, event events.Event) error {
			<-release
			return nil
		})

		event := events.NewExtraHourFiledEvent(2, 11, 1, 1)
		Expect(bus.Publish(context.Background(), event)).To(Succeed())

		drainCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		Expect(bus.Drain(drainCtx)).To(MatchError(context.DeadlineExceeded))

		close(release)
	})
})
