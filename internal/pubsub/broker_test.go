package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroker_PublishDeliversToAllSubscribers(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx)
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(CreatedEvent, "hello")

	for _, ch := range []<-chan Event[string]{ch1, ch2} {
		select {
		case event := <-ch:
			require.Equal(t, CreatedEvent, event.Type)
			require.Equal(t, "hello", event.Payload)
			require.WithinDuration(t, time.Now(), event.Timestamp, time.Second)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBroker_SubscribeAfterClose(t *testing.T) {
	broker := NewBroker[int]()
	broker.Close()

	ch := broker.Subscribe(context.Background())
	_, ok := <-ch
	require.False(t, ok, "channel from closed broker should be closed")
}

func TestBroker_CancelRemovesSubscriber(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		return broker.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)

	_, ok := <-ch
	require.False(t, ok)
}

func TestBroker_PublishAfterCloseIsNoop(t *testing.T) {
	broker := NewBroker[int]()
	ctx := context.Background()
	_ = broker.Subscribe(ctx)
	broker.Close()

	// Must not panic.
	broker.Publish(UpdatedEvent, 42)
}

func TestBroker_FullBufferDropsEvents(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(CreatedEvent, 1)
	broker.Publish(CreatedEvent, 2) // dropped

	event := <-ch
	require.Equal(t, 1, event.Payload)

	select {
	case e := <-ch:
		t.Fatalf("expected no second event, got %v", e.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}
