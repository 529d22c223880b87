package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherFanOut(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls []string
	d.Subscribe(EventPremiumGranted, func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return nil
	})
	d.Subscribe(EventPremiumGranted, func(ctx context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventForumTopicCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "other-type")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventPremiumGranted}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v, want first+second in order", calls)
	}
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	ran := false
	d.Subscribe(EventAccountDeleted, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventAccountDeleted, func(ctx context.Context, e Event) error {
		ran = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventAccountDeleted}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if !ran {
		t.Error("later handlers must still run after an earlier failure")
	}
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventForumReplyCreated}); err != nil {
		t.Fatalf("publishing without subscribers should be a no-op, got %v", err)
	}
}
