package sse

import (
	"testing"
)

func TestHubSubscribePublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-1", Event{RecipientID: "user-1", Name: "notification", Payload: "hello"})

	select {
	case ev := <-ch:
		if ev.Name != "notification" || ev.Payload != "hello" {
			t.Errorf("unexpected event: %+v", ev)
		}
	default:
		t.Fatal("expected event on subscriber channel")
	}
}

func TestHubPublishNoSubscribers(t *testing.T) {
	hub := NewHub()
	// Must not panic or block
	hub.Publish("nobody", Event{RecipientID: "nobody", Name: "notification"})
}

func TestHubCleanupPrunesRecipient(t *testing.T) {
	hub := NewHub()

	_, cleanup1 := hub.Subscribe("user-1")
	_, cleanup2 := hub.Subscribe("user-1")

	if got := hub.SubscriberCount("user-1"); got != 2 {
		t.Fatalf("SubscriberCount = %d, want 2", got)
	}

	cleanup1()
	if got := hub.SubscriberCount("user-1"); got != 1 {
		t.Fatalf("SubscriberCount after one cleanup = %d, want 1", got)
	}

	cleanup2()
	if got := hub.SubscriberCount("user-1"); got != 0 {
		t.Fatalf("SubscriberCount after full cleanup = %d, want 0", got)
	}
	if got := hub.TotalSubscribers(); got != 0 {
		t.Fatalf("TotalSubscribers = %d, want 0", got)
	}
}

func TestHubPublishToMany(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	hub.PublishToMany([]string{"user-1", "user-2"}, Event{Name: "notification", Payload: 1})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Name != "notification" {
				t.Errorf("unexpected event: %+v", ev)
			}
		default:
			t.Fatal("expected event on subscriber channel")
		}
	}
}

func TestHubSlowConsumerDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	// Channel buffer is 10; publishing more must not block.
	for i := 0; i < 50; i++ {
		hub.Publish("user-1", Event{RecipientID: "user-1", Name: "notification", Payload: i})
	}
}
