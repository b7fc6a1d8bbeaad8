package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/libris-app/libris/pkg/models"
)

func testBook(title string) models.Book {
	return models.Book{
		ID:     uuid.New(),
		Title:  title,
		Author: models.Author{ID: uuid.New(), Name: "Author of " + title},
	}
}

func TestBrokerDeliversToSubscriber(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := b.Subscribe(ctx, TopicBookAdded)
	book := testBook("Dune")
	b.Publish(TopicBookAdded, book)

	select {
	case got := <-events:
		if got.Title != "Dune" {
			t.Errorf("got title %q, want %q", got.Title, "Dune")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBrokerPublishOrder(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := b.Subscribe(ctx, TopicBookAdded)
	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		b.Publish(TopicBookAdded, testBook(title))
	}

	for _, want := range titles {
		got := <-events
		if got.Title != want {
			t.Errorf("got title %q, want %q", got.Title, want)
		}
	}
}

func TestBrokerFansOutToAllSubscribers(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := b.Subscribe(ctx, TopicBookAdded)
	second := b.Subscribe(ctx, TopicBookAdded)

	b.Publish(TopicBookAdded, testBook("Dune"))

	for i, events := range []<-chan models.Book{first, second} {
		select {
		case got := <-events:
			if got.Title != "Dune" {
				t.Errorf("subscriber %d: got title %q, want %q", i, got.Title, "Dune")
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: timed out", i)
		}
	}
}

func TestBrokerNoReplayForLateSubscriber(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b.Publish(TopicBookAdded, testBook("before"))

	events := b.Subscribe(ctx, TopicBookAdded)
	select {
	case got := <-events:
		t.Fatalf("late subscriber received replayed event %q", got.Title)
	case <-time.After(50 * time.Millisecond):
	}

	b.Publish(TopicBookAdded, testBook("after"))
	got := <-events
	if got.Title != "after" {
		t.Errorf("got title %q, want %q", got.Title, "after")
	}
}

func TestBrokerSlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Never drained; its buffer fills and further events drop.
	b.Subscribe(ctx, TopicBookAdded)
	healthy := b.Subscribe(ctx, TopicBookAdded)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*4; i++ {
			b.Publish(TopicBookAdded, testBook("flood"))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	// The healthy subscriber still got events up to its buffer size.
	select {
	case <-healthy:
	case <-time.After(time.Second):
		t.Fatal("healthy subscriber received nothing")
	}
}

func TestBrokerUnsubscribeOnContextCancel(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())

	events := b.Subscribe(ctx, TopicBookAdded)
	if got := b.SubscriberCount(TopicBookAdded); got != 1 {
		t.Fatalf("got %d subscribers, want 1", got)
	}

	cancel()

	deadline := time.After(time.Second)
	for b.SubscriberCount(TopicBookAdded) != 0 {
		select {
		case <-deadline:
			t.Fatal("subscriber not removed after context cancel")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// Channel is closed; no further delivery is attempted.
	if _, open := <-events; open {
		// Drain anything buffered before the close.
		for range events {
		}
	}
	b.Publish(TopicBookAdded, testBook("ignored"))
}

func TestLocalPublisher(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := b.Subscribe(ctx, TopicBookAdded)
	LocalPublisher{Broker: b}.PublishBookAdded(context.Background(), testBook("Dune"))

	select {
	case got := <-events:
		if got.Title != "Dune" {
			t.Errorf("got title %q, want %q", got.Title, "Dune")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}
