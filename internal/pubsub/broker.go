package pubsub

import (
	"context"
	"sync"

	"github.com/libris-app/libris/pkg/models"
)

// TopicBookAdded carries every successfully created book.
const TopicBookAdded = "BOOK_ADDED"

// subscriberBuffer bounds how far a subscriber may lag before events are
// dropped for it. Publication never blocks on a slow consumer.
const subscriberBuffer = 16

// Broker is an in-process broadcast topic set. Subscribers receive every
// event published after they subscribe, in publish order; there is no replay.
// The zero subscriber set is fine: publishing with nobody listening is a
// no-op.
type Broker struct {
	mu     sync.Mutex
	nextID int
	topics map[string]map[int]chan models.Book
}

func NewBroker() *Broker {
	return &Broker{topics: make(map[string]map[int]chan models.Book)}
}

// Subscribe registers a subscriber on topic. The returned channel is closed
// and the subscriber removed when ctx is done; no delivery is attempted after
// that.
func (b *Broker) Subscribe(ctx context.Context, topic string) <-chan models.Book {
	ch := make(chan models.Book, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[int]chan models.Book)
		b.topics[topic] = subs
	}
	subs[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		if subs, ok := b.topics[topic]; ok {
			if _, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
		}
		b.mu.Unlock()
	}()

	return ch
}

// Publish fans the event out to every current subscriber of topic. Delivery
// is fire-and-forget: a subscriber whose buffer is full misses the event
// rather than blocking the publisher or the other subscribers.
func (b *Broker) Publish(topic string, event models.Book) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.topics[topic] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount reports the current number of subscribers on topic.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}
