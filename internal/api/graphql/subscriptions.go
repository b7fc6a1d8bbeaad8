package graphql

import (
	"context"

	"github.com/libris-app/libris/internal/pubsub"
)

// BookAdded streams every book created after the subscriber connects, in
// publish order. There is no replay; the broker drops events for subscribers
// that stop draining, and removes them when their connection context ends.
func (r *Resolver) BookAdded(ctx context.Context) <-chan *bookResolver {
	events := r.broker.Subscribe(ctx, pubsub.TopicBookAdded)
	out := make(chan *bookResolver)

	go func() {
		defer close(out)
		for book := range events {
			select {
			case out <- &bookResolver{r: r, book: book}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
