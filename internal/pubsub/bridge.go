package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/valkey-io/valkey-go"

	"github.com/libris-app/libris/pkg/models"
)

// bookAddedChannel is the Valkey pub/sub channel bridging BOOK_ADDED across
// API replicas.
const bookAddedChannel = "libris:book_added"

// Publisher is the seam the mutation layer publishes through, so tests and
// single-instance deployments use the in-process Broker directly while
// multi-instance deployments go through the Valkey bridge.
type Publisher interface {
	PublishBookAdded(ctx context.Context, book models.Book)
}

// LocalPublisher delivers straight to the in-process broker.
type LocalPublisher struct {
	Broker *Broker
}

func (p LocalPublisher) PublishBookAdded(_ context.Context, book models.Book) {
	p.Broker.Publish(TopicBookAdded, book)
}

// Bridge fans BOOK_ADDED events out through Valkey so every API replica's
// local broker sees every event, including its own (local delivery happens
// when the published message comes back on the channel).
type Bridge struct {
	client valkey.Client
	broker *Broker
	logger *slog.Logger
}

func NewBridge(client valkey.Client, broker *Broker, logger *slog.Logger) *Bridge {
	return &Bridge{client: client, broker: broker, logger: logger}
}

// PublishBookAdded sends the event to the shared channel. Errors are logged
// and dropped; delivery is best-effort by contract.
func (b *Bridge) PublishBookAdded(ctx context.Context, book models.Book) {
	payload, err := json.Marshal(book)
	if err != nil {
		b.logger.Error("marshal book event", slog.String("error", err.Error()))
		return
	}
	resp := b.client.Do(ctx, b.client.B().Publish().
		Channel(bookAddedChannel).Message(string(payload)).Build())
	if err := resp.Error(); err != nil {
		b.logger.Error("publish book event", slog.String("error", err.Error()))
	}
}

// Run blocks consuming the shared channel and feeding events into the local
// broker. It returns when ctx is done or the connection is lost.
func (b *Bridge) Run(ctx context.Context) error {
	return b.client.Receive(ctx, b.client.B().Subscribe().Channel(bookAddedChannel).Build(),
		func(msg valkey.PubSubMessage) {
			var book models.Book
			if err := json.Unmarshal([]byte(msg.Message), &book); err != nil {
				b.logger.Warn("dropping malformed book event", slog.String("error", err.Error()))
				return
			}
			b.broker.Publish(TopicBookAdded, book)
		})
}
