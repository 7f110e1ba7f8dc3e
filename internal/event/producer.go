package event

import (
	"context"
	"log/slog"

	"github.com/screenbox/watchlist/internal/domain"
	"github.com/screenbox/watchlist/pkg/kafka"
	"github.com/screenbox/watchlist/pkg/logger"
)

const (
	TopicItemAdded   = "watchlist.item.added"
	TopicItemRemoved = "watchlist.item.removed"

	aggregateType = "list_item"
	source        = "watchlist-service"
)

// ItemPayload is the data carried by list item events.
type ItemPayload struct {
	UserID   string `json:"user_id"`
	ItemID   string `json:"item_id"`
	ItemType string `json:"item_type,omitempty"`
}

// Producer publishes watchlist domain events to Kafka. Publish failures are
// logged but never returned; event delivery must not fail the operation that
// already committed.
type Producer struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewProducer wraps a Kafka producer for watchlist events.
func NewProducer(producer *kafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{producer: producer, logger: logger}
}

// PublishItemAdded emits an event after an item was added to a user's list.
func (p *Producer) PublishItemAdded(ctx context.Context, item *domain.ListItem) {
	p.publish(ctx, TopicItemAdded, "watchlist.item.added", ItemPayload{
		UserID:   item.UserID,
		ItemID:   item.ItemID,
		ItemType: string(item.ItemType),
	})
}

// PublishItemRemoved emits an event after an item was removed from a user's list.
func (p *Producer) PublishItemRemoved(ctx context.Context, userID, itemID string) {
	p.publish(ctx, TopicItemRemoved, "watchlist.item.removed", ItemPayload{
		UserID: userID,
		ItemID: itemID,
	})
}

func (p *Producer) publish(ctx context.Context, topic, eventType string, payload ItemPayload) {
	evt, err := kafka.NewEvent(eventType, payload.UserID, aggregateType, source, payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "build event failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}

	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.producer.Publish(ctx, topic, evt); err != nil {
		p.logger.ErrorContext(ctx, "publish event failed",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
	}
}
