package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const eventSource = "internship-service"

// NewEvent builds a fully-populated envelope for the given type and payload.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// WatermillPublisher adapts a watermill publisher to the Publisher interface.
type WatermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewKafkaPublisher publishes events to Kafka. Used when brokers are
// configured; the mailer and other consumers read from these topics.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (*WatermillPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}
	return &WatermillPublisher{publisher: publisher, logger: logger}, nil
}

// NewGoChannelPublisher is the in-process variant for local development and
// single-node deployments without Kafka.
func NewGoChannelPublisher(logger *slog.Logger) *WatermillPublisher {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &WatermillPublisher{publisher: pubsub, logger: logger}
}

func (p *WatermillPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)
	msg.Metadata.Set("source", event.Source)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Type, topic, err)
	}

	p.logger.Debug("event published", "topic", topic, "type", event.Type, "id", event.ID)
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}
