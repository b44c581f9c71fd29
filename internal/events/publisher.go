// Package events publishes forum activity to the message bus. Publishing
// happens after the database write commits; delivery is best-effort and a
// bus failure never fails the originating request.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

const ForumActivityTopic = "forum-activity"

const (
	EventTopicCreated = "topic.created"
	EventPostCreated  = "forum_post.created"
)

// Event is the wire envelope for every published message.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type TopicCreatedPayload struct {
	TopicID            uint   `json:"topic_id"`
	Title              string `json:"title"`
	UserID             uint   `json:"user_id"`
	ProfessionalAreaID uint   `json:"professional_area_id"`
}

type PostCreatedPayload struct {
	PostID  uint `json:"post_id"`
	TopicID uint `json:"topic_id"`
	UserID  uint `json:"user_id"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
	Close() error
}

// KafkaPublisher sends events to the forum activity topic via watermill.
type KafkaPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

func NewKafkaPublisher(brokers []string, logger *slog.Logger) (*KafkaPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaPublisher{publisher: publisher, logger: logger}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	data, err := marshalEvent(eventType, payload)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	return p.publisher.Publish(ForumActivityTopic, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.publisher.Close()
}

func marshalEvent(eventType string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{
		ID:         watermill.NewUUID(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    body,
	})
}
