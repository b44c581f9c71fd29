package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestMarshalEventEnvelope(t *testing.T) {
	data, err := marshalEvent(EventTopicCreated, TopicCreatedPayload{
		TopicID: 7, Title: "TIG basics", UserID: 3, ProfessionalAreaID: 2,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if event.ID == "" {
		t.Error("event id should be set")
	}
	if event.Type != EventTopicCreated {
		t.Errorf("type = %q, want %q", event.Type, EventTopicCreated)
	}
	if event.OccurredAt.IsZero() {
		t.Error("occurred_at should be set")
	}

	var payload TopicCreatedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.TopicID != 7 || payload.Title != "TIG basics" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestMockPublisherRecords(t *testing.T) {
	p := NewMockPublisher(nil)
	ctx := context.Background()

	if err := p.Publish(ctx, EventTopicCreated, TopicCreatedPayload{TopicID: 1}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Publish(ctx, EventPostCreated, PostCreatedPayload{PostID: 2, TopicID: 1}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	got := p.PublishedEvents()
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Type != EventTopicCreated || got[1].Type != EventPostCreated {
		t.Errorf("unexpected order: %s, %s", got[0].Type, got[1].Type)
	}
}
