package workers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"themis/contexts/judging/rating-engine/ports"
)

type stubOutbox struct {
	pending   []ports.OutboxMessage
	published []string
}

func (s *stubOutbox) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	if len(s.pending) > limit {
		return s.pending[:limit], nil
	}
	return s.pending, nil
}

func (s *stubOutbox) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.published = append(s.published, outboxID)
	return nil
}

type stubPublisher struct {
	topics []string
	events []ports.EventEnvelope
	fail   bool
}

func (p *stubPublisher) Publish(_ context.Context, topic string, envelope ports.EventEnvelope) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, envelope)
	return nil
}

func pendingRow(t *testing.T, outboxID string, eventType string) ports.OutboxMessage {
	t.Helper()
	payload, err := json.Marshal(ports.EventEnvelope{
		EventID:      outboxID,
		EventType:    eventType,
		PartitionKey: "submission-1",
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return ports.OutboxMessage{
		OutboxID:  outboxID,
		EventType: eventType,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
}

func TestOutboxRelayPublishesAndMarks(t *testing.T) {
	outbox := &stubOutbox{pending: []ports.OutboxMessage{
		pendingRow(t, "evt-1", "rating.recorded"),
		pendingRow(t, "evt-2", "rating.revised"),
	}}
	publisher := &stubPublisher{}

	relay := OutboxRelay{Outbox: outbox, Publisher: publisher}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.events))
	}
	if publisher.topics[0] != "rating.recorded" || publisher.topics[1] != "rating.revised" {
		t.Fatalf("topic must follow event type, got %v", publisher.topics)
	}
	if len(outbox.published) != 2 {
		t.Fatalf("expected both rows marked published, got %v", outbox.published)
	}
}

func TestOutboxRelayStopsOnPublishFailure(t *testing.T) {
	outbox := &stubOutbox{pending: []ports.OutboxMessage{
		pendingRow(t, "evt-1", "rating.recorded"),
	}}
	publisher := &stubPublisher{fail: true}

	relay := OutboxRelay{Outbox: outbox, Publisher: publisher}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected publish failure to surface")
	}
	if len(outbox.published) != 0 {
		t.Fatalf("failed rows must stay pending, got %v", outbox.published)
	}
}
