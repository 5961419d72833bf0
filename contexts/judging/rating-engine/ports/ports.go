package ports

import (
	"context"
	"time"

	"themis/contexts/judging/rating-engine/domain/entities"
)

type RatingRepository interface {
	SaveRating(ctx context.Context, rating entities.Rating) error
	GetRatingByIdentity(ctx context.Context, submissionID string, expertID string) (entities.Rating, bool, error)
	ListRatingsBySubmission(ctx context.Context, submissionID string) ([]entities.Rating, error)
	ListRatings(ctx context.Context) ([]entities.Rating, error)
}

// SubmissionProjection is the minimal submission view the engine needs
// to validate references and rank the leaderboard.
type SubmissionProjection struct {
	SubmissionID    string
	Kind            entities.SubmissionKind
	Title           string
	ParticipantName string
	CreatedAt       time.Time
}

type SubmissionCatalog interface {
	GetSubmission(ctx context.Context, submissionID string) (SubmissionProjection, error)
	ListSubmissions(ctx context.Context) ([]SubmissionProjection, error)
}

// ExpertProjection carries the identity fields joined onto rating reads.
type ExpertProjection struct {
	ExpertID string
	Name     string
}

type ExpertDirectory interface {
	GetExpert(ctx context.Context, expertID string) (ExpertProjection, error)
}

// EventEnvelope is the canonical event shape the engine appends to the
// outbox on ledger writes.
type EventEnvelope struct {
	EventID      string         `json:"event_id"`
	EventType    string         `json:"event_type"`
	PartitionKey string         `json:"partition_key"`
	OccurredAt   time.Time      `json:"occurred_at"`
	Data         map[string]any `json:"data"`
}

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxSource interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type Publisher interface {
	Publish(ctx context.Context, topic string, envelope EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
