package ports

import (
	"context"
	"time"

	"themis/contexts/judging/submission-service/domain/entities"
)

// SubmissionRepository persists competition entries.
type SubmissionRepository interface {
	SaveSubmission(ctx context.Context, submission entities.Submission) error
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	ListSubmissions(ctx context.Context) ([]entities.Submission, error)
}

// ReviewAggregate is the rating ledger's derived view of one entry.
type ReviewAggregate struct {
	SubmissionID string
	Status       string
	AvgScore     float64
	RatingCount  int
}

// RatingSource exposes the rating ledger's lazily computed aggregate.
// Implementations recompute on every call; the catalog never caches
// the result.
type RatingSource interface {
	AggregateFor(ctx context.Context, submissionID string) (ReviewAggregate, error)
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces unique submission identifiers.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
