package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"themis/contexts/judging/rating-engine/domain/entities"
	domainerrors "themis/contexts/judging/rating-engine/domain/errors"
	"themis/contexts/judging/rating-engine/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory ledger used by tests and local wiring. It
// also holds seedable submission/expert projections so the engine can
// run without the sibling modules.
type Store struct {
	mu sync.RWMutex

	ratings     map[string]entities.Rating
	outbox      map[string]outboxRecord
	submissions map[string]ports.SubmissionProjection
	experts     map[string]ports.ExpertProjection
}

func NewStore(seed []entities.Rating) *Store {
	ratings := make(map[string]entities.Rating, len(seed))
	for _, rating := range seed {
		ratings[rating.RatingID] = rating
	}
	return &Store{
		ratings:     ratings,
		outbox:      make(map[string]outboxRecord),
		submissions: make(map[string]ports.SubmissionProjection),
		experts:     make(map[string]ports.ExpertProjection),
	}
}

func (s *Store) SetSubmission(submission ports.SubmissionProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[strings.TrimSpace(submission.SubmissionID)] = submission
}

func (s *Store) SetExpert(expert ports.ExpertProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experts[strings.TrimSpace(expert.ExpertID)] = expert
}

func (s *Store) SaveRating(_ context.Context, rating entities.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[strings.TrimSpace(rating.RatingID)] = rating
	return nil
}

func (s *Store) GetRatingByIdentity(
	_ context.Context,
	submissionID string,
	expertID string,
) (entities.Rating, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submissionID = strings.TrimSpace(submissionID)
	expertID = strings.TrimSpace(expertID)
	for _, rating := range s.ratings {
		if rating.SubmissionID == submissionID && rating.ExpertID == expertID {
			return rating, true, nil
		}
	}
	return entities.Rating{}, false, nil
}

func (s *Store) ListRatingsBySubmission(_ context.Context, submissionID string) ([]entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Rating, 0)
	for _, rating := range s.ratings {
		if rating.SubmissionID == strings.TrimSpace(submissionID) {
			items = append(items, rating)
		}
	}
	sortRatingsByCreation(items)
	return items, nil
}

func (s *Store) ListRatings(_ context.Context) ([]entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Rating, 0, len(s.ratings))
	for _, rating := range s.ratings {
		items = append(items, rating)
	}
	sortRatingsByCreation(items)
	return items, nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (ports.SubmissionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.submissions[strings.TrimSpace(submissionID)]
	if !ok {
		return ports.SubmissionProjection{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (s *Store) ListSubmissions(_ context.Context) ([]ports.SubmissionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.SubmissionProjection, 0, len(s.submissions))
	for _, submission := range s.submissions {
		items = append(items, submission)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) GetExpert(_ context.Context, expertID string) (ports.ExpertProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.experts[strings.TrimSpace(expertID)]
	if !ok {
		return ports.ExpertProjection{}, domainerrors.ErrExpertNotFound
	}
	return item, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrConflict
	}
	row.published = true
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortRatingsByCreation(items []entities.Rating) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
