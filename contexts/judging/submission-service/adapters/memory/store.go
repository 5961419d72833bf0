package memory

import (
	"context"
	"sync"
	"time"

	"themis/contexts/judging/submission-service/domain/entities"
	domainerrors "themis/contexts/judging/submission-service/domain/errors"
	"themis/contexts/judging/submission-service/ports"

	"github.com/google/uuid"
)

// Store is an in-memory submission catalog for tests and local wiring.
type Store struct {
	mu          sync.RWMutex
	submissions map[string]entities.Submission
	aggregates  map[string]ports.ReviewAggregate
}

func NewStore(seed []entities.Submission) *Store {
	store := &Store{
		submissions: make(map[string]entities.Submission),
		aggregates:  make(map[string]ports.ReviewAggregate),
	}
	for _, submission := range seed {
		store.submissions[submission.SubmissionID] = submission
	}
	return store
}

func (s *Store) SaveSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	submission, ok := s.submissions[submissionID]
	if !ok {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return submission, nil
}

func (s *Store) ListSubmissions(_ context.Context) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Submission, 0, len(s.submissions))
	for _, submission := range s.submissions {
		items = append(items, submission)
	}
	return items, nil
}

// AggregateFor serves seeded aggregates; entries without one read as
// pending with no ratings.
func (s *Store) AggregateFor(_ context.Context, submissionID string) (ports.ReviewAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	aggregate, ok := s.aggregates[submissionID]
	if !ok {
		return ports.ReviewAggregate{SubmissionID: submissionID, Status: "pending"}, nil
	}
	return aggregate, nil
}

// SetAggregate seeds the derived review state used by read paths.
func (s *Store) SetAggregate(aggregate ports.ReviewAggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aggregates[aggregate.SubmissionID] = aggregate
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var (
	_ ports.SubmissionRepository = (*Store)(nil)
	_ ports.RatingSource         = (*Store)(nil)
	_ ports.Clock                = (*Store)(nil)
	_ ports.IDGenerator          = (*Store)(nil)
)
