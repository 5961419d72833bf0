package memory

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"sync"
	"time"

	"themis/contexts/identity-access/expert-service/domain/entities"
	domainerrors "themis/contexts/identity-access/expert-service/domain/errors"

	"github.com/google/uuid"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Store is the in-memory credential store used by tests and local
// wiring. Seeded experts (an initial admin, typically) are accepted
// as-is.
type Store struct {
	mu      sync.RWMutex
	experts map[string]entities.Expert
}

func NewStore(seed []entities.Expert) *Store {
	experts := make(map[string]entities.Expert, len(seed))
	for _, expert := range seed {
		experts[expert.ExpertID] = expert
	}
	return &Store{experts: experts}
}

func (s *Store) SaveExpert(_ context.Context, expert entities.Expert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experts[strings.TrimSpace(expert.ExpertID)] = expert
	return nil
}

func (s *Store) GetExpert(_ context.Context, expertID string) (entities.Expert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expert, ok := s.experts[strings.TrimSpace(expertID)]
	if !ok {
		return entities.Expert{}, domainerrors.ErrExpertNotFound
	}
	return expert, nil
}

func (s *Store) FindByCredentials(_ context.Context, name string, accessCode string) (entities.Expert, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, expert := range s.experts {
		if expert.Name == name && expert.AccessCode == accessCode {
			return expert, true, nil
		}
	}
	return entities.Expert{}, false, nil
}

func (s *Store) ListExperts(_ context.Context) ([]entities.Expert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Expert, 0, len(s.experts))
	for _, expert := range s.experts {
		items = append(items, expert)
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// NewCode draws 8 characters from A-Z0-9 with crypto/rand, matching
// the access-code shape admins hand out to reviewers.
func (s *Store) NewCode() (string, error) {
	var code strings.Builder
	for i := 0; i < 8; i++ {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		code.WriteByte(codeAlphabet[index.Int64()])
	}
	return code.String(), nil
}
