package queries

import (
	"context"
	"errors"
	"sort"
	"strings"

	"themis/contexts/identity-access/expert-service/domain/entities"
	domainerrors "themis/contexts/identity-access/expert-service/domain/errors"
	"themis/contexts/identity-access/expert-service/ports"
)

// DirectoryUseCase serves admin-facing expert reads.
type DirectoryUseCase struct {
	Experts ports.ExpertRepository
}

// ListExperts returns all experts newest-first for the admin panel.
func (uc DirectoryUseCase) ListExperts(ctx context.Context) ([]entities.Expert, error) {
	experts, err := uc.Experts.ListExperts(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(experts, func(i, j int) bool {
		return experts[i].CreatedAt.After(experts[j].CreatedAt)
	})
	return experts, nil
}

// GateUseCase is the access gate: it resolves the caller from a session
// token and checks the stored role against the requirement. The token
// carries only the subject id; role always comes from the repository.
type GateUseCase struct {
	Experts ports.ExpertRepository
	Tokens  ports.TokenCodec
}

func (uc GateUseCase) Authorize(ctx context.Context, token string, required entities.Role) (entities.Expert, error) {
	if strings.TrimSpace(token) == "" {
		return entities.Expert{}, domainerrors.ErrTokenInvalid
	}
	subject, err := uc.Tokens.Subject(token)
	if err != nil {
		return entities.Expert{}, err
	}
	expert, err := uc.Experts.GetExpert(ctx, subject)
	if err != nil {
		// A token whose subject no longer resolves is a dead session.
		if errors.Is(err, domainerrors.ErrExpertNotFound) {
			return entities.Expert{}, domainerrors.ErrTokenInvalid
		}
		return entities.Expert{}, err
	}
	if !expert.Satisfies(required) {
		return entities.Expert{}, domainerrors.ErrForbidden
	}
	return expert, nil
}
