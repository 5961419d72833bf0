package ports

import (
	"context"
	"time"

	"themis/contexts/identity-access/expert-service/domain/entities"
)

type ExpertRepository interface {
	SaveExpert(ctx context.Context, expert entities.Expert) error
	GetExpert(ctx context.Context, expertID string) (entities.Expert, error)
	FindByCredentials(ctx context.Context, name string, accessCode string) (entities.Expert, bool, error)
	ListExperts(ctx context.Context) ([]entities.Expert, error)
}

// TokenCodec issues and verifies signed session tokens. Only the
// subject (expert id) travels in the token; the role is resolved from
// the repository on every authorization check.
type TokenCodec interface {
	Issue(expert entities.Expert, now time.Time) (string, error)
	Subject(token string) (string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CodeGenerator produces unguessable access codes for new experts.
type CodeGenerator interface {
	NewCode() (string, error)
}
