package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "themis/contexts/identity-access/expert-service/application"
	"themis/contexts/identity-access/expert-service/domain/entities"
	domainerrors "themis/contexts/identity-access/expert-service/domain/errors"
	"themis/contexts/identity-access/expert-service/ports"
)

// AuthenticateCommand carries login credentials. Both fields match
// case-sensitively against the stored record.
type AuthenticateCommand struct {
	Name       string
	AccessCode string
}

// AuthenticateResult pairs the resolved expert with a fresh session
// token the transport hands back to the client.
type AuthenticateResult struct {
	Expert entities.Expert
	Token  string
}

// SessionUseCase verifies credentials and issues signed session
// tokens. There is no lockout or rate limiting at this layer.
type SessionUseCase struct {
	Experts ports.ExpertRepository
	Tokens  ports.TokenCodec
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc SessionUseCase) Authenticate(ctx context.Context, cmd AuthenticateCommand) (AuthenticateResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.Name)
	accessCode := strings.TrimSpace(cmd.AccessCode)
	if name == "" || accessCode == "" {
		return AuthenticateResult{}, domainerrors.ErrInvalidCredentials
	}

	expert, found, err := uc.Experts.FindByCredentials(ctx, name, accessCode)
	if err != nil {
		return AuthenticateResult{}, err
	}
	if !found {
		logger.Warn("authentication rejected",
			"event", "identity_authenticate_rejected",
			"module", "identity-access/expert-service",
			"layer", "application",
			"name", name,
		)
		return AuthenticateResult{}, domainerrors.ErrInvalidCredentials
	}

	token, err := uc.Tokens.Issue(expert, uc.now())
	if err != nil {
		return AuthenticateResult{}, err
	}

	logger.Info("expert authenticated",
		"event", "identity_authenticated",
		"module", "identity-access/expert-service",
		"layer", "application",
		"expert_id", expert.ExpertID,
		"role", string(expert.Role),
	)
	return AuthenticateResult{Expert: expert, Token: token}, nil
}

func (uc SessionUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
