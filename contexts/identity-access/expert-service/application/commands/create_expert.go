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

// CreateExpertCommand provisions a new reviewer identity.
type CreateExpertCommand struct {
	Name string
}

// ProvisionUseCase creates expert records with generated access codes.
// Experts default to the expert role; the role never changes after
// creation and records are never deleted.
type ProvisionUseCase struct {
	Experts ports.ExpertRepository
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Codes   ports.CodeGenerator
	Logger  *slog.Logger
}

func (uc ProvisionUseCase) CreateExpert(ctx context.Context, cmd CreateExpertCommand) (entities.Expert, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		logger.Warn("expert create validation failed",
			"event", "identity_expert_create_validation_failed",
			"module", "identity-access/expert-service",
			"layer", "application",
		)
		return entities.Expert{}, domainerrors.ErrNameRequired
	}

	expertID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Expert{}, err
	}
	accessCode, err := uc.Codes.NewCode()
	if err != nil {
		return entities.Expert{}, err
	}
	expert := entities.Expert{
		ExpertID:   expertID,
		Name:       name,
		AccessCode: accessCode,
		Role:       entities.RoleExpert,
		CreatedAt:  uc.now(),
	}
	if err := uc.Experts.SaveExpert(ctx, expert); err != nil {
		return entities.Expert{}, err
	}

	logger.Info("expert created",
		"event", "identity_expert_created",
		"module", "identity-access/expert-service",
		"layer", "application",
		"expert_id", expert.ExpertID,
		"role", string(expert.Role),
	)
	return expert, nil
}

func (uc ProvisionUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
