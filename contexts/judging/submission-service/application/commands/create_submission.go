package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "themis/contexts/judging/submission-service/application"
	"themis/contexts/judging/submission-service/domain/entities"
	domainerrors "themis/contexts/judging/submission-service/domain/errors"
	"themis/contexts/judging/submission-service/ports"
)

// CreateSubmissionCommand is the write-model input for registering an entry.
type CreateSubmissionCommand struct {
	ParticipantName string
	TeamName        string
	Category        string
	Kind            string
	Title           string
	Content         string
	VideoURL        string
}

// IntakeUseCase registers competition entries. Entries are immutable
// after creation; there is no update or delete path.
type IntakeUseCase struct {
	Submissions ports.SubmissionRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

// CreateSubmission validates the required fields and persists a new
// entry. VideoURL may be empty even for video entries; the original
// upload flow attaches it out of band.
func (uc IntakeUseCase) CreateSubmission(ctx context.Context, cmd CreateSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	participant := strings.TrimSpace(cmd.ParticipantName)
	kind := entities.Kind(strings.TrimSpace(cmd.Kind))
	title := strings.TrimSpace(cmd.Title)
	content := strings.TrimSpace(cmd.Content)

	if participant == "" || kind == "" || title == "" || content == "" {
		logger.Warn("submission create validation failed",
			"event", "judging_submission_create_validation_failed",
			"module", "judging/submission-service",
			"layer", "application",
			"participant", participant,
			"kind", string(kind),
		)
		return entities.Submission{}, domainerrors.ErrMissingFields
	}
	if !kind.Valid() {
		logger.Warn("submission create invalid kind",
			"event", "judging_submission_create_invalid_kind",
			"module", "judging/submission-service",
			"layer", "application",
			"kind", string(kind),
		)
		return entities.Submission{}, domainerrors.ErrInvalidKind
	}

	submissionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Submission{}, err
	}
	submission := entities.Submission{
		SubmissionID:    submissionID,
		ParticipantName: participant,
		TeamName:        strings.TrimSpace(cmd.TeamName),
		Category:        strings.TrimSpace(cmd.Category),
		Kind:            kind,
		Title:           title,
		Content:         content,
		VideoURL:        strings.TrimSpace(cmd.VideoURL),
		CreatedAt:       uc.now(),
	}
	if err := uc.Submissions.SaveSubmission(ctx, submission); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("submission created",
		"event", "judging_submission_created",
		"module", "judging/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"kind", string(submission.Kind),
	)
	return submission, nil
}

func (uc IntakeUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
