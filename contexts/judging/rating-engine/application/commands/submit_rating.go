package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "themis/contexts/judging/rating-engine/application"
	"themis/contexts/judging/rating-engine/domain/entities"
	domainerrors "themis/contexts/judging/rating-engine/domain/errors"
	"themis/contexts/judging/rating-engine/ports"
)

// SubmitRatingCommand is the write-model input for scoring a submission.
type SubmitRatingCommand struct {
	ExpertID     string
	SubmissionID string
	Scores       []int
	Comment      string
}

// SubmitRatingResult returns the ledger row plus a revision marker the
// transport layer maps to API semantics.
type SubmitRatingResult struct {
	Rating    entities.Rating
	WasUpdate bool
}

// RateUseCase orchestrates ledger writes while enforcing the core
// invariants: referenced submission and expert must exist, scores must
// align with the rubric and stay within criterion bounds, and at most
// one rating exists per (expert, submission) pair.
type RateUseCase struct {
	Ratings     ports.RatingRepository
	Submissions ports.SubmissionCatalog
	Experts     ports.ExpertDirectory
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

// SubmitRating records or revises one expert's scorecard. A second
// write for the same (expert, submission) pair replaces the first in
// place; the later write observed by the store wins.
func (uc RateUseCase) SubmitRating(ctx context.Context, cmd SubmitRatingCommand) (SubmitRatingResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	expertID := strings.TrimSpace(cmd.ExpertID)
	submissionID := strings.TrimSpace(cmd.SubmissionID)
	logger.Info("rating submit processing started",
		"event", "judging_rating_submit_started",
		"module", "judging/rating-engine",
		"layer", "application",
		"expert_id", expertID,
		"submission_id", submissionID,
	)

	if expertID == "" || submissionID == "" {
		logger.Warn("rating submit validation failed",
			"event", "judging_rating_submit_validation_failed",
			"module", "judging/rating-engine",
			"layer", "application",
			"expert_id", expertID,
			"submission_id", submissionID,
		)
		return SubmitRatingResult{}, domainerrors.ErrInvalidRatingInput
	}

	submission, err := uc.Submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		return SubmitRatingResult{}, err
	}
	expert, err := uc.Experts.GetExpert(ctx, expertID)
	if err != nil {
		return SubmitRatingResult{}, err
	}

	rubric := entities.RubricFor(submission.Kind)
	if len(cmd.Scores) != len(rubric) {
		logger.Warn("rating submit score count mismatch",
			"event", "judging_rating_submit_score_count_mismatch",
			"module", "judging/rating-engine",
			"layer", "application",
			"expert_id", expertID,
			"submission_id", submissionID,
			"got", len(cmd.Scores),
			"want", len(rubric),
		)
		return SubmitRatingResult{}, domainerrors.ErrScoreCountMismatch
	}
	for i, score := range cmd.Scores {
		if score < 0 || score > rubric[i].MaxScore {
			logger.Warn("rating submit score out of range",
				"event", "judging_rating_submit_score_out_of_range",
				"module", "judging/rating-engine",
				"layer", "application",
				"expert_id", expertID,
				"submission_id", submissionID,
				"criterion", rubric[i].Name,
				"score", score,
				"max", rubric[i].MaxScore,
			)
			return SubmitRatingResult{}, domainerrors.ErrScoreOutOfRange
		}
	}

	now := uc.now()
	scores := append([]int(nil), cmd.Scores...)
	comment := strings.TrimSpace(cmd.Comment)

	if existing, found, err := uc.Ratings.GetRatingByIdentity(ctx, submissionID, expertID); err != nil {
		return SubmitRatingResult{}, err
	} else if found {
		existing.Scores = scores
		existing.Comment = comment
		existing.ExpertName = expert.Name
		existing.UpdatedAt = now
		if err := uc.Ratings.SaveRating(ctx, existing); err != nil {
			return SubmitRatingResult{}, err
		}
		if err := uc.appendRatingEvent(ctx, "rating.revised", existing, now); err != nil {
			return SubmitRatingResult{}, err
		}
		logger.Info("rating revised",
			"event", "judging_rating_revised",
			"module", "judging/rating-engine",
			"layer", "application",
			"rating_id", existing.RatingID,
			"expert_id", expertID,
			"submission_id", submissionID,
			"total", existing.Total(),
		)
		return SubmitRatingResult{Rating: existing, WasUpdate: true}, nil
	}

	ratingID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitRatingResult{}, err
	}
	rating := entities.Rating{
		RatingID:     ratingID,
		SubmissionID: submissionID,
		ExpertID:     expertID,
		ExpertName:   expert.Name,
		Scores:       scores,
		Comment:      comment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Ratings.SaveRating(ctx, rating); err != nil {
		return SubmitRatingResult{}, err
	}
	if err := uc.appendRatingEvent(ctx, "rating.recorded", rating, now); err != nil {
		return SubmitRatingResult{}, err
	}

	logger.Info("rating recorded",
		"event", "judging_rating_recorded",
		"module", "judging/rating-engine",
		"layer", "application",
		"rating_id", rating.RatingID,
		"expert_id", expertID,
		"submission_id", submissionID,
		"total", rating.Total(),
	)
	return SubmitRatingResult{Rating: rating}, nil
}

func (uc RateUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc RateUseCase) appendRatingEvent(
	ctx context.Context,
	eventType string,
	rating entities.Rating,
	occurredAt time.Time,
) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:      eventID,
		EventType:    eventType,
		PartitionKey: rating.SubmissionID,
		OccurredAt:   occurredAt,
		Data: map[string]any{
			"rating_id":     rating.RatingID,
			"submission_id": rating.SubmissionID,
			"expert_id":     rating.ExpertID,
			"total_score":   rating.Total(),
			"occurred_at":   occurredAt.Format(time.RFC3339),
		},
	})
}
