package bootstrap

import (
	"context"
	"errors"

	experterrors "themis/contexts/identity-access/expert-service/domain/errors"
	expertports "themis/contexts/identity-access/expert-service/ports"
	ratingqueries "themis/contexts/judging/rating-engine/application/queries"
	ratingentities "themis/contexts/judging/rating-engine/domain/entities"
	ratingerrors "themis/contexts/judging/rating-engine/domain/errors"
	ratingports "themis/contexts/judging/rating-engine/ports"
	submissionerrors "themis/contexts/judging/submission-service/domain/errors"
	submissionports "themis/contexts/judging/submission-service/ports"
)

// The glue types below translate between module ports so the contexts
// stay import-free of each other. Domain errors are remapped at the
// seam to keep each module's sentinel set closed.

type submissionCatalog struct {
	repo submissionports.SubmissionRepository
}

func (c submissionCatalog) GetSubmission(ctx context.Context, submissionID string) (ratingports.SubmissionProjection, error) {
	submission, err := c.repo.GetSubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, submissionerrors.ErrSubmissionNotFound) {
			return ratingports.SubmissionProjection{}, ratingerrors.ErrSubmissionNotFound
		}
		return ratingports.SubmissionProjection{}, err
	}
	return ratingports.SubmissionProjection{
		SubmissionID:    submission.SubmissionID,
		Kind:            ratingentities.SubmissionKind(submission.Kind),
		Title:           submission.Title,
		ParticipantName: submission.ParticipantName,
		CreatedAt:       submission.CreatedAt,
	}, nil
}

func (c submissionCatalog) ListSubmissions(ctx context.Context) ([]ratingports.SubmissionProjection, error) {
	submissions, err := c.repo.ListSubmissions(ctx)
	if err != nil {
		return nil, err
	}
	projections := make([]ratingports.SubmissionProjection, 0, len(submissions))
	for _, submission := range submissions {
		projections = append(projections, ratingports.SubmissionProjection{
			SubmissionID:    submission.SubmissionID,
			Kind:            ratingentities.SubmissionKind(submission.Kind),
			Title:           submission.Title,
			ParticipantName: submission.ParticipantName,
			CreatedAt:       submission.CreatedAt,
		})
	}
	return projections, nil
}

type expertDirectory struct {
	repo expertports.ExpertRepository
}

func (d expertDirectory) GetExpert(ctx context.Context, expertID string) (ratingports.ExpertProjection, error) {
	expert, err := d.repo.GetExpert(ctx, expertID)
	if err != nil {
		if errors.Is(err, experterrors.ErrExpertNotFound) {
			return ratingports.ExpertProjection{}, ratingerrors.ErrExpertNotFound
		}
		return ratingports.ExpertProjection{}, err
	}
	return ratingports.ExpertProjection{
		ExpertID: expert.ExpertID,
		Name:     expert.Name,
	}, nil
}

type ratingSource struct {
	aggregates ratingqueries.AggregateUseCase
}

func (s ratingSource) AggregateFor(ctx context.Context, submissionID string) (submissionports.ReviewAggregate, error) {
	aggregate, err := s.aggregates.AggregateFor(ctx, submissionID)
	if err != nil {
		if errors.Is(err, ratingerrors.ErrSubmissionNotFound) {
			return submissionports.ReviewAggregate{}, submissionerrors.ErrSubmissionNotFound
		}
		return submissionports.ReviewAggregate{}, err
	}
	return submissionports.ReviewAggregate{
		SubmissionID: aggregate.SubmissionID,
		Status:       string(aggregate.Status),
		AvgScore:     aggregate.AvgScore,
		RatingCount:  aggregate.RatingCount,
	}, nil
}

var (
	_ ratingports.SubmissionCatalog = submissionCatalog{}
	_ ratingports.ExpertDirectory   = expertDirectory{}
	_ submissionports.RatingSource  = ratingSource{}
)
