package queries

import (
	"context"
	"sort"

	"themis/contexts/judging/submission-service/domain/entities"
	"themis/contexts/judging/submission-service/ports"
)

// SubmissionView pairs an entry with its lazily derived review state.
type SubmissionView struct {
	Submission  entities.Submission
	Status      string
	AvgScore    float64
	RatingCount int
}

// CatalogUseCase serves read paths over the submission store. Review
// status and average score are asked of the rating ledger on every
// call so a freshly recorded rating is visible immediately.
type CatalogUseCase struct {
	Submissions ports.SubmissionRepository
	Ratings     ports.RatingSource
}

// ListSubmissions returns all entries newest-first with their current
// aggregate attached.
func (uc CatalogUseCase) ListSubmissions(ctx context.Context) ([]SubmissionView, error) {
	submissions, err := uc.Submissions.ListSubmissions(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(submissions, func(i, j int) bool {
		return submissions[i].CreatedAt.After(submissions[j].CreatedAt)
	})

	views := make([]SubmissionView, 0, len(submissions))
	for _, submission := range submissions {
		aggregate, err := uc.Ratings.AggregateFor(ctx, submission.SubmissionID)
		if err != nil {
			return nil, err
		}
		views = append(views, SubmissionView{
			Submission:  submission,
			Status:      aggregate.Status,
			AvgScore:    aggregate.AvgScore,
			RatingCount: aggregate.RatingCount,
		})
	}
	return views, nil
}

// GetSubmission returns one entry with its current aggregate attached.
func (uc CatalogUseCase) GetSubmission(ctx context.Context, submissionID string) (SubmissionView, error) {
	submission, err := uc.Submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		return SubmissionView{}, err
	}
	aggregate, err := uc.Ratings.AggregateFor(ctx, submission.SubmissionID)
	if err != nil {
		return SubmissionView{}, err
	}
	return SubmissionView{
		Submission:  submission,
		Status:      aggregate.Status,
		AvgScore:    aggregate.AvgScore,
		RatingCount: aggregate.RatingCount,
	}, nil
}
