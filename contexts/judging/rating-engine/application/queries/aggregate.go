package queries

import (
	"context"
	"sort"
	"strings"

	"themis/contexts/judging/rating-engine/domain/entities"
	"themis/contexts/judging/rating-engine/ports"
)

// AggregateUseCase derives submission score views from the ledger. It
// owns no storage: every read recomputes from current ledger contents,
// so aggregates can never go stale across ledger mutations.
type AggregateUseCase struct {
	Ratings     ports.RatingRepository
	Submissions ports.SubmissionCatalog
}

// RatingsFor lists a submission's ratings newest-first, with expert
// names already joined for display.
func (uc AggregateUseCase) RatingsFor(ctx context.Context, submissionID string) ([]entities.Rating, error) {
	submissionID = strings.TrimSpace(submissionID)
	if _, err := uc.Submissions.GetSubmission(ctx, submissionID); err != nil {
		return nil, err
	}
	ratings, err := uc.Ratings.ListRatingsBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	sort.Slice(ratings, func(i, j int) bool {
		return ratings[i].CreatedAt.After(ratings[j].CreatedAt)
	})
	return ratings, nil
}

// AggregateFor computes the derived status and average score for one
// submission: pending with a zero average while the ledger is empty,
// reviewed with the mean of rating totals otherwise.
func (uc AggregateUseCase) AggregateFor(ctx context.Context, submissionID string) (entities.Aggregate, error) {
	submissionID = strings.TrimSpace(submissionID)
	if _, err := uc.Submissions.GetSubmission(ctx, submissionID); err != nil {
		return entities.Aggregate{}, err
	}
	ratings, err := uc.Ratings.ListRatingsBySubmission(ctx, submissionID)
	if err != nil {
		return entities.Aggregate{}, err
	}
	return aggregateRatings(submissionID, ratings), nil
}

func aggregateRatings(submissionID string, ratings []entities.Rating) entities.Aggregate {
	aggregate := entities.Aggregate{
		SubmissionID: submissionID,
		Status:       entities.StatusPending,
	}
	if len(ratings) == 0 {
		return aggregate
	}
	total := 0
	for _, rating := range ratings {
		total += rating.Total()
	}
	aggregate.Status = entities.StatusReviewed
	aggregate.RatingCount = len(ratings)
	aggregate.AvgScore = float64(total) / float64(len(ratings))
	return aggregate
}
