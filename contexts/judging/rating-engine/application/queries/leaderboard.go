package queries

import (
	"context"
	"sort"

	"themis/contexts/judging/rating-engine/domain/entities"
	"themis/contexts/judging/rating-engine/ports"
)

// LeaderboardUseCase ranks reviewed submissions by average score.
type LeaderboardUseCase struct {
	Ratings     ports.RatingRepository
	Submissions ports.SubmissionCatalog
}

// Leaderboard returns reviewed submissions ordered by average score
// descending. Ties rank the earlier-created submission first, with the
// submission id as the final deterministic fallback.
func (uc LeaderboardUseCase) Leaderboard(ctx context.Context) ([]entities.LeaderboardEntry, error) {
	submissions, err := uc.Submissions.ListSubmissions(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := uc.Ratings.ListRatings(ctx)
	if err != nil {
		return nil, err
	}

	bySubmission := make(map[string][]entities.Rating, len(submissions))
	for _, rating := range ratings {
		bySubmission[rating.SubmissionID] = append(bySubmission[rating.SubmissionID], rating)
	}

	type ranked struct {
		submission ports.SubmissionProjection
		aggregate  entities.Aggregate
	}
	entries := make([]ranked, 0, len(submissions))
	for _, submission := range submissions {
		aggregate := aggregateRatings(submission.SubmissionID, bySubmission[submission.SubmissionID])
		if aggregate.Status != entities.StatusReviewed {
			continue
		}
		entries = append(entries, ranked{submission: submission, aggregate: aggregate})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].aggregate.AvgScore != entries[j].aggregate.AvgScore {
			return entries[i].aggregate.AvgScore > entries[j].aggregate.AvgScore
		}
		if !entries[i].submission.CreatedAt.Equal(entries[j].submission.CreatedAt) {
			return entries[i].submission.CreatedAt.Before(entries[j].submission.CreatedAt)
		}
		return entries[i].submission.SubmissionID < entries[j].submission.SubmissionID
	})

	items := make([]entities.LeaderboardEntry, 0, len(entries))
	for i, entry := range entries {
		items = append(items, entities.LeaderboardEntry{
			SubmissionID:    entry.submission.SubmissionID,
			Title:           entry.submission.Title,
			ParticipantName: entry.submission.ParticipantName,
			Kind:            entry.submission.Kind,
			AvgScore:        entry.aggregate.AvgScore,
			RatingCount:     entry.aggregate.RatingCount,
			Rank:            i + 1,
		})
	}
	return items, nil
}
