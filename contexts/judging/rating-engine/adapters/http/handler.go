package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"themis/contexts/judging/rating-engine/application/commands"
	"themis/contexts/judging/rating-engine/application/queries"
	"themis/contexts/judging/rating-engine/domain/entities"
	httptransport "themis/contexts/judging/rating-engine/transport/http"
)

type Handler struct {
	Ratings      commands.RateUseCase
	Aggregates   queries.AggregateUseCase
	Leaderboards queries.LeaderboardUseCase
	Logger       *slog.Logger
}

// SubmitRatingHandler godoc
// @Summary Record or revise a scorecard
// @Description Upserts one rating per (expert, submission) pair; a repeat write replaces the previous scores.
// @Tags rating-engine
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body http.SubmitRatingRequest true "Scorecard"
// @Success 200 {object} http.RatingResponse
// @Failure 400 {object} http.ErrorResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/ratings [post]
func (h Handler) SubmitRatingHandler(
	ctx context.Context,
	expertID string,
	req httptransport.SubmitRatingRequest,
) (httptransport.RatingResponse, error) {
	result, err := h.Ratings.SubmitRating(ctx, commands.SubmitRatingCommand{
		ExpertID:     expertID,
		SubmissionID: req.SubmissionID,
		Scores:       req.Scores,
		Comment:      req.Comment,
	})
	if err != nil {
		return httptransport.RatingResponse{}, err
	}
	resp := mapRating(result.Rating)
	resp.WasUpdate = result.WasUpdate
	return resp, nil
}

// RatingsForHandler godoc
// @Summary List ratings for a submission
// @Tags rating-engine
// @Produce json
// @Security BearerAuth
// @Param submission_id query string true "Submission id"
// @Success 200 {object} http.RatingListResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/ratings [get]
func (h Handler) RatingsForHandler(ctx context.Context, submissionID string) (httptransport.RatingListResponse, error) {
	ratings, err := h.Aggregates.RatingsFor(ctx, submissionID)
	if err != nil {
		return httptransport.RatingListResponse{}, err
	}
	items := make([]httptransport.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		items = append(items, mapRating(rating))
	}
	return httptransport.RatingListResponse{Items: items}, nil
}

func (h Handler) AggregateHandler(ctx context.Context, submissionID string) (httptransport.AggregateResponse, error) {
	aggregate, err := h.Aggregates.AggregateFor(ctx, submissionID)
	if err != nil {
		return httptransport.AggregateResponse{}, err
	}
	return httptransport.AggregateResponse{
		SubmissionID: aggregate.SubmissionID,
		Status:       string(aggregate.Status),
		AvgScore:     aggregate.AvgScore,
		RatingCount:  aggregate.RatingCount,
	}, nil
}

// LeaderboardHandler godoc
// @Summary Ranked reviewed submissions
// @Description Orders reviewed entries by average score; earlier submissions win ties.
// @Tags rating-engine
// @Produce json
// @Success 200 {object} http.LeaderboardResponse
// @Router /api/leaderboard [get]
func (h Handler) LeaderboardHandler(ctx context.Context) (httptransport.LeaderboardResponse, error) {
	entries, err := h.Leaderboards.Leaderboard(ctx)
	if err != nil {
		return httptransport.LeaderboardResponse{}, err
	}
	items := make([]httptransport.LeaderboardItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, httptransport.LeaderboardItem{
			Rank:            entry.Rank,
			SubmissionID:    entry.SubmissionID,
			Title:           entry.Title,
			ParticipantName: entry.ParticipantName,
			Type:            string(entry.Kind),
			AvgScore:        entry.AvgScore,
			RatingCount:     entry.RatingCount,
		})
	}
	return httptransport.LeaderboardResponse{Items: items}, nil
}

func mapRating(rating entities.Rating) httptransport.RatingResponse {
	return httptransport.RatingResponse{
		RatingID:     rating.RatingID,
		SubmissionID: rating.SubmissionID,
		ExpertID:     rating.ExpertID,
		ExpertName:   rating.ExpertName,
		Scores:       rating.Scores,
		TotalScore:   rating.Total(),
		Comment:      rating.Comment,
		CreatedAt:    rating.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    rating.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
