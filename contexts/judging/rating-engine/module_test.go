package ratingengine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	ratingengine "themis/contexts/judging/rating-engine"
	"themis/contexts/judging/rating-engine/domain/entities"
	domainerrors "themis/contexts/judging/rating-engine/domain/errors"
	"themis/contexts/judging/rating-engine/ports"
	httptransport "themis/contexts/judging/rating-engine/transport/http"
)

func seedModule(t *testing.T) ratingengine.Module {
	t.Helper()
	module := ratingengine.NewInMemoryModule(nil, nil)
	module.Store.SetSubmission(ports.SubmissionProjection{
		SubmissionID:    "submission-1",
		Kind:            entities.KindVideo,
		Title:           "Robotics lab tour",
		ParticipantName: "Anna",
		CreatedAt:       time.Now().UTC().Add(-3 * time.Hour),
	})
	module.Store.SetExpert(ports.ExpertProjection{
		ExpertID: "expert-1",
		Name:     "Ivan",
	})
	return module
}

func TestSubmitRatingValidatesRubric(t *testing.T) {
	module := seedModule(t)
	ctx := context.Background()

	_, err := module.Handler.SubmitRatingHandler(ctx, "expert-1", httptransport.SubmitRatingRequest{
		SubmissionID: "submission-1",
		Scores:       []int{7, 7, 5},
	})
	if !errors.Is(err, domainerrors.ErrScoreCountMismatch) {
		t.Fatalf("expected score count mismatch, got %v", err)
	}

	_, err = module.Handler.SubmitRatingHandler(ctx, "expert-1", httptransport.SubmitRatingRequest{
		SubmissionID: "submission-1",
		Scores:       []int{8, 7, 5, 5},
	})
	if !errors.Is(err, domainerrors.ErrScoreOutOfRange) {
		t.Fatalf("expected out of range for score above criterion max, got %v", err)
	}

	_, err = module.Handler.SubmitRatingHandler(ctx, "expert-1", httptransport.SubmitRatingRequest{
		SubmissionID: "submission-1",
		Scores:       []int{-1, 7, 5, 5},
	})
	if !errors.Is(err, domainerrors.ErrScoreOutOfRange) {
		t.Fatalf("expected out of range for negative score, got %v", err)
	}

	resp, err := module.Handler.SubmitRatingHandler(ctx, "expert-1", httptransport.SubmitRatingRequest{
		SubmissionID: "submission-1",
		Scores:       []int{7, 7, 5, 5},
		Comment:      "excellent entry",
	})
	if err != nil {
		t.Fatalf("submit rating failed: %v", err)
	}
	if resp.TotalScore != 24 {
		t.Fatalf("expected max total 24, got %d", resp.TotalScore)
	}
	if resp.ExpertName != "Ivan" {
		t.Fatalf("expected joined expert name, got %q", resp.ExpertName)
	}
}

func TestSubmitRatingRejectsUnknownReferences(t *testing.T) {
	module := seedModule(t)
	ctx := context.Background()

	_, err := module.Handler.SubmitRatingHandler(ctx, "expert-1", httptransport.SubmitRatingRequest{
		SubmissionID: "missing",
		Scores:       []int{1, 1, 1, 1},
	})
	if !errors.Is(err, domainerrors.ErrSubmissionNotFound) {
		t.Fatalf("expected submission not found, got %v", err)
	}

	_, err = module.Handler.SubmitRatingHandler(ctx, "ghost", httptransport.SubmitRatingRequest{
		SubmissionID: "submission-1",
		Scores:       []int{1, 1, 1, 1},
	})
	if !errors.Is(err, domainerrors.ErrExpertNotFound) {
		t.Fatalf("expected expert not found, got %v", err)
	}
}

func TestSubmitRatingRevisesInPlace(t *testing.T) {
	module := seedModule(t)
	ctx := context.Background()

	first, err := module.Handler.SubmitRatingHandler(ctx, "expert-1", httptransport.SubmitRatingRequest{
		SubmissionID: "submission-1",
		Scores:       []int{3, 3, 2, 2},
	})
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if first.WasUpdate {
		t.Fatalf("first write must not be an update")
	}

	second, err := module.Handler.SubmitRatingHandler(ctx, "expert-1", httptransport.SubmitRatingRequest{
		SubmissionID: "submission-1",
		Scores:       []int{6, 5, 4, 4},
		Comment:      "revised after deliberation",
	})
	if err != nil {
		t.Fatalf("revision failed: %v", err)
	}
	if !second.WasUpdate {
		t.Fatalf("expected revision to be marked as update")
	}
	if second.RatingID != first.RatingID {
		t.Fatalf("revision must keep rating id, got %s then %s", first.RatingID, second.RatingID)
	}
	if second.CreatedAt != first.CreatedAt {
		t.Fatalf("revision must preserve created_at")
	}
	if second.TotalScore != 19 {
		t.Fatalf("expected revised total 19, got %d", second.TotalScore)
	}

	list, err := module.Handler.RatingsForHandler(ctx, "submission-1")
	if err != nil {
		t.Fatalf("ratings list failed: %v", err)
	}
	if len(list.Items) != 1 {
		t.Fatalf("ledger must hold one row per (expert, submission), got %d", len(list.Items))
	}
}

func TestAggregateIsRecomputedFromLedger(t *testing.T) {
	module := seedModule(t)
	module.Store.SetExpert(ports.ExpertProjection{ExpertID: "expert-2", Name: "Maria"})
	ctx := context.Background()

	pending, err := module.Handler.AggregateHandler(ctx, "submission-1")
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if pending.Status != "pending" || pending.AvgScore != 0 || pending.RatingCount != 0 {
		t.Fatalf("unrated submission must read pending with zero average, got %+v", pending)
	}

	if _, err := module.Handler.SubmitRatingHandler(ctx, "expert-1", httptransport.SubmitRatingRequest{
		SubmissionID: "submission-1",
		Scores:       []int{6, 5, 4, 4},
	}); err != nil {
		t.Fatalf("first rating failed: %v", err)
	}
	if _, err := module.Handler.SubmitRatingHandler(ctx, "expert-2", httptransport.SubmitRatingRequest{
		SubmissionID: "submission-1",
		Scores:       []int{7, 6, 5, 5},
	}); err != nil {
		t.Fatalf("second rating failed: %v", err)
	}

	reviewed, err := module.Handler.AggregateHandler(ctx, "submission-1")
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if reviewed.Status != "reviewed" {
		t.Fatalf("expected reviewed status, got %s", reviewed.Status)
	}
	if reviewed.AvgScore != 21 {
		t.Fatalf("expected average 21, got %f", reviewed.AvgScore)
	}
	if reviewed.RatingCount != 2 {
		t.Fatalf("expected rating count 2, got %d", reviewed.RatingCount)
	}

	if _, err := module.Handler.AggregateHandler(ctx, "missing"); !errors.Is(err, domainerrors.ErrSubmissionNotFound) {
		t.Fatalf("expected submission not found, got %v", err)
	}
}

func TestLeaderboardOrderingAndTieBreak(t *testing.T) {
	module := ratingengine.NewInMemoryModule(nil, nil)
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	module.Store.SetExpert(ports.ExpertProjection{ExpertID: "expert-1", Name: "Ivan"})
	module.Store.SetSubmission(ports.SubmissionProjection{
		SubmissionID: "late-tied", Kind: entities.KindEssay, Title: "B", ParticipantName: "Boris",
		CreatedAt: base.Add(time.Hour),
	})
	module.Store.SetSubmission(ports.SubmissionProjection{
		SubmissionID: "early-tied", Kind: entities.KindVideo, Title: "A", ParticipantName: "Anna",
		CreatedAt: base,
	})
	module.Store.SetSubmission(ports.SubmissionProjection{
		SubmissionID: "top", Kind: entities.KindVideo, Title: "C", ParticipantName: "Clara",
		CreatedAt: base.Add(2 * time.Hour),
	})
	module.Store.SetSubmission(ports.SubmissionProjection{
		SubmissionID: "unrated", Kind: entities.KindEssay, Title: "D", ParticipantName: "Dina",
		CreatedAt: base,
	})

	ctx := context.Background()
	submit := func(submissionID string, scores []int) {
		t.Helper()
		if _, err := module.Handler.SubmitRatingHandler(ctx, "expert-1", httptransport.SubmitRatingRequest{
			SubmissionID: submissionID,
			Scores:       scores,
		}); err != nil {
			t.Fatalf("rating %s failed: %v", submissionID, err)
		}
	}
	submit("top", []int{7, 7, 5, 5})
	submit("early-tied", []int{5, 5, 5, 5})
	submit("late-tied", []int{5, 5, 5, 5})

	board, err := module.Handler.LeaderboardHandler(ctx)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(board.Items) != 3 {
		t.Fatalf("unrated submissions must be excluded, got %d entries", len(board.Items))
	}

	wantOrder := []string{"top", "early-tied", "late-tied"}
	for i, want := range wantOrder {
		if board.Items[i].SubmissionID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, board.Items[i].SubmissionID)
		}
		if board.Items[i].Rank != i+1 {
			t.Fatalf("position %d: expected rank %d, got %d", i, i+1, board.Items[i].Rank)
		}
	}
}
