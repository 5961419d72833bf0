package submissionservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	submissionservice "themis/contexts/judging/submission-service"
	"themis/contexts/judging/submission-service/domain/entities"
	domainerrors "themis/contexts/judging/submission-service/domain/errors"
	"themis/contexts/judging/submission-service/ports"
	httptransport "themis/contexts/judging/submission-service/transport/http"
)

func TestCreateSubmissionValidation(t *testing.T) {
	module := submissionservice.NewInMemoryModule(nil, nil)
	ctx := context.Background()

	_, err := module.Handler.CreateSubmissionHandler(ctx, httptransport.CreateSubmissionRequest{
		ParticipantName: "Anna",
		Type:            "video",
		Title:           "Robotics lab tour",
	})
	if !errors.Is(err, domainerrors.ErrMissingFields) {
		t.Fatalf("expected missing fields for blank content, got %v", err)
	}

	_, err = module.Handler.CreateSubmissionHandler(ctx, httptransport.CreateSubmissionRequest{
		ParticipantName: "Anna",
		Type:            "podcast",
		Title:           "Robotics lab tour",
		Content:         "A walkthrough of our lab.",
	})
	if !errors.Is(err, domainerrors.ErrInvalidKind) {
		t.Fatalf("expected invalid type, got %v", err)
	}

	created, err := module.Handler.CreateSubmissionHandler(ctx, httptransport.CreateSubmissionRequest{
		ParticipantName: "Anna",
		TeamName:        "RoboCats",
		Type:            "video",
		Title:           "Robotics lab tour",
		Content:         "A walkthrough of our lab.",
	})
	if err != nil {
		t.Fatalf("create submission failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated submission id")
	}
	if created.Status != "pending" {
		t.Fatalf("new submissions start pending, got %s", created.Status)
	}
	if created.VideoURL != "" {
		t.Fatalf("video url must stay empty when not supplied")
	}
}

func TestListSubmissionsNewestFirstWithAggregates(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	module := submissionservice.NewInMemoryModule([]entities.Submission{
		{
			SubmissionID:    "older",
			ParticipantName: "Anna",
			Kind:            entities.KindVideo,
			Title:           "A",
			Content:         "first entry",
			CreatedAt:       base,
		},
		{
			SubmissionID:    "newer",
			ParticipantName: "Boris",
			Kind:            entities.KindEssay,
			Title:           "B",
			Content:         "second entry",
			CreatedAt:       base.Add(time.Hour),
		},
	}, nil)
	module.Store.SetAggregate(ports.ReviewAggregate{
		SubmissionID: "older",
		Status:       "reviewed",
		AvgScore:     21,
		RatingCount:  2,
	})

	list, err := module.Handler.ListSubmissionsHandler(context.Background())
	if err != nil {
		t.Fatalf("list submissions failed: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(list.Items))
	}
	if list.Items[0].ID != "newer" {
		t.Fatalf("expected newest first, got %s", list.Items[0].ID)
	}
	if list.Items[0].Status != "pending" || list.Items[0].AvgScore != 0 {
		t.Fatalf("unrated entry must read pending, got %+v", list.Items[0])
	}
	if list.Items[1].Status != "reviewed" || list.Items[1].AvgScore != 21 {
		t.Fatalf("rated entry must carry its aggregate, got %+v", list.Items[1])
	}
}

func TestGetSubmissionNotFound(t *testing.T) {
	module := submissionservice.NewInMemoryModule(nil, nil)
	_, err := module.Handler.GetSubmissionHandler(context.Background(), "missing")
	if !errors.Is(err, domainerrors.ErrSubmissionNotFound) {
		t.Fatalf("expected submission not found, got %v", err)
	}
}
