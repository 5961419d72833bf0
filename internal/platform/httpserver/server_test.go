package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	expertservice "themis/contexts/identity-access/expert-service"
	expertmemory "themis/contexts/identity-access/expert-service/adapters/memory"
	tokenadapter "themis/contexts/identity-access/expert-service/adapters/token"
	expertentities "themis/contexts/identity-access/expert-service/domain/entities"
	experterrors "themis/contexts/identity-access/expert-service/domain/errors"
	ratingengine "themis/contexts/judging/rating-engine"
	ratingmemory "themis/contexts/judging/rating-engine/adapters/memory"
	ratingqueries "themis/contexts/judging/rating-engine/application/queries"
	ratingentities "themis/contexts/judging/rating-engine/domain/entities"
	ratingerrors "themis/contexts/judging/rating-engine/domain/errors"
	ratingports "themis/contexts/judging/rating-engine/ports"
	submissionservice "themis/contexts/judging/submission-service"
	submissionmemory "themis/contexts/judging/submission-service/adapters/memory"
	submissionerrors "themis/contexts/judging/submission-service/domain/errors"
	submissionports "themis/contexts/judging/submission-service/ports"
)

// Test wiring mirrors the composition root: memory stores per module
// plus thin translators between their ports.

type testCatalog struct {
	repo submissionports.SubmissionRepository
}

func (c testCatalog) GetSubmission(ctx context.Context, submissionID string) (ratingports.SubmissionProjection, error) {
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

func (c testCatalog) ListSubmissions(ctx context.Context) ([]ratingports.SubmissionProjection, error) {
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

type testDirectory struct {
	store *expertmemory.Store
}

func (d testDirectory) GetExpert(ctx context.Context, expertID string) (ratingports.ExpertProjection, error) {
	expert, err := d.store.GetExpert(ctx, expertID)
	if err != nil {
		if errors.Is(err, experterrors.ErrExpertNotFound) {
			return ratingports.ExpertProjection{}, ratingerrors.ErrExpertNotFound
		}
		return ratingports.ExpertProjection{}, err
	}
	return ratingports.ExpertProjection{ExpertID: expert.ExpertID, Name: expert.Name}, nil
}

type testRatingSource struct {
	aggregates ratingqueries.AggregateUseCase
}

func (s testRatingSource) AggregateFor(ctx context.Context, submissionID string) (submissionports.ReviewAggregate, error) {
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

const testAdminCode = "ADMIN123"

func newTestServer() *Server {
	tokens := tokenadapter.NewJWTCodec("server-test-secret", time.Hour, "themis-test")
	admin := expertentities.Expert{
		ExpertID:   "admin-1",
		Name:       "Chair",
		AccessCode: testAdminCode,
		Role:       expertentities.RoleAdmin,
		CreatedAt:  time.Now().UTC(),
	}
	expertModule := expertservice.NewInMemoryModule([]expertentities.Expert{admin}, tokens, slog.Default())

	submissionStore := submissionmemory.NewStore(nil)
	ratingStore := ratingmemory.NewStore(nil)
	catalog := testCatalog{repo: submissionStore}

	ratingModule := ratingengine.NewModule(ratingengine.Dependencies{
		Ratings:     ratingStore,
		Submissions: catalog,
		Experts:     testDirectory{store: expertModule.Store},
		Outbox:      ratingStore,
		Clock:       ratingStore,
		IDGen:       ratingStore,
		Logger:      slog.Default(),
	})

	submissionModule := submissionservice.NewModule(submissionservice.Dependencies{
		Submissions: submissionStore,
		Ratings: testRatingSource{aggregates: ratingqueries.AggregateUseCase{
			Ratings:     ratingStore,
			Submissions: catalog,
		}},
		Clock:  submissionStore,
		IDGen:  submissionStore,
		Logger: slog.Default(),
	})

	return New(expertModule, submissionModule, ratingModule, slog.Default(), ":0")
}
