package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"themis/contexts/judging/submission-service/application/commands"
	"themis/contexts/judging/submission-service/application/queries"
	httptransport "themis/contexts/judging/submission-service/transport/http"
)

type Handler struct {
	Intake  commands.IntakeUseCase
	Catalog queries.CatalogUseCase
	Logger  *slog.Logger
}

// CreateSubmissionHandler godoc
// @Summary Register a competition entry
// @Tags submission-service
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body http.CreateSubmissionRequest true "Submission payload"
// @Success 201 {object} http.SubmissionResponse
// @Failure 400 {object} http.ErrorResponse
// @Failure 403 {object} http.ErrorResponse
// @Router /api/submissions [post]
func (h Handler) CreateSubmissionHandler(
	ctx context.Context,
	req httptransport.CreateSubmissionRequest,
) (httptransport.SubmissionResponse, error) {
	submission, err := h.Intake.CreateSubmission(ctx, commands.CreateSubmissionCommand{
		ParticipantName: req.ParticipantName,
		TeamName:        req.TeamName,
		Category:        req.Category,
		Kind:            req.Type,
		Title:           req.Title,
		Content:         req.Content,
		VideoURL:        req.VideoURL,
	})
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	// A brand-new entry has no ratings yet.
	return mapSubmission(queries.SubmissionView{
		Submission: submission,
		Status:     "pending",
	}), nil
}

// ListSubmissionsHandler godoc
// @Summary List entries with derived review state
// @Description Review status and average score are recomputed from the rating ledger on every call.
// @Tags submission-service
// @Produce json
// @Success 200 {object} http.SubmissionListResponse
// @Router /api/submissions [get]
func (h Handler) ListSubmissionsHandler(ctx context.Context) (httptransport.SubmissionListResponse, error) {
	views, err := h.Catalog.ListSubmissions(ctx)
	if err != nil {
		return httptransport.SubmissionListResponse{}, err
	}
	items := make([]httptransport.SubmissionResponse, 0, len(views))
	for _, view := range views {
		items = append(items, mapSubmission(view))
	}
	return httptransport.SubmissionListResponse{Items: items}, nil
}

func (h Handler) GetSubmissionHandler(ctx context.Context, submissionID string) (httptransport.SubmissionResponse, error) {
	view, err := h.Catalog.GetSubmission(ctx, submissionID)
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return mapSubmission(view), nil
}

func mapSubmission(view queries.SubmissionView) httptransport.SubmissionResponse {
	return httptransport.SubmissionResponse{
		ID:              view.Submission.SubmissionID,
		ParticipantName: view.Submission.ParticipantName,
		TeamName:        view.Submission.TeamName,
		Category:        view.Submission.Category,
		Type:            string(view.Submission.Kind),
		Title:           view.Submission.Title,
		Content:         view.Submission.Content,
		VideoURL:        view.Submission.VideoURL,
		Status:          view.Status,
		AvgScore:        view.AvgScore,
		RatingCount:     view.RatingCount,
		CreatedAt:       view.Submission.CreatedAt.UTC().Format(time.RFC3339),
	}
}
