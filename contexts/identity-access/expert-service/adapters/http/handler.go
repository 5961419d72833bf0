package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"themis/contexts/identity-access/expert-service/application/commands"
	"themis/contexts/identity-access/expert-service/application/queries"
	"themis/contexts/identity-access/expert-service/domain/entities"
	httptransport "themis/contexts/identity-access/expert-service/transport/http"
)

type Handler struct {
	Provisioning commands.ProvisionUseCase
	Sessions     commands.SessionUseCase
	Directory    queries.DirectoryUseCase
	Gate         queries.GateUseCase
	Logger       *slog.Logger
}

// CreateExpertHandler godoc
// @Summary Provision an expert
// @Description Creates a jury member with a generated access code. The code appears only in this response.
// @Tags expert-service
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body http.CreateExpertRequest true "Expert payload"
// @Success 201 {object} http.ExpertResponse
// @Failure 400 {object} http.ErrorResponse
// @Failure 403 {object} http.ErrorResponse
// @Router /api/experts [post]
func (h Handler) CreateExpertHandler(ctx context.Context, req httptransport.CreateExpertRequest) (httptransport.ExpertResponse, error) {
	expert, err := h.Provisioning.CreateExpert(ctx, commands.CreateExpertCommand{
		Name: req.Name,
	})
	if err != nil {
		return httptransport.ExpertResponse{}, err
	}
	return mapExpert(expert, true), nil
}

// LoginHandler godoc
// @Summary Authenticate with name and access code
// @Description Issues a session token whose only claim is the expert id.
// @Tags expert-service
// @Accept json
// @Produce json
// @Param request body http.LoginRequest true "Credentials"
// @Success 200 {object} http.LoginResponse
// @Failure 401 {object} http.ErrorResponse
// @Router /api/auth/login [post]
func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	result, err := h.Sessions.Authenticate(ctx, commands.AuthenticateCommand{
		Name:       req.Name,
		AccessCode: req.AccessCode,
	})
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		Expert: mapExpert(result.Expert, false),
		Token:  result.Token,
	}, nil
}

// ListExpertsHandler godoc
// @Summary List the jury roster
// @Tags expert-service
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.ExpertListResponse
// @Failure 403 {object} http.ErrorResponse
// @Router /api/experts [get]
func (h Handler) ListExpertsHandler(ctx context.Context) (httptransport.ExpertListResponse, error) {
	experts, err := h.Directory.ListExperts(ctx)
	if err != nil {
		return httptransport.ExpertListResponse{}, err
	}
	items := make([]httptransport.ExpertResponse, 0, len(experts))
	for _, expert := range experts {
		// Admins see access codes; they hand them out to reviewers.
		items = append(items, mapExpert(expert, true))
	}
	return httptransport.ExpertListResponse{Items: items}, nil
}

// AuthorizeHandler is consumed by the platform HTTP layer to gate
// protected routes before dispatching to module handlers.
func (h Handler) AuthorizeHandler(ctx context.Context, token string, required entities.Role) (entities.Expert, error) {
	return h.Gate.Authorize(ctx, token, required)
}

func mapExpert(expert entities.Expert, includeCode bool) httptransport.ExpertResponse {
	resp := httptransport.ExpertResponse{
		ExpertID:  expert.ExpertID,
		Name:      expert.Name,
		Role:      string(expert.Role),
		CreatedAt: expert.CreatedAt.UTC().Format(time.RFC3339),
	}
	if includeCode {
		resp.AccessCode = expert.AccessCode
	}
	return resp
}
