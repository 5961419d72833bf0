package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	expertentities "themis/contexts/identity-access/expert-service/domain/entities"
	ratingerrors "themis/contexts/judging/rating-engine/domain/errors"
	ratinghttp "themis/contexts/judging/rating-engine/transport/http"
	"themis/internal/platform/metrics"
)

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	expert, err := s.authorize(r, expertentities.RoleExpert)
	if err != nil {
		writeExpertDomainError(w, err)
		return
	}

	var req ratinghttp.SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRatingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.ratings.Handler.SubmitRatingHandler(r.Context(), expert.ExpertID, req)
	if err != nil {
		writeRatingDomainError(w, err)
		return
	}
	metrics.RecordRatingRecorded()
	// A revision overwrites in place; only a first rating creates a row.
	status := http.StatusCreated
	if resp.WasUpdate {
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleListRatings(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, expertentities.RoleExpert); err != nil {
		writeExpertDomainError(w, err)
		return
	}

	submissionID := strings.TrimSpace(r.URL.Query().Get("submission_id"))
	if submissionID == "" {
		writeRatingError(w, http.StatusBadRequest, "missing_submission_id", "submission_id query parameter is required")
		return
	}
	resp, err := s.ratings.Handler.RatingsForHandler(r.Context(), submissionID)
	if err != nil {
		writeRatingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ratings.Handler.LeaderboardHandler(r.Context())
	if err != nil {
		writeRatingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRatingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ratingerrors.ErrInvalidRatingInput):
		writeRatingError(w, http.StatusBadRequest, "invalid_rating_input", err.Error())
	case errors.Is(err, ratingerrors.ErrScoreCountMismatch):
		writeRatingError(w, http.StatusBadRequest, "score_count_mismatch", err.Error())
	case errors.Is(err, ratingerrors.ErrScoreOutOfRange):
		writeRatingError(w, http.StatusBadRequest, "score_out_of_range", err.Error())
	case errors.Is(err, ratingerrors.ErrSubmissionNotFound):
		writeRatingError(w, http.StatusNotFound, "submission_not_found", err.Error())
	case errors.Is(err, ratingerrors.ErrExpertNotFound):
		writeRatingError(w, http.StatusNotFound, "expert_not_found", err.Error())
	case errors.Is(err, ratingerrors.ErrRatingNotFound):
		writeRatingError(w, http.StatusNotFound, "rating_not_found", err.Error())
	case errors.Is(err, ratingerrors.ErrConflict):
		writeRatingError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeRatingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRatingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ratinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
