package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	expertentities "themis/contexts/identity-access/expert-service/domain/entities"
	submissionerrors "themis/contexts/judging/submission-service/domain/errors"
	submissionhttp "themis/contexts/judging/submission-service/transport/http"
	"themis/internal/platform/metrics"
)

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, expertentities.RoleAdmin); err != nil {
		writeExpertDomainError(w, err)
		return
	}

	var req submissionhttp.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.submissions.Handler.CreateSubmissionHandler(r.Context(), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	metrics.RecordSubmissionCreated()
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.ListSubmissionsHandler(r.Context())
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID := r.PathValue("submission_id")
	resp, err := s.submissions.Handler.GetSubmissionHandler(r.Context(), submissionID)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSubmissionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, submissionerrors.ErrMissingFields):
		writeSubmissionError(w, http.StatusBadRequest, "missing_fields", err.Error())
	case errors.Is(err, submissionerrors.ErrInvalidKind):
		writeSubmissionError(w, http.StatusBadRequest, "invalid_type", err.Error())
	case errors.Is(err, submissionerrors.ErrSubmissionNotFound):
		writeSubmissionError(w, http.StatusNotFound, "submission_not_found", err.Error())
	case errors.Is(err, submissionerrors.ErrConflict):
		writeSubmissionError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeSubmissionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSubmissionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, submissionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
