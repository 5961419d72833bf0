package httpserver

import (
	"encoding/json"
	"net/http"

	expertentities "themis/contexts/identity-access/expert-service/domain/entities"
	experthttp "themis/contexts/identity-access/expert-service/transport/http"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req experthttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeExpertError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.experts.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeExpertDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateExpert(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, expertentities.RoleAdmin); err != nil {
		writeExpertDomainError(w, err)
		return
	}

	var req experthttp.CreateExpertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeExpertError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.experts.Handler.CreateExpertHandler(r.Context(), req)
	if err != nil {
		writeExpertDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListExperts(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, expertentities.RoleAdmin); err != nil {
		writeExpertDomainError(w, err)
		return
	}

	resp, err := s.experts.Handler.ListExpertsHandler(r.Context())
	if err != nil {
		writeExpertDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
