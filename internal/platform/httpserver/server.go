package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	expertservice "themis/contexts/identity-access/expert-service"
	expertentities "themis/contexts/identity-access/expert-service/domain/entities"
	experterrors "themis/contexts/identity-access/expert-service/domain/errors"
	experthttp "themis/contexts/identity-access/expert-service/transport/http"
	ratingengine "themis/contexts/judging/rating-engine"
	submissionservice "themis/contexts/judging/submission-service"
	"themis/internal/platform/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "themis/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	experts     expertservice.Module
	submissions submissionservice.Module
	ratings     ratingengine.Module
}

func New(
	experts expertservice.Module,
	submissions submissionservice.Module,
	ratings ratingengine.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		experts:     experts,
		submissions: submissions,
		ratings:     ratings,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", metrics.Handler())
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.mux.HandleFunc("POST /api/auth/login", s.instrument("/api/auth/login", s.handleLogin))
	s.mux.HandleFunc("POST /api/experts", s.instrument("/api/experts", s.handleCreateExpert))
	s.mux.HandleFunc("GET /api/experts", s.instrument("/api/experts", s.handleListExperts))

	s.mux.HandleFunc("POST /api/submissions", s.instrument("/api/submissions", s.handleCreateSubmission))
	s.mux.HandleFunc("GET /api/submissions", s.instrument("/api/submissions", s.handleListSubmissions))
	s.mux.HandleFunc("GET /api/submissions/{submission_id}", s.instrument("/api/submissions/{submission_id}", s.handleGetSubmission))

	s.mux.HandleFunc("POST /api/ratings", s.instrument("/api/ratings", s.handleSubmitRating))
	s.mux.HandleFunc("GET /api/ratings", s.instrument("/api/ratings", s.handleListRatings))
	s.mux.HandleFunc("GET /api/leaderboard", s.instrument("/api/leaderboard", s.handleLeaderboard))
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// instrument records request count and latency per route.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)
		metrics.RecordHTTPRequest(route, r.Method, strconv.Itoa(recorder.status))
		metrics.RecordHTTPRequestDuration(route, r.Method, time.Since(started).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// authorize resolves the bearer token to a stored expert and checks the
// required role against the server-side record. The token subject is
// the only claim trusted from the client.
func (s *Server) authorize(r *http.Request, required expertentities.Role) (expertentities.Expert, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	token := ""
	if rest, ok := strings.CutPrefix(header, "Bearer "); ok {
		token = strings.TrimSpace(rest)
	}
	return s.experts.Handler.AuthorizeHandler(r.Context(), token, required)
}

func writeExpertDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, experterrors.ErrNameRequired):
		writeExpertError(w, http.StatusBadRequest, "name_required", err.Error())
	case errors.Is(err, experterrors.ErrInvalidCredentials):
		writeExpertError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, experterrors.ErrTokenInvalid):
		writeExpertError(w, http.StatusUnauthorized, "token_invalid", err.Error())
	case errors.Is(err, experterrors.ErrForbidden):
		writeExpertError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, experterrors.ErrExpertNotFound):
		writeExpertError(w, http.StatusNotFound, "expert_not_found", err.Error())
	case errors.Is(err, experterrors.ErrConflict):
		writeExpertError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeExpertError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeExpertError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, experthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
