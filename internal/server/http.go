package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alfredjeanlab/gauge/internal/report"
	"github.com/alfredjeanlab/gauge/internal/store"
)

// maxSnapshotBytes bounds a snapshot submission.
const maxSnapshotBytes = 64 << 20

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *ReportServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/snapshot", s.handleIngestSnapshot)
	mux.HandleFunc("GET /v1/report", s.handleGetReport)
	mux.HandleFunc("GET /v1/report/{section}", s.handleGetSection)
	mux.HandleFunc("GET /v1/export/{table}", s.handleExportTable)
	mux.HandleFunc("GET /v1/runs", s.handleListRuns)
	mux.HandleFunc("GET /v1/runs/{id}", s.handleGetRun)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, mux)
}

// handleIngestSnapshot handles POST /v1/snapshot. An optional now query
// parameter (RFC 3339) pins the clock for reproducible runs.
func (s *ReportServer) handleIngestSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	now := time.Now().UTC()
	if v := r.URL.Query().Get("now"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid now parameter: "+err.Error())
			return
		}
		now = parsed
	}

	summary, err := s.Ingest(r.Context(), data, "http", now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleGetReport handles GET /v1/report.
func (s *ReportServer) handleGetReport(w http.ResponseWriter, _ *http.Request) {
	rep := s.Report()
	if rep == nil {
		writeError(w, http.StatusNotFound, "no report computed yet")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// handleGetSection handles GET /v1/report/{section}.
func (s *ReportServer) handleGetSection(w http.ResponseWriter, r *http.Request) {
	rep := s.Report()
	if rep == nil {
		writeError(w, http.StatusNotFound, "no report computed yet")
		return
	}

	var body any
	switch r.PathValue("section") {
	case "compliance":
		body = rep.ComplianceResults
	case "stats":
		body = rep.Stats
	case "authors":
		body = rep.AuthorRollup
	case "dod":
		body = rep.DoDResults
	case "initiatives":
		body = rep.Initiatives
	case "teams":
		body = rep.Teams
	case "capacity":
		body = rep.TeamCapacity
	case "attributions":
		body = rep.InitiativeAttributions
	case "contention":
		body = rep.Contention
	case "dependencies":
		body = rep.Dependencies
	case "matrix":
		body = rep.DependencyMatrix
	case "roots":
		body = rep.BlockingRoots
	case "forecasts":
		body = rep.Forecasts
	case "shape-errors":
		body = rep.ShapeErrors
	default:
		writeError(w, http.StatusNotFound, "unknown section "+r.PathValue("section"))
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// handleExportTable handles GET /v1/export/{table}.csv.
func (s *ReportServer) handleExportTable(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("table"), ".csv")
	if !ok {
		writeError(w, http.StatusNotFound, "export tables are served as .csv")
		return
	}

	rep := s.Report()
	if rep == nil {
		writeError(w, http.StatusNotFound, "no report computed yet")
		return
	}

	table, err := report.Build(name, rep, s.rules)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
	if err := report.WriteCSV(w, table); err != nil {
		s.logger.Warn("failed to write csv", "table", name, "error", err)
	}
}

// handleListRuns handles GET /v1/runs with limit/offset query parameters.
func (s *ReportServer) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "run archive not configured")
		return
	}

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	runs, err := s.store.ListRuns(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// handleGetRun handles GET /v1/runs/{id}.
func (s *ReportServer) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "run archive not configured")
		return
	}

	run, err := s.store.GetRun(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleHealth handles GET /v1/health.
func (s *ReportServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// AuthMiddleware wraps an http.Handler and checks the Authorization header for
// a valid Bearer token. When token is empty, auth is disabled and all requests
// pass through. GET /v1/health is always exempt.
func AuthMiddleware(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Exempt health check.
		if r.Method == http.MethodGet && r.URL.Path == "/v1/health" {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		if !strings.HasPrefix(auth, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "invalid authorization scheme")
			return
		}

		provided := strings.TrimPrefix(auth, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
