// Package server exposes the company research HTTP API.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/company-research/internal/model"
	"github.com/sells-group/company-research/internal/research"
)

// Server routes research requests to the Researcher.
type Server struct {
	researcher *research.Researcher
}

// New creates a Server.
func New(r *research.Researcher) *Server {
	return &Server{researcher: r}
}

// Router builds the HTTP handler: CORS open to any origin, request-id and
// request-logging middleware, health probe, and the research endpoint on
// both GET and POST.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/api/research-company", s.handleResearchGet)
	r.Post("/api/research-company", s.handleResearchPost)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleResearchGet serves single lookups via ?company_name=. Comma-separated
// names switch to batch mode.
func (s *Server) handleResearchGet(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("company_name")
	names := splitNames(raw)
	if len(names) == 0 {
		writeError(w, http.StatusBadRequest, "company_name is required as a query parameter")
		return
	}

	if len(names) > 1 {
		writeJSON(w, http.StatusOK, s.researcher.ResearchAll(r.Context(), names))
		return
	}

	s.respondSingle(w, r, names[0], nil)
}

// researchRequest is the POST body: a single company_name or a batch of
// company_names, plus optional caller overrides applied after the merge.
type researchRequest struct {
	CompanyName  string   `json:"company_name"`
	CompanyNames []string `json:"company_names"`

	Description  *string `json:"description,omitempty"`
	Address      *string `json:"address,omitempty"`
	State        *string `json:"state,omitempty"`
	PostalCode   *string `json:"postal_code,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	Employees    *string `json:"employees,omitempty"`
	Website      *string `json:"website,omitempty"`
	IndustryType *string `json:"industry_type,omitempty"`
}

func (s *Server) handleResearchPost(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.CompanyNames) > 0 {
		names := make([]string, 0, len(req.CompanyNames))
		for _, n := range req.CompanyNames {
			if trimmed := strings.TrimSpace(n); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		if len(names) == 0 {
			writeError(w, http.StatusBadRequest, "company_names must contain at least one non-empty name")
			return
		}
		writeJSON(w, http.StatusOK, s.researcher.ResearchAll(r.Context(), names))
		return
	}

	name := strings.TrimSpace(req.CompanyName)
	if name == "" {
		writeError(w, http.StatusBadRequest, "company_name is required in the JSON body")
		return
	}

	s.respondSingle(w, r, name, &req)
}

// respondSingle researches one company and writes the merged record, mapping
// an all-sources failure to 502 with a failed-status body.
func (s *Server) respondSingle(w http.ResponseWriter, r *http.Request, name string, req *researchRequest) {
	rec, err := s.researcher.Research(r.Context(), name)
	if err != nil {
		if eris.Is(err, research.ErrAllSourcesFailed) {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"error":        "all research sources failed",
				"company_name": name,
				"status":       model.StatusFailed,
			})
			return
		}
		zap.L().Error("research request failed",
			zap.String("company", name),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if req != nil {
		applyOverrides(&rec, req)
	}
	writeJSON(w, http.StatusOK, rec)
}

// applyOverrides replaces merged values with non-empty caller-supplied
// fields from the POST body.
func applyOverrides(rec *model.Record, req *researchRequest) {
	override := func(dst **string, v *string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			*dst = v
		}
	}
	override(&rec.Description, req.Description)
	override(&rec.Address, req.Address)
	override(&rec.State, req.State)
	override(&rec.PostalCode, req.PostalCode)
	override(&rec.Phone, req.Phone)
	override(&rec.Email, req.Email)
	override(&rec.Employees, req.Employees)
	override(&rec.Website, req.Website)
	override(&rec.IndustryType, req.IndustryType)
}

// splitNames parses a possibly comma-separated company_name parameter.
func splitNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
