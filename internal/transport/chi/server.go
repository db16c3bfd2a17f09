// Package chi exposes the ingest/search pipeline over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arama-cloud/arama/internal/domain"
	"github.com/arama-cloud/arama/internal/domain/search/result"
	healthuc "github.com/arama-cloud/arama/internal/usecase/health"
)

// maxUploadBytes caps an ingest request body.
const maxUploadBytes = 10 << 20

// manualInputName tags ingests that arrive as a bare form field rather than
// a file upload.
const manualInputName = "ManualInput"

// Ingester accepts a document for indexing.
type Ingester interface {
	Ingest(ctx context.Context, filename, text string) (int64, error)
}

// Searcher answers a text query with reranked results.
type Searcher interface {
	Search(ctx context.Context, query string) ([]result.Result, error)
}

// HealthChecker reports aggregated component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server wires the pipeline services onto HTTP handlers.
type Server struct {
	ingest Ingester
	search Searcher
	health HealthChecker
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(ingest Ingester, search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{ingest: ingest, search: search, health: health, logger: logger}
}

// Routes mounts all handlers on a router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/ingest", s.handleIngest)
	r.Post("/search", s.handleSearch)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

type ingestResponse struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
}

// handleIngest accepts either a multipart file upload (field "file") or a
// plain form field "text". Upload bytes are decoded as UTF-8 with invalid
// sequences dropped, so binary garbage degrades to whatever readable text it
// contains instead of failing the request.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	filename, text, err := extractIngestInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.ingest.Ingest(r.Context(), filename, text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, "empty input")
			return
		}
		s.logger.Error("ingest failed",
			zap.String("filename", filename),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "ingest failed")
		return
	}

	writeJSON(w, http.StatusAccepted, ingestResponse{ID: id, Filename: filename})
}

// extractIngestInput pulls the document text and its filename out of the
// request, preferring a file upload over the text field.
func extractIngestInput(r *http.Request) (filename, text string, err error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", "", fmt.Errorf("parse multipart form: %w", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return "", "", fmt.Errorf("parse form: %w", err)
		}
	}

	file, header, fileErr := r.FormFile("file")
	if fileErr == nil {
		defer file.Close()
		raw, err := io.ReadAll(file)
		if err != nil {
			return "", "", fmt.Errorf("read upload: %w", err)
		}
		name := header.Filename
		if name == "" {
			name = manualInputName
		}
		return name, strings.ToValidUTF8(string(raw), ""), nil
	}

	return manualInputName, r.FormValue("text"), nil
}

type searchRow struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
	Score    string `json:"score"`
	ScoreNum int    `json:"score_num"`
	Label    string `json:"label"`
}

type searchResponse struct {
	Results []searchRow `json:"results"`
}

// handleSearch answers a query. An empty result list is a valid 200 answer;
// a backend fault maps to an explicit "search failed" body so clients can
// tell the two apart.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query, err := extractQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), query)
	if err != nil {
		s.logger.Error("search failed",
			zap.String("query", query),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, "search failed")
		return
	}

	rows := make([]searchRow, 0, len(results))
	for i := range results {
		res := &results[i]
		rows = append(rows, searchRow{
			Filename: res.Filename(),
			Text:     res.Text(),
			Score:    fmt.Sprintf("%d%%", res.FinalScore()),
			ScoreNum: res.FinalScore(),
			Label:    string(res.Label()),
		})
	}

	writeJSON(w, http.StatusOK, searchResponse{Results: rows})
}

// extractQuery reads the query from a JSON body or a form field.
func extractQuery(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("invalid request body: %w", err)
		}
		return body.Query, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", fmt.Errorf("parse form: %w", err)
	}
	return r.FormValue("query"), nil
}

// handleHealth reports component health, 503 unless fully healthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
