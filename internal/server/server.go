package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/raysh454/kensa/internal/analyzer"
	"github.com/raysh454/kensa/internal/app"
	"github.com/raysh454/kensa/internal/fetcher"
	"github.com/raysh454/kensa/internal/interfaces"
	"github.com/raysh454/kensa/internal/logging"
	"github.com/raysh454/kensa/internal/model"
	"github.com/raysh454/kensa/internal/scan"
	"github.com/raysh454/kensa/internal/webclient"
)

// Server is the HTTP API surface for the suppression screen.
type Server struct {
	cfg          Config
	orchestrator *scan.Orchestrator
	router       chi.Router
	logger       interfaces.Logger
}

// NewServer creates a new Server with its own Orchestrator.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	wc, err := webclient.NewWebClient(cfg.AppConfig.WebClientCfg, logger)
	if err != nil {
		return nil, err
	}

	f := fetcher.New(cfg.AppConfig.FetcherCfg, wc, logger)
	an := analyzer.New(logger)
	orch := scan.NewOrchestrator(cfg.AppConfig.ScanCfg, f, an, logger)

	r := chi.NewRouter()
	s := &Server{
		cfg:          cfg,
		orchestrator: orch,
		router:       r,
		logger:       logger,
	}

	s.routes()
	return s, nil
}

// Orchestrator returns the underlying orchestrator for advanced use (tests, etc.).
func (s *Server) Orchestrator() *scan.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/scan", s.optionsHandler("GET, POST"))
	r.Options("/health", s.optionsHandler("GET"))

	r.Get("/scan", s.handleScan)
	r.Post("/scan", s.handleScan)
	r.Get("/health", s.handleHealth)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []interfaces.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, interfaces.Field{Key: "query", Value: q})
	}

	if r.Body != nil && r.Method == http.MethodPost {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, interfaces.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:        s.cfg.ListenAddr,
		Handler:     s,
		ReadTimeout: 15 * time.Second,
		// A scan may legitimately run up to its 30 second overall deadline.
		WriteTimeout: 60 * time.Second,
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// --- HTTP handlers ---

// handleScan accepts the target URL from the url query parameter or a JSON
// body; the query parameter wins when both are present. A missing or
// unparseable URL yields an INVALID_URL error document.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest

	if r.Method == http.MethodPost && r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			s.logger.Warn("decoding scan body", interfaces.Field{Key: "error", Value: err.Error()})
			doc := model.NewErrorDocument(model.ErrorInvalidURL, "request body is not valid JSON")
			writeJSON(w, http.StatusBadRequest, doc)
			return
		}
	}

	if q := r.URL.Query().Get("url"); q != "" {
		req.URL = q
	}

	if req.URL == "" {
		doc := model.NewErrorDocument(model.ErrorInvalidURL, "missing url: pass ?url= or a JSON body with a url field")
		writeJSON(w, http.StatusBadRequest, doc)
		return
	}

	outcome := s.orchestrator.Scan(r.Context(), req.URL, req.Baseline)
	writeJSON(w, outcome.HTTPStatus(), outcome.Document())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
