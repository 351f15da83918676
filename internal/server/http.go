package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
	"github.com/joseph-ayodele/foreclosure-parser/internal/nyc"
	"github.com/joseph-ayodele/foreclosure-parser/internal/repository"
)

// ParcelFinder resolves a street address to its parcel summary.
type ParcelFinder interface {
	Parcel(ctx context.Context, address string) (*nyc.Parcel, error)
}

// HTTPServer wraps the HTTP server instance and its handlers.
type HTTPServer struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewHTTPServer builds and wires all routes. parcels may be nil, which disables /parcels.
func NewHTTPServer(addr string, caseRepo repository.CaseRepository, parcels ParcelFinder, logger *slog.Logger) *HTTPServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPServer{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(caseRepo, parcels, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start runs the HTTP server until Shutdown.
func (s *HTTPServer) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

type handlers struct {
	caseRepo repository.CaseRepository
	parcels  ParcelFinder
	logger   *slog.Logger
}

// NewRouter returns the chi router serving the case API.
func NewRouter(caseRepo repository.CaseRepository, parcels ParcelFinder, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers{caseRepo: caseRepo, parcels: parcels, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", h.health)
	r.Route("/cases", func(cr chi.Router) {
		cr.Get("/", h.listCases)
		cr.Get("/{number}/{year}", h.getCase)
	})
	r.Get("/parcels", h.parcel)
	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(common.WithRequestID(r.Context(), reqID)))
			logger.Info("http.request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	n, err := h.caseRepo.CountCases(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "cases": n})
}

func (h *handlers) listCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.caseRepo.ListCases(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items := make([]map[string]any, 0, len(cases))
	for _, c := range cases {
		items = append(items, caseFields(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"cases": items, "count": len(items)})
}

func (h *handlers) getCase(w http.ResponseWriter, r *http.Request) {
	index := chi.URLParam(r, "number") + "/" + chi.URLParam(r, "year")
	c, err := h.caseRepo.GetCase(r.Context(), index)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, caseFields(*c))
}

func (h *handlers) parcel(w http.ResponseWriter, r *http.Request) {
	if h.parcels == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "parcel lookup not configured"})
		return
	}
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		h.writeError(w, r, common.NewAppError("INVALID_ADDRESS", "address is required", common.ErrInvalidInput))
		return
	}
	p, err := h.parcels.Parcel(r.Context(), address)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	}
	h.logger.Warn("http.error",
		"request_id", common.RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
