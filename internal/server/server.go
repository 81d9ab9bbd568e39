// Package server exposes sheet generation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/kpauljoseph/printcards/internal/config"
	"github.com/kpauljoseph/printcards/internal/generator"
	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/internal/loader"
	"github.com/kpauljoseph/printcards/pkg/logger"
	"github.com/kpauljoseph/printcards/pkg/models"
)

const (
	maxUploadSize  = 32 << 20
	requestTimeout = 2 * time.Minute
)

type Runner interface {
	Generate(ctx context.Context, cfg *config.Config, records []models.Record) (*generator.Report, error)
}

// RunnerFactory builds the generator for one request's settings.
type RunnerFactory func(cfg *config.Config, log *logger.Logger) Runner

func defaultRunner(cfg *config.Config, log *logger.Logger) Runner {
	return generator.FromConfig(cfg, log)
}

type Server struct {
	base      *config.Config
	router    chi.Router
	newRunner RunnerFactory
	workRoot  string
	logger    *logger.Logger
}

type Option func(*Server)

func WithRunnerFactory(f RunnerFactory) Option {
	return func(s *Server) {
		s.newRunner = f
	}
}

// WithWorkRoot sets where per-request work directories are created.
func WithWorkRoot(dir string) Option {
	return func(s *Server) {
		s.workRoot = dir
	}
}

// New returns a server whose requests start from a copy of base.
func New(base *config.Config, log *logger.Logger, options ...Option) *Server {
	s := &Server{
		base:      base,
		newRunner: defaultRunner,
		workRoot:  os.TempDir(),
		logger:    log,
	}
	for _, opt := range options {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/v1", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Post("/sheets", s.handleSheets)
	})

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type layoutResponse struct {
	Columns      int      `json:"columns"`
	Rows         int      `json:"rows"`
	CardsPerPage int      `json:"cards_per_page"`
	Pages        int      `json:"pages,omitempty"`
	Orientation  string   `json:"orientation"`
	Unit         string   `json:"unit"`
	Page         sizeJSON `json:"page"`
	Card         sizeJSON `json:"card"`
}

type sizeJSON struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	cfg := s.requestConfig()
	if err := applyParams(cfg, r.URL.Query()); err != nil {
		s.writeError(w, r, err)
		return
	}

	records := -1
	if v := r.URL.Query().Get("records"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			var errs layout.ValidationErrors
			errs.Add("records", "must be a non-negative integer")
			s.writeError(w, r, errs)
			return
		}
		records = n
	}

	plan, err := generator.NewPlan(cfg, records)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Columns:      plan.Layout.Columns,
		Rows:         plan.Layout.Rows,
		CardsPerPage: plan.CardsPerPage,
		Pages:        plan.Pages,
		Orientation:  plan.Orientation,
		Unit:         plan.Unit,
		Page:         sizeJSON{Width: plan.Page.Width, Height: plan.Page.Height},
		Card:         sizeJSON{Width: plan.Card.Width, Height: plan.Card.Height},
	})
}

func (s *Server) handleSheets(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid upload: " + err.Error()})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file field"})
		return
	}
	defer file.Close()

	cfg := s.requestConfig()
	if err := applyParams(cfg, r.MultipartForm.Value); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	records, err := loader.New(s.logger, loader.WithDelimiter(cfg.DelimiterRune())).LoadReader(r.Context(), file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(records) == 0 {
		s.writeError(w, r, generator.ErrNoRecords)
		return
	}

	workDir := filepath.Join(s.workRoot, "printcards-"+uuid.New().String())
	if err := os.MkdirAll(workDir, 0755); err != nil {
		s.writeError(w, r, err)
		return
	}
	defer os.RemoveAll(workDir)

	cfg.Output = filepath.Join(workDir, "cards.pdf")
	cfg.Merge = config.Bool(true)
	cfg.KeepIntermediate = false

	report, err := s.newRunner(cfg, s.logger).Generate(r.Context(), cfg, records)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(report.Artifacts) == 0 {
		s.writeError(w, r, errors.New("generation produced no output"))
		return
	}

	out, err := os.Open(report.Artifacts[0])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer out.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cards.pdf"`)
	w.Header().Set("X-Cards", fmt.Sprint(report.Records))
	w.Header().Set("X-Pages", fmt.Sprint(report.Pages))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, out); err != nil {
		s.logger.Warn("Failed to send document: %v", err)
	}
}

// requestConfig copies the base configuration so requests never share state.
func (s *Server) requestConfig() *config.Config {
	cfg := *s.base
	if s.base.Merge != nil {
		cfg.Merge = config.Bool(*s.base.Merge)
	}
	return &cfg
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("[%s] %s %s %d %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
