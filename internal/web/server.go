// Package web serves the dashboard over HTTP as an HTML page and a JSON API.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
)

//go:embed templates/index.html
var indexTemplate string

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	ReferenceDate time.Time
	Logger        *slog.Logger
	// Registry collects the request metrics. A fresh registry is created when nil.
	Registry *prometheus.Registry
	LogoPath string
}

// Server serves a read-only invoice dataset. Handlers share the dataset
// without locking since nothing mutates it after construction.
type Server struct {
	referenceDate time.Time
	logger        *slog.Logger
	registry      *prometheus.Registry
	metrics       *Metrics
	page          *template.Template
	logoPath      string
	invoices      []model.Invoice
}

// NewServer prepares a server for invoices.
func NewServer(invoices []model.Invoice, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.ReferenceDate.IsZero() {
		opts.ReferenceDate = time.Now()
	}

	page, err := template.New("index").Funcs(templateFuncs).Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Server{
		invoices:      invoices,
		referenceDate: model.DateOf(opts.ReferenceDate),
		logoPath:      opts.LogoPath,
		logger:        opts.Logger,
		registry:      opts.Registry,
		metrics:       NewMetrics(opts.Registry),
		page:          page,
	}, nil
}

// Routes returns the HTTP handler for the dashboard.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Get("/", s.handleIndex)
	r.Get("/static/logo", s.handleLogo)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/filters", s.handleFilters)
		r.Get("/insights", s.handleInsights)
		r.Get("/risk", s.handleRisk)
		r.Get("/topay", s.handleToPay)
		r.Get("/suppliers", s.handleSuppliers)
		r.Get("/suppliers/{name}", s.handleSupplier)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no such route")
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard server listening", "addr", listener.Addr().String())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	s.logger.Info("dashboard server stopped")
	return nil
}

// selection parses the filter from the request and prunes choices that the
// cascade no longer offers.
func (s *Server) selection(r *http.Request) (insights.Filter, insights.Options, error) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		return insights.Filter{}, insights.Options{}, err
	}
	opts := insights.CascadeOptions(s.invoices, f)
	return f.Prune(opts), opts, nil
}

var templateFuncs = template.FuncMap{
	"money":      insights.FormatMoney,
	"moneyCents": insights.FormatMoneyCents,
	"percent":    insights.FormatPercent,
	"count":      insights.FormatCount,
	"date":       insights.FormatDate,
	"average":    insights.FormatAverage,
	"selected":   slices.Contains[[]string],
	"heat": func(h insights.Heatmap, category, supplierType string) string {
		if cell, ok := h.Cell(category, supplierType); ok {
			return fmt.Sprintf("%.2f", cell.Mean)
		}
		return ""
	},
	"isoDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(queryDate)
	},
}
