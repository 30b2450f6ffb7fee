// Package server exposes the agents over HTTP: the teacher entry
// point, direct quiz and review task endpoints, liveness and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/senseihq/sensei/pkg/agent"
	"github.com/senseihq/sensei/pkg/config"
	"github.com/senseihq/sensei/pkg/quiz"
	"github.com/senseihq/sensei/pkg/teacher"
)

const shutdownTimeout = 10 * time.Second

// Server hosts the agent endpoints.
type Server struct {
	cfg        config.ServerConfig
	registry   *agent.Registry
	dispatcher *agent.Dispatcher
	teacher    *teacher.Agent
	quiz       *quiz.Agent
	router     chi.Router
}

func New(cfg config.ServerConfig, registry *agent.Registry, dispatcher *agent.Dispatcher,
	teacherAgent *teacher.Agent, quizAgent *quiz.Agent) *Server {

	s := &Server{
		cfg:        cfg,
		registry:   registry,
		dispatcher: dispatcher,
		teacher:    teacherAgent,
		quiz:       quizAgent,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/", s.handleIndex)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Post("/teacher/ask", s.handleAsk)
	r.Post("/quiz/generate-quiz", s.handleGenerateQuiz)
	r.Post("/quiz/evaluate", s.handleEvaluate)
	r.Post("/review/review", s.handleReview)

	r.Get("/{agent}/", s.handleLiveness)

	return r
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
