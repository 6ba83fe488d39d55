package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/sales-atlas/pkg/handlers/report"
	atlasmiddleware "github.com/de-tools/sales-atlas/pkg/server/middleware"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	boards          *dashboard.Manager
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Boards *dashboard.Manager
	Brands config.BrandRegistry
	Logger zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter mounts the dashboard pages and the board API.
func ConfigureRouter(config Config) (*chi.Mux, error) {
	h, err := handlers.NewHandler(config.Dependencies.Boards, config.Dependencies.Brands)
	if err != nil {
		return nil, err
	}

	logger := config.Dependencies.Logger
	router := chi.NewRouter()

	router.Use(atlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/", h.Home)
	router.Get("/{brand}/{view}", h.Dashboard)

	router.Route("/api/boards/{board}", func(r chi.Router) {
		r.Post("/toggle", h.Toggle)
		r.Get("/search", h.Search)
		r.Post("/slicers/{dimension}", h.Slicer)
		r.Post("/series/{series}", h.SelectSeries)
		r.Get("/chart.svg", h.Chart)
	})

	return router, nil
}

func NewWebAPI(logger zerolog.Logger, config Config) (*WebAPI, error) {
	config.Dependencies.Logger = logger
	router, err := ConfigureRouter(config)
	if err != nil {
		return nil, err
	}

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		boards:          config.Dependencies.Boards,
		shutdownTimeout: timeout,
	}, nil
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}
		if w.boards != nil {
			w.boards.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
