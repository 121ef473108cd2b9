/*
 * Copyright (C) 2026 Mustafa Naseer (Mustafa Gaeed)
 *
 * This file is part of sentrywatch.
 *
 * sentrywatch is free software: you can redistribute it and/or modify
 * it under the terms of the MIT License as described in the
 * LICENSE file distributed with this project.
 *
 * sentrywatch is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * MIT License for more details.
 *
 * You should have received a copy of the MIT License
 * along with sentrywatch. If not, see the LICENSE file in the project root.
 */

package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/urustack/sentrywatch/internal/api/handlers"
	"github.com/urustack/sentrywatch/internal/api/middleware"
	"github.com/urustack/sentrywatch/internal/config"
	"github.com/urustack/sentrywatch/internal/metrics"
	"github.com/urustack/sentrywatch/internal/state"
	"github.com/urustack/sentrywatch/pkg/logger"
)

// Deps are the live components the server exposes.
type Deps struct {
	Store   *state.Store
	Refresh handlers.Refresher
	Demo    handlers.DemoRunner
	Health  handlers.HealthChecker
}

type Server struct {
	cfg        *config.Config
	deps       Deps
	httpServer *http.Server
	listener   net.Listener
}

func NewServer(cfg *config.Config, deps Deps) *Server {
	return &Server{
		cfg:  cfg,
		deps: deps,
	}
}

// Start binds the listen address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Server.Listen)
	if err != nil {
		return err
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log := logger.With("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("dashboard server listening")

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	return nil
}

// Addr is the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.cfg.Server.Listen
	}
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	dash := handlers.NewDashboardHandler(s.deps.Store, s.deps.Refresh, s.deps.Demo, s.deps.Health)
	stream := handlers.NewStreamHandler(s.deps.Store)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/viewmodel", dash.ViewModel).Methods(http.MethodGet)
	api.HandleFunc("/state", dash.State).Methods(http.MethodGet)
	api.HandleFunc("/refresh", dash.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/demo", dash.Demo).Methods(http.MethodPost)
	api.HandleFunc("/health", dash.Health).Methods(http.MethodGet)

	r.HandleFunc("/ws", stream.ServeWS).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", metrics.Healthz).Methods(http.MethodGet)

	return middleware.Recovery(middleware.Logging(r))
}
