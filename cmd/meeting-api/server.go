// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mentorhub/meeting-service/internal/handlers"
	"github.com/mentorhub/meeting-service/internal/infrastructure/auth"
	"github.com/mentorhub/meeting-service/internal/logging"
	"github.com/mentorhub/meeting-service/internal/middleware"
	"github.com/mentorhub/meeting-service/internal/service"
)

// setupHTTPServer configures and starts the HTTP server
func setupHTTPServer(
	flags flags,
	meetingHandlers *handlers.MeetingHandlers,
	jwtAuth *auth.JWTAuth,
	services []service.Service,
	gracefulCloseWG *sync.WaitGroup,
) *http.Server {
	mux := chi.NewRouter()

	// Health endpoints are unauthenticated and skipped by the request logger.
	mux.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		for _, svc := range services {
			if !svc.ServiceReady() {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(jwtAuth))
		meetingHandlers.RegisterRoutes(r)
	})

	var handler http.Handler = mux

	// Note: Order matters - RequestIDMiddleware should come first in the chain,
	// so it is the last middleware wrapped around the handler.
	handler = middleware.RequestLoggerMiddleware()(handler)
	handler = middleware.RequestIDMiddleware()(handler)

	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		slog.With("addr", addr).Debug("starting http server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
		// Because ErrServerClosed is *immediately* returned when Shutdown is
		// called, not when Shutdown completes, this must not yet decrement
		// the wait group.
	}()

	return httpServer
}
