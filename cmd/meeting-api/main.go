// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

// Package main is the meeting service API that provides a RESTful API for
// managing mentor meetings and their student invitations.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mentorhub/meeting-service/internal/handlers"
	"github.com/mentorhub/meeting-service/internal/infrastructure/messaging"
	"github.com/mentorhub/meeting-service/internal/logging"
	"github.com/mentorhub/meeting-service/internal/service"
)

func main() {
	// Load .env for local development; missing file is fine.
	_ = godotenv.Load()

	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	jwtAuth, err := setupJWTAuth(env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up JWT authentication")
		os.Exit(1)
	}

	// Email sending is independent of NATS; it degrades to a no-op sender
	// when SMTP is not configured.
	emailService, err := setupEmailService(env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up email service")
		return
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	natsConn, err := setupNATS(env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	meetingRepository, err := setupMeetingRepository(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up meeting repository")
		return
	}

	serviceConfig := service.ServiceConfig{
		SkipEtagValidation: env.SkipEtagValidation,
		EmailWorkerCount:   env.EmailWorkerCount,
	}
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	meetingService := service.NewMeetingService(
		meetingRepository,
		messageBuilder,
		emailService,
		serviceConfig,
	)
	invitationService := service.NewInvitationService(
		meetingRepository,
		messageBuilder,
	)

	meetingHandlers := handlers.NewMeetingHandlers(meetingService, invitationService)

	httpServer := setupHTTPServer(
		flags,
		meetingHandlers,
		jwtAuth,
		[]service.Service{meetingService, invitationService},
		&gracefulCloseWG,
	)

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	}
	gracefulCloseWG.Done()

	if err := natsConn.Drain(); err != nil {
		slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		gracefulCloseWG.Done()
	}

	cancel()
	gracefulCloseWG.Wait()
	slog.Info("shutdown complete")
}
