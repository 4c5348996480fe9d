// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/mentorhub/meeting-service/internal/domain"
	"github.com/mentorhub/meeting-service/internal/infrastructure/auth"
	"github.com/mentorhub/meeting-service/internal/infrastructure/email"
	"github.com/mentorhub/meeting-service/internal/infrastructure/store"
	"github.com/mentorhub/meeting-service/internal/logging"
)

// setupJWTAuth configures JWT authentication for the service
func setupJWTAuth(env environment) (*auth.JWTAuth, error) {
	jwtAuthConfig := auth.JWTAuthConfig{
		JWKSURL:            env.JWT.JWKSURL,
		Audience:           env.JWT.Audience,
		MockLocalPrincipal: env.JWT.MockLocalPrincipal,
	}
	return auth.NewJWTAuth(jwtAuthConfig)
}

// setupEmailService builds the email sender. Without an SMTP host the
// no-op sender is used so meeting creation still works in environments
// without outbound email.
func setupEmailService(env environment) (domain.EmailService, error) {
	if env.SMTP.Host == "" {
		slog.Info("SMTP_HOST not set, email sending disabled")
		return email.NewNoOpService(), nil
	}

	return email.NewSMTPService(email.SMTPConfig{
		Host:     env.SMTP.Host,
		Port:     env.SMTP.Port,
		From:     env.SMTP.From,
		Username: env.SMTP.Username,
		Password: env.SMTP.Password,
	})
}

// setupNATS connects to the NATS server. The connection drains on SIGTERM
// via the closed handler, which holds the graceful-close wait group until
// the drain completes.
func setupNATS(env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	gracefulCloseWG.Add(1)

	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.DrainTimeout(25*time.Second),
		nats.ConnectHandler(func(_ *nats.Conn) {
			slog.With("nats_url", env.NatsURL).Info("NATS connection established")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.With(logging.ErrKey, err, "subject", s.Subject, "queue", s.Queue).Error("async NATS error")
			} else {
				slog.With(logging.ErrKey, err).Error("async NATS error outside subscription")
			}
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.With(logging.ErrKey, nc.LastError()).Info("NATS connection closed")
			gracefulCloseWG.Done()
			done <- os.Interrupt
		}),
	)
	if err != nil {
		gracefulCloseWG.Done()
		return nil, err
	}

	return natsConn, nil
}

// setupMeetingRepository binds the meeting repository to its JetStream KV
// bucket, creating the bucket when it does not exist yet.
func setupMeetingRepository(ctx context.Context, natsConn *nats.Conn) (*store.NatsMeetingRepository, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, err
	}

	kv, err := js.KeyValue(ctx, store.KVStoreNameMeetings)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket: store.KVStoreNameMeetings,
		})
	}
	if err != nil {
		return nil, err
	}

	return store.NewNatsMeetingRepository(kv), nil
}
