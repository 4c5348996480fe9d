// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"github.com/mentorhub/meeting-service/internal/logging"
	"github.com/mentorhub/meeting-service/pkg/utils"
)

// flags are the command line flags for the meeting service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the meeting service.
type environment struct {
	Port               string
	NatsURL            string
	SkipEtagValidation bool
	EmailWorkerCount   int
	JWT                jwtConfig
	SMTP               smtpConfig
}

// jwtConfig holds the JWT validation configuration.
type jwtConfig struct {
	JWKSURL            string
	Audience           string
	MockLocalPrincipal string
}

// smtpConfig holds the outbound email configuration. An empty Host disables
// email sending entirely.
type smtpConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

// parseFlags parses command line flags for the meeting service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the meeting service
func parseEnv() environment {
	port := utils.CoalesceString(os.Getenv("PORT"), "8080")
	natsURL := utils.CoalesceString(os.Getenv("NATS_URL"), "nats://localhost:4222")

	emailWorkerCount := 4
	if raw := os.Getenv("EMAIL_WORKER_COUNT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			emailWorkerCount = parsed
		} else {
			slog.With("value", raw).Warn("invalid EMAIL_WORKER_COUNT, using default")
		}
	}

	smtpPort := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			smtpPort = parsed
		} else {
			slog.With("value", raw).Warn("invalid SMTP_PORT, using default")
		}
	}

	return environment{
		Port:               port,
		NatsURL:            natsURL,
		SkipEtagValidation: os.Getenv("SKIP_ETAG_VALIDATION") == "true",
		EmailWorkerCount:   emailWorkerCount,
		JWT: jwtConfig{
			JWKSURL:            os.Getenv("JWKS_URL"),
			Audience:           os.Getenv("JWT_AUDIENCE"),
			MockLocalPrincipal: os.Getenv("JWT_AUTH_DISABLED_MOCK_LOCAL_PRINCIPAL"),
		},
		SMTP: smtpConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			From:     os.Getenv("SMTP_FROM"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
	}
}
