// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

// Package auth provides JWT validation for requests arriving through the
// API gateway.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

const (
	// defaultJWKSURL is the default JWKS endpoint of the local gateway.
	defaultJWKSURL = "http://localhost:4457/.well-known/jwks"
	// defaultAudience is the default JWT audience for this service.
	defaultAudience = "mentorhub-meeting-service"
	// jwksCacheTTL is how long fetched JWKS keys are cached.
	jwksCacheTTL = 5 * time.Minute
)

// GatewayClaims are the custom JWT claims issued by the API gateway.
type GatewayClaims struct {
	Principal string `json:"principal"`
	Email     string `json:"email,omitempty"`
}

// Validate checks that the claims carry a usable principal.
func (c *GatewayClaims) Validate(_ context.Context) error {
	if c.Principal == "" {
		return errors.New("principal must be provided")
	}
	return nil
}

// JWTAuthConfig configures the JWT validator.
type JWTAuthConfig struct {
	// JWKSURL is the JWKS endpoint used to fetch signing keys.
	JWKSURL string
	// Audience is the expected JWT audience.
	Audience string
	// MockLocalPrincipal, when set, bypasses token validation entirely and
	// treats every request as coming from this principal. Local
	// development only.
	MockLocalPrincipal string
}

// JWTAuth validates bearer tokens and extracts the caller's principal.
type JWTAuth struct {
	config    JWTAuthConfig
	validator *validator.Validator
}

// NewJWTAuth creates a JWT validator backed by a caching JWKS provider.
func NewJWTAuth(config JWTAuthConfig) (*JWTAuth, error) {
	if config.JWKSURL == "" {
		config.JWKSURL = defaultJWKSURL
	}
	if config.Audience == "" {
		config.Audience = defaultAudience
	}

	issuerURL, err := url.Parse(config.JWKSURL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWKS URL %q: %w", config.JWKSURL, err)
	}

	provider := jwks.NewCachingProvider(issuerURL, jwksCacheTTL)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{config.Audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &GatewayClaims{}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up JWT validator: %w", err)
	}

	return &JWTAuth{
		config:    config,
		validator: jwtValidator,
	}, nil
}

// ParsePrincipal validates the bearer token and returns the principal it
// carries. In mock mode the configured local principal is returned without
// touching the token.
func (a *JWTAuth) ParsePrincipal(ctx context.Context, bearerToken string, logger *slog.Logger) (string, error) {
	if a.config.MockLocalPrincipal != "" {
		logger.WarnContext(ctx, "JWT authentication is disabled, using mock local principal",
			"principal", a.config.MockLocalPrincipal,
		)
		return a.config.MockLocalPrincipal, nil
	}

	if a.validator == nil {
		return "", errors.New("JWT validator is not set up")
	}

	parsedJWT, err := a.validator.ValidateToken(ctx, bearerToken)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedJWT.(*validator.ValidatedClaims)
	if !ok {
		return "", errors.New("unexpected claims type")
	}
	customClaims, ok := claims.CustomClaims.(*GatewayClaims)
	if !ok {
		return "", errors.New("unexpected custom claims type")
	}

	return customClaims.Principal, nil
}
