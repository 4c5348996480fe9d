// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mentorhub/meeting-service/internal/infrastructure/auth"
	"github.com/mentorhub/meeting-service/internal/logging"
	"github.com/mentorhub/meeting-service/pkg/constants"
)

// AuthMiddleware validates the bearer token on every request and injects
// the caller's principal into the context. The principal travels with the
// request from here on; nothing downstream hardcodes an identity.
func AuthMiddleware(jwtAuth *auth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				// also accept lowercase scheme from older clients
				token = strings.TrimPrefix(header, "bearer ")
			}

			principal, err := jwtAuth.ParsePrincipal(ctx, token, slog.Default())
			if err != nil {
				slog.WarnContext(ctx, "request rejected: invalid bearer token", logging.ErrKey, err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid or missing bearer token"}`))
				return
			}

			ctx = context.WithValue(ctx, constants.PrincipalContextID, principal)
			ctx = context.WithValue(ctx, constants.AuthorizationContextID, header)
			ctx = logging.AppendCtx(ctx, slog.String("principal", principal))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
