// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/meeting-service/internal/infrastructure/auth"
	"github.com/mentorhub/meeting-service/pkg/constants"
)

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates a request ID", func(t *testing.T) {
		var captured string
		handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = r.Context().Value(constants.RequestIDContextID).(string)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meetings", nil))

		assert.NotEmpty(t, captured)
		assert.Equal(t, captured, rec.Header().Get(constants.RequestIDHeader))
	})

	t.Run("honors inbound request ID", func(t *testing.T) {
		var captured string
		handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = r.Context().Value(constants.RequestIDContextID).(string)
		}))

		req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
		req.Header.Set(constants.RequestIDHeader, "upstream-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "upstream-id", captured)
		assert.Equal(t, "upstream-id", rec.Header().Get(constants.RequestIDHeader))
	})
}

func TestRequestLoggerMiddleware(t *testing.T) {
	handler := RequestLoggerMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meetings", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("mock principal bypass injects the principal", func(t *testing.T) {
		mockAuth, err := auth.NewJWTAuth(auth.JWTAuthConfig{MockLocalPrincipal: "local-user"})
		require.NoError(t, err)

		var principal string
		handler := AuthMiddleware(mockAuth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ = r.Context().Value(constants.PrincipalContextID).(string)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meetings/accept", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "local-user", principal)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		jwtAuth, err := auth.NewJWTAuth(auth.JWTAuthConfig{
			JWKSURL:  "http://localhost:9999/.well-known/jwks",
			Audience: "test-audience",
		})
		require.NoError(t, err)

		handler := AuthMiddleware(jwtAuth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meetings/accept", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
