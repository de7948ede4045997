package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureHandler records the context values visible to the downstream handler.
func captureHandler(userID *string, roles *[]Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*userID = UserFromContext(r.Context())
		*roles = RolesFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthDisabled(t *testing.T) {
	var userID string
	var roles []Role
	handler := Auth(AuthConfig{Enabled: false})(captureHandler(&userID, &roles))

	t.Run("defaults to dev admin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "dev", userID)
		assert.Equal(t, []Role{RoleAdmin}, roles)
	})

	t.Run("honors X-User-ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-User-ID", "student-42")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "student-42", userID)
	})
}

func TestAuthEnabled(t *testing.T) {
	cfg := AuthConfig{Enabled: true, JWTSecret: "test-secret", TokenTTL: time.Hour}

	var userID string
	var roles []Role
	handler := Auth(cfg)(captureHandler(&userID, &roles))

	t.Run("valid token", func(t *testing.T) {
		token, err := IssueToken(cfg, "admin-1", []Role{RoleAdmin})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin-1", userID)
		assert.Equal(t, []Role{RoleAdmin}, roles)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := IssueToken(AuthConfig{JWTSecret: "other-secret"}, "admin-1", []Role{RoleAdmin})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := IssueToken(AuthConfig{JWTSecret: "test-secret", TokenTTL: -time.Hour}, "admin-1", []Role{RoleAdmin})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name     string
		roles    []Role
		expected int
	}{
		{name: "admin passes", roles: []Role{RoleAdmin}, expected: http.StatusOK},
		{name: "student rejected", roles: []Role{RoleStudent}, expected: http.StatusForbidden},
		{name: "no roles rejected", roles: nil, expected: http.StatusForbidden},
	}

	cfg := AuthConfig{Enabled: true, JWTSecret: "test-secret", TokenTTL: time.Hour}
	handler := Auth(cfg)(RequireRoles(RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := IssueToken(cfg, "user-1", tt.roles)
			require.NoError(t, err)

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestRequireRolesStudentEndpoint(t *testing.T) {
	// RoleAdmin satisfies any role requirement.
	cfg := AuthConfig{Enabled: true, JWTSecret: "test-secret", TokenTTL: time.Hour}
	handler := Auth(cfg)(RequireRoles(RoleStudent)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	token, err := IssueToken(cfg, "admin-1", []Role{RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
