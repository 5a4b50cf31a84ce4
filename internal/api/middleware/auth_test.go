package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func runAuth(t *testing.T, userID, role string) (*httptest.ResponseRecorder, int64, bool, bool) {
	t.Helper()

	var (
		gotUserID  int64
		gotOK      bool
		gotIsAdmin bool
	)

	handler := Auth(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserID(r.Context())
		gotIsAdmin = IsAdmin(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}
	if role != "" {
		req.Header.Set(HeaderUserRole, role)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec, gotUserID, gotOK, gotIsAdmin
}

func TestAuth_ValidUser(t *testing.T) {
	rec, userID, ok, isAdmin := runAuth(t, "42", domain.RoleUser)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)
	assert.False(t, isAdmin)
}

func TestAuth_AdminRole(t *testing.T) {
	rec, _, _, isAdmin := runAuth(t, "1", domain.RoleAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, isAdmin)
}

func TestAuth_UnknownRoleCoercedToUser(t *testing.T) {
	rec, _, ok, isAdmin := runAuth(t, "42", "superuser")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ok)
	assert.False(t, isAdmin)

	role, hasRole := GetRole(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, hasRole)
	assert.Empty(t, role)
}

func TestAuth_MissingHeaderRejected(t *testing.T) {
	rec, _, ok, _ := runAuth(t, "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, ok)
}

func TestAuth_InvalidHeaderRejected(t *testing.T) {
	tests := []string{"abc", "-1", "0", "1.5"}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			rec, _, ok, _ := runAuth(t, raw, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, ok)
		})
	}
}
