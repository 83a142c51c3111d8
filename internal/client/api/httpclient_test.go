package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestLogin_ProfileBranch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/user/login", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.com", body["email"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{"id": "u1", "email": "a@b.com", "name": "A", "isVerified": true},
		})
	})

	res, err := c.Login(context.Background(), models.RoleUser, "a@b.com", "pw")
	require.NoError(t, err)
	assert.False(t, res.TwoFactorRequired)
	require.NotNil(t, res.Profile)
	assert.Equal(t, "u1", res.Profile.ID)
	assert.True(t, res.Profile.Verified)
}

func TestLogin_TwoFactorBranch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{"twoFactorRequired": true},
		})
	})

	res, err := c.Login(context.Background(), models.RoleUser, "a@b.com", "pw")
	require.NoError(t, err)
	assert.True(t, res.TwoFactorRequired)
	assert.Nil(t, res.Profile)
}

func TestDo_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    error
	}{
		{"unauthorized", http.StatusUnauthorized, "invalid credentials", ErrUnauthorized},
		{"forbidden", http.StatusForbidden, "admin only", ErrUnauthorized},
		{"not found", http.StatusNotFound, "not found", ErrNotFound},
		{"server error", http.StatusInternalServerError, "", ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, map[string]any{"message": tt.message})
			})

			_, err := c.Profile(context.Background(), models.RoleUser)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

func TestDo_MalformedResponses(t *testing.T) {
	t.Run("not json", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("<html>nope</html>"))
		})
		_, err := c.Profile(context.Background(), models.RoleUser)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("missing data", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"message": "ok"})
		})
		_, err := c.Profile(context.Background(), models.RoleUser)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("null data", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"data": nil})
		})
		_, err := c.Profile(context.Background(), models.RoleUser)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestDo_NetworkFailureIsUnavailable(t *testing.T) {
	c, err := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond)
	require.NoError(t, err)

	_, err = c.Profile(context.Background(), models.RoleUser)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCookiesPersistAcrossRequests(t *testing.T) {
	var sawCookie string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/login":
			http.SetCookie(w, &http.Cookie{Name: "user_token", Value: "tok123", Path: "/"})
			writeJSON(t, w, http.StatusOK, map[string]any{
				"data": map[string]any{"id": "u1", "email": "a@b.com"},
			})
		case "/user/profile":
			if ck, err := r.Cookie("user_token"); err == nil {
				sawCookie = ck.Value
			}
			writeJSON(t, w, http.StatusOK, map[string]any{
				"data": map[string]any{"id": "u1", "email": "a@b.com"},
			})
		}
	})

	_, err := c.Login(context.Background(), models.RoleUser, "a@b.com", "pw")
	require.NoError(t, err)
	_, err = c.Profile(context.Background(), models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "tok123", sawCookie)
}

func TestListCows_QueryEncoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "ganga", q.Get("name"))
		assert.Equal(t, "true", q.Get("sick"))
		assert.Equal(t, "true", q.Get("old"))
		assert.Equal(t, "name", q.Get("sort"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []map[string]any{{"_id": "c1", "name": "Ganga"}},
		})
	})

	cows, err := c.ListCows(context.Background(), &models.CowQuery{
		Name: "ganga", Sick: true, Aged: true, Sort: "name",
	})
	require.NoError(t, err)
	require.Len(t, cows, 1)
	assert.Equal(t, "c1", cows[0].ID)
}

func TestSetTwoFactor_PicksEndpoint(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "ok"})
	})

	require.NoError(t, c.SetTwoFactor(context.Background(), models.RoleUser, true))
	require.NoError(t, c.SetTwoFactor(context.Background(), models.RoleAdmin, false))
	assert.Equal(t, []string{"/user/enable-two-factor", "/admin/disable-two-factor"}, paths)
}

func TestSessionExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "user_token", Value: signed, Path: "/"})
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{"id": "u1"},
		})
	})

	_, ok := c.SessionExpiry(models.RoleUser)
	assert.False(t, ok, "no cookie before login")

	_, err = c.Login(context.Background(), models.RoleUser, "a@b.com", "pw")
	require.NoError(t, err)

	got, ok := c.SessionExpiry(models.RoleUser)
	require.True(t, ok)
	assert.WithinDuration(t, exp, got, time.Second)

	_, ok = c.SessionExpiry(models.RoleAdmin)
	assert.False(t, ok, "admin slot has no session")
}

func TestVerifyEmail_TokenParamAndMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/verify-email", r.URL.Path)
		require.Equal(t, "tok-42", r.URL.Query().Get("token"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data":    map[string]any{"verified": true},
			"message": "email verified",
		})
	})

	verified, msg, err := c.VerifyEmail(context.Background(), models.RoleUser, "tok-42")
	require.NoError(t, err)
	assert.True(t, verified)
	assert.Equal(t, "email verified", msg)
}
