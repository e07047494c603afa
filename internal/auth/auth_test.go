package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"ShaftGear/internal/repo"
	"ShaftGear/internal/validate"
)

func newEnv() *Env {
	return &Env{
		JWTKey:    []byte("test-secret"),
		Repo:      repo.NewMemory(),
		Validator: validate.New(nil),
	}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	env := newEnv()

	rec := post(env.RegisterHandler, `{"login":" alice ","email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var s Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, "alice", s.Login)
	assert.NotEmpty(t, s.Token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := env.ParseToken(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.UserID, claims.UserID)

	rec = post(env.LoginHandler, `{"login":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, "alice", s.Login)
}

func TestRegisterRejects(t *testing.T) {
	env := newEnv()
	require.Equal(t, http.StatusCreated,
		post(env.RegisterHandler, `{"login":"alice","email":"alice@example.com","password":"secret1"}`).Code)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"duplicate", `{"login":"alice","email":"a2@example.com","password":"secret1"}`, http.StatusConflict},
		{"short password", `{"login":"bob","email":"bob@example.com","password":"123"}`, http.StatusBadRequest},
		{"bad email", `{"login":"bob","email":"bob","password":"secret1"}`, http.StatusBadRequest},
		{"missing login", `{"login":"  ","email":"bob@example.com","password":"secret1"}`, http.StatusBadRequest},
		{"malformed", `{"login":`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, post(env.RegisterHandler, tc.body).Code)
		})
	}
}

func TestLoginRejects(t *testing.T) {
	env := newEnv()
	post(env.RegisterHandler, `{"login":"alice","email":"alice@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusUnauthorized, post(env.LoginHandler, `{"login":"alice","password":"wrong!!"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(env.LoginHandler, `{"login":"nobody","password":"secret1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(env.LoginHandler, `{"login":"alice"}`).Code)
}

func TestAuthMiddleware(t *testing.T) {
	env := newEnv()
	tok, _, err := env.IssueToken(42, "alice")
	require.NoError(t, err)

	var got Identity
	h := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/history", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, Identity{UserID: 42, Login: "alice"}, got)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/history", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/history", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unauthorized")
	})

	t.Run("wrong key", func(t *testing.T) {
		other := &Env{JWTKey: []byte("other")}
		bad, _, err := other.IssueToken(42, "alice")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+bad)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired", func(t *testing.T) {
		past := &Env{JWTKey: env.JWTKey, Now: func() time.Time { return time.Now().Add(-60 * 24 * time.Hour) }}
		old, _, err := past.IssueToken(42, "alice")
		require.NoError(t, err)
		_, err = env.ParseToken(old)
		assert.Error(t, err)
	})
}

func TestFromContextEmpty(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	id, ok := FromContext(WithIdentity(context.Background(), Identity{UserID: 3, Login: "c"}))
	assert.True(t, ok)
	assert.Equal(t, int64(3), id.UserID)
}

func TestLimitMiddleware(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Hour), 2)
	h := l.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 0, l.Prune(time.Hour))
	assert.Equal(t, 2, l.Prune(-time.Second))
}
