// Package auth registers and logs in users and guards the routes that need a
// session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"ShaftGear/internal/httpx"
	"ShaftGear/internal/repo"
	"ShaftGear/internal/validate"
)

type contextKey string

const userKey contextKey = "user"

const (
	CookieName = "session_token"
	sessionTTL = 30 * 24 * time.Hour
)

type Env struct {
	JWTKey    []byte
	Repo      repo.Repository
	Validator *validate.Validator
	// SecureCookie sets the Secure flag on the session cookie.
	SecureCookie bool
	Now          func() time.Time
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Login    string `json:"login" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Email    string `json:"email" validate:"required,email"`
}

// Claims is the JWT payload of a session.
type Claims struct {
	UserID int64  `json:"user_id"`
	Login  string `json:"login"`
	jwt.RegisteredClaims
}

// Session is the response body of a successful register or login.
type Session struct {
	UserID    int64     `json:"user_id"`
	Login     string    `json:"login"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity is what AuthMiddleware stores in the request context.
type Identity struct {
	UserID int64
	Login  string
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (env *Env) now() time.Time {
	if env.Now != nil {
		return env.Now()
	}
	return time.Now()
}

// IssueToken signs a session token for the user.
func (env *Env) IssueToken(userID int64, login string) (string, time.Time, error) {
	exp := env.now().Add(sessionTTL)
	claims := Claims{
		UserID: userID,
		Login:  login,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(env.now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(env.JWTKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return s, exp, nil
}

// ParseToken verifies a session token and returns its claims.
func (env *Env) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return env.JWTKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(env.now),
	)
	if err != nil {
		return nil, errors.Join(httpx.ErrUnauthorized, err)
	}
	if !token.Valid || claims.UserID == 0 || claims.Login == "" {
		return nil, httpx.ErrUnauthorized
	}
	return claims, nil
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// AuthMiddleware rejects requests without a valid session with 401.
func (env *Env) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := tokenFrom(r)
		if tok == "" {
			httpx.Error(w, r, httpx.ErrUnauthorized)
			return
		}
		claims, err := env.ParseToken(tok)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, Identity{UserID: claims.UserID, Login: claims.Login})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the identity set by AuthMiddleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(userKey).(Identity)
	return id, ok && id.UserID != 0
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, userKey, id)
}

func (env *Env) startSession(w http.ResponseWriter, status int, userID int64, login string) error {
	tok, exp, err := env.IssueToken(userID, login)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Expires:  exp,
		Path:     "/",
		HttpOnly: true,
		Secure:   env.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.JSON(w, status, Session{UserID: userID, Login: login, Token: tok, ExpiresAt: exp})
	return nil
}

func (env *Env) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if err := env.Validator.Struct(req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		httpx.Error(w, r, fmt.Errorf("hash password: %w", err))
		return
	}
	id, err := env.Repo.CreateUser(r.Context(), req.Login, req.Email, hashed)
	if errors.Is(err, repo.ErrDuplicate) {
		httpx.Error(w, r, errors.Join(httpx.ErrConflict, err))
		return
	}
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.Logger(r.Context()).WithField("user_id", id).Info("user registered")
	if err := env.startSession(w, http.StatusCreated, id, req.Login); err != nil {
		httpx.Error(w, r, err)
	}
}

func (env *Env) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if err := env.Validator.Struct(req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	u, err := env.Repo.GetByLogin(r.Context(), req.Login)
	if errors.Is(err, repo.ErrNotFound) {
		httpx.Error(w, r, httpx.ErrUnauthorized)
		return
	}
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		httpx.Error(w, r, httpx.ErrUnauthorized)
		return
	}
	if err := env.startSession(w, http.StatusOK, u.ID, u.Login); err != nil {
		httpx.Error(w, r, err)
	}
}
