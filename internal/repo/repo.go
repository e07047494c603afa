// Package repo stores users and their saved calculations.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ShaftGear/internal/calcerr"
)

var (
	ErrNotFound  = fmt.Errorf("record %w", calcerr.ErrNotFound)
	ErrDuplicate = errors.New("record already exists")
)

type User struct {
	ID           int64     `json:"id"`
	Login        string    `json:"login"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// Calculation is a saved calculation. Input and Result are the JSON bodies
// of the request and response.
type Calculation struct {
	ID        uuid.UUID       `json:"id"`
	UserID    int64           `json:"-"`
	Kind      string          `json:"kind"`
	Title     string          `json:"title"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, passwordHash string) (int64, error)
	GetByLogin(ctx context.Context, login string) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	UpdateDescription(ctx context.Context, id int64, description string) error

	// SaveCalculation assigns ID and CreatedAt when they are zero.
	SaveCalculation(ctx context.Context, c Calculation) (Calculation, error)
	// ListCalculations returns the user's calculations newest first,
	// optionally filtered by kind.
	ListCalculations(ctx context.Context, userID int64, kind string) ([]Calculation, error)
	GetCalculation(ctx context.Context, userID int64, id uuid.UUID) (Calculation, error)
	DeleteCalculation(ctx context.Context, userID int64, id uuid.UUID) error
	CountCalculations(ctx context.Context, userID int64) (int, error)
}

func prepare(c Calculation) Calculation {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return c
}
