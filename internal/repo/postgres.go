package repo

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Open connects to Postgres. sslmode=require is added when the URL does not
// set a mode.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	if !strings.Contains(connStr, "sslmode=") {
		switch {
		case strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://"):
			sep := "?"
			if strings.Contains(connStr, "?") {
				sep = "&"
			}
			connStr += sep + "sslmode=require"
		default:
			connStr += " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded schema migrations.
func Migrate(db *sql.DB, log goose.Logger) error {
	if log != nil {
		goose.SetLogger(log)
	}
	goose.SetBaseFS(migrations)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
		case foreignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (r *Postgres) CreateUser(ctx context.Context, login, email, passwordHash string) (int64, error) {
	var id int64
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, passwordHash).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", mapError(err))
	}
	return id, nil
}

const userColumns = "id, login, email, password, description, created_at"

func scanUser(row scanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.Description, &u.CreatedAt)
	return u, mapError(err)
}

func (r *Postgres) GetByLogin(ctx context.Context, login string) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE login=$1", login))
	if err != nil {
		return User{}, fmt.Errorf("get user by login: %w", err)
	}
	return u, nil
}

func (r *Postgres) GetUser(ctx context.Context, id int64) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id=$1", id))
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *Postgres) UpdateDescription(ctx context.Context, id int64, description string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET description=$1 WHERE id=$2", description, id)
	if err != nil {
		return fmt.Errorf("update description: %w", mapError(err))
	}
	return affected(res, "update description")
}

func affected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func (r *Postgres) SaveCalculation(ctx context.Context, c Calculation) (Calculation, error) {
	c = prepare(c)
	query := `INSERT INTO calculations (id, user_id, kind, title, input, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.UserID, c.Kind, c.Title, []byte(c.Input), []byte(c.Result), c.CreatedAt)
	if err != nil {
		return Calculation{}, fmt.Errorf("save calculation: %w", mapError(err))
	}
	return c, nil
}

const calcColumns = "id, user_id, kind, title, input, result, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(s scanner) (Calculation, error) {
	var (
		c             Calculation
		input, result []byte
	)
	if err := s.Scan(&c.ID, &c.UserID, &c.Kind, &c.Title, &input, &result, &c.CreatedAt); err != nil {
		return Calculation{}, mapError(err)
	}
	c.Input, c.Result = input, result
	return c, nil
}

func (r *Postgres) ListCalculations(ctx context.Context, userID int64, kind string) ([]Calculation, error) {
	query := "SELECT " + calcColumns + " FROM calculations WHERE user_id=$1 AND ($2::text = '' OR kind = $2::text) ORDER BY created_at DESC, id"
	rows, err := r.db.QueryContext(ctx, query, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	out := []Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("list calculations: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	return out, nil
}

func (r *Postgres) GetCalculation(ctx context.Context, userID int64, id uuid.UUID) (Calculation, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+calcColumns+" FROM calculations WHERE user_id=$1 AND id=$2", userID, id)
	c, err := scanCalculation(row)
	if err != nil {
		return Calculation{}, fmt.Errorf("get calculation: %w", err)
	}
	return c, nil
}

func (r *Postgres) DeleteCalculation(ctx context.Context, userID int64, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM calculations WHERE user_id=$1 AND id=$2", userID, id)
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}
	return affected(res, "delete calculation")
}

func (r *Postgres) CountCalculations(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM calculations WHERE user_id=$1", userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count calculations: %w", err)
	}
	return n, nil
}
