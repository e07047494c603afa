package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is a Repository kept in process memory. It is used when no
// database is configured and in tests.
type Memory struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]User
	calcs  map[uuid.UUID]Calculation
}

func NewMemory() *Memory {
	return &Memory{users: map[int64]User{}, calcs: map[uuid.UUID]Calculation{}}
}

func (m *Memory) CreateUser(ctx context.Context, login, email, passwordHash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == login || u.Email == email {
			return 0, ErrDuplicate
		}
	}
	m.nextID++
	m.users[m.nextID] = User{
		ID:           m.nextID,
		Login:        login,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	return m.nextID, nil
}

func (m *Memory) GetByLogin(ctx context.Context, login string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Login == login {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (m *Memory) GetUser(ctx context.Context, id int64) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) UpdateDescription(ctx context.Context, id int64, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Description = description
	m.users[id] = u
	return nil
}

func (m *Memory) SaveCalculation(ctx context.Context, c Calculation) (Calculation, error) {
	c = prepare(c)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[c.UserID]; !ok {
		return Calculation{}, ErrNotFound
	}
	if _, ok := m.calcs[c.ID]; ok {
		return Calculation{}, ErrDuplicate
	}
	m.calcs[c.ID] = c
	return c, nil
}

func (m *Memory) ListCalculations(ctx context.Context, userID int64, kind string) ([]Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Calculation{}
	for _, c := range m.calcs {
		if c.UserID == userID && (kind == "" || c.Kind == kind) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) GetCalculation(ctx context.Context, userID int64, id uuid.UUID) (Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.calcs[id]
	if !ok || c.UserID != userID {
		return Calculation{}, ErrNotFound
	}
	return c, nil
}

func (m *Memory) DeleteCalculation(ctx context.Context, userID int64, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.calcs[id]
	if !ok || c.UserID != userID {
		return ErrNotFound
	}
	delete(m.calcs, id)
	return nil
}

func (m *Memory) CountCalculations(ctx context.Context, userID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.calcs {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}
