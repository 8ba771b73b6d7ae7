package store

import (
	"context"
	"strings"
	"sync"

	"janawaaz-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process IssueStore used by tests and local development.
// It keeps issues in arrival order and returns copies, never internal
// pointers.
type Memory struct {
	mu     sync.RWMutex
	issues map[primitive.ObjectID]*models.Issue
	order  []primitive.ObjectID
}

// NewMemory creates an empty in-memory issue store.
func NewMemory() *Memory {
	return &Memory{issues: make(map[primitive.ObjectID]*models.Issue)}
}

func (m *Memory) Insert(ctx context.Context, issue *models.Issue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	cp := *issue
	m.issues[cp.ID] = &cp
	m.order = append(m.order, cp.ID)
	return nil
}

func (m *Memory) Get(ctx context.Context, id primitive.ObjectID) (models.Issue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	issue, ok := m.issues[id]
	if !ok {
		return models.Issue{}, ErrNotFound
	}
	return *issue, nil
}

func (m *Memory) All(ctx context.Context) ([]models.Issue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Issue, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.issues[id])
	}
	return out, nil
}

func (m *Memory) ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Issue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Issue, 0)
	for _, id := range m.order {
		if m.issues[id].SubmittedBy == userID {
			out = append(out, *m.issues[id])
		}
	}
	return out, nil
}

func (m *Memory) Update(ctx context.Context, id primitive.ObjectID, fn func(*models.Issue) error) (models.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	issue, ok := m.issues[id]
	if !ok {
		return models.Issue{}, ErrNotFound
	}

	cp := *issue
	if err := fn(&cp); err != nil {
		return models.Issue{}, err
	}
	cp.Rev = issue.Rev + 1
	m.issues[id] = &cp
	return cp, nil
}

// MemoryUsers is the in-process UserStore counterpart of Memory.
type MemoryUsers struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

// NewMemoryUsers creates an empty in-memory user store.
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[primitive.ObjectID]*models.User)}
}

func (m *MemoryUsers) Insert(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	m.users[cp.ID] = &cp
	return nil
}

func (m *MemoryUsers) Get(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return *user, nil
}

func (m *MemoryUsers) ByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			return *user, nil
		}
	}
	return models.User{}, ErrNotFound
}
