// AngelaMos | 2026
// memory.go

package user

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

// MemoryRepository keeps users in process. It enforces the same unique
// email and phone constraints as the users table.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]User
	nextID int64
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:  make(map[int64]User),
		nextID: 1,
		now:    time.Now,
	}
}

func (m *MemoryRepository) Create(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkUnique(user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	now := m.now()
	user.ID = m.nextID
	user.DateCreated = now
	user.DateUpdated = now
	m.nextID++

	m.users[user.ID] = *user
	return nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id int64) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return &u, nil
}

func (m *MemoryRepository) GetByPhone(
	_ context.Context,
	phone string,
) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Phone == phone {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user by phone: %w", core.ErrNotFound)
}

func (m *MemoryRepository) Update(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[user.ID]
	if !ok {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}

	if err := m.checkUnique(user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Email = user.Email
	stored.Phone = user.Phone
	stored.DateUpdated = m.now()

	user.DateUpdated = stored.DateUpdated
	m.users[user.ID] = stored
	return nil
}

func (m *MemoryRepository) UpdatePassword(
	_ context.Context,
	id int64,
	passwordHash string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	stored.PasswordHash = passwordHash
	stored.DateUpdated = m.now()
	m.users[id] = stored
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	delete(m.users, id)
	return nil
}

func (m *MemoryRepository) List(
	_ context.Context,
	filter ListFilter,
	limit, offset int,
) ([]User, error) {
	matched := m.matching(filter)

	if offset >= len(matched) {
		return []User{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (m *MemoryRepository) Count(_ context.Context, filter ListFilter) (int, error) {
	return len(m.matching(filter)), nil
}

func (m *MemoryRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepository) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepository) matching(filter ListFilter) []User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		if filter.match(&u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// checkUnique must be called with the write lock held.
func (m *MemoryRepository) checkUnique(user *User) error {
	for id, u := range m.users {
		if id == user.ID {
			continue
		}
		if u.Email == user.Email {
			return ErrEmailTaken
		}
		if u.Phone == user.Phone {
			return ErrPhoneTaken
		}
	}
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
