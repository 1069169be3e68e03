package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openbid/auction-house/pkg/model"
)

// Memory is an in-process store implementing AuctionRepository and
// UserRepository with the same version-token semantics as the Postgres
// implementation. It backs the -inMemStore dev mode and the tests.
type Memory struct {
	mu       sync.Mutex
	auctions map[string]model.AuctionItem
	users    map[string]model.User
}

func NewMemory() *Memory {
	return &Memory{
		auctions: make(map[string]model.AuctionItem),
		users:    make(map[string]model.User),
	}
}

func (m *Memory) Get(_ context.Context, id string) (model.AuctionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.auctions[id]
	if !ok {
		return model.AuctionItem{}, ErrNotFound
	}

	return item, nil
}

func (m *Memory) List(_ context.Context) ([]model.AuctionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]model.AuctionItem, 0, len(m.auctions))
	for _, item := range m.auctions {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return items, nil
}

func (m *Memory) ListExpired(_ context.Context, now time.Time) ([]model.AuctionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []model.AuctionItem
	for _, item := range m.auctions {
		if item.Expired(now) {
			items = append(items, item)
		}
	}

	return items, nil
}

func (m *Memory) Create(_ context.Context, item *model.AuctionItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = uuid.NewString()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.Version = 1

	m.auctions[item.ID] = *item
	return nil
}

func (m *Memory) Update(_ context.Context, item model.AuctionItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.auctions[item.ID]
	if !ok {
		return ErrNotFound
	}
	if current.Version != item.Version {
		return ErrConflict
	}

	item.Version++
	m.auctions[item.ID] = item
	return nil
}

func (m *Memory) CreateUser(_ context.Context, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Username]; ok {
		return model.ErrUserExists
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.Username] = user
	return nil
}

func (m *Memory) GetByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[username]
	if !ok {
		return model.User{}, ErrNotFound
	}

	return user, nil
}
