package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/grocerly/grocerly/internal/model"
	"github.com/grocerly/grocerly/internal/repository"
)

// MemUserStore is an in-memory UserStore for tests.
type MemUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by id
}

// NewMemUserStore creates an empty in-memory user store.
func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[string]*model.User)}
}

// CreateUser stores a user, enforcing the same uniqueness the schema does.
func (s *MemUserStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return repository.ErrUsernameExists
		}
		if existing.Email == user.Email {
			return repository.ErrEmailExists
		}
	}

	clone := *user
	s.users[user.ID] = &clone
	return nil
}

// GetUserByUsername looks a user up by exact username.
func (s *MemUserStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// GetUserByEmail looks a user up by exact email.
func (s *MemUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// MemGroceryStore is an in-memory GroceryStore for tests. It applies
// the same owner scoping the SQL layer does: a wrong-owner lookup is
// indistinguishable from an absent item.
type MemGroceryStore struct {
	mu    sync.Mutex
	items map[string]*model.Item // keyed by id
}

// NewMemGroceryStore creates an empty in-memory grocery store.
func NewMemGroceryStore() *MemGroceryStore {
	return &MemGroceryStore{items: make(map[string]*model.Item)}
}

// CreateItem stores an item.
func (s *MemGroceryStore) CreateItem(_ context.Context, item *model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *item
	s.items[item.ID] = &clone
	return nil
}

// ListItems lists the owner's items, most recently created first.
func (s *MemGroceryStore) ListItems(_ context.Context, ownerID string, filter model.StatusFilter) ([]*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Item, 0)
	for _, item := range s.items {
		if item.OwnerID != ownerID {
			continue
		}
		if filter == model.FilterActive && item.Completed {
			continue
		}
		if filter == model.FilterCompleted && !item.Completed {
			continue
		}
		clone := *item
		out = append(out, &clone)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

// UpdateItem applies a partial update scoped to the owner.
func (s *MemGroceryStore) UpdateItem(_ context.Context, ownerID, itemID string, update repository.ItemUpdate) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok || item.OwnerID != ownerID {
		return nil, repository.ErrItemNotFound
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Quantity != nil {
		item.Quantity = *update.Quantity
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.Category != nil {
		item.Category = *update.Category
	}
	if update.Completed != nil {
		item.Completed = *update.Completed
	}
	item.UpdatedAt = time.Now().UTC()

	clone := *item
	return &clone, nil
}

// ToggleItem flips the completed flag scoped to the owner.
func (s *MemGroceryStore) ToggleItem(_ context.Context, ownerID, itemID string) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok || item.OwnerID != ownerID {
		return nil, repository.ErrItemNotFound
	}

	item.Completed = !item.Completed
	item.UpdatedAt = time.Now().UTC()

	clone := *item
	return &clone, nil
}

// DeleteItem removes a single item scoped to the owner.
func (s *MemGroceryStore) DeleteItem(_ context.Context, ownerID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok || item.OwnerID != ownerID {
		return repository.ErrItemNotFound
	}

	delete(s.items, itemID)
	return nil
}

// DeleteAllItems removes every item belonging to the owner.
func (s *MemGroceryStore) DeleteAllItems(_ context.Context, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for id, item := range s.items {
		if item.OwnerID == ownerID {
			delete(s.items, id)
			count++
		}
	}
	return count, nil
}

// DeleteCompletedItems removes the owner's completed items.
func (s *MemGroceryStore) DeleteCompletedItems(_ context.Context, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for id, item := range s.items {
		if item.OwnerID == ownerID && item.Completed {
			delete(s.items, id)
			count++
		}
	}
	return count, nil
}
