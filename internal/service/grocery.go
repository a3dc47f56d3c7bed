package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/grocerly/grocerly/internal/metrics"
	"github.com/grocerly/grocerly/internal/model"
	"github.com/grocerly/grocerly/internal/repository"
)

// GroceryStore is the owner-scoped persistence surface for items.
// Every method takes the owner id and must fold it into the query
// predicate; a wrong-owner lookup yields repository.ErrItemNotFound.
type GroceryStore interface {
	CreateItem(ctx context.Context, item *model.Item) error
	ListItems(ctx context.Context, ownerID string, filter model.StatusFilter) ([]*model.Item, error)
	UpdateItem(ctx context.Context, ownerID, itemID string, update repository.ItemUpdate) (*model.Item, error)
	ToggleItem(ctx context.Context, ownerID, itemID string) (*model.Item, error)
	DeleteItem(ctx context.Context, ownerID, itemID string) error
	DeleteAllItems(ctx context.Context, ownerID string) (int64, error)
	DeleteCompletedItems(ctx context.Context, ownerID string) (int64, error)
}

// GroceryService handles grocery item business logic.
type GroceryService struct {
	store   GroceryStore
	metrics metrics.Recorder
}

// NewGroceryService creates a new GroceryService.
func NewGroceryService(store GroceryStore, recorder metrics.Recorder) *GroceryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &GroceryService{store: store, metrics: recorder}
}

// List retrieves the owner's items, most recently created first.
// Unknown filter values fall back to listing everything.
func (s *GroceryService) List(ctx context.Context, ownerID string, filter string) ([]*model.Item, error) {
	items, err := s.store.ListItems(ctx, ownerID, model.ParseStatusFilter(filter))
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddItemInput defines input for creating an item. Quantity and Price
// are pointers so that "absent" and "zero" stay distinguishable.
type AddItemInput struct {
	Name     string
	Quantity *int
	Price    *float64
	Category string
}

// Add validates and stores a new item for the owner.
// All failing fields are reported together.
func (s *GroceryService) Add(ctx context.Context, ownerID string, input AddItemInput) (*model.Item, error) {
	name := strings.TrimSpace(input.Name)

	fields := make(map[string]string)
	if name == "" {
		fields["name"] = "name is required"
	}
	switch {
	case input.Quantity == nil:
		fields["quantity"] = "quantity is required"
	case *input.Quantity < 1:
		fields["quantity"] = "quantity must be at least 1"
	}
	switch {
	case input.Price == nil:
		fields["price"] = "price is required"
	case *input.Price < 0:
		fields["price"] = "price must not be negative"
	}
	switch {
	case input.Category == "":
		fields["category"] = "category is required"
	case !model.Category(input.Category).IsValid():
		fields["category"] = "invalid category selected"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	now := time.Now().UTC()
	item := &model.Item{
		ID:        ulid.Make().String(),
		OwnerID:   ownerID,
		Name:      name,
		Quantity:  *input.Quantity,
		Price:     *input.Price,
		Category:  model.Category(input.Category),
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	s.metrics.IncItemCreated()

	return item, nil
}

// EditItemInput defines a partial update: only non-nil fields change.
type EditItemInput struct {
	Name     *string
	Quantity *int
	Price    *float64
	Category *string
}

// Edit applies a partial update to the owner's item.
func (s *GroceryService) Edit(ctx context.Context, ownerID, itemID string, input EditItemInput) (*model.Item, error) {
	fields := make(map[string]string)

	update := repository.ItemUpdate{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			fields["name"] = "name must not be empty"
		}
		update.Name = &name
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			fields["quantity"] = "quantity must be at least 1"
		}
		update.Quantity = input.Quantity
	}
	if input.Price != nil {
		if *input.Price < 0 {
			fields["price"] = "price must not be negative"
		}
		update.Price = input.Price
	}
	if input.Category != nil {
		category := model.Category(*input.Category)
		if !category.IsValid() {
			fields["category"] = "invalid category selected"
		}
		update.Category = &category
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	item, err := s.store.UpdateItem(ctx, ownerID, itemID, update)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to edit item: %w", err)
	}

	s.metrics.IncItemUpdated()

	return item, nil
}

// ToggleComplete flips the completed flag of the owner's item.
// Toggling twice restores the original value.
func (s *GroceryService) ToggleComplete(ctx context.Context, ownerID, itemID string) (*model.Item, error) {
	item, err := s.store.ToggleItem(ctx, ownerID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to toggle item: %w", err)
	}

	s.metrics.IncItemToggled()

	return item, nil
}

// Delete removes a single item belonging to the owner.
func (s *GroceryService) Delete(ctx context.Context, ownerID, itemID string) error {
	if err := s.store.DeleteItem(ctx, ownerID, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.metrics.IncItemDeleted()

	return nil
}

// ClearCompleted removes the owner's completed items and reports how
// many went. A no-op clear succeeds with zero.
func (s *GroceryService) ClearCompleted(ctx context.Context, ownerID string) (int64, error) {
	count, err := s.store.DeleteCompletedItems(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear completed items: %w", err)
	}

	s.metrics.AddItemsCleared(count)

	return count, nil
}

// ClearAll removes every item belonging to the owner and reports how
// many went. A no-op clear succeeds with zero.
func (s *GroceryService) ClearAll(ctx context.Context, ownerID string) (int64, error) {
	count, err := s.store.DeleteAllItems(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear items: %w", err)
	}

	s.metrics.AddItemsCleared(count)

	return count, nil
}

// Stats lists the owner's items and summarizes them.
func (s *GroceryService) Stats(ctx context.Context, ownerID string) (model.Stats, error) {
	items, err := s.store.ListItems(ctx, ownerID, model.FilterAll)
	if err != nil {
		return model.Stats{}, err
	}
	return ComputeStats(items), nil
}

// ComputeStats summarizes an item collection: counts and price sums
// (price * quantity) for the total, completed, and active buckets.
// Pure; an empty collection yields all zeros.
func ComputeStats(items []*model.Item) model.Stats {
	var stats model.Stats
	for _, item := range items {
		cost := item.Cost()
		stats.Total++
		stats.TotalPrice += cost
		if item.Completed {
			stats.Completed++
			stats.CompletedPrice += cost
		} else {
			stats.Active++
			stats.ActivePrice += cost
		}
	}
	return stats
}
