package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/grocerly/grocerly/internal/model"
)

// ErrItemNotFound covers both a truly absent item and an item belonging
// to a different owner. The two cases are deliberately indistinguishable
// so that item existence never leaks across owners.
var ErrItemNotFound = errors.New("grocery item not found")

const groceryColumns = `id, owner_id, name, quantity, price, category, completed, created_at, updated_at`

// ItemUpdate carries a partial update. Nil fields are left unchanged.
type ItemUpdate struct {
	Name      *string
	Quantity  *int
	Price     *float64
	Category  *model.Category
	Completed *bool
}

// CreateItem inserts a new grocery item for the given owner.
func (r *Repository) CreateItem(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO groceries (id, owner_id, name, quantity, price, category, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.OwnerID,
		item.Name,
		item.Quantity,
		item.Price,
		item.Category,
		item.Completed,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create grocery item: %w", err)
	}

	return nil
}

// GetItem retrieves a single item scoped to its owner.
func (r *Repository) GetItem(ctx context.Context, ownerID, itemID string) (*model.Item, error) {
	query := `
		SELECT ` + groceryColumns + `
		FROM groceries
		WHERE id = $1 AND owner_id = $2
	`

	item, err := scanItem(r.pool.QueryRow(ctx, query, itemID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get grocery item: %w", err)
	}

	return item, nil
}

// ListItems retrieves the owner's items, optionally filtered by
// completion state, most recently created first.
func (r *Repository) ListItems(ctx context.Context, ownerID string, filter model.StatusFilter) ([]*model.Item, error) {
	query := `
		SELECT ` + groceryColumns + `
		FROM groceries
		WHERE owner_id = $1
	`
	args := []any{ownerID}

	switch filter {
	case model.FilterActive:
		query += " AND completed = FALSE"
	case model.FilterCompleted:
		query += " AND completed = TRUE"
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list grocery items: %w", err)
	}
	defer rows.Close()

	items := make([]*model.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grocery item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grocery items: %w", err)
	}

	return items, nil
}

// UpdateItem applies a partial update to an item scoped to its owner
// and returns the updated row.
func (r *Repository) UpdateItem(ctx context.Context, ownerID, itemID string, update ItemUpdate) (*model.Item, error) {
	query := `
		UPDATE groceries
		SET name      = COALESCE($3, name),
		    quantity  = COALESCE($4, quantity),
		    price     = COALESCE($5, price),
		    category  = COALESCE($6, category),
		    completed = COALESCE($7, completed),
		    updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + groceryColumns

	item, err := scanItem(r.pool.QueryRow(ctx, query,
		itemID,
		ownerID,
		update.Name,
		update.Quantity,
		update.Price,
		update.Category,
		update.Completed,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update grocery item: %w", err)
	}

	return item, nil
}

// ToggleItem flips the completed flag of an item scoped to its owner
// and returns the updated row.
func (r *Repository) ToggleItem(ctx context.Context, ownerID, itemID string) (*model.Item, error) {
	query := `
		UPDATE groceries
		SET completed = NOT completed, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + groceryColumns

	item, err := scanItem(r.pool.QueryRow(ctx, query, itemID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to toggle grocery item: %w", err)
	}

	return item, nil
}

// DeleteItem removes a single item scoped to its owner.
func (r *Repository) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	query := `DELETE FROM groceries WHERE id = $1 AND owner_id = $2`

	result, err := r.pool.Exec(ctx, query, itemID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete grocery item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// DeleteAllItems removes every item belonging to the owner.
// Returns the number of rows removed; a no-op delete is not an error.
func (r *Repository) DeleteAllItems(ctx context.Context, ownerID string) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM groceries WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear grocery items: %w", err)
	}

	return result.RowsAffected(), nil
}

// DeleteCompletedItems removes the owner's completed items.
// Returns the number of rows removed; a no-op delete is not an error.
func (r *Repository) DeleteCompletedItems(ctx context.Context, ownerID string) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM groceries WHERE owner_id = $1 AND completed = TRUE`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear completed grocery items: %w", err)
	}

	return result.RowsAffected(), nil
}

// scanItem scans a single row into an Item model.
func scanItem(row pgx.Row) (*model.Item, error) {
	var item model.Item
	err := row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.Name,
		&item.Quantity,
		&item.Price,
		&item.Category,
		&item.Completed,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return &item, err
}
