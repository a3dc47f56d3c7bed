package dto

import (
	"time"

	"github.com/grocerly/grocerly/internal/model"
)

// AddItemRequest represents the request body for creating an item.
type AddItemRequest struct {
	Name     string  `json:"name"`
	Quantity *Number `json:"quantity"`
	Category string  `json:"category"`
	Price    *Number `json:"price"`
}

// EditItemRequest represents a partial update. Absent fields are left
// unchanged.
type EditItemRequest struct {
	Name     *string `json:"name,omitempty"`
	Quantity *Number `json:"quantity,omitempty"`
	Category *string `json:"category,omitempty"`
	Price    *Number `json:"price,omitempty"`
}

// ItemResponse represents a grocery item in API responses.
type ItemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClearResponse reports a bulk delete.
type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

// ErrorResponse represents an API error. Fields is populated for
// validation failures only.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ToItemResponse converts an Item model to ItemResponse DTO.
// The owner id stays server-side.
func ToItemResponse(item *model.Item) *ItemResponse {
	return &ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Category:  string(item.Category),
		Completed: item.Completed,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// ToItemListResponse converts a slice of items.
func ToItemListResponse(items []*model.Item) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToItemResponse(item))
	}
	return out
}
