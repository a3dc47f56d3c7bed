// Package model defines domain entities for the application.
package model

import "time"

// Category is the closed set of labels a grocery item can carry.
type Category string

const (
	CategoryProduce   Category = "Produce"
	CategoryDairy     Category = "Dairy"
	CategoryMeat      Category = "Meat"
	CategoryBakery    Category = "Bakery"
	CategoryPantry    Category = "Pantry"
	CategoryFrozen    Category = "Frozen"
	CategoryBeverages Category = "Beverages"
	CategorySnacks    Category = "Snacks"
	CategoryOther     Category = "Other"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryProduce,
	CategoryDairy,
	CategoryMeat,
	CategoryBakery,
	CategoryPantry,
	CategoryFrozen,
	CategoryBeverages,
	CategorySnacks,
	CategoryOther,
}

// IsValid checks if the category is one of the allowed labels.
// The match is case-sensitive.
func (c Category) IsValid() bool {
	for _, valid := range Categories {
		if c == valid {
			return true
		}
	}
	return false
}

// StatusFilter selects items by completion state when listing.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// ParseStatusFilter maps a query-string value to a filter.
// Unknown or empty values fall back to FilterAll.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(s) {
	case FilterActive:
		return FilterActive
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Item represents a grocery item owned by exactly one user.
type Item struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Category  Category  `json:"category"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cost is the item's line total.
func (i *Item) Cost() float64 {
	return i.Price * float64(i.Quantity)
}

// Stats summarizes an item collection. Price fields are sums of
// price*quantity over the bucket.
type Stats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Active         int     `json:"active"`
	TotalPrice     float64 `json:"total_price"`
	CompletedPrice float64 `json:"completed_price"`
	ActivePrice    float64 `json:"active_price"`
}
