package domain

import (
	"context"
	"errors"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the interface for category lookups.
// Categories are seed data and are never written through the API.
type CategoryRepository interface {
	// List retrieves all categories ordered by ID
	List(ctx context.Context) ([]*Category, error)

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id int) (*Category, error)
}

// Category groups questions. Type is the display name.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CategoryMap formats categories as an id to display name mapping
func CategoryMap(categories []*Category) map[int]string {
	m := make(map[int]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
