// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is a household-scoped classification for expenses.
type Category struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	Name        string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates a new active Category entity.
func NewCategory(householdID uuid.UUID, name string) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Name:        name,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Subcategory refines a Category. Line items are classified at this level.
type Subcategory struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Name       string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSubcategory creates a new active Subcategory entity.
func NewSubcategory(categoryID uuid.UUID, name string) *Subcategory {
	now := time.Now().UTC()
	return &Subcategory{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Name:       name,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CategoryWithSubcategories represents a category and its subcategory list.
type CategoryWithSubcategories struct {
	Category      *Category
	Subcategories []*Subcategory
}
