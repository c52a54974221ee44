// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// CreateBatch creates categories with their subcategories in one transaction.
	CreateBatch(ctx context.Context, categories []*entity.Category, subcategories []*entity.Subcategory) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByHousehold retrieves all categories of a household with their subcategories.
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.CategoryWithSubcategories, error)

	// ExistsByHouseholdAndName checks whether the household already has a
	// category with the given name.
	ExistsByHouseholdAndName(ctx context.Context, householdID uuid.UUID, name string) (bool, error)

	// Update updates a category.
	Update(ctx context.Context, category *entity.Category) error

	// CreateSubcategory creates a new subcategory.
	CreateSubcategory(ctx context.Context, subcategory *entity.Subcategory) error

	// FindSubcategoryByID retrieves a subcategory by its ID.
	FindSubcategoryByID(ctx context.Context, id uuid.UUID) (*entity.Subcategory, error)

	// UpdateSubcategory updates a subcategory.
	UpdateSubcategory(ctx context.Context, subcategory *entity.Subcategory) error
}
