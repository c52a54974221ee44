package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	"github.com/shared-expenses/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	if err := r.db.WithContext(ctx).Create(categoryModel).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// CreateBatch creates categories with their subcategories in one transaction.
// Used to seed the default tree when a household is created.
func (r *categoryRepository) CreateBatch(ctx context.Context, categories []*entity.Category, subcategories []*entity.Subcategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryModels := make([]*model.CategoryModel, len(categories))
		for i, category := range categories {
			categoryModels[i] = model.CategoryFromEntity(category)
		}
		if len(categoryModels) > 0 {
			if err := tx.Create(categoryModels).Error; err != nil {
				return fmt.Errorf("failed to create categories: %w", err)
			}
		}

		subcategoryModels := make([]*model.SubcategoryModel, len(subcategories))
		for i, subcategory := range subcategories {
			subcategoryModels[i] = model.SubcategoryFromEntity(subcategory)
		}
		if len(subcategoryModels) > 0 {
			if err := tx.Create(subcategoryModels).Error; err != nil {
				return fmt.Errorf("failed to create subcategories: %w", err)
			}
		}
		return nil
	})
}

// FindByID retrieves a category by its ID. Returns nil when no category matches.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return categoryModel.ToEntity(), nil
}

// FindByHousehold retrieves all categories of a household with their subcategories.
func (r *categoryRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.CategoryWithSubcategories, error) {
	var categoryModels []model.CategoryModel
	err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("name ASC").
		Find(&categoryModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	if len(categoryModels) == 0 {
		return []*entity.CategoryWithSubcategories{}, nil
	}

	categoryIDs := make([]uuid.UUID, len(categoryModels))
	for i, categoryModel := range categoryModels {
		categoryIDs[i] = categoryModel.ID
	}

	var subcategoryModels []model.SubcategoryModel
	err = r.db.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Order("name ASC").
		Find(&subcategoryModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find subcategories: %w", err)
	}

	byCategory := make(map[uuid.UUID][]*entity.Subcategory)
	for i := range subcategoryModels {
		subcategory := subcategoryModels[i].ToEntity()
		byCategory[subcategory.CategoryID] = append(byCategory[subcategory.CategoryID], subcategory)
	}

	result := make([]*entity.CategoryWithSubcategories, len(categoryModels))
	for i := range categoryModels {
		category := categoryModels[i].ToEntity()
		result[i] = &entity.CategoryWithSubcategories{
			Category:      category,
			Subcategories: byCategory[category.ID],
		}
	}
	return result, nil
}

// ExistsByHouseholdAndName checks whether the household already has a category
// with the given name.
func (r *categoryRepository) ExistsByHouseholdAndName(ctx context.Context, householdID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("household_id = ? AND name = ?", householdID, name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return count > 0, nil
}

// Update updates a category.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	if err := r.db.WithContext(ctx).Save(categoryModel).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// CreateSubcategory creates a new subcategory.
func (r *categoryRepository) CreateSubcategory(ctx context.Context, subcategory *entity.Subcategory) error {
	subcategoryModel := model.SubcategoryFromEntity(subcategory)
	if err := r.db.WithContext(ctx).Create(subcategoryModel).Error; err != nil {
		return fmt.Errorf("failed to create subcategory: %w", err)
	}
	return nil
}

// FindSubcategoryByID retrieves a subcategory by its ID. Returns nil when none matches.
func (r *categoryRepository) FindSubcategoryByID(ctx context.Context, id uuid.UUID) (*entity.Subcategory, error) {
	var subcategoryModel model.SubcategoryModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&subcategoryModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find subcategory: %w", err)
	}
	return subcategoryModel.ToEntity(), nil
}

// UpdateSubcategory updates a subcategory.
func (r *categoryRepository) UpdateSubcategory(ctx context.Context, subcategory *entity.Subcategory) error {
	subcategoryModel := model.SubcategoryFromEntity(subcategory)
	if err := r.db.WithContext(ctx).Save(subcategoryModel).Error; err != nil {
		return fmt.Errorf("failed to update subcategory: %w", err)
	}
	return nil
}
