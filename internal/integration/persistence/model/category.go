package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	HouseholdID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_household_name"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_household_name"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:          m.ID,
		HouseholdID: m.HouseholdID,
		Name:        m.Name,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:          category.ID,
		HouseholdID: category.HouseholdID,
		Name:        category.Name,
		Active:      category.Active,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// SubcategoryModel represents the subcategories table in the database.
type SubcategoryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
	Active     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the SubcategoryModel.
func (SubcategoryModel) TableName() string {
	return "subcategories"
}

// ToEntity converts a SubcategoryModel to a domain Subcategory entity.
func (m *SubcategoryModel) ToEntity() *entity.Subcategory {
	return &entity.Subcategory{
		ID:         m.ID,
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// SubcategoryFromEntity creates a SubcategoryModel from a domain Subcategory entity.
func SubcategoryFromEntity(subcategory *entity.Subcategory) *SubcategoryModel {
	return &SubcategoryModel{
		ID:         subcategory.ID,
		CategoryID: subcategory.CategoryID,
		Name:       subcategory.Name,
		Active:     subcategory.Active,
		CreatedAt:  subcategory.CreatedAt,
		UpdatedAt:  subcategory.UpdatedAt,
	}
}
