package dto

import (
	"github.com/shared-expenses/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Active *bool   `json:"active,omitempty"`
}

// CreateSubcategoryRequest represents the request body for subcategory creation.
type CreateSubcategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateSubcategoryRequest represents the request body for subcategory update.
type UpdateSubcategoryRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Active *bool   `json:"active,omitempty"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// SubcategoryResponse represents a subcategory in API responses.
type SubcategoryResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
}

// CategoryWithSubcategoriesResponse represents a category with its subcategories.
type CategoryWithSubcategoriesResponse struct {
	CategoryResponse
	Subcategories []SubcategoryResponse `json:"subcategories"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryWithSubcategoriesResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:     category.ID.String(),
		Name:   category.Name,
		Active: category.Active,
	}
}

// ToSubcategoryResponse converts a domain Subcategory entity to a SubcategoryResponse DTO.
func ToSubcategoryResponse(subcategory *entity.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:         subcategory.ID.String(),
		CategoryID: subcategory.CategoryID.String(),
		Name:       subcategory.Name,
		Active:     subcategory.Active,
	}
}

// ToCategoryListResponse converts categories with subcategories to a list DTO.
func ToCategoryListResponse(categories []*entity.CategoryWithSubcategories) CategoryListResponse {
	result := make([]CategoryWithSubcategoriesResponse, len(categories))
	for i, c := range categories {
		subcategories := make([]SubcategoryResponse, len(c.Subcategories))
		for j, s := range c.Subcategories {
			subcategories[j] = ToSubcategoryResponse(s)
		}
		result[i] = CategoryWithSubcategoriesResponse{
			CategoryResponse: ToCategoryResponse(c.Category),
			Subcategories:    subcategories,
		}
	}
	return CategoryListResponse{Categories: result}
}
