package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shared-expenses/backend/internal/application/usecase/category"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category and subcategory endpoints.
type CategoryController struct {
	listUseCase              *category.ListCategoriesUseCase
	createUseCase            *category.CreateCategoryUseCase
	updateUseCase            *category.UpdateCategoryUseCase
	createSubcategoryUseCase *category.CreateSubcategoryUseCase
	updateSubcategoryUseCase *category.UpdateSubcategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	createSubcategoryUseCase *category.CreateSubcategoryUseCase,
	updateSubcategoryUseCase *category.UpdateSubcategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:              listUseCase,
		createUseCase:            createUseCase,
		updateUseCase:            updateUseCase,
		createSubcategoryUseCase: createSubcategoryUseCase,
		updateSubcategoryUseCase: updateSubcategoryUseCase,
	}
}

// List handles GET /households/:householdId/categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	input := category.ListCategoriesInput{
		HouseholdID: householdID,
		ActorID:     actorID,
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /households/:householdId/categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCategoryName),
		})
		return
	}

	input := category.CreateCategoryInput{
		HouseholdID: householdID,
		ActorID:     actorID,
		Name:        req.Name,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// Update handles PATCH /households/:householdId/categories/:categoryId requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	categoryID, ok := parseUUIDParam(ctx, "categoryId")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCategoryName),
		})
		return
	}

	input := category.UpdateCategoryInput{
		CategoryID:  categoryID,
		HouseholdID: householdID,
		ActorID:     actorID,
		Name:        req.Name,
		Active:      req.Active,
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// CreateSubcategory handles POST /households/:householdId/categories/:categoryId/subcategories requests.
func (c *CategoryController) CreateSubcategory(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	categoryID, ok := parseUUIDParam(ctx, "categoryId")
	if !ok {
		return
	}

	var req dto.CreateSubcategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCategoryName),
		})
		return
	}

	input := category.CreateSubcategoryInput{
		CategoryID:  categoryID,
		HouseholdID: householdID,
		ActorID:     actorID,
		Name:        req.Name,
	}

	output, err := c.createSubcategoryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSubcategoryResponse(output.Subcategory))
}

// UpdateSubcategory handles PATCH /households/:householdId/subcategories/:subcategoryId requests.
func (c *CategoryController) UpdateSubcategory(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	subcategoryID, ok := parseUUIDParam(ctx, "subcategoryId")
	if !ok {
		return
	}

	var req dto.UpdateSubcategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCategoryName),
		})
		return
	}

	input := category.UpdateSubcategoryInput{
		SubcategoryID: subcategoryID,
		HouseholdID:   householdID,
		ActorID:       actorID,
		Name:          req.Name,
		Active:        req.Active,
	}

	output, err := c.updateSubcategoryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubcategoryResponse(output.Subcategory))
}

// handleCategoryError converts category errors to HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var categoryErr *domainerror.CategoryError
	if errors.As(err, &categoryErr) {
		statusCode := c.getStatusCodeForCategoryError(categoryErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: categoryErr.Message,
			Code:  string(categoryErr.Code),
		})
		return
	}

	var householdErr *domainerror.HouseholdError
	if errors.As(err, &householdErr) {
		statusCode := http.StatusForbidden
		if householdErr.Code != domainerror.ErrCodeNotHouseholdMember {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: householdErr.Message,
			Code:  string(householdErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func (c *CategoryController) getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound,
		domainerror.ErrCodeSubcategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameTaken:
		return http.StatusConflict
	case domainerror.ErrCodeMissingCategoryName,
		domainerror.ErrCodeCategoryNotInHousehold:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
