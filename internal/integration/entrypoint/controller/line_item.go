package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shared-expenses/backend/internal/application/usecase/lineitem"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/dto"
)

// LineItemController handles line item endpoints, including the settlement
// state transitions.
type LineItemController struct {
	createUseCase *lineitem.CreateLineItemUseCase
	listUseCase   *lineitem.ListLineItemsUseCase
	getUseCase    *lineitem.GetLineItemUseCase
	updateUseCase *lineitem.UpdateLineItemUseCase
	settleUseCase *lineitem.SettleLineItemUseCase
	cancelUseCase *lineitem.CancelLineItemUseCase
}

// NewLineItemController creates a new line item controller instance.
func NewLineItemController(
	createUseCase *lineitem.CreateLineItemUseCase,
	listUseCase *lineitem.ListLineItemsUseCase,
	getUseCase *lineitem.GetLineItemUseCase,
	updateUseCase *lineitem.UpdateLineItemUseCase,
	settleUseCase *lineitem.SettleLineItemUseCase,
	cancelUseCase *lineitem.CancelLineItemUseCase,
) *LineItemController {
	return &LineItemController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		settleUseCase: settleUseCase,
		cancelUseCase: cancelUseCase,
	}
}

// Create handles POST /households/:householdId/line-items requests.
func (c *LineItemController) Create(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	var req dto.CreateLineItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	subcategoryID, ok := parseUUIDField(ctx, req.SubcategoryID, "subcategory_id")
	if !ok {
		return
	}
	ownerID, err := optionalUUID(req.OwnerID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid owner_id",
		})
		return
	}
	payerID, err := optionalUUID(req.PayerID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payer_id",
		})
		return
	}
	billingPeriod, ok := parseDate(ctx, req.BillingPeriod, "billing_period")
	if !ok {
		return
	}
	dueDate, ok := parseDate(ctx, req.DueDate, "due_date")
	if !ok {
		return
	}
	totalAmount, ok := parseAmount(ctx, req.TotalAmount, "total_amount")
	if !ok {
		return
	}

	input := lineitem.CreateLineItemInput{
		HouseholdID:   householdID,
		ActorID:       actorID,
		SubcategoryID: subcategoryID,
		Scope:         entity.ExpenseScope(req.Scope),
		OwnerID:       ownerID,
		Description:   req.Description,
		BillingPeriod: billingPeriod,
		DueDate:       dueDate,
		TotalAmount:   totalAmount,
		PayerID:       payerID,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLineItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLineItemDetailResponse(output.Item, output.Allocations))
}

// List handles GET /households/:householdId/line-items requests. Results can
// be narrowed with billing_period, status, scope and subcategory_id query
// parameters.
func (c *LineItemController) List(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	input := lineitem.ListLineItemsInput{
		HouseholdID: householdID,
		ActorID:     actorID,
	}

	if raw := ctx.Query("billing_period"); raw != "" {
		period, err := time.Parse(dateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid billing_period: expected YYYY-MM-DD",
			})
			return
		}
		input.BillingPeriod = &period
	}
	if raw := ctx.Query("status"); raw != "" {
		status := entity.LineItemStatus(raw)
		input.Status = &status
	}
	if raw := ctx.Query("scope"); raw != "" {
		scope := entity.ExpenseScope(raw)
		input.Scope = &scope
	}
	if raw := ctx.Query("subcategory_id"); raw != "" {
		subcategoryID, err := optionalUUID(&raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid subcategory_id",
			})
			return
		}
		input.SubcategoryID = subcategoryID
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLineItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLineItemListResponse(output.Items))
}

// Get handles GET /households/:householdId/line-items/:itemId requests.
func (c *LineItemController) Get(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(ctx, "itemId")
	if !ok {
		return
	}

	input := lineitem.GetLineItemInput{
		LineItemID:  itemID,
		HouseholdID: householdID,
		ActorID:     actorID,
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLineItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLineItemDetailResponse(output.Item, output.Allocations))
}

// Update handles PATCH /households/:householdId/line-items/:itemId requests.
func (c *LineItemController) Update(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(ctx, "itemId")
	if !ok {
		return
	}

	var req dto.UpdateLineItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	subcategoryID, err := optionalUUID(req.SubcategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid subcategory_id",
		})
		return
	}
	ownerID, err := optionalUUID(req.OwnerID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid owner_id",
		})
		return
	}
	payerID, err := optionalUUID(req.PayerID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payer_id",
		})
		return
	}
	totalAmount, err := optionalAmount(req.TotalAmount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid total_amount: expected a decimal string",
		})
		return
	}

	input := lineitem.UpdateLineItemInput{
		LineItemID:    itemID,
		HouseholdID:   householdID,
		ActorID:       actorID,
		Description:   req.Description,
		SubcategoryID: subcategoryID,
		OwnerID:       ownerID,
		TotalAmount:   totalAmount,
		PayerID:       payerID,
	}
	if req.Scope != nil {
		scope := entity.ExpenseScope(*req.Scope)
		input.Scope = &scope
	}
	if req.DueDate != nil {
		dueDate, parseOK := parseDate(ctx, *req.DueDate, "due_date")
		if !parseOK {
			return
		}
		input.DueDate = &dueDate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLineItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLineItemDetailResponse(output.Item, output.Allocations))
}

// Settle handles POST /households/:householdId/line-items/:itemId/settle requests.
func (c *LineItemController) Settle(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(ctx, "itemId")
	if !ok {
		return
	}

	// The body is optional: settling with no payload records today's date
	// and the actor as payer.
	var req dto.SettleLineItemRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body",
			})
			return
		}
	}

	payerID, err := optionalUUID(req.PayerID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payer_id",
		})
		return
	}

	input := lineitem.SettleLineItemInput{
		LineItemID:  itemID,
		HouseholdID: householdID,
		ActorID:     actorID,
		PayerID:     payerID,
	}
	if req.PaymentDate != nil {
		paymentDate, parseOK := parseDate(ctx, *req.PaymentDate, "payment_date")
		if !parseOK {
			return
		}
		input.PaymentDate = &paymentDate
	}

	output, err := c.settleUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLineItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLineItemResponse(output.Item))
}

// Cancel handles POST /households/:householdId/line-items/:itemId/cancel requests.
func (c *LineItemController) Cancel(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(ctx, "itemId")
	if !ok {
		return
	}

	input := lineitem.CancelLineItemInput{
		LineItemID:  itemID,
		HouseholdID: householdID,
		ActorID:     actorID,
	}

	output, err := c.cancelUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLineItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLineItemResponse(output.Item))
}

// handleLineItemError converts line item, allocation and household errors to
// HTTP responses.
func (c *LineItemController) handleLineItemError(ctx *gin.Context, err error) {
	var lineItemErr *domainerror.LineItemError
	if errors.As(err, &lineItemErr) {
		statusCode := c.getStatusCodeForLineItemError(lineItemErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: lineItemErr.Message,
			Code:  string(lineItemErr.Code),
		})
		return
	}

	var allocationErr *domainerror.AllocationError
	if errors.As(err, &allocationErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: allocationErr.Message,
			Code:  string(allocationErr.Code),
		})
		return
	}

	var householdErr *domainerror.HouseholdError
	if errors.As(err, &householdErr) {
		statusCode := http.StatusNotFound
		if householdErr.Code == domainerror.ErrCodeNotHouseholdMember {
			statusCode = http.StatusForbidden
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

// getStatusCodeForLineItemError maps line item error codes to HTTP status codes.
func (c *LineItemController) getStatusCodeForLineItemError(code domainerror.LineItemErrorCode) int {
	switch code {
	case domainerror.ErrCodeLineItemNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeLineItemAlreadySettled,
		domainerror.ErrCodeLineItemCancelled:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidLineItemAmount,
		domainerror.ErrCodeInvalidBillingPeriod:
		return http.StatusBadRequest
	case domainerror.ErrCodeNotAuthorizedLineItem:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
