package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/usecase/purchase"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/dto"
)

// PurchaseController handles credit card and card purchase endpoints.
type PurchaseController struct {
	createCardUseCase     *purchase.CreateCardUseCase
	listCardsUseCase      *purchase.ListCardsUseCase
	updateCardUseCase     *purchase.UpdateCardUseCase
	createPurchaseUseCase *purchase.CreatePurchaseUseCase
	listPurchasesUseCase  *purchase.ListPurchasesUseCase
}

// NewPurchaseController creates a new purchase controller instance.
func NewPurchaseController(
	createCardUseCase *purchase.CreateCardUseCase,
	listCardsUseCase *purchase.ListCardsUseCase,
	updateCardUseCase *purchase.UpdateCardUseCase,
	createPurchaseUseCase *purchase.CreatePurchaseUseCase,
	listPurchasesUseCase *purchase.ListPurchasesUseCase,
) *PurchaseController {
	return &PurchaseController{
		createCardUseCase:     createCardUseCase,
		listCardsUseCase:      listCardsUseCase,
		updateCardUseCase:     updateCardUseCase,
		createPurchaseUseCase: createPurchaseUseCase,
		listPurchasesUseCase:  listPurchasesUseCase,
	}
}

// CreateCard handles POST /households/:householdId/cards requests.
func (c *PurchaseController) CreateCard(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	limit, ok := parseAmount(ctx, req.Limit, "limit")
	if !ok {
		return
	}

	input := purchase.CreateCardInput{
		HouseholdID: householdID,
		ActorID:     actorID,
		Name:        req.Name,
		Brand:       entity.CardBrand(req.Brand),
		Limit:       limit,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
	}

	output, err := c.createCardUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePurchaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCardResponse(output.Card))
}

// ListCards handles GET /households/:householdId/cards requests.
func (c *PurchaseController) ListCards(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	input := purchase.ListCardsInput{
		HouseholdID: householdID,
		ActorID:     actorID,
	}

	output, err := c.listCardsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePurchaseError(ctx, err)
		return
	}

	cards := make([]dto.CardResponse, len(output.Cards))
	for i, card := range output.Cards {
		cards[i] = dto.ToCardResponse(card)
	}
	ctx.JSON(http.StatusOK, dto.CardListResponse{Cards: cards})
}

// UpdateCard handles PATCH /households/:householdId/cards/:cardId requests.
func (c *PurchaseController) UpdateCard(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	cardID, ok := parseUUIDParam(ctx, "cardId")
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	limit, err := optionalAmount(req.Limit)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid limit: expected a decimal string",
		})
		return
	}

	input := purchase.UpdateCardInput{
		CardID:      cardID,
		HouseholdID: householdID,
		ActorID:     actorID,
		Name:        req.Name,
		Limit:       limit,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
		Active:      req.Active,
	}
	if req.Brand != nil {
		brand := entity.CardBrand(*req.Brand)
		input.Brand = &brand
	}

	output, err := c.updateCardUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePurchaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardResponse(output.Card))
}

// CreatePurchase handles POST /households/:householdId/purchases requests.
func (c *PurchaseController) CreatePurchase(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	var req dto.CreatePurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card_id",
		})
		return
	}
	subcategoryID, err := uuid.Parse(req.SubcategoryID)
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
	totalAmount, ok := parseAmount(ctx, req.TotalAmount, "total_amount")
	if !ok {
		return
	}
	firstPeriod, ok := parseDate(ctx, req.FirstPeriod, "first_period")
	if !ok {
		return
	}
	firstDueDate, ok := parseDate(ctx, req.FirstDueDate, "first_due_date")
	if !ok {
		return
	}

	input := purchase.CreatePurchaseInput{
		HouseholdID:      householdID,
		ActorID:          actorID,
		CardID:           cardID,
		Description:      req.Description,
		SubcategoryID:    subcategoryID,
		Scope:            entity.ExpenseScope(req.Scope),
		OwnerID:          ownerID,
		TotalAmount:      totalAmount,
		InstallmentCount: req.InstallmentCount,
		FirstPeriod:      firstPeriod,
		FirstDueDate:     firstDueDate,
		PayerID:          payerID,
	}

	output, err := c.createPurchaseUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePurchaseError(ctx, err)
		return
	}

	items := make([]dto.LineItemDetailResponse, len(output.Items))
	for i, item := range output.Items {
		items[i] = dto.ToLineItemDetailResponse(item.LineItem, item.Allocations)
	}
	ctx.JSON(http.StatusCreated, dto.PurchaseDetailResponse{
		Purchase: dto.ToPurchaseResponse(output.Purchase),
		Items:    items,
	})
}

// ListPurchases handles GET /households/:householdId/purchases requests.
func (c *PurchaseController) ListPurchases(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	input := purchase.ListPurchasesInput{
		HouseholdID: householdID,
		ActorID:     actorID,
	}

	output, err := c.listPurchasesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePurchaseError(ctx, err)
		return
	}

	purchases := make([]dto.PurchaseResponse, len(output.Purchases))
	for i, p := range output.Purchases {
		purchases[i] = dto.ToPurchaseResponse(p)
	}
	ctx.JSON(http.StatusOK, dto.PurchaseListResponse{Purchases: purchases})
}

// handlePurchaseError converts purchase, allocation and household errors to
// HTTP responses.
func (c *PurchaseController) handlePurchaseError(ctx *gin.Context, err error) {
	var purchaseErr *domainerror.PurchaseError
	if errors.As(err, &purchaseErr) {
		statusCode := c.getStatusCodeForPurchaseError(purchaseErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: purchaseErr.Message,
			Code:  string(purchaseErr.Code),
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

	var lineItemErr *domainerror.LineItemError
	if errors.As(err, &lineItemErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: lineItemErr.Message,
			Code:  string(lineItemErr.Code),
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

// getStatusCodeForPurchaseError maps purchase error codes to HTTP status codes.
func (c *PurchaseController) getStatusCodeForPurchaseError(code domainerror.PurchaseErrorCode) int {
	switch code {
	case domainerror.ErrCodeCardNotFound,
		domainerror.ErrCodePurchaseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidInstallmentCount,
		domainerror.ErrCodeInvalidPurchaseAmount,
		domainerror.ErrCodeInvalidCardDay,
		domainerror.ErrCodeInvalidCardBrand:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
