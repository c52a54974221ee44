package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/application/usecase/template"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/dto"
)

// TemplateController handles expense template endpoints, including split rule
// replacement and billing period generation.
type TemplateController struct {
	createUseCase       *template.CreateTemplateUseCase
	listUseCase         *template.ListTemplatesUseCase
	updateUseCase       *template.UpdateTemplateUseCase
	deleteUseCase       *template.DeleteTemplateUseCase
	replaceRulesUseCase *template.ReplaceRulesUseCase
	generateUseCase     *template.GeneratePeriodUseCase
}

// NewTemplateController creates a new template controller instance.
func NewTemplateController(
	createUseCase *template.CreateTemplateUseCase,
	listUseCase *template.ListTemplatesUseCase,
	updateUseCase *template.UpdateTemplateUseCase,
	deleteUseCase *template.DeleteTemplateUseCase,
	replaceRulesUseCase *template.ReplaceRulesUseCase,
	generateUseCase *template.GeneratePeriodUseCase,
) *TemplateController {
	return &TemplateController{
		createUseCase:       createUseCase,
		listUseCase:         listUseCase,
		updateUseCase:       updateUseCase,
		deleteUseCase:       deleteUseCase,
		replaceRulesUseCase: replaceRulesUseCase,
		generateUseCase:     generateUseCase,
	}
}

// Create handles POST /households/:householdId/templates requests.
func (c *TemplateController) Create(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	var req dto.CreateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
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
	amount, ok := parseAmount(ctx, req.Amount, "amount")
	if !ok {
		return
	}

	input := template.CreateTemplateInput{
		HouseholdID:   householdID,
		ActorID:       actorID,
		Name:          req.Name,
		SubcategoryID: subcategoryID,
		Scope:         entity.ExpenseScope(req.Scope),
		OwnerID:       ownerID,
		Amount:        amount,
		DueDay:        req.DueDay,
		Recurring:     req.Recurring,
		Periodicity:   entity.Periodicity(req.Periodicity),
		Policy:        entity.SplitPolicy(req.Policy),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTemplateError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTemplateResponse(output.Template))
}

// List handles GET /households/:householdId/templates requests.
func (c *TemplateController) List(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	input := template.ListTemplatesInput{
		HouseholdID: householdID,
		ActorID:     actorID,
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTemplateError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTemplateListResponse(output.Templates))
}

// Update handles PATCH /households/:householdId/templates/:templateId requests.
func (c *TemplateController) Update(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	templateID, ok := parseUUIDParam(ctx, "templateId")
	if !ok {
		return
	}

	var req dto.UpdateTemplateRequest
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
	amount, err := optionalAmount(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount: expected a decimal string",
		})
		return
	}

	input := template.UpdateTemplateInput{
		TemplateID:    templateID,
		HouseholdID:   householdID,
		ActorID:       actorID,
		Name:          req.Name,
		SubcategoryID: subcategoryID,
		Amount:        amount,
		DueDay:        req.DueDay,
		Recurring:     req.Recurring,
		Active:        req.Active,
	}
	if req.Periodicity != nil {
		periodicity := entity.Periodicity(*req.Periodicity)
		input.Periodicity = &periodicity
	}
	if req.Policy != nil {
		policy := entity.SplitPolicy(*req.Policy)
		input.Policy = &policy
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTemplateError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTemplateResponse(output.Template))
}

// Delete handles DELETE /households/:householdId/templates/:templateId requests.
func (c *TemplateController) Delete(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	templateID, ok := parseUUIDParam(ctx, "templateId")
	if !ok {
		return
	}

	input := template.DeleteTemplateInput{
		TemplateID:  templateID,
		HouseholdID: householdID,
		ActorID:     actorID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleTemplateError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ReplaceRules handles PUT /households/:householdId/templates/:templateId/rules requests.
func (c *TemplateController) ReplaceRules(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	templateID, ok := parseUUIDParam(ctx, "templateId")
	if !ok {
		return
	}

	var req dto.ReplaceRulesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	rules := make([]template.RuleInput, 0, len(req.Rules))
	for _, rule := range req.Rules {
		memberID, err := uuid.Parse(rule.MemberID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid member_id",
			})
			return
		}
		var percentage, fixedAmount *decimal.Decimal
		if percentage, err = optionalAmount(rule.Percentage); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid percentage: expected a decimal string",
			})
			return
		}
		if fixedAmount, err = optionalAmount(rule.FixedAmount); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid fixed_amount: expected a decimal string",
			})
			return
		}
		rules = append(rules, template.RuleInput{
			MemberID:    memberID,
			Percentage:  percentage,
			FixedAmount: fixedAmount,
		})
	}

	input := template.ReplaceRulesInput{
		TemplateID:  templateID,
		HouseholdID: householdID,
		ActorID:     actorID,
		Rules:       rules,
	}

	output, err := c.replaceRulesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTemplateError(ctx, err)
		return
	}

	responses := make([]dto.SplitRuleResponse, len(output.Rules))
	for i, rule := range output.Rules {
		responses[i] = dto.ToSplitRuleResponse(rule)
	}
	ctx.JSON(http.StatusOK, gin.H{"rules": responses})
}

// GeneratePeriod handles POST /households/:householdId/templates/generate requests.
func (c *TemplateController) GeneratePeriod(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	var req dto.GeneratePeriodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	periodDate, ok := parseDate(ctx, req.Period, "period")
	if !ok {
		return
	}

	input := template.GeneratePeriodInput{
		HouseholdID: householdID,
		ActorID:     actorID,
		Period:      periodDate,
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTemplateError(ctx, err)
		return
	}

	created := make([]dto.LineItemDetailResponse, len(output.Created))
	for i, item := range output.Created {
		created[i] = dto.ToLineItemDetailResponse(item.LineItem, item.Allocations)
	}
	ctx.JSON(http.StatusOK, dto.GeneratePeriodResponse{Created: created})
}

// handleTemplateError converts template, allocation and household errors to
// HTTP responses.
func (c *TemplateController) handleTemplateError(ctx *gin.Context, err error) {
	var templateErr *domainerror.TemplateError
	if errors.As(err, &templateErr) {
		statusCode := c.getStatusCodeForTemplateError(templateErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: templateErr.Message,
			Code:  string(templateErr.Code),
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

	var categoryErr *domainerror.CategoryError
	if errors.As(err, &categoryErr) {
		statusCode := http.StatusBadRequest
		if categoryErr.Code == domainerror.ErrCodeSubcategoryNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: categoryErr.Message,
			Code:  string(categoryErr.Code),
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

// getStatusCodeForTemplateError maps template error codes to HTTP status codes.
func (c *TemplateController) getStatusCodeForTemplateError(code domainerror.TemplateErrorCode) int {
	switch code {
	case domainerror.ErrCodeTemplateNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidDueDay,
		domainerror.ErrCodeInvalidScope,
		domainerror.ErrCodeOwnerForbidden,
		domainerror.ErrCodeInvalidSplitRule,
		domainerror.ErrCodeRuleMemberNotActive,
		domainerror.ErrCodeInvalidPeriodicity,
		domainerror.ErrCodeMissingTemplateOwner:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
