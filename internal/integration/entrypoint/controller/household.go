package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shared-expenses/backend/internal/application/usecase/household"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/dto"
)

// HouseholdController handles household and membership endpoints.
type HouseholdController struct {
	createUseCase     *household.CreateHouseholdUseCase
	getUseCase        *household.GetHouseholdUseCase
	inviteUseCase     *household.InviteMemberUseCase
	updateUseCase     *household.UpdateMemberUseCase
	deactivateUseCase *household.DeactivateMemberUseCase
}

// NewHouseholdController creates a new household controller instance.
func NewHouseholdController(
	createUseCase *household.CreateHouseholdUseCase,
	getUseCase *household.GetHouseholdUseCase,
	inviteUseCase *household.InviteMemberUseCase,
	updateUseCase *household.UpdateMemberUseCase,
	deactivateUseCase *household.DeactivateMemberUseCase,
) *HouseholdController {
	return &HouseholdController{
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		inviteUseCase:     inviteUseCase,
		updateUseCase:     updateUseCase,
		deactivateUseCase: deactivateUseCase,
	}
}

// Create handles POST /households requests.
func (c *HouseholdController) Create(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateHouseholdRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingHouseholdFields),
		})
		return
	}

	input := household.CreateHouseholdInput{
		ActorID:  actorID,
		Name:     req.Name,
		Nickname: req.Nickname,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.HouseholdDetailResponse{
		Household: dto.ToHouseholdResponse(output.Household),
		Members:   []dto.MemberResponse{dto.ToMemberResponse(output.Member)},
	})
}

// GetMine handles GET /households/me requests.
func (c *HouseholdController) GetMine(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := household.GetHouseholdInput{ActorID: actorID}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHouseholdDetailResponse(output.Household))
}

// InviteMember handles POST /households/:householdId/members requests.
func (c *HouseholdController) InviteMember(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	var req dto.InviteMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingHouseholdFields),
		})
		return
	}

	input := household.InviteMemberInput{
		HouseholdID:     householdID,
		ActorID:         actorID,
		UsernameOrEmail: req.UsernameOrEmail,
		Nickname:        req.Nickname,
	}

	output, err := c.inviteUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMemberResponse(output.Member))
}

// UpdateMember handles PATCH /households/:householdId/members/:memberId requests.
func (c *HouseholdController) UpdateMember(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	memberID, ok := parseUUIDParam(ctx, "memberId")
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingHouseholdFields),
		})
		return
	}

	monthlyIncome, err := optionalAmount(req.MonthlyIncome)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid monthly_income: expected a decimal string",
		})
		return
	}

	input := household.UpdateMemberInput{
		MemberID:      memberID,
		HouseholdID:   householdID,
		ActorID:       actorID,
		Nickname:      req.Nickname,
		MonthlyIncome: monthlyIncome,
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMemberResponse(output.Member))
}

// DeactivateMember handles DELETE /households/:householdId/members/:memberId requests.
func (c *HouseholdController) DeactivateMember(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}
	memberID, ok := parseUUIDParam(ctx, "memberId")
	if !ok {
		return
	}

	input := household.DeactivateMemberInput{
		MemberID:    memberID,
		HouseholdID: householdID,
		ActorID:     actorID,
	}

	output, err := c.deactivateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMemberResponse(output.Member))
}

// handleHouseholdError converts household errors to HTTP responses.
func (c *HouseholdController) handleHouseholdError(ctx *gin.Context, err error) {
	var householdErr *domainerror.HouseholdError
	if errors.As(err, &householdErr) {
		statusCode := c.getStatusCodeForHouseholdError(householdErr.Code)
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

// getStatusCodeForHouseholdError maps household error codes to HTTP status codes.
func (c *HouseholdController) getStatusCodeForHouseholdError(code domainerror.HouseholdErrorCode) int {
	switch code {
	case domainerror.ErrCodeHouseholdNotFound,
		domainerror.ErrCodeNoActiveHousehold,
		domainerror.ErrCodeMemberNotFound,
		domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotHouseholdMember:
		return http.StatusForbidden
	case domainerror.ErrCodeHouseholdFull,
		domainerror.ErrCodeAlreadyInHousehold:
		return http.StatusConflict
	case domainerror.ErrCodeMissingHouseholdFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
