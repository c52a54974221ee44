package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shared-expenses/backend/internal/application/usecase/report"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/dto"
)

// ReportController handles reporting endpoints.
type ReportController struct {
	getSummaryUseCase *report.GetSummaryUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(getSummaryUseCase *report.GetSummaryUseCase) *ReportController {
	return &ReportController{getSummaryUseCase: getSummaryUseCase}
}

// GetSummary handles GET /households/:householdId/reports/summary requests.
// The target month comes from the year and month query parameters; an
// optional member_id narrows the summary to one member's shares.
func (c *ReportController) GetSummary(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	householdID, ok := parseUUIDParam(ctx, "householdId")
	if !ok {
		return
	}

	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil || year < 1 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid year parameter",
		})
		return
	}
	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil || month < 1 || month > 12 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month parameter: expected 1-12",
		})
		return
	}

	input := report.GetSummaryInput{
		HouseholdID: householdID,
		ActorID:     actorID,
		Year:        year,
		Month:       time.Month(month),
	}

	if raw := ctx.Query("member_id"); raw != "" {
		memberID, parseErr := optionalUUID(&raw)
		if parseErr != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid member_id",
			})
			return
		}
		input.MemberID = memberID
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// handleReportError converts household errors to HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
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
