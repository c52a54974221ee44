package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/dto"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/middleware"
)

const dateLayout = "2006-01-02"

// errSubCentAmount flags amounts with more than 2 decimal places.
var errSubCentAmount = errors.New("amount has more than 2 decimal places")

// requireUserID extracts the authenticated user ID or writes a 401 response.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseUUIDParam parses a UUID path parameter or writes a 400 response.
func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + name + " parameter",
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseUUIDField parses a required UUID body field or writes a 400 response.
func parseUUIDField(ctx *gin.Context, value, field string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + field,
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseAmount parses a decimal amount string or writes a 400 response.
// Amounts are stored with 2 decimal places, so finer inputs are rejected
// rather than silently rounded.
func parseAmount(ctx *gin.Context, value, field string) (decimal.Decimal, bool) {
	amount, err := parseMonetary(value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + field + ": expected a decimal with at most 2 decimal places",
		})
		return decimal.Zero, false
	}
	return amount, true
}

// parseMonetary parses a decimal string and rejects sub-cent precision.
func parseMonetary(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Zero, errSubCentAmount
	}
	return amount, nil
}

// parseDate parses a YYYY-MM-DD date string or writes a 400 response.
func parseDate(ctx *gin.Context, value, field string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + field + ": expected YYYY-MM-DD",
		})
		return time.Time{}, false
	}
	return date, true
}

// optionalUUID parses an optional UUID string pointer.
func optionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// optionalAmount parses an optional decimal string pointer, with the same
// 2-decimal-place limit as parseAmount.
func optionalAmount(value *string) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	amount, err := parseMonetary(*value)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}
