package dto

import (
	"time"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// CreateLineItemRequest represents the request body for manual line item creation.
type CreateLineItemRequest struct {
	SubcategoryID string  `json:"subcategory_id" binding:"required,uuid"`
	Scope         string  `json:"scope" binding:"required,oneof=shared personal"`
	OwnerID       *string `json:"owner_id,omitempty" binding:"omitempty,uuid"`
	Description   string  `json:"description" binding:"required,min=1,max=255"`
	BillingPeriod string  `json:"billing_period" binding:"required"`
	DueDate       string  `json:"due_date" binding:"required"`
	TotalAmount   string  `json:"total_amount" binding:"required"`
	PayerID       *string `json:"payer_id,omitempty" binding:"omitempty,uuid"`
}

// UpdateLineItemRequest represents the request body for line item update.
type UpdateLineItemRequest struct {
	Description   *string `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	SubcategoryID *string `json:"subcategory_id,omitempty" binding:"omitempty,uuid"`
	Scope         *string `json:"scope,omitempty" binding:"omitempty,oneof=shared personal"`
	OwnerID       *string `json:"owner_id,omitempty" binding:"omitempty,uuid"`
	DueDate       *string `json:"due_date,omitempty"`
	TotalAmount   *string `json:"total_amount,omitempty"`
	PayerID       *string `json:"payer_id,omitempty" binding:"omitempty,uuid"`
}

// SettleLineItemRequest represents the request body for settling a line item.
type SettleLineItemRequest struct {
	PaymentDate *string `json:"payment_date,omitempty"`
	PayerID     *string `json:"payer_id,omitempty" binding:"omitempty,uuid"`
}

// AllocationResponse represents a member's share of a line item.
type AllocationResponse struct {
	ID         string  `json:"id"`
	MemberID   string  `json:"member_id"`
	Percentage *string `json:"percentage,omitempty"`
	Amount     string  `json:"amount"`
}

// LineItemResponse represents a line item in API responses.
type LineItemResponse struct {
	ID                string     `json:"id"`
	TemplateID        *string    `json:"template_id,omitempty"`
	PurchaseID        *string    `json:"purchase_id,omitempty"`
	InstallmentNumber *int       `json:"installment_number,omitempty"`
	InstallmentCount  *int       `json:"installment_count,omitempty"`
	SubcategoryID     string     `json:"subcategory_id"`
	Scope             string     `json:"scope"`
	OwnerID           *string    `json:"owner_id,omitempty"`
	Description       string     `json:"description"`
	BillingPeriod     string     `json:"billing_period"`
	DueDate           string     `json:"due_date"`
	TotalAmount       string     `json:"total_amount"`
	Status            string     `json:"status"`
	PaymentDate       *string    `json:"payment_date,omitempty"`
	PayerID           string     `json:"payer_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// LineItemDetailResponse represents a line item with its allocations.
type LineItemDetailResponse struct {
	LineItemResponse
	Allocations []AllocationResponse `json:"allocations"`
}

// LineItemListResponse represents the response for listing line items.
type LineItemListResponse struct {
	Items []LineItemResponse `json:"items"`
}

// ToAllocationResponse converts a domain Allocation entity to an AllocationResponse DTO.
func ToAllocationResponse(allocation *entity.Allocation) AllocationResponse {
	response := AllocationResponse{
		ID:       allocation.ID.String(),
		MemberID: allocation.MemberID.String(),
		Amount:   allocation.Amount.String(),
	}
	if allocation.Percentage != nil {
		percentage := allocation.Percentage.String()
		response.Percentage = &percentage
	}
	return response
}

// ToLineItemResponse converts a domain LineItem entity to a LineItemResponse DTO.
func ToLineItemResponse(item *entity.LineItem) LineItemResponse {
	response := LineItemResponse{
		ID:                item.ID.String(),
		InstallmentNumber: item.InstallmentNumber,
		InstallmentCount:  item.InstallmentCount,
		SubcategoryID:     item.SubcategoryID.String(),
		Scope:             string(item.Scope),
		Description:       item.Description,
		BillingPeriod:     item.BillingPeriod.Format(dateLayout),
		DueDate:           item.DueDate.Format(dateLayout),
		TotalAmount:       item.TotalAmount.String(),
		Status:            string(item.Status),
		PayerID:           item.PayerID.String(),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
	if item.TemplateID != nil {
		templateID := item.TemplateID.String()
		response.TemplateID = &templateID
	}
	if item.PurchaseID != nil {
		purchaseID := item.PurchaseID.String()
		response.PurchaseID = &purchaseID
	}
	if item.OwnerID != nil {
		ownerID := item.OwnerID.String()
		response.OwnerID = &ownerID
	}
	if item.PaymentDate != nil {
		paymentDate := item.PaymentDate.Format(dateLayout)
		response.PaymentDate = &paymentDate
	}
	return response
}

// ToLineItemDetailResponse converts a line item and its allocations to a detail DTO.
func ToLineItemDetailResponse(item *entity.LineItem, allocations []*entity.Allocation) LineItemDetailResponse {
	allocationResponses := make([]AllocationResponse, len(allocations))
	for i, allocation := range allocations {
		allocationResponses[i] = ToAllocationResponse(allocation)
	}
	return LineItemDetailResponse{
		LineItemResponse: ToLineItemResponse(item),
		Allocations:      allocationResponses,
	}
}

// ToLineItemListResponse converts line items to a list DTO.
func ToLineItemListResponse(items []*entity.LineItem) LineItemListResponse {
	responses := make([]LineItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToLineItemResponse(item)
	}
	return LineItemListResponse{Items: responses}
}
