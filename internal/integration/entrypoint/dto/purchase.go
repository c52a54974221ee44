package dto

import (
	"time"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// CreateCardRequest represents the request body for credit card creation.
type CreateCardRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Brand      string `json:"brand" binding:"required,oneof=visa mastercard elo amex other"`
	Limit      string `json:"limit" binding:"required"`
	ClosingDay int    `json:"closing_day" binding:"required,min=1,max=28"`
	DueDay     int    `json:"due_day" binding:"required,min=1,max=28"`
}

// UpdateCardRequest represents the request body for credit card update.
type UpdateCardRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Brand      *string `json:"brand,omitempty" binding:"omitempty,oneof=visa mastercard elo amex other"`
	Limit      *string `json:"limit,omitempty"`
	ClosingDay *int    `json:"closing_day,omitempty" binding:"omitempty,min=1,max=28"`
	DueDay     *int    `json:"due_day,omitempty" binding:"omitempty,min=1,max=28"`
	Active     *bool   `json:"active,omitempty"`
}

// CreatePurchaseRequest represents the request body for card purchase creation.
type CreatePurchaseRequest struct {
	CardID           string  `json:"card_id" binding:"required,uuid"`
	Description      string  `json:"description" binding:"required,min=1,max=255"`
	SubcategoryID    string  `json:"subcategory_id" binding:"required,uuid"`
	Scope            string  `json:"scope" binding:"required,oneof=shared personal"`
	OwnerID          *string `json:"owner_id,omitempty" binding:"omitempty,uuid"`
	TotalAmount      string  `json:"total_amount" binding:"required"`
	InstallmentCount int     `json:"installment_count" binding:"required,min=1"`
	FirstPeriod      string  `json:"first_period" binding:"required"`
	FirstDueDate     string  `json:"first_due_date" binding:"required"`
	PayerID          *string `json:"payer_id,omitempty" binding:"omitempty,uuid"`
}

// CardResponse represents a credit card in API responses.
type CardResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Brand      string    `json:"brand"`
	Limit      string    `json:"limit"`
	ClosingDay int       `json:"closing_day"`
	DueDay     int       `json:"due_day"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// CardListResponse represents the response for listing credit cards.
type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
}

// PurchaseResponse represents a card purchase in API responses.
type PurchaseResponse struct {
	ID               string    `json:"id"`
	CardID           string    `json:"card_id"`
	Description      string    `json:"description"`
	SubcategoryID    string    `json:"subcategory_id"`
	Scope            string    `json:"scope"`
	OwnerID          *string   `json:"owner_id,omitempty"`
	TotalAmount      string    `json:"total_amount"`
	InstallmentCount int       `json:"installment_count"`
	FirstPeriod      string    `json:"first_period"`
	FirstDueDate     string    `json:"first_due_date"`
	PayerID          string    `json:"payer_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// PurchaseDetailResponse represents a purchase with its installment line items.
type PurchaseDetailResponse struct {
	Purchase PurchaseResponse         `json:"purchase"`
	Items    []LineItemDetailResponse `json:"items"`
}

// PurchaseListResponse represents the response for listing card purchases.
type PurchaseListResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
}

// ToCardResponse converts a domain CreditCard entity to a CardResponse DTO.
func ToCardResponse(card *entity.CreditCard) CardResponse {
	return CardResponse{
		ID:         card.ID.String(),
		Name:       card.Name,
		Brand:      string(card.Brand),
		Limit:      card.Limit.String(),
		ClosingDay: card.ClosingDay,
		DueDay:     card.DueDay,
		Active:     card.Active,
		CreatedAt:  card.CreatedAt,
	}
}

// ToPurchaseResponse converts a domain CardPurchase entity to a PurchaseResponse DTO.
func ToPurchaseResponse(purchase *entity.CardPurchase) PurchaseResponse {
	response := PurchaseResponse{
		ID:               purchase.ID.String(),
		CardID:           purchase.CardID.String(),
		Description:      purchase.Description,
		SubcategoryID:    purchase.SubcategoryID.String(),
		Scope:            string(purchase.Scope),
		TotalAmount:      purchase.TotalAmount.String(),
		InstallmentCount: purchase.InstallmentCount,
		FirstPeriod:      purchase.FirstPeriod.Format(dateLayout),
		FirstDueDate:     purchase.FirstDueDate.Format(dateLayout),
		PayerID:          purchase.PayerID.String(),
		CreatedAt:        purchase.CreatedAt,
	}
	if purchase.OwnerID != nil {
		ownerID := purchase.OwnerID.String()
		response.OwnerID = &ownerID
	}
	return response
}
