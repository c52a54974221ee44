package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// LineItemModel represents the line_items table in the database.
//
// The composite unique index on (household_id, template_id, billing_period)
// is the database backstop for idempotent billing-period generation: two
// concurrent generations of the same period can pass the existence check,
// but only one insert wins.
type LineItemModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HouseholdID       uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_line_items_template_period"`
	TemplateID        *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_line_items_template_period"`
	PurchaseID        *uuid.UUID      `gorm:"type:uuid;index"`
	InstallmentNumber *int
	InstallmentCount  *int
	SubcategoryID     uuid.UUID       `gorm:"type:uuid;not null"`
	Scope             string          `gorm:"type:varchar(20);not null"`
	OwnerID           *uuid.UUID      `gorm:"type:uuid"`
	Description       string          `gorm:"type:varchar(255);not null"`
	BillingPeriod     time.Time       `gorm:"type:date;not null;index;uniqueIndex:idx_line_items_template_period"`
	DueDate           time.Time       `gorm:"type:date;not null"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status            string          `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentDate       *time.Time      `gorm:"type:date"`
	PayerID           uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedByID       uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the LineItemModel.
func (LineItemModel) TableName() string {
	return "line_items"
}

// ToEntity converts a LineItemModel to a domain LineItem entity.
func (m *LineItemModel) ToEntity() *entity.LineItem {
	return &entity.LineItem{
		ID:                m.ID,
		HouseholdID:       m.HouseholdID,
		TemplateID:        m.TemplateID,
		PurchaseID:        m.PurchaseID,
		InstallmentNumber: m.InstallmentNumber,
		InstallmentCount:  m.InstallmentCount,
		SubcategoryID:     m.SubcategoryID,
		Scope:             entity.ExpenseScope(m.Scope),
		OwnerID:           m.OwnerID,
		Description:       m.Description,
		BillingPeriod:     m.BillingPeriod,
		DueDate:           m.DueDate,
		TotalAmount:       m.TotalAmount,
		Status:            entity.LineItemStatus(m.Status),
		PaymentDate:       m.PaymentDate,
		PayerID:           m.PayerID,
		CreatedByID:       m.CreatedByID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// LineItemFromEntity creates a LineItemModel from a domain LineItem entity.
func LineItemFromEntity(item *entity.LineItem) *LineItemModel {
	return &LineItemModel{
		ID:                item.ID,
		HouseholdID:       item.HouseholdID,
		TemplateID:        item.TemplateID,
		PurchaseID:        item.PurchaseID,
		InstallmentNumber: item.InstallmentNumber,
		InstallmentCount:  item.InstallmentCount,
		SubcategoryID:     item.SubcategoryID,
		Scope:             string(item.Scope),
		OwnerID:           item.OwnerID,
		Description:       item.Description,
		BillingPeriod:     item.BillingPeriod,
		DueDate:           item.DueDate,
		TotalAmount:       item.TotalAmount,
		Status:            string(item.Status),
		PaymentDate:       item.PaymentDate,
		PayerID:           item.PayerID,
		CreatedByID:       item.CreatedByID,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

// AllocationModel represents the allocations table in the database.
type AllocationModel struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	LineItemID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_allocations_item_member"`
	MemberID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_allocations_item_member;index"`
	Percentage *decimal.Decimal `gorm:"type:decimal(8,4)"`
	Amount     decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	CreatedAt  time.Time        `gorm:"not null"`
	UpdatedAt  time.Time        `gorm:"not null"`
}

// TableName returns the table name for the AllocationModel.
func (AllocationModel) TableName() string {
	return "allocations"
}

// ToEntity converts an AllocationModel to a domain Allocation entity.
func (m *AllocationModel) ToEntity() *entity.Allocation {
	return &entity.Allocation{
		ID:         m.ID,
		LineItemID: m.LineItemID,
		MemberID:   m.MemberID,
		Percentage: m.Percentage,
		Amount:     m.Amount,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// AllocationFromEntity creates an AllocationModel from a domain Allocation entity.
func AllocationFromEntity(allocation *entity.Allocation) *AllocationModel {
	return &AllocationModel{
		ID:         allocation.ID,
		LineItemID: allocation.LineItemID,
		MemberID:   allocation.MemberID,
		Percentage: allocation.Percentage,
		Amount:     allocation.Amount,
		CreatedAt:  allocation.CreatedAt,
		UpdatedAt:  allocation.UpdatedAt,
	}
}
