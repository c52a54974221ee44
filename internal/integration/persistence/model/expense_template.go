package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// ExpenseTemplateModel represents the expense_templates table in the database.
type ExpenseTemplateModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HouseholdID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(255);not null"`
	SubcategoryID uuid.UUID       `gorm:"type:uuid;not null"`
	Scope         string          `gorm:"type:varchar(20);not null"`
	OwnerID       *uuid.UUID      `gorm:"type:uuid"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDay        int             `gorm:"not null"`
	Recurring     bool            `gorm:"not null;default:true"`
	Periodicity   string          `gorm:"type:varchar(20);not null"`
	Policy        string          `gorm:"type:varchar(20);not null"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseTemplateModel.
func (ExpenseTemplateModel) TableName() string {
	return "expense_templates"
}

// ToEntity converts an ExpenseTemplateModel to a domain ExpenseTemplate entity.
func (m *ExpenseTemplateModel) ToEntity() *entity.ExpenseTemplate {
	return &entity.ExpenseTemplate{
		ID:            m.ID,
		HouseholdID:   m.HouseholdID,
		Name:          m.Name,
		SubcategoryID: m.SubcategoryID,
		Scope:         entity.ExpenseScope(m.Scope),
		OwnerID:       m.OwnerID,
		Amount:        m.Amount,
		DueDay:        m.DueDay,
		Recurring:     m.Recurring,
		Periodicity:   entity.Periodicity(m.Periodicity),
		Policy:        entity.SplitPolicy(m.Policy),
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ExpenseTemplateFromEntity creates an ExpenseTemplateModel from a domain ExpenseTemplate entity.
func ExpenseTemplateFromEntity(template *entity.ExpenseTemplate) *ExpenseTemplateModel {
	return &ExpenseTemplateModel{
		ID:            template.ID,
		HouseholdID:   template.HouseholdID,
		Name:          template.Name,
		SubcategoryID: template.SubcategoryID,
		Scope:         string(template.Scope),
		OwnerID:       template.OwnerID,
		Amount:        template.Amount,
		DueDay:        template.DueDay,
		Recurring:     template.Recurring,
		Periodicity:   string(template.Periodicity),
		Policy:        string(template.Policy),
		Active:        template.Active,
		CreatedAt:     template.CreatedAt,
		UpdatedAt:     template.UpdatedAt,
	}
}

// SplitRuleModel represents the split_rules table in the database.
type SplitRuleModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TemplateID  uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_split_rules_template_member"`
	MemberID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_split_rules_template_member"`
	Percentage  *decimal.Decimal `gorm:"type:decimal(8,4)"`
	FixedAmount *decimal.Decimal `gorm:"type:decimal(15,2)"`
	CreatedAt   time.Time        `gorm:"not null"`
	UpdatedAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for the SplitRuleModel.
func (SplitRuleModel) TableName() string {
	return "split_rules"
}

// ToEntity converts a SplitRuleModel to a domain SplitRule entity.
func (m *SplitRuleModel) ToEntity() *entity.SplitRule {
	return &entity.SplitRule{
		ID:          m.ID,
		TemplateID:  m.TemplateID,
		MemberID:    m.MemberID,
		Percentage:  m.Percentage,
		FixedAmount: m.FixedAmount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// SplitRuleFromEntity creates a SplitRuleModel from a domain SplitRule entity.
func SplitRuleFromEntity(rule *entity.SplitRule) *SplitRuleModel {
	return &SplitRuleModel{
		ID:          rule.ID,
		TemplateID:  rule.TemplateID,
		MemberID:    rule.MemberID,
		Percentage:  rule.Percentage,
		FixedAmount: rule.FixedAmount,
		CreatedAt:   rule.CreatedAt,
		UpdatedAt:   rule.UpdatedAt,
	}
}
