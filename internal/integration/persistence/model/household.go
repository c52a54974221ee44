package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// HouseholdModel represents the households table in the database.
type HouseholdModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the HouseholdModel.
func (HouseholdModel) TableName() string {
	return "households"
}

// ToEntity converts a HouseholdModel to a domain Household entity.
func (m *HouseholdModel) ToEntity() *entity.Household {
	return &entity.Household{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// HouseholdFromEntity creates a HouseholdModel from a domain Household entity.
func HouseholdFromEntity(household *entity.Household) *HouseholdModel {
	return &HouseholdModel{
		ID:        household.ID,
		Name:      household.Name,
		CreatedAt: household.CreatedAt,
		UpdatedAt: household.UpdatedAt,
	}
}

// HouseholdMemberModel represents the household_members table in the database.
type HouseholdMemberModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HouseholdID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_household_members_household_user"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_household_members_household_user;index"`
	Nickname      string          `gorm:"type:varchar(100);not null"`
	Active        bool            `gorm:"not null;default:true"`
	MonthlyIncome decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the HouseholdMemberModel.
func (HouseholdMemberModel) TableName() string {
	return "household_members"
}

// ToEntity converts a HouseholdMemberModel to a domain HouseholdMember entity.
func (m *HouseholdMemberModel) ToEntity() *entity.HouseholdMember {
	return &entity.HouseholdMember{
		ID:            m.ID,
		HouseholdID:   m.HouseholdID,
		UserID:        m.UserID,
		Nickname:      m.Nickname,
		Active:        m.Active,
		MonthlyIncome: m.MonthlyIncome,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// HouseholdMemberFromEntity creates a HouseholdMemberModel from a domain HouseholdMember entity.
func HouseholdMemberFromEntity(member *entity.HouseholdMember) *HouseholdMemberModel {
	return &HouseholdMemberModel{
		ID:            member.ID,
		HouseholdID:   member.HouseholdID,
		UserID:        member.UserID,
		Nickname:      member.Nickname,
		Active:        member.Active,
		MonthlyIncome: member.MonthlyIncome,
		CreatedAt:     member.CreatedAt,
		UpdatedAt:     member.UpdatedAt,
	}
}
