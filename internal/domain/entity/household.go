// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxActiveMembers is the maximum number of active members a household can have.
const MaxActiveMembers = 2

// Household represents a group of people that share a pool of expenses.
type Household struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewHousehold creates a new Household entity.
func NewHousehold(name string) *Household {
	now := time.Now().UTC()
	return &Household{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HouseholdMember links a user to a household. Members are deactivated on
// departure, never deleted, so historical allocations stay attributable.
type HouseholdMember struct {
	ID            uuid.UUID
	HouseholdID   uuid.UUID
	UserID        uuid.UUID
	Nickname      string
	Active        bool
	MonthlyIncome decimal.Decimal // declared income, used for reporting only
	CreatedAt     time.Time
	UpdatedAt     time.Time
	// User information (populated when needed)
	UserName  string
	UserEmail string
}

// NewHouseholdMember creates a new active HouseholdMember entity.
func NewHouseholdMember(householdID, userID uuid.UUID, nickname string) *HouseholdMember {
	now := time.Now().UTC()
	return &HouseholdMember{
		ID:            uuid.New(),
		HouseholdID:   householdID,
		UserID:        userID,
		Nickname:      nickname,
		Active:        true,
		MonthlyIncome: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// HouseholdWithMembers represents a household with its member list.
type HouseholdWithMembers struct {
	Household *Household
	Members   []*HouseholdMember
}
