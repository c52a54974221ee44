package dto

import (
	"time"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// CreateHouseholdRequest represents the request body for household creation.
type CreateHouseholdRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Nickname string `json:"nickname,omitempty" binding:"omitempty,max=100"`
}

// InviteMemberRequest represents the request body for adding a member.
type InviteMemberRequest struct {
	UsernameOrEmail string `json:"username_or_email" binding:"required"`
	Nickname        string `json:"nickname,omitempty" binding:"omitempty,max=100"`
}

// UpdateMemberRequest represents the request body for updating a membership.
type UpdateMemberRequest struct {
	Nickname      *string `json:"nickname,omitempty" binding:"omitempty,min=1,max=100"`
	MonthlyIncome *string `json:"monthly_income,omitempty"`
}

// HouseholdResponse represents a household in API responses.
type HouseholdResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberResponse represents a household membership in API responses.
type MemberResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Nickname      string    `json:"nickname"`
	Active        bool      `json:"active"`
	MonthlyIncome string    `json:"monthly_income"`
	UserName      string    `json:"user_name,omitempty"`
	UserEmail     string    `json:"user_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// HouseholdDetailResponse represents a household with its members.
type HouseholdDetailResponse struct {
	Household HouseholdResponse `json:"household"`
	Members   []MemberResponse  `json:"members"`
}

// ToHouseholdResponse converts a domain Household entity to a HouseholdResponse DTO.
func ToHouseholdResponse(household *entity.Household) HouseholdResponse {
	return HouseholdResponse{
		ID:        household.ID.String(),
		Name:      household.Name,
		CreatedAt: household.CreatedAt,
	}
}

// ToMemberResponse converts a domain HouseholdMember entity to a MemberResponse DTO.
func ToMemberResponse(member *entity.HouseholdMember) MemberResponse {
	return MemberResponse{
		ID:            member.ID.String(),
		UserID:        member.UserID.String(),
		Nickname:      member.Nickname,
		Active:        member.Active,
		MonthlyIncome: member.MonthlyIncome.String(),
		UserName:      member.UserName,
		UserEmail:     member.UserEmail,
		CreatedAt:     member.CreatedAt,
	}
}

// ToHouseholdDetailResponse converts a household with members to a detail DTO.
func ToHouseholdDetailResponse(detail *entity.HouseholdWithMembers) HouseholdDetailResponse {
	members := make([]MemberResponse, len(detail.Members))
	for i, member := range detail.Members {
		members[i] = ToMemberResponse(member)
	}
	return HouseholdDetailResponse{
		Household: ToHouseholdResponse(detail.Household),
		Members:   members,
	}
}
