package dto

import (
	"time"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// CreateTemplateRequest represents the request body for template creation.
type CreateTemplateRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=255"`
	SubcategoryID string  `json:"subcategory_id" binding:"required,uuid"`
	Scope         string  `json:"scope" binding:"required,oneof=shared personal"`
	OwnerID       *string `json:"owner_id,omitempty" binding:"omitempty,uuid"`
	Amount        string  `json:"amount" binding:"required"`
	DueDay        int     `json:"due_day" binding:"required,min=1,max=31"`
	Recurring     bool    `json:"recurring"`
	Periodicity   string  `json:"periodicity" binding:"required,oneof=monthly yearly once"`
	Policy        string  `json:"policy" binding:"required,oneof=equal percentage fixed_amount"`
}

// UpdateTemplateRequest represents the request body for template update.
type UpdateTemplateRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	SubcategoryID *string `json:"subcategory_id,omitempty" binding:"omitempty,uuid"`
	Amount        *string `json:"amount,omitempty"`
	DueDay        *int    `json:"due_day,omitempty" binding:"omitempty,min=1,max=31"`
	Recurring     *bool   `json:"recurring,omitempty"`
	Periodicity   *string `json:"periodicity,omitempty" binding:"omitempty,oneof=monthly yearly once"`
	Policy        *string `json:"policy,omitempty" binding:"omitempty,oneof=equal percentage fixed_amount"`
	Active        *bool   `json:"active,omitempty"`
}

// SplitRuleRequest represents a single split rule in a replace request.
type SplitRuleRequest struct {
	MemberID    string  `json:"member_id" binding:"required,uuid"`
	Percentage  *string `json:"percentage,omitempty"`
	FixedAmount *string `json:"fixed_amount,omitempty"`
}

// ReplaceRulesRequest represents the request body for replacing split rules.
type ReplaceRulesRequest struct {
	Rules []SplitRuleRequest `json:"rules" binding:"required"`
}

// GeneratePeriodRequest represents the request body for billing period generation.
type GeneratePeriodRequest struct {
	Period string `json:"period" binding:"required"` // YYYY-MM-DD, any day of the target month
}

// TemplateResponse represents an expense template in API responses.
type TemplateResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SubcategoryID string    `json:"subcategory_id"`
	Scope         string    `json:"scope"`
	OwnerID       *string   `json:"owner_id,omitempty"`
	Amount        string    `json:"amount"`
	DueDay        int       `json:"due_day"`
	Recurring     bool      `json:"recurring"`
	Periodicity   string    `json:"periodicity"`
	Policy        string    `json:"policy"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// SplitRuleResponse represents a split rule in API responses.
type SplitRuleResponse struct {
	ID          string  `json:"id"`
	MemberID    string  `json:"member_id"`
	Percentage  *string `json:"percentage,omitempty"`
	FixedAmount *string `json:"fixed_amount,omitempty"`
}

// TemplateWithRulesResponse represents a template with its split rules.
type TemplateWithRulesResponse struct {
	TemplateResponse
	Rules []SplitRuleResponse `json:"rules"`
}

// TemplateListResponse represents the response for listing templates.
type TemplateListResponse struct {
	Templates []TemplateWithRulesResponse `json:"templates"`
}

// GeneratePeriodResponse represents the response for billing period generation.
type GeneratePeriodResponse struct {
	Created []LineItemDetailResponse `json:"created"`
}

// ToTemplateResponse converts a domain ExpenseTemplate entity to a TemplateResponse DTO.
func ToTemplateResponse(template *entity.ExpenseTemplate) TemplateResponse {
	response := TemplateResponse{
		ID:            template.ID.String(),
		Name:          template.Name,
		SubcategoryID: template.SubcategoryID.String(),
		Scope:         string(template.Scope),
		Amount:        template.Amount.String(),
		DueDay:        template.DueDay,
		Recurring:     template.Recurring,
		Periodicity:   string(template.Periodicity),
		Policy:        string(template.Policy),
		Active:        template.Active,
		CreatedAt:     template.CreatedAt,
	}
	if template.OwnerID != nil {
		ownerID := template.OwnerID.String()
		response.OwnerID = &ownerID
	}
	return response
}

// ToSplitRuleResponse converts a domain SplitRule entity to a SplitRuleResponse DTO.
func ToSplitRuleResponse(rule *entity.SplitRule) SplitRuleResponse {
	response := SplitRuleResponse{
		ID:       rule.ID.String(),
		MemberID: rule.MemberID.String(),
	}
	if rule.Percentage != nil {
		percentage := rule.Percentage.String()
		response.Percentage = &percentage
	}
	if rule.FixedAmount != nil {
		fixedAmount := rule.FixedAmount.String()
		response.FixedAmount = &fixedAmount
	}
	return response
}

// ToTemplateListResponse converts templates with rules to a list DTO.
func ToTemplateListResponse(templates []*entity.TemplateWithRules) TemplateListResponse {
	result := make([]TemplateWithRulesResponse, len(templates))
	for i, t := range templates {
		rules := make([]SplitRuleResponse, len(t.Rules))
		for j, rule := range t.Rules {
			rules[j] = ToSplitRuleResponse(rule)
		}
		result[i] = TemplateWithRulesResponse{
			TemplateResponse: ToTemplateResponse(t.Template),
			Rules:            rules,
		}
	}
	return TemplateListResponse{Templates: result}
}
