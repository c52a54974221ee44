// Package template contains expense template use cases.
package template

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// ListTemplatesInput represents the input for listing templates.
type ListTemplatesInput struct {
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
}

// ListTemplatesOutput represents the output of listing templates.
type ListTemplatesOutput struct {
	Templates []*entity.TemplateWithRules
}

// ListTemplatesUseCase handles listing the household's expense templates.
type ListTemplatesUseCase struct {
	templateRepo  adapter.TemplateRepository
	householdRepo adapter.HouseholdRepository
}

// NewListTemplatesUseCase creates a new ListTemplatesUseCase instance.
func NewListTemplatesUseCase(
	templateRepo adapter.TemplateRepository,
	householdRepo adapter.HouseholdRepository,
) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{
		templateRepo:  templateRepo,
		householdRepo: householdRepo,
	}
}

// Execute returns all templates of the household with their split rules.
func (uc *ListTemplatesUseCase) Execute(ctx context.Context, input ListTemplatesInput) (*ListTemplatesOutput, error) {
	isMember, err := uc.householdRepo.IsActiveMember(ctx, input.HouseholdID, input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check household membership: %w", err)
	}
	if !isMember {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeNotHouseholdMember,
			"user is not an active member of the household",
			domainerror.ErrNotHouseholdMember,
		)
	}

	templates, err := uc.templateRepo.FindByHousehold(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	result := make([]*entity.TemplateWithRules, 0, len(templates))
	for _, template := range templates {
		rules, err := uc.templateRepo.FindRulesByTemplate(ctx, template.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load split rules: %w", err)
		}
		result = append(result, &entity.TemplateWithRules{Template: template, Rules: rules})
	}

	return &ListTemplatesOutput{Templates: result}, nil
}
