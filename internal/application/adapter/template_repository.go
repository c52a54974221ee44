// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// TemplateRepository defines the interface for expense template persistence operations.
type TemplateRepository interface {
	// Create creates a new expense template in the database.
	Create(ctx context.Context, template *entity.ExpenseTemplate) error

	// FindByID retrieves a template by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ExpenseTemplate, error)

	// FindByHousehold retrieves all templates of a household.
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.ExpenseTemplate, error)

	// FindActiveByHousehold retrieves the household's active templates.
	FindActiveByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.ExpenseTemplate, error)

	// Update updates a template.
	Update(ctx context.Context, template *entity.ExpenseTemplate) error

	// Delete removes a template. Line items generated from it keep a null
	// template reference; they are never deleted with it.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindRulesByTemplate retrieves a template's split rules in a stable order.
	FindRulesByTemplate(ctx context.Context, templateID uuid.UUID) ([]*entity.SplitRule, error)

	// ReplaceRules atomically replaces all split rules of a template.
	ReplaceRules(ctx context.Context, templateID uuid.UUID, rules []*entity.SplitRule) error
}
