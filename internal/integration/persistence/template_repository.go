package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	"github.com/shared-expenses/backend/internal/integration/persistence/model"
)

// templateRepository implements the adapter.TemplateRepository interface using GORM.
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new template repository instance.
func NewTemplateRepository(db *gorm.DB) adapter.TemplateRepository {
	return &templateRepository{db: db}
}

// Create creates a new expense template in the database.
func (r *templateRepository) Create(ctx context.Context, template *entity.ExpenseTemplate) error {
	templateModel := model.ExpenseTemplateFromEntity(template)
	if err := r.db.WithContext(ctx).Create(templateModel).Error; err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// FindByID retrieves a template by its ID. Returns nil when no template matches.
func (r *templateRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ExpenseTemplate, error) {
	var templateModel model.ExpenseTemplateModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&templateModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return templateModel.ToEntity(), nil
}

// FindByHousehold retrieves all templates of a household.
func (r *templateRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.ExpenseTemplate, error) {
	var templateModels []model.ExpenseTemplateModel
	err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("name ASC").
		Find(&templateModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find templates: %w", err)
	}
	return templatesToEntities(templateModels), nil
}

// FindActiveByHousehold retrieves the household's active templates.
func (r *templateRepository) FindActiveByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.ExpenseTemplate, error) {
	var templateModels []model.ExpenseTemplateModel
	err := r.db.WithContext(ctx).
		Where("household_id = ? AND active = ?", householdID, true).
		Order("name ASC").
		Find(&templateModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active templates: %w", err)
	}
	return templatesToEntities(templateModels), nil
}

func templatesToEntities(templateModels []model.ExpenseTemplateModel) []*entity.ExpenseTemplate {
	templates := make([]*entity.ExpenseTemplate, len(templateModels))
	for i := range templateModels {
		templates[i] = templateModels[i].ToEntity()
	}
	return templates
}

// Update updates a template.
func (r *templateRepository) Update(ctx context.Context, template *entity.ExpenseTemplate) error {
	templateModel := model.ExpenseTemplateFromEntity(template)
	if err := r.db.WithContext(ctx).Save(templateModel).Error; err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	return nil
}

// Delete removes a template with its split rules. Generated line items keep a
// null template reference instead of being deleted with it.
func (r *templateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.LineItemModel{}).
			Where("template_id = ?", id).
			Update("template_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to detach line items: %w", err)
		}
		if err := tx.Where("template_id = ?", id).Delete(&model.SplitRuleModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete split rules: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&model.ExpenseTemplateModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}
		return nil
	})
}

// FindRulesByTemplate retrieves a template's split rules ordered by member ID.
func (r *templateRepository) FindRulesByTemplate(ctx context.Context, templateID uuid.UUID) ([]*entity.SplitRule, error) {
	var ruleModels []model.SplitRuleModel
	err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("member_id ASC").
		Find(&ruleModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find split rules: %w", err)
	}
	rules := make([]*entity.SplitRule, len(ruleModels))
	for i := range ruleModels {
		rules[i] = ruleModels[i].ToEntity()
	}
	return rules, nil
}

// ReplaceRules atomically replaces all split rules of a template.
func (r *templateRepository) ReplaceRules(ctx context.Context, templateID uuid.UUID, rules []*entity.SplitRule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateID).Delete(&model.SplitRuleModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete split rules: %w", err)
		}
		if len(rules) == 0 {
			return nil
		}
		ruleModels := make([]*model.SplitRuleModel, len(rules))
		for i, rule := range rules {
			ruleModels[i] = model.SplitRuleFromEntity(rule)
		}
		if err := tx.Create(ruleModels).Error; err != nil {
			return fmt.Errorf("failed to create split rules: %w", err)
		}
		return nil
	})
}
