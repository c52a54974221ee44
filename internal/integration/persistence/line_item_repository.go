package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	"github.com/shared-expenses/backend/internal/domain/period"
	"github.com/shared-expenses/backend/internal/integration/persistence/model"
)

// lineItemRepository implements the adapter.LineItemRepository interface using GORM.
type lineItemRepository struct {
	db *gorm.DB
}

// NewLineItemRepository creates a new line item repository instance.
func NewLineItemRepository(db *gorm.DB) adapter.LineItemRepository {
	return &lineItemRepository{db: db}
}

// isUniqueViolation reports whether the insert was rejected by a unique
// constraint. The driver error is checked alongside GORM's translated one
// because translation depends on dialector configuration.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}

// CreateWithAllocations creates a line item and its allocation records in one
// transaction. Returns adapter.ErrDuplicateLineItem when the template/period
// uniqueness backstop rejects the insert.
func (r *lineItemRepository) CreateWithAllocations(ctx context.Context, item *entity.LineItem, allocations []*entity.Allocation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.LineItemFromEntity(item)).Error; err != nil {
			if isUniqueViolation(err) {
				return adapter.ErrDuplicateLineItem
			}
			return fmt.Errorf("failed to create line item: %w", err)
		}
		return createAllocations(tx, allocations)
	})
	return err
}

// CreatePurchaseInstallments creates a purchase together with all its
// installment line items and their allocations in one transaction.
func (r *lineItemRepository) CreatePurchaseInstallments(
	ctx context.Context,
	purchase *entity.CardPurchase,
	items []*entity.LineItem,
	allocations [][]*entity.Allocation,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.CardPurchaseFromEntity(purchase)).Error; err != nil {
			return fmt.Errorf("failed to create card purchase: %w", err)
		}
		for i, item := range items {
			if err := tx.Create(model.LineItemFromEntity(item)).Error; err != nil {
				return fmt.Errorf("failed to create installment line item: %w", err)
			}
			if err := createAllocations(tx, allocations[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func createAllocations(tx *gorm.DB, allocations []*entity.Allocation) error {
	if len(allocations) == 0 {
		return nil
	}
	allocationModels := make([]*model.AllocationModel, len(allocations))
	for i, allocation := range allocations {
		allocationModels[i] = model.AllocationFromEntity(allocation)
	}
	if err := tx.Create(allocationModels).Error; err != nil {
		return fmt.Errorf("failed to create allocations: %w", err)
	}
	return nil
}

// FindByID retrieves a line item by its ID. Returns nil when none matches.
func (r *lineItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LineItem, error) {
	var itemModel model.LineItemModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&itemModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find line item: %w", err)
	}
	return itemModel.ToEntity(), nil
}

// FindByFilter retrieves line items matching the filter, ordered by billing
// period descending then due date.
func (r *lineItemRepository) FindByFilter(ctx context.Context, filter adapter.LineItemFilter) ([]*entity.LineItem, error) {
	query := r.db.WithContext(ctx).
		Model(&model.LineItemModel{}).
		Where("household_id = ?", filter.HouseholdID)
	if filter.BillingPeriod != nil {
		query = query.Where("billing_period = ?", *filter.BillingPeriod)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Scope != nil {
		query = query.Where("scope = ?", string(*filter.Scope))
	}
	if filter.SubcategoryID != nil {
		query = query.Where("subcategory_id = ?", *filter.SubcategoryID)
	}

	var itemModels []model.LineItemModel
	err := query.Order("billing_period DESC, due_date ASC, created_at ASC").Find(&itemModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find line items: %w", err)
	}

	items := make([]*entity.LineItem, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToEntity()
	}
	return items, nil
}

// ExistsForTemplateAndPeriod checks whether a line item was already generated
// for (household, template, billing period).
func (r *lineItemRepository) ExistsForTemplateAndPeriod(ctx context.Context, householdID, templateID uuid.UUID, billingPeriod time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LineItemModel{}).
		Where("household_id = ? AND template_id = ? AND billing_period = ?", householdID, templateID, billingPeriod).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check line item existence: %w", err)
	}
	return count > 0, nil
}

// UpdateFields persists only the named fields of a line item.
func (r *lineItemRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	err := r.db.WithContext(ctx).
		Model(&model.LineItemModel{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("failed to update line item: %w", err)
	}
	return nil
}

// UpdateWithAllocations updates a line item and atomically replaces its
// allocation records.
func (r *lineItemRepository) UpdateWithAllocations(ctx context.Context, item *entity.LineItem, allocations []*entity.Allocation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model.LineItemFromEntity(item)).Error; err != nil {
			return fmt.Errorf("failed to update line item: %w", err)
		}
		if err := tx.Where("line_item_id = ?", item.ID).Delete(&model.AllocationModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete allocations: %w", err)
		}
		return createAllocations(tx, allocations)
	})
}

// FindAllocationsByLineItem retrieves a line item's allocation records.
func (r *lineItemRepository) FindAllocationsByLineItem(ctx context.Context, lineItemID uuid.UUID) ([]*entity.Allocation, error) {
	var allocationModels []model.AllocationModel
	err := r.db.WithContext(ctx).
		Where("line_item_id = ?", lineItemID).
		Order("member_id ASC").
		Find(&allocationModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find allocations: %w", err)
	}
	allocations := make([]*entity.Allocation, len(allocationModels))
	for i := range allocationModels {
		allocations[i] = allocationModels[i].ToEntity()
	}
	return allocations, nil
}

// SummarizeAllocations aggregates allocation amounts for a household and
// billing month, excluding cancelled line items, optionally filtered to a
// single member.
func (r *lineItemRepository) SummarizeAllocations(ctx context.Context, householdID uuid.UUID, year int, month time.Month, memberID *uuid.UUID) (*adapter.AllocationSummary, error) {
	billingPeriod := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	query := r.db.WithContext(ctx).
		Table("allocations").
		Joins("JOIN line_items ON line_items.id = allocations.line_item_id").
		Joins("JOIN subcategories ON subcategories.id = line_items.subcategory_id").
		Joins("JOIN categories ON categories.id = subcategories.category_id").
		Where("line_items.household_id = ?", householdID).
		Where("line_items.billing_period = ?", billingPeriod.Format(period.Layout)).
		Where("line_items.status IN ?", []string{string(entity.StatusPending), string(entity.StatusPaid)})
	if memberID != nil {
		query = query.Where("allocations.member_id = ?", *memberID)
	}

	var rows []struct {
		CategoryID   uuid.UUID
		CategoryName string
		Amount       decimal.Decimal
	}
	err := query.
		Select("categories.id as category_id, categories.name as category_name, COALESCE(SUM(allocations.amount), 0) as amount").
		Group("categories.id, categories.name").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize allocations: %w", err)
	}

	summary := &adapter.AllocationSummary{
		TotalSpent:      decimal.Zero,
		SpendByCategory: make([]adapter.CategorySpend, len(rows)),
	}
	for i, row := range rows {
		summary.SpendByCategory[i] = adapter.CategorySpend{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Amount:       row.Amount,
		}
		summary.TotalSpent = summary.TotalSpent.Add(row.Amount)
	}
	return summary, nil
}
