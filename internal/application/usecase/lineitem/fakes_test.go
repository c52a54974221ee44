package lineitem

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	"github.com/shared-expenses/backend/internal/domain/period"
)

// fakeLineItemRepo is an in-memory adapter.LineItemRepository. UpdateFields
// keeps the last written field map so transitions can be asserted on.
type fakeLineItemRepo struct {
	items       map[uuid.UUID]*entity.LineItem
	allocations map[uuid.UUID][]*entity.Allocation
	lastFields  map[string]interface{}
}

func newFakeLineItemRepo() *fakeLineItemRepo {
	return &fakeLineItemRepo{
		items:       make(map[uuid.UUID]*entity.LineItem),
		allocations: make(map[uuid.UUID][]*entity.Allocation),
	}
}

func (r *fakeLineItemRepo) CreateWithAllocations(_ context.Context, item *entity.LineItem, allocations []*entity.Allocation) error {
	r.items[item.ID] = item
	r.allocations[item.ID] = allocations
	return nil
}

func (r *fakeLineItemRepo) CreatePurchaseInstallments(
	_ context.Context,
	_ *entity.CardPurchase,
	items []*entity.LineItem,
	allocations [][]*entity.Allocation,
) error {
	for i, item := range items {
		r.items[item.ID] = item
		r.allocations[item.ID] = allocations[i]
	}
	return nil
}

func (r *fakeLineItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.LineItem, error) {
	return r.items[id], nil
}

func (r *fakeLineItemRepo) FindByFilter(_ context.Context, filter adapter.LineItemFilter) ([]*entity.LineItem, error) {
	var result []*entity.LineItem
	for _, item := range r.items {
		if item.HouseholdID != filter.HouseholdID {
			continue
		}
		if filter.Status != nil && item.Status != *filter.Status {
			continue
		}
		if filter.Scope != nil && item.Scope != *filter.Scope {
			continue
		}
		if filter.SubcategoryID != nil && item.SubcategoryID != *filter.SubcategoryID {
			continue
		}
		if filter.BillingPeriod != nil &&
			item.BillingPeriod.Format(period.Layout) != filter.BillingPeriod.Format(period.Layout) {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *fakeLineItemRepo) ExistsForTemplateAndPeriod(_ context.Context, householdID, templateID uuid.UUID, billingPeriod time.Time) (bool, error) {
	for _, item := range r.items {
		if item.HouseholdID == householdID &&
			item.TemplateID != nil && *item.TemplateID == templateID &&
			item.BillingPeriod.Format(period.Layout) == billingPeriod.Format(period.Layout) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLineItemRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.lastFields = fields
	return nil
}

func (r *fakeLineItemRepo) UpdateWithAllocations(_ context.Context, item *entity.LineItem, allocations []*entity.Allocation) error {
	r.items[item.ID] = item
	r.allocations[item.ID] = allocations
	return nil
}

func (r *fakeLineItemRepo) FindAllocationsByLineItem(_ context.Context, lineItemID uuid.UUID) ([]*entity.Allocation, error) {
	return r.allocations[lineItemID], nil
}

func (r *fakeLineItemRepo) SummarizeAllocations(_ context.Context, _ uuid.UUID, _ int, _ time.Month, _ *uuid.UUID) (*adapter.AllocationSummary, error) {
	return &adapter.AllocationSummary{TotalSpent: decimal.Zero}, nil
}

// fakeTemplateRepo is an in-memory adapter.TemplateRepository. Only lookup is
// meaningful: line item edits read the originating template's policy.
type fakeTemplateRepo struct {
	templates map[uuid.UUID]*entity.ExpenseTemplate
	rules     map[uuid.UUID][]*entity.SplitRule
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{
		templates: make(map[uuid.UUID]*entity.ExpenseTemplate),
		rules:     make(map[uuid.UUID][]*entity.SplitRule),
	}
}

func (r *fakeTemplateRepo) Create(_ context.Context, template *entity.ExpenseTemplate) error {
	r.templates[template.ID] = template
	return nil
}

func (r *fakeTemplateRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ExpenseTemplate, error) {
	return r.templates[id], nil
}

func (r *fakeTemplateRepo) FindByHousehold(_ context.Context, _ uuid.UUID) ([]*entity.ExpenseTemplate, error) {
	return nil, nil
}

func (r *fakeTemplateRepo) FindActiveByHousehold(_ context.Context, _ uuid.UUID) ([]*entity.ExpenseTemplate, error) {
	return nil, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, template *entity.ExpenseTemplate) error {
	r.templates[template.ID] = template
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.templates, id)
	return nil
}

func (r *fakeTemplateRepo) FindRulesByTemplate(_ context.Context, templateID uuid.UUID) ([]*entity.SplitRule, error) {
	return r.rules[templateID], nil
}

func (r *fakeTemplateRepo) ReplaceRules(_ context.Context, templateID uuid.UUID, rules []*entity.SplitRule) error {
	r.rules[templateID] = rules
	return nil
}

// fakeHouseholdRepo is an in-memory adapter.HouseholdRepository with a fixed
// set of active member user IDs.
type fakeHouseholdRepo struct {
	householdID uuid.UUID
	memberIDs   []uuid.UUID
}

func (r *fakeHouseholdRepo) Create(_ context.Context, _ *entity.Household) error { return nil }

func (r *fakeHouseholdRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Household, error) {
	return nil, nil
}

func (r *fakeHouseholdRepo) FindActiveByUserID(_ context.Context, _ uuid.UUID) (*entity.Household, error) {
	return nil, nil
}

func (r *fakeHouseholdRepo) GetWithMembers(_ context.Context, _ uuid.UUID) (*entity.HouseholdWithMembers, error) {
	return nil, nil
}

func (r *fakeHouseholdRepo) CreateMember(_ context.Context, _ *entity.HouseholdMember) error {
	return nil
}

func (r *fakeHouseholdRepo) FindMemberByID(_ context.Context, _ uuid.UUID) (*entity.HouseholdMember, error) {
	return nil, nil
}

func (r *fakeHouseholdRepo) UpdateMember(_ context.Context, _ *entity.HouseholdMember) error {
	return nil
}

func (r *fakeHouseholdRepo) ActiveMemberUserIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return r.memberIDs, nil
}

func (r *fakeHouseholdRepo) CountActiveMembers(_ context.Context, _ uuid.UUID) (int, error) {
	return len(r.memberIDs), nil
}

func (r *fakeHouseholdRepo) IsActiveMember(_ context.Context, householdID, userID uuid.UUID) (bool, error) {
	if householdID != r.householdID {
		return false, nil
	}
	for _, memberID := range r.memberIDs {
		if memberID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeHouseholdRepo) HasActiveMembership(_ context.Context, userID uuid.UUID) (bool, error) {
	for _, memberID := range r.memberIDs {
		if memberID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeHouseholdRepo) SumActiveMemberIncomes(_ context.Context, _ uuid.UUID, _ *uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// fakeCategoryRepo is an in-memory adapter.CategoryRepository.
type fakeCategoryRepo struct {
	categories    map[uuid.UUID]*entity.Category
	subcategories map[uuid.UUID]*entity.Subcategory
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories:    make(map[uuid.UUID]*entity.Category),
		subcategories: make(map[uuid.UUID]*entity.Subcategory),
	}
}

// addSubcategory registers a category/subcategory pair for a household and
// returns the subcategory ID.
func (r *fakeCategoryRepo) addSubcategory(householdID uuid.UUID, name string) uuid.UUID {
	category := entity.NewCategory(householdID, name)
	subcategory := entity.NewSubcategory(category.ID, name)
	r.categories[category.ID] = category
	r.subcategories[subcategory.ID] = subcategory
	return subcategory.ID
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) CreateBatch(_ context.Context, categories []*entity.Category, subcategories []*entity.Subcategory) error {
	for _, category := range categories {
		r.categories[category.ID] = category
	}
	for _, subcategory := range subcategories {
		r.subcategories[subcategory.ID] = subcategory
	}
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.categories[id], nil
}

func (r *fakeCategoryRepo) FindByHousehold(_ context.Context, _ uuid.UUID) ([]*entity.CategoryWithSubcategories, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) ExistsByHouseholdAndName(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return false, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) CreateSubcategory(_ context.Context, subcategory *entity.Subcategory) error {
	r.subcategories[subcategory.ID] = subcategory
	return nil
}

func (r *fakeCategoryRepo) FindSubcategoryByID(_ context.Context, id uuid.UUID) (*entity.Subcategory, error) {
	return r.subcategories[id], nil
}

func (r *fakeCategoryRepo) UpdateSubcategory(_ context.Context, subcategory *entity.Subcategory) error {
	r.subcategories[subcategory.ID] = subcategory
	return nil
}

var (
	_ adapter.LineItemRepository  = (*fakeLineItemRepo)(nil)
	_ adapter.TemplateRepository  = (*fakeTemplateRepo)(nil)
	_ adapter.HouseholdRepository = (*fakeHouseholdRepo)(nil)
	_ adapter.CategoryRepository  = (*fakeCategoryRepo)(nil)
)
