package category

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
)

// fakeCategoryRepo is an in-memory CategoryRepository.
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

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) CreateBatch(_ context.Context, categories []*entity.Category, subcategories []*entity.Subcategory) error {
	for _, c := range categories {
		f.categories[c.ID] = c
	}
	for _, s := range subcategories {
		f.subcategories[s.ID] = s
	}
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) FindByHousehold(_ context.Context, householdID uuid.UUID) ([]*entity.CategoryWithSubcategories, error) {
	var out []*entity.CategoryWithSubcategories
	for _, c := range f.categories {
		if c.HouseholdID != householdID {
			continue
		}
		item := &entity.CategoryWithSubcategories{Category: c}
		for _, s := range f.subcategories {
			if s.CategoryID == c.ID {
				item.Subcategories = append(item.Subcategories, s)
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category.Name < out[j].Category.Name
	})
	return out, nil
}

func (f *fakeCategoryRepo) ExistsByHouseholdAndName(_ context.Context, householdID uuid.UUID, name string) (bool, error) {
	for _, c := range f.categories {
		if c.HouseholdID == householdID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) CreateSubcategory(_ context.Context, subcategory *entity.Subcategory) error {
	f.subcategories[subcategory.ID] = subcategory
	return nil
}

func (f *fakeCategoryRepo) FindSubcategoryByID(_ context.Context, id uuid.UUID) (*entity.Subcategory, error) {
	return f.subcategories[id], nil
}

func (f *fakeCategoryRepo) UpdateSubcategory(_ context.Context, subcategory *entity.Subcategory) error {
	f.subcategories[subcategory.ID] = subcategory
	return nil
}

// addCategory seeds a category directly into the store.
func (f *fakeCategoryRepo) addCategory(householdID uuid.UUID, name string) *entity.Category {
	category := entity.NewCategory(householdID, name)
	f.categories[category.ID] = category
	return category
}

// addSubcategory seeds a subcategory directly into the store.
func (f *fakeCategoryRepo) addSubcategory(categoryID uuid.UUID, name string) *entity.Subcategory {
	subcategory := entity.NewSubcategory(categoryID, name)
	f.subcategories[subcategory.ID] = subcategory
	return subcategory
}

// fakeHouseholdRepo answers membership checks for a single household.
type fakeHouseholdRepo struct {
	householdID uuid.UUID
	memberIDs   []uuid.UUID
}

func (f *fakeHouseholdRepo) Create(_ context.Context, _ *entity.Household) error { return nil }

func (f *fakeHouseholdRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Household, error) {
	return nil, nil
}

func (f *fakeHouseholdRepo) FindActiveByUserID(_ context.Context, _ uuid.UUID) (*entity.Household, error) {
	return nil, nil
}

func (f *fakeHouseholdRepo) GetWithMembers(_ context.Context, _ uuid.UUID) (*entity.HouseholdWithMembers, error) {
	return nil, nil
}

func (f *fakeHouseholdRepo) CreateMember(_ context.Context, _ *entity.HouseholdMember) error {
	return nil
}

func (f *fakeHouseholdRepo) FindMemberByID(_ context.Context, _ uuid.UUID) (*entity.HouseholdMember, error) {
	return nil, nil
}

func (f *fakeHouseholdRepo) UpdateMember(_ context.Context, _ *entity.HouseholdMember) error {
	return nil
}

func (f *fakeHouseholdRepo) ActiveMemberUserIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return f.memberIDs, nil
}

func (f *fakeHouseholdRepo) CountActiveMembers(_ context.Context, _ uuid.UUID) (int, error) {
	return len(f.memberIDs), nil
}

func (f *fakeHouseholdRepo) IsActiveMember(_ context.Context, householdID, userID uuid.UUID) (bool, error) {
	if householdID != f.householdID {
		return false, nil
	}
	for _, id := range f.memberIDs {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHouseholdRepo) HasActiveMembership(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeHouseholdRepo) SumActiveMemberIncomes(_ context.Context, _ uuid.UUID, _ *uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

var (
	_ adapter.CategoryRepository  = (*fakeCategoryRepo)(nil)
	_ adapter.HouseholdRepository = (*fakeHouseholdRepo)(nil)
)
