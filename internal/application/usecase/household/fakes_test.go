package household

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
)

// fakeHouseholdRepo is an in-memory HouseholdRepository. Memberships are kept
// in insertion order so ActiveMemberUserIDs stays deterministic.
type fakeHouseholdRepo struct {
	households map[uuid.UUID]*entity.Household
	members    []*entity.HouseholdMember
}

func newFakeHouseholdRepo() *fakeHouseholdRepo {
	return &fakeHouseholdRepo{households: make(map[uuid.UUID]*entity.Household)}
}

func (f *fakeHouseholdRepo) Create(_ context.Context, household *entity.Household) error {
	f.households[household.ID] = household
	return nil
}

func (f *fakeHouseholdRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Household, error) {
	return f.households[id], nil
}

func (f *fakeHouseholdRepo) FindActiveByUserID(_ context.Context, userID uuid.UUID) (*entity.Household, error) {
	for _, m := range f.members {
		if m.UserID == userID && m.Active {
			return f.households[m.HouseholdID], nil
		}
	}
	return nil, nil
}

func (f *fakeHouseholdRepo) GetWithMembers(_ context.Context, id uuid.UUID) (*entity.HouseholdWithMembers, error) {
	household := f.households[id]
	if household == nil {
		return nil, nil
	}
	out := &entity.HouseholdWithMembers{Household: household}
	for _, m := range f.members {
		if m.HouseholdID == id {
			out.Members = append(out.Members, m)
		}
	}
	return out, nil
}

func (f *fakeHouseholdRepo) CreateMember(_ context.Context, member *entity.HouseholdMember) error {
	f.members = append(f.members, member)
	return nil
}

func (f *fakeHouseholdRepo) FindMemberByID(_ context.Context, id uuid.UUID) (*entity.HouseholdMember, error) {
	for _, m := range f.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeHouseholdRepo) UpdateMember(_ context.Context, member *entity.HouseholdMember) error {
	for i, m := range f.members {
		if m.ID == member.ID {
			f.members[i] = member
			return nil
		}
	}
	return nil
}

func (f *fakeHouseholdRepo) ActiveMemberUserIDs(_ context.Context, householdID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, m := range f.members {
		if m.HouseholdID == householdID && m.Active {
			ids = append(ids, m.UserID)
		}
	}
	return ids, nil
}

func (f *fakeHouseholdRepo) CountActiveMembers(_ context.Context, householdID uuid.UUID) (int, error) {
	count := 0
	for _, m := range f.members {
		if m.HouseholdID == householdID && m.Active {
			count++
		}
	}
	return count, nil
}

func (f *fakeHouseholdRepo) IsActiveMember(_ context.Context, householdID, userID uuid.UUID) (bool, error) {
	for _, m := range f.members {
		if m.HouseholdID == householdID && m.UserID == userID && m.Active {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHouseholdRepo) HasActiveMembership(_ context.Context, userID uuid.UUID) (bool, error) {
	for _, m := range f.members {
		if m.UserID == userID && m.Active {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHouseholdRepo) SumActiveMemberIncomes(_ context.Context, householdID uuid.UUID, memberID *uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range f.members {
		if m.HouseholdID != householdID || !m.Active {
			continue
		}
		if memberID != nil && m.ID != *memberID {
			continue
		}
		sum = sum.Add(m.MonthlyIncome)
	}
	return sum, nil
}

// addHousehold seeds a household with one active member and returns both.
func (f *fakeHouseholdRepo) addHousehold(name string, userID uuid.UUID) (*entity.Household, *entity.HouseholdMember) {
	household := entity.NewHousehold(name)
	f.households[household.ID] = household
	member := entity.NewHouseholdMember(household.ID, userID, "")
	f.members = append(f.members, member)
	return household, member
}

// addMember seeds an additional active membership in an existing household.
func (f *fakeHouseholdRepo) addMember(householdID, userID uuid.UUID) *entity.HouseholdMember {
	member := entity.NewHouseholdMember(householdID, userID, "")
	f.members = append(f.members, member)
	return member
}

// fakeCategoryRepo only records batch creation; household use cases never
// touch individual categories.
type fakeCategoryRepo struct {
	batchCategories    []*entity.Category
	batchSubcategories []*entity.Subcategory
}

func (f *fakeCategoryRepo) Create(_ context.Context, _ *entity.Category) error { return nil }

func (f *fakeCategoryRepo) CreateBatch(_ context.Context, categories []*entity.Category, subcategories []*entity.Subcategory) error {
	f.batchCategories = append(f.batchCategories, categories...)
	f.batchSubcategories = append(f.batchSubcategories, subcategories...)
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Category, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) FindByHousehold(_ context.Context, _ uuid.UUID) ([]*entity.CategoryWithSubcategories, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) ExistsByHouseholdAndName(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return false, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, _ *entity.Category) error { return nil }

func (f *fakeCategoryRepo) CreateSubcategory(_ context.Context, _ *entity.Subcategory) error {
	return nil
}

func (f *fakeCategoryRepo) FindSubcategoryByID(_ context.Context, _ uuid.UUID) (*entity.Subcategory, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) UpdateSubcategory(_ context.Context, _ *entity.Subcategory) error {
	return nil
}

// fakeUserRepo resolves users by name or email.
type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsernameOrEmail(_ context.Context, usernameOrEmail string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == usernameOrEmail || u.Name == usernameOrEmail {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
		}
	}
	return nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	u, _ := f.FindByEmail(context.Background(), email)
	return u != nil, nil
}

// fakeEmailService records queued invitations.
type fakeEmailService struct {
	queued []adapter.QueueHouseholdInvitationInput
	err    error
}

func (f *fakeEmailService) QueueHouseholdInvitationEmail(_ context.Context, input adapter.QueueHouseholdInvitationInput) error {
	if f.err != nil {
		return f.err
	}
	f.queued = append(f.queued, input)
	return nil
}

var (
	_ adapter.HouseholdRepository = (*fakeHouseholdRepo)(nil)
	_ adapter.CategoryRepository  = (*fakeCategoryRepo)(nil)
	_ adapter.UserRepository      = (*fakeUserRepo)(nil)
	_ adapter.EmailService        = (*fakeEmailService)(nil)
)
