package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

func TestListCategoriesUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	householdID := uuid.New()
	actorID := uuid.New()
	householdRepo := &fakeHouseholdRepo{householdID: householdID, memberIDs: []uuid.UUID{actorID}}

	t.Run("lists only the household's categories", func(t *testing.T) {
		categoryRepo := newFakeCategoryRepo()
		housing := categoryRepo.addCategory(householdID, "Housing")
		categoryRepo.addSubcategory(housing.ID, "Rent")
		categoryRepo.addSubcategory(housing.ID, "Electricity")
		categoryRepo.addCategory(householdID, "Food")
		categoryRepo.addCategory(uuid.New(), "Foreign")
		uc := NewListCategoriesUseCase(categoryRepo, householdRepo)

		output, err := uc.Execute(ctx, ListCategoriesInput{HouseholdID: householdID, ActorID: actorID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(output.Categories) != 2 {
			t.Fatalf("got %d categories, want 2", len(output.Categories))
		}
		for _, item := range output.Categories {
			if item.Category.HouseholdID != householdID {
				t.Errorf("category %q belongs to household %s", item.Category.Name, item.Category.HouseholdID)
			}
			if item.Category.ID == housing.ID && len(item.Subcategories) != 2 {
				t.Errorf("Housing has %d subcategories, want 2", len(item.Subcategories))
			}
		}
	})

	t.Run("empty household yields an empty list", func(t *testing.T) {
		uc := NewListCategoriesUseCase(newFakeCategoryRepo(), householdRepo)

		output, err := uc.Execute(ctx, ListCategoriesInput{HouseholdID: householdID, ActorID: actorID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(output.Categories) != 0 {
			t.Errorf("got %d categories, want 0", len(output.Categories))
		}
	})

	t.Run("rejects actor outside the household", func(t *testing.T) {
		uc := NewListCategoriesUseCase(newFakeCategoryRepo(), householdRepo)

		_, err := uc.Execute(ctx, ListCategoriesInput{HouseholdID: householdID, ActorID: uuid.New()})
		var householdErr *domainerror.HouseholdError
		if !errors.As(err, &householdErr) || householdErr.Code != domainerror.ErrCodeNotHouseholdMember {
			t.Errorf("expected not-household-member error, got %v", err)
		}
	})
}

func TestDefaultSeed(t *testing.T) {
	householdID := uuid.New()
	categories, subcategories := DefaultSeed(householdID)

	if len(categories) != len(defaultTree) {
		t.Fatalf("got %d categories, want %d", len(categories), len(defaultTree))
	}
	for i, cat := range categories {
		if cat.HouseholdID != householdID {
			t.Errorf("category %q household = %s, want %s", cat.Name, cat.HouseholdID, householdID)
		}
		if cat.Name != defaultTree[i].name {
			t.Errorf("category[%d] = %q, want %q", i, cat.Name, defaultTree[i].name)
		}
		if !cat.Active {
			t.Errorf("category %q should start active", cat.Name)
		}
	}

	wantSubs := 0
	for _, node := range defaultTree {
		wantSubs += len(node.subcategories)
	}
	if len(subcategories) != wantSubs {
		t.Fatalf("got %d subcategories, want %d", len(subcategories), wantSubs)
	}

	parents := make(map[uuid.UUID]bool, len(categories))
	for _, cat := range categories {
		parents[cat.ID] = true
	}
	for _, sub := range subcategories {
		if !parents[sub.CategoryID] {
			t.Errorf("subcategory %q points at unknown category %s", sub.Name, sub.CategoryID)
		}
	}
}
