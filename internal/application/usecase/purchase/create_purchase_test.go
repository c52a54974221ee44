package purchase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

func purchaseCode(t *testing.T, err error) domainerror.PurchaseErrorCode {
	t.Helper()
	var purchaseErr *domainerror.PurchaseError
	if !errors.As(err, &purchaseErr) {
		t.Fatalf("expected PurchaseError, got %T: %v", err, err)
	}
	return purchaseErr.Code
}

func TestCreatePurchaseUseCase_Execute(t *testing.T) {
	householdID := uuid.New()
	memberA := uuid.New()
	memberB := uuid.New()

	newFixture := func() (*CreatePurchaseUseCase, *fakePurchaseRepo, *fakeLineItemRepo, *fakeCategoryRepo) {
		purchaseRepo := newFakePurchaseRepo()
		lineItemRepo := newFakeLineItemRepo()
		categoryRepo := newFakeCategoryRepo()
		householdRepo := &fakeHouseholdRepo{
			householdID: householdID,
			memberIDs:   []uuid.UUID{memberA, memberB},
		}
		useCase := NewCreatePurchaseUseCase(purchaseRepo, lineItemRepo, categoryRepo, householdRepo)
		return useCase, purchaseRepo, lineItemRepo, categoryRepo
	}

	addCard := func(purchaseRepo *fakePurchaseRepo, ownerHousehold uuid.UUID) uuid.UUID {
		card := entity.NewCreditCard(ownerHousehold, "Nubank", entity.BrandMastercard, decimal.RequireFromString("5000"), 3, 10)
		purchaseRepo.cards[card.ID] = card
		return card.ID
	}

	baseInput := func(cardID, subcategoryID uuid.UUID) CreatePurchaseInput {
		return CreatePurchaseInput{
			HouseholdID:      householdID,
			ActorID:          memberA,
			CardID:           cardID,
			Description:      "Washing machine",
			SubcategoryID:    subcategoryID,
			Scope:            entity.ScopeShared,
			TotalAmount:      decimal.RequireFromString("1000.00"),
			InstallmentCount: 3,
			FirstPeriod:      time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
			FirstDueDate:     time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("expands the purchase into installment line items", func(t *testing.T) {
		useCase, purchaseRepo, lineItemRepo, categoryRepo := newFixture()
		cardID := addCard(purchaseRepo, householdID)
		subcategoryID := categoryRepo.addSubcategory(householdID, "Home")

		output, err := useCase.Execute(context.Background(), baseInput(cardID, subcategoryID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Items) != 3 {
			t.Fatalf("expected 3 installments, got %d", len(output.Items))
		}

		// 1000/3 floors to 333.33 with the remainder on the last installment
		expected := []string{"333.33", "333.33", "333.34"}
		total := decimal.Zero
		for i, installment := range output.Items {
			item := installment.LineItem
			if !item.TotalAmount.Equal(decimal.RequireFromString(expected[i])) {
				t.Errorf("installment %d: expected %s, got %s", i+1, expected[i], item.TotalAmount)
			}
			total = total.Add(item.TotalAmount)

			wantDescription := fmt.Sprintf("Washing machine (%d/3)", i+1)
			if item.Description != wantDescription {
				t.Errorf("installment %d: expected description %q, got %q", i+1, wantDescription, item.Description)
			}
			if item.InstallmentNumber == nil || *item.InstallmentNumber != i+1 {
				t.Errorf("installment %d: wrong installment number", i+1)
			}
			if item.InstallmentCount == nil || *item.InstallmentCount != 3 {
				t.Errorf("installment %d: wrong installment count", i+1)
			}
			if item.PurchaseID == nil || *item.PurchaseID != output.Purchase.ID {
				t.Errorf("installment %d: expected a purchase reference", i+1)
			}

			sum := decimal.Zero
			for _, allocation := range installment.Allocations {
				sum = sum.Add(allocation.Amount)
			}
			if !sum.Equal(item.TotalAmount) {
				t.Errorf("installment %d: allocations sum to %s, expected %s", i+1, sum, item.TotalAmount)
			}
		}
		if !total.Equal(decimal.RequireFromString("1000.00")) {
			t.Errorf("installments sum to %s, expected 1000.00", total)
		}
		if len(lineItemRepo.purchases) != 1 {
			t.Errorf("expected a single atomic batch, got %d", len(lineItemRepo.purchases))
		}
	})

	t.Run("advances billing period and due date month by month", func(t *testing.T) {
		useCase, purchaseRepo, _, categoryRepo := newFixture()
		cardID := addCard(purchaseRepo, householdID)
		subcategoryID := categoryRepo.addSubcategory(householdID, "Home")

		output, err := useCase.Execute(context.Background(), baseInput(cardID, subcategoryID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		periods := []time.Time{
			time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		}
		// Jan 31 clamps to Feb 28 and lands back on Mar 31
		dueDates := []time.Time{
			time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		}
		for i, installment := range output.Items {
			if !installment.LineItem.BillingPeriod.Equal(periods[i]) {
				t.Errorf("installment %d: expected period %s, got %s", i+1, periods[i], installment.LineItem.BillingPeriod)
			}
			if !installment.LineItem.DueDate.Equal(dueDates[i]) {
				t.Errorf("installment %d: expected due date %s, got %s", i+1, dueDates[i], installment.LineItem.DueDate)
			}
		}
	})

	t.Run("personal purchases allocate to the owner only", func(t *testing.T) {
		useCase, purchaseRepo, _, categoryRepo := newFixture()
		cardID := addCard(purchaseRepo, householdID)
		subcategoryID := categoryRepo.addSubcategory(householdID, "Hobbies")
		input := baseInput(cardID, subcategoryID)
		input.Scope = entity.ScopePersonal
		input.OwnerID = &memberB

		output, err := useCase.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, installment := range output.Items {
			if len(installment.Allocations) != 1 {
				t.Fatalf("installment %d: expected 1 allocation, got %d", i+1, len(installment.Allocations))
			}
			if installment.Allocations[0].MemberID != memberB {
				t.Errorf("installment %d: expected the owner, got %s", i+1, installment.Allocations[0].MemberID)
			}
		}
	})

	t.Run("rejects an installment count below one", func(t *testing.T) {
		useCase, purchaseRepo, _, categoryRepo := newFixture()
		cardID := addCard(purchaseRepo, householdID)
		subcategoryID := categoryRepo.addSubcategory(householdID, "Home")
		input := baseInput(cardID, subcategoryID)
		input.InstallmentCount = 0

		_, err := useCase.Execute(context.Background(), input)
		if code := purchaseCode(t, err); code != domainerror.ErrCodeInvalidInstallmentCount {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidInstallmentCount, code)
		}
	})

	t.Run("rejects a non-positive total", func(t *testing.T) {
		useCase, purchaseRepo, _, categoryRepo := newFixture()
		cardID := addCard(purchaseRepo, householdID)
		subcategoryID := categoryRepo.addSubcategory(householdID, "Home")
		input := baseInput(cardID, subcategoryID)
		input.TotalAmount = decimal.Zero

		_, err := useCase.Execute(context.Background(), input)
		if code := purchaseCode(t, err); code != domainerror.ErrCodeInvalidPurchaseAmount {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidPurchaseAmount, code)
		}
	})

	t.Run("rejects another household's card", func(t *testing.T) {
		useCase, purchaseRepo, _, categoryRepo := newFixture()
		cardID := addCard(purchaseRepo, uuid.New())
		subcategoryID := categoryRepo.addSubcategory(householdID, "Home")

		_, err := useCase.Execute(context.Background(), baseInput(cardID, subcategoryID))
		if code := purchaseCode(t, err); code != domainerror.ErrCodeCardNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeCardNotFound, code)
		}
	})

	t.Run("rejects non-members", func(t *testing.T) {
		useCase, purchaseRepo, _, categoryRepo := newFixture()
		cardID := addCard(purchaseRepo, householdID)
		subcategoryID := categoryRepo.addSubcategory(householdID, "Home")
		input := baseInput(cardID, subcategoryID)
		input.ActorID = uuid.New()

		_, err := useCase.Execute(context.Background(), input)
		var householdErr *domainerror.HouseholdError
		if !errors.As(err, &householdErr) {
			t.Fatalf("expected HouseholdError, got %T: %v", err, err)
		}
	})
}

func TestCreateCardUseCase_Execute(t *testing.T) {
	householdID := uuid.New()
	memberA := uuid.New()

	newFixture := func() (*CreateCardUseCase, *fakePurchaseRepo) {
		purchaseRepo := newFakePurchaseRepo()
		householdRepo := &fakeHouseholdRepo{householdID: householdID, memberIDs: []uuid.UUID{memberA}}
		return NewCreateCardUseCase(purchaseRepo, householdRepo), purchaseRepo
	}

	baseInput := func() CreateCardInput {
		return CreateCardInput{
			HouseholdID: householdID,
			ActorID:     memberA,
			Name:        "Nubank",
			Brand:       entity.BrandMastercard,
			Limit:       decimal.RequireFromString("5000"),
			ClosingDay:  3,
			DueDay:      10,
		}
	}

	t.Run("creates an active card", func(t *testing.T) {
		useCase, purchaseRepo := newFixture()
		output, err := useCase.Execute(context.Background(), baseInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Card.Active {
			t.Error("expected new card to be active")
		}
		if purchaseRepo.cards[output.Card.ID] == nil {
			t.Error("expected card to be persisted")
		}
	})

	t.Run("rejects statement days past 28", func(t *testing.T) {
		useCase, _ := newFixture()
		input := baseInput()
		input.DueDay = 31

		_, err := useCase.Execute(context.Background(), input)
		if code := purchaseCode(t, err); code != domainerror.ErrCodeInvalidCardDay {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCardDay, code)
		}
	})

	t.Run("rejects unknown brands", func(t *testing.T) {
		useCase, _ := newFixture()
		input := baseInput()
		input.Brand = entity.CardBrand("diners")

		_, err := useCase.Execute(context.Background(), input)
		if code := purchaseCode(t, err); code != domainerror.ErrCodeInvalidCardBrand {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCardBrand, code)
		}
	})
}

func TestUpdateCardUseCase_Execute(t *testing.T) {
	householdID := uuid.New()
	memberA := uuid.New()

	newFixture := func() (*UpdateCardUseCase, *fakePurchaseRepo, uuid.UUID) {
		purchaseRepo := newFakePurchaseRepo()
		householdRepo := &fakeHouseholdRepo{householdID: householdID, memberIDs: []uuid.UUID{memberA}}
		card := entity.NewCreditCard(householdID, "Nubank", entity.BrandMastercard, decimal.RequireFromString("5000"), 3, 10)
		purchaseRepo.cards[card.ID] = card
		return NewUpdateCardUseCase(purchaseRepo, householdRepo), purchaseRepo, card.ID
	}

	t.Run("updates card fields", func(t *testing.T) {
		useCase, _, cardID := newFixture()
		name := "Nubank Ultravioleta"
		active := false

		output, err := useCase.Execute(context.Background(), UpdateCardInput{
			CardID:      cardID,
			HouseholdID: householdID,
			ActorID:     memberA,
			Name:        &name,
			Active:      &active,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Card.Name != name {
			t.Errorf("expected name %q, got %q", name, output.Card.Name)
		}
		if output.Card.Active {
			t.Error("expected card to be deactivated")
		}
	})

	t.Run("rejects an out-of-range closing day", func(t *testing.T) {
		useCase, _, cardID := newFixture()
		closingDay := 29

		_, err := useCase.Execute(context.Background(), UpdateCardInput{
			CardID:      cardID,
			HouseholdID: householdID,
			ActorID:     memberA,
			ClosingDay:  &closingDay,
		})
		if code := purchaseCode(t, err); code != domainerror.ErrCodeInvalidCardDay {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCardDay, code)
		}
	})

	t.Run("returns not found for an unknown card", func(t *testing.T) {
		useCase, _, _ := newFixture()
		_, err := useCase.Execute(context.Background(), UpdateCardInput{
			CardID:      uuid.New(),
			HouseholdID: householdID,
			ActorID:     memberA,
		})
		if code := purchaseCode(t, err); code != domainerror.ErrCodeCardNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeCardNotFound, code)
		}
	})
}
