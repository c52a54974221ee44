package household

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

func TestUpdateMemberUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("updates nickname and monthly income", func(t *testing.T) {
		householdRepo := newFakeHouseholdRepo()
		actorID := uuid.New()
		household, member := householdRepo.addHousehold("Casa da Praia", actorID)
		uc := NewUpdateMemberUseCase(householdRepo)

		nickname := "Aninha"
		income := decimal.RequireFromString("5200.00")
		output, err := uc.Execute(ctx, UpdateMemberInput{
			MemberID:      member.ID,
			HouseholdID:   household.ID,
			ActorID:       actorID,
			Nickname:      &nickname,
			MonthlyIncome: &income,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Member.Nickname != "Aninha" {
			t.Errorf("nickname = %q, want %q", output.Member.Nickname, "Aninha")
		}
		if !output.Member.MonthlyIncome.Equal(income) {
			t.Errorf("monthly income = %s, want %s", output.Member.MonthlyIncome, income)
		}
	})

	t.Run("nil fields leave the member unchanged", func(t *testing.T) {
		householdRepo := newFakeHouseholdRepo()
		actorID := uuid.New()
		household, member := householdRepo.addHousehold("Casa da Praia", actorID)
		member.Nickname = "Ana"
		member.MonthlyIncome = decimal.RequireFromString("4000.00")
		uc := NewUpdateMemberUseCase(householdRepo)

		output, err := uc.Execute(ctx, UpdateMemberInput{
			MemberID:    member.ID,
			HouseholdID: household.ID,
			ActorID:     actorID,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Member.Nickname != "Ana" {
			t.Errorf("nickname = %q, want %q", output.Member.Nickname, "Ana")
		}
		if !output.Member.MonthlyIncome.Equal(decimal.RequireFromString("4000.00")) {
			t.Errorf("monthly income changed: %s", output.Member.MonthlyIncome)
		}
	})

	t.Run("actor can update the other member's record", func(t *testing.T) {
		householdRepo := newFakeHouseholdRepo()
		actorID := uuid.New()
		household, _ := householdRepo.addHousehold("Casa da Praia", actorID)
		other := householdRepo.addMember(household.ID, uuid.New())
		uc := NewUpdateMemberUseCase(householdRepo)

		nickname := "Bi"
		output, err := uc.Execute(ctx, UpdateMemberInput{
			MemberID:    other.ID,
			HouseholdID: household.ID,
			ActorID:     actorID,
			Nickname:    &nickname,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Member.ID != other.ID || output.Member.Nickname != "Bi" {
			t.Errorf("updated member = %s/%q, want %s/%q", output.Member.ID, output.Member.Nickname, other.ID, "Bi")
		}
	})

	t.Run("rejects negative income", func(t *testing.T) {
		householdRepo := newFakeHouseholdRepo()
		actorID := uuid.New()
		household, member := householdRepo.addHousehold("Casa da Praia", actorID)
		uc := NewUpdateMemberUseCase(householdRepo)

		income := decimal.RequireFromString("-1.00")
		_, err := uc.Execute(ctx, UpdateMemberInput{
			MemberID:      member.ID,
			HouseholdID:   household.ID,
			ActorID:       actorID,
			MonthlyIncome: &income,
		})
		if code := householdCode(t, err); code != domainerror.ErrCodeMissingHouseholdFields {
			t.Errorf("error code = %s, want %s", code, domainerror.ErrCodeMissingHouseholdFields)
		}
	})

	t.Run("rejects member from another household", func(t *testing.T) {
		householdRepo := newFakeHouseholdRepo()
		actorID := uuid.New()
		household, _ := householdRepo.addHousehold("Casa da Praia", actorID)
		_, foreignMember := householdRepo.addHousehold("Outra Casa", uuid.New())
		uc := NewUpdateMemberUseCase(householdRepo)

		nickname := "X"
		_, err := uc.Execute(ctx, UpdateMemberInput{
			MemberID:    foreignMember.ID,
			HouseholdID: household.ID,
			ActorID:     actorID,
			Nickname:    &nickname,
		})
		if code := householdCode(t, err); code != domainerror.ErrCodeMemberNotFound {
			t.Errorf("error code = %s, want %s", code, domainerror.ErrCodeMemberNotFound)
		}
	})

	t.Run("rejects actor outside the household", func(t *testing.T) {
		householdRepo := newFakeHouseholdRepo()
		household, member := householdRepo.addHousehold("Casa da Praia", uuid.New())
		uc := NewUpdateMemberUseCase(householdRepo)

		nickname := "X"
		_, err := uc.Execute(ctx, UpdateMemberInput{
			MemberID:    member.ID,
			HouseholdID: household.ID,
			ActorID:     uuid.New(),
			Nickname:    &nickname,
		})
		if code := householdCode(t, err); code != domainerror.ErrCodeNotHouseholdMember {
			t.Errorf("error code = %s, want %s", code, domainerror.ErrCodeNotHouseholdMember)
		}
	})
}

func TestDeactivateMemberUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("flags the membership inactive", func(t *testing.T) {
		householdRepo := newFakeHouseholdRepo()
		actorID := uuid.New()
		household, _ := householdRepo.addHousehold("Casa da Praia", actorID)
		other := householdRepo.addMember(household.ID, uuid.New())
		uc := NewDeactivateMemberUseCase(householdRepo)

		output, err := uc.Execute(ctx, DeactivateMemberInput{
			MemberID:    other.ID,
			HouseholdID: household.ID,
			ActorID:     actorID,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Member.Active {
			t.Error("member should be inactive after deactivation")
		}
		count, _ := householdRepo.CountActiveMembers(ctx, household.ID)
		if count != 1 {
			t.Errorf("active members = %d, want 1", count)
		}
	})

	t.Run("deactivating an inactive member is a no-op", func(t *testing.T) {
		householdRepo := newFakeHouseholdRepo()
		actorID := uuid.New()
		household, _ := householdRepo.addHousehold("Casa da Praia", actorID)
		other := householdRepo.addMember(household.ID, uuid.New())
		other.Active = false
		uc := NewDeactivateMemberUseCase(householdRepo)

		output, err := uc.Execute(ctx, DeactivateMemberInput{
			MemberID:    other.ID,
			HouseholdID: household.ID,
			ActorID:     actorID,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Member.Active {
			t.Error("member should stay inactive")
		}
	})

	t.Run("rejects unknown member", func(t *testing.T) {
		householdRepo := newFakeHouseholdRepo()
		actorID := uuid.New()
		household, _ := householdRepo.addHousehold("Casa da Praia", actorID)
		uc := NewDeactivateMemberUseCase(householdRepo)

		_, err := uc.Execute(ctx, DeactivateMemberInput{
			MemberID:    uuid.New(),
			HouseholdID: household.ID,
			ActorID:     actorID,
		})
		if code := householdCode(t, err); code != domainerror.ErrCodeMemberNotFound {
			t.Errorf("error code = %s, want %s", code, domainerror.ErrCodeMemberNotFound)
		}
	})

	t.Run("rejects actor outside the household", func(t *testing.T) {
		householdRepo := newFakeHouseholdRepo()
		household, member := householdRepo.addHousehold("Casa da Praia", uuid.New())
		uc := NewDeactivateMemberUseCase(householdRepo)

		_, err := uc.Execute(ctx, DeactivateMemberInput{
			MemberID:    member.ID,
			HouseholdID: household.ID,
			ActorID:     uuid.New(),
		})
		if code := householdCode(t, err); code != domainerror.ErrCodeNotHouseholdMember {
			t.Errorf("error code = %s, want %s", code, domainerror.ErrCodeNotHouseholdMember)
		}
	})
}
