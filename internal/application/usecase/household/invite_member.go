// Package household contains household and membership use cases.
package household

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// InviteMemberInput represents the input for adding a member to a household.
// The invitee is looked up by username or email and must already have an
// account.
type InviteMemberInput struct {
	HouseholdID     uuid.UUID
	ActorID         uuid.UUID
	UsernameOrEmail string
	Nickname        string
}

// InviteMemberOutput represents the output of adding a member.
type InviteMemberOutput struct {
	Member *entity.HouseholdMember
}

// InviteMemberUseCase adds an existing user to the household and queues a
// notification email. Households cap at two active members and a user can
// only be active in one household at a time.
type InviteMemberUseCase struct {
	householdRepo adapter.HouseholdRepository
	userRepo      adapter.UserRepository
	emailService  adapter.EmailService
}

// NewInviteMemberUseCase creates a new InviteMemberUseCase instance.
func NewInviteMemberUseCase(
	householdRepo adapter.HouseholdRepository,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
) *InviteMemberUseCase {
	return &InviteMemberUseCase{
		householdRepo: householdRepo,
		userRepo:      userRepo,
		emailService:  emailService,
	}
}

// Execute performs the member addition.
func (uc *InviteMemberUseCase) Execute(ctx context.Context, input InviteMemberInput) (*InviteMemberOutput, error) {
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

	invitee, err := uc.userRepo.FindByUsernameOrEmail(ctx, input.UsernameOrEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if invitee == nil {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeUserNotFound,
			"no user matches the given name or email",
			domainerror.ErrUserNotFound,
		)
	}

	count, err := uc.householdRepo.CountActiveMembers(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active members: %w", err)
	}
	if count >= entity.MaxActiveMembers {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeHouseholdFull,
			fmt.Sprintf("household already has %d active members", count),
			domainerror.ErrHouseholdFull,
		)
	}

	hasMembership, err := uc.householdRepo.HasActiveMembership(ctx, invitee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check invitee membership: %w", err)
	}
	if hasMembership {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeAlreadyInHousehold,
			"user already belongs to an active household",
			domainerror.ErrAlreadyInHousehold,
		)
	}

	nickname := input.Nickname
	if nickname == "" {
		nickname = invitee.Name
	}
	member := entity.NewHouseholdMember(input.HouseholdID, invitee.ID, nickname)
	if err := uc.householdRepo.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	uc.queueInvitationEmail(ctx, input.HouseholdID, input.ActorID, invitee)

	return &InviteMemberOutput{Member: member}, nil
}

// queueInvitationEmail enqueues the notification. A queue failure never rolls
// back the membership; the member is already in.
func (uc *InviteMemberUseCase) queueInvitationEmail(ctx context.Context, householdID, actorID uuid.UUID, invitee *entity.User) {
	household, err := uc.householdRepo.FindByID(ctx, householdID)
	if err != nil || household == nil {
		slog.Error("failed to load household for invitation email", "household_id", householdID, "error", err)
		return
	}
	inviter, err := uc.userRepo.FindByID(ctx, actorID)
	if err != nil || inviter == nil {
		slog.Error("failed to load inviter for invitation email", "user_id", actorID, "error", err)
		return
	}

	err = uc.emailService.QueueHouseholdInvitationEmail(ctx, adapter.QueueHouseholdInvitationInput{
		InviterName:   inviter.Name,
		HouseholdName: household.Name,
		InviteeEmail:  invitee.Email,
		InviteeName:   invitee.Name,
	})
	if err != nil {
		slog.Error("failed to queue invitation email", "household_id", householdID, "error", err)
	}
}
