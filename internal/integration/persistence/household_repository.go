package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	"github.com/shared-expenses/backend/internal/integration/persistence/model"
)

// householdRepository implements the adapter.HouseholdRepository interface using GORM.
type householdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository creates a new household repository instance.
func NewHouseholdRepository(db *gorm.DB) adapter.HouseholdRepository {
	return &householdRepository{db: db}
}

// Create creates a new household in the database.
func (r *householdRepository) Create(ctx context.Context, household *entity.Household) error {
	householdModel := model.HouseholdFromEntity(household)
	if err := r.db.WithContext(ctx).Create(householdModel).Error; err != nil {
		return fmt.Errorf("failed to create household: %w", err)
	}
	return nil
}

// FindByID retrieves a household by its ID. Returns nil when no household matches.
func (r *householdRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Household, error) {
	var householdModel model.HouseholdModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&householdModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find household: %w", err)
	}
	return householdModel.ToEntity(), nil
}

// FindActiveByUserID retrieves the household the user is an active member of.
func (r *householdRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Household, error) {
	var householdModel model.HouseholdModel
	err := r.db.WithContext(ctx).
		Joins("JOIN household_members ON household_members.household_id = households.id").
		Where("household_members.user_id = ? AND household_members.active = ?", userID, true).
		First(&householdModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active household: %w", err)
	}
	return householdModel.ToEntity(), nil
}

// GetWithMembers retrieves a household together with all its memberships. Each
// member carries the linked user's name and email for display.
func (r *householdRepository) GetWithMembers(ctx context.Context, id uuid.UUID) (*entity.HouseholdWithMembers, error) {
	household, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, nil
	}

	type memberRow struct {
		model.HouseholdMemberModel
		UserName  string
		UserEmail string
	}

	var rows []memberRow
	err = r.db.WithContext(ctx).
		Model(&model.HouseholdMemberModel{}).
		Select("household_members.*, users.name as user_name, users.email as user_email").
		Joins("JOIN users ON users.id = household_members.user_id").
		Where("household_members.household_id = ?", id).
		Order("household_members.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find household members: %w", err)
	}

	members := make([]*entity.HouseholdMember, len(rows))
	for i, row := range rows {
		member := row.HouseholdMemberModel.ToEntity()
		member.UserName = row.UserName
		member.UserEmail = row.UserEmail
		members[i] = member
	}

	return &entity.HouseholdWithMembers{Household: household, Members: members}, nil
}

// CreateMember adds a membership to a household.
func (r *householdRepository) CreateMember(ctx context.Context, member *entity.HouseholdMember) error {
	memberModel := model.HouseholdMemberFromEntity(member)
	if err := r.db.WithContext(ctx).Create(memberModel).Error; err != nil {
		return fmt.Errorf("failed to create household member: %w", err)
	}
	return nil
}

// FindMemberByID retrieves a membership by its ID. Returns nil when none matches.
func (r *householdRepository) FindMemberByID(ctx context.Context, id uuid.UUID) (*entity.HouseholdMember, error) {
	var memberModel model.HouseholdMemberModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&memberModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find household member: %w", err)
	}
	return memberModel.ToEntity(), nil
}

// UpdateMember updates a membership.
func (r *householdRepository) UpdateMember(ctx context.Context, member *entity.HouseholdMember) error {
	memberModel := model.HouseholdMemberFromEntity(member)
	if err := r.db.WithContext(ctx).Save(memberModel).Error; err != nil {
		return fmt.Errorf("failed to update household member: %w", err)
	}
	return nil
}

// ActiveMemberUserIDs returns the user IDs of the household's active members.
// The ascending order keeps residual assignment deterministic across calls.
func (r *householdRepository) ActiveMemberUserIDs(ctx context.Context, householdID uuid.UUID) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.HouseholdMemberModel{}).
		Where("household_id = ? AND active = ?", householdID, true).
		Order("user_id ASC").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active member ids: %w", err)
	}
	return userIDs, nil
}

// CountActiveMembers counts the household's active members.
func (r *householdRepository) CountActiveMembers(ctx context.Context, householdID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.HouseholdMemberModel{}).
		Where("household_id = ? AND active = ?", householdID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active members: %w", err)
	}
	return int(count), nil
}

// IsActiveMember checks whether the user is an active member of the household.
func (r *householdRepository) IsActiveMember(ctx context.Context, householdID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.HouseholdMemberModel{}).
		Where("household_id = ? AND user_id = ? AND active = ?", householdID, userID, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// HasActiveMembership checks whether the user is an active member of any household.
func (r *householdRepository) HasActiveMembership(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.HouseholdMemberModel{}).
		Where("user_id = ? AND active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// SumActiveMemberIncomes sums the monthly income of active members, optionally
// restricted to a single member.
func (r *householdRepository) SumActiveMemberIncomes(ctx context.Context, householdID uuid.UUID, memberID *uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&model.HouseholdMemberModel{}).
		Where("household_id = ? AND active = ?", householdID, true)
	if memberID != nil {
		query = query.Where("user_id = ?", *memberID)
	}

	var result struct {
		Total decimal.Decimal
	}
	err := query.Select("COALESCE(SUM(monthly_income), 0) as total").Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum member incomes: %w", err)
	}
	return result.Total, nil
}
