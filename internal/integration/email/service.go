// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{
		queue: queue,
	}
}

// QueueHouseholdInvitationEmail queues a household invitation notification.
func (s *Service) QueueHouseholdInvitationEmail(ctx context.Context, input adapter.QueueHouseholdInvitationInput) error {
	subject := fmt.Sprintf("%s added you to %s - Shared Expenses", input.InviterName, input.HouseholdName)

	templateData := map[string]interface{}{
		"inviter_name":   input.InviterName,
		"household_name": input.HouseholdName,
		"invitee_name":   input.InviteeName,
	}

	job := entity.NewEmailJob(
		entity.TemplateHouseholdInvitation,
		input.InviteeEmail,
		input.InviteeName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue household invitation email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
