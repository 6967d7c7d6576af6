package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dverhoeven/folioagent/internal/agents"
	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	pgrepo "github.com/dverhoeven/folioagent/internal/repositories/postgres"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DueCheckWindow is how far ahead the due-check looks.
const DueCheckWindow = 48 * time.Hour

type ReminderService interface {
	Create(ctx context.Context, r *models.PortfolioReminder) error
	List(ctx context.Context, ownerID string, includeCompleted bool) ([]models.PortfolioReminder, error)
	Complete(ctx context.Context, id string) error
	RunDueCheck(ctx context.Context) (int, error)
}

type reminderService struct {
	reminders pgrepo.ReminderRepository
	notifier  *agents.OwnerNotifier
	log       *logrus.Logger
	now       func() time.Time
}

func NewReminderService(reminders pgrepo.ReminderRepository, notifier *agents.OwnerNotifier, log *logrus.Logger) ReminderService {
	return &reminderService{
		reminders: reminders,
		notifier:  notifier,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *reminderService) Create(ctx context.Context, r *models.PortfolioReminder) error {
	const op = "ReminderService.Create"

	if r == nil || r.OwnerID == "" || r.Title == "" {
		return apperr.E(apperr.CodeInvalidArgument, op, "owner_id and title are required", nil)
	}
	if r.DueAt.IsZero() {
		return apperr.E(apperr.CodeInvalidArgument, op, "due_at is required", nil)
	}
	if r.Priority == "" {
		r.Priority = models.PriorityMedium
	}
	if !r.Priority.Valid() {
		return apperr.E(apperr.CodeInvalidArgument, op, "unknown priority", nil)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	if err := s.reminders.Create(ctx, r); err != nil {
		return apperr.E(apperr.CodePersistence, op, "failed to create reminder", err)
	}
	return nil
}

func (s *reminderService) List(ctx context.Context, ownerID string, includeCompleted bool) ([]models.PortfolioReminder, error) {
	const op = "ReminderService.List"

	if ownerID == "" {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "owner_id is required", nil)
	}
	rows, err := s.reminders.ListByOwner(ctx, ownerID, includeCompleted)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list reminders", err)
	}
	return rows, nil
}

func (s *reminderService) Complete(ctx context.Context, id string) error {
	const op = "ReminderService.Complete"

	if id == "" {
		return apperr.E(apperr.CodeInvalidArgument, op, "id is required", nil)
	}
	if err := s.reminders.MarkCompleted(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.E(apperr.CodeNotFound, op, "reminder not found", err)
		}
		return apperr.E(apperr.CodePersistence, op, "failed to complete reminder", err)
	}
	return nil
}

// RunDueCheck notifies the owner about reminders due within the lookahead
// window, one notification per reminder, and marks each notified so a re-run
// skips it. High and urgent reminders additionally escalate to SMS when the
// owner phone is configured.
func (s *reminderService) RunDueCheck(ctx context.Context) (int, error) {
	const op = "ReminderService.RunDueCheck"

	cutoff := s.now().Add(DueCheckWindow)
	due, err := s.reminders.ListDueUnnotified(ctx, cutoff)
	if err != nil {
		return 0, apperr.E(apperr.CodeInternal, op, "failed to scan reminders", err)
	}

	notified := 0
	for _, r := range due {
		subject := fmt.Sprintf("Portfolio reminder due: %s", r.Title)
		body := fmt.Sprintf("%s\n\nPriority: %s\nDue: %s\n\n%s",
			r.Title, r.Priority, r.DueAt.Format("2006-01-02 15:04 MST"), r.Detail)

		sent := s.notifier.EmailOwner(ctx, subject, body)

		if r.Priority.Escalates() && s.notifier.PhoneConfigured() {
			smsBody := fmt.Sprintf("[%s] Portfolio reminder due: %s", r.Priority, r.Title)
			if s.notifier.SMSOwner(ctx, smsBody) {
				sent = true
			}
		}

		if !sent {
			s.log.WithField("reminder_id", r.ID).Warn("no notification channel delivered, reminder left unmarked")
			continue
		}

		if err := s.reminders.MarkNotified(ctx, r.ID); err != nil {
			s.log.WithField("reminder_id", r.ID).WithError(err).Error("failed to mark reminder notified")
			continue
		}
		notified++
	}

	s.log.WithFields(logrus.Fields{
		"due":      len(due),
		"notified": notified,
	}).Info("reminder due-check completed")
	return notified, nil
}
