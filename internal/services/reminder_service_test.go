package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dverhoeven/folioagent/internal/agents"
	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	"github.com/dverhoeven/folioagent/internal/notify"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type memReminderRepo struct {
	rows []models.PortfolioReminder
}

func (r *memReminderRepo) Create(_ context.Context, rem *models.PortfolioReminder) error {
	r.rows = append(r.rows, *rem)
	return nil
}

func (r *memReminderRepo) CreateBatch(_ context.Context, rems []models.PortfolioReminder) error {
	r.rows = append(r.rows, rems...)
	return nil
}

func (r *memReminderRepo) GetByID(_ context.Context, id string) (*models.PortfolioReminder, error) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			rem := r.rows[i]
			return &rem, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *memReminderRepo) ListByOwner(_ context.Context, ownerID string, includeCompleted bool) ([]models.PortfolioReminder, error) {
	var out []models.PortfolioReminder
	for _, rem := range r.rows {
		if rem.OwnerID != ownerID {
			continue
		}
		if !includeCompleted && rem.Completed {
			continue
		}
		out = append(out, rem)
	}
	return out, nil
}

func (r *memReminderRepo) ListDueUnnotified(_ context.Context, before time.Time) ([]models.PortfolioReminder, error) {
	var out []models.PortfolioReminder
	for _, rem := range r.rows {
		if !rem.Completed && !rem.NotificationSent && !rem.DueAt.After(before) {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *memReminderRepo) MarkNotified(_ context.Context, id string) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].NotificationSent = true
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (r *memReminderRepo) MarkCompleted(_ context.Context, id string) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Completed = true
			return nil
		}
	}
	return apperr.ErrNotFound
}

type stubEmailSender struct {
	sent []notify.Email
	ok   bool
}

func (s *stubEmailSender) Send(_ context.Context, e notify.Email) bool {
	s.sent = append(s.sent, e)
	return s.ok
}

type stubSMSSender struct {
	sent []string
	ok   bool
}

func (s *stubSMSSender) Send(_ context.Context, _, body string) bool {
	s.sent = append(s.sent, body)
	return s.ok
}

var frozenNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newReminderService(repo *memReminderRepo, email *stubEmailSender, sms *stubSMSSender, phone string) *reminderService {
	notifier := agents.NewOwnerNotifier(email, sms, "owner@example.com", phone, discardLogger())
	svc := NewReminderService(repo, notifier, discardLogger()).(*reminderService)
	svc.now = func() time.Time { return frozenNow }
	return svc
}

func reminder(priority models.ReminderPriority, due time.Time) models.PortfolioReminder {
	return models.PortfolioReminder{
		ID:        uuid.NewString(),
		OwnerID:   uuid.NewString(),
		Title:     "Refresh featured projects",
		Detail:    "Two projects predate 2024",
		Priority:  priority,
		DueAt:     due,
		CreatedAt: frozenNow.Add(-24 * time.Hour),
	}
}

func TestRunDueCheck_NotifiesAndIsIdempotent(t *testing.T) {
	repo := &memReminderRepo{rows: []models.PortfolioReminder{
		reminder(models.PriorityMedium, frozenNow.Add(12*time.Hour)),
		reminder(models.PriorityLow, frozenNow.Add(72*time.Hour)), // beyond the window
	}}
	email := &stubEmailSender{ok: true}
	svc := newReminderService(repo, email, &stubSMSSender{ok: true}, "")

	n, err := svc.RunDueCheck(t.Context())
	if err != nil {
		t.Fatalf("RunDueCheck() = %v", err)
	}
	if n != 1 {
		t.Fatalf("notified = %d, want 1", n)
	}
	if len(email.sent) != 1 {
		t.Fatalf("emails = %d, want 1", len(email.sent))
	}
	if !repo.rows[0].NotificationSent {
		t.Errorf("due reminder not marked notified")
	}
	if repo.rows[1].NotificationSent {
		t.Errorf("reminder outside the window was marked notified")
	}

	// a second run finds nothing new
	n, err = svc.RunDueCheck(t.Context())
	if err != nil {
		t.Fatalf("second RunDueCheck() = %v", err)
	}
	if n != 0 {
		t.Errorf("second run notified = %d, want 0", n)
	}
	if len(email.sent) != 1 {
		t.Errorf("second run sent %d extra emails", len(email.sent)-1)
	}
}

func TestRunDueCheck_EscalatesUrgentToSMS(t *testing.T) {
	repo := &memReminderRepo{rows: []models.PortfolioReminder{
		reminder(models.PriorityUrgent, frozenNow.Add(time.Hour)),
		reminder(models.PriorityLow, frozenNow.Add(time.Hour)),
	}}
	email := &stubEmailSender{ok: true}
	sms := &stubSMSSender{ok: true}
	svc := newReminderService(repo, email, sms, "+31612345678")

	n, err := svc.RunDueCheck(t.Context())
	if err != nil {
		t.Fatalf("RunDueCheck() = %v", err)
	}
	if n != 2 {
		t.Fatalf("notified = %d, want 2", n)
	}
	if len(email.sent) != 2 {
		t.Errorf("emails = %d, want 2", len(email.sent))
	}
	if len(sms.sent) != 1 {
		t.Fatalf("sms = %d, want 1 (urgent only)", len(sms.sent))
	}
	if !strings.Contains(sms.sent[0], "urgent") {
		t.Errorf("sms body = %q, want the priority tag", sms.sent[0])
	}
}

func TestRunDueCheck_NoEscalationWithoutPhone(t *testing.T) {
	repo := &memReminderRepo{rows: []models.PortfolioReminder{
		reminder(models.PriorityHigh, frozenNow.Add(time.Hour)),
	}}
	sms := &stubSMSSender{ok: true}
	svc := newReminderService(repo, &stubEmailSender{ok: true}, sms, "")

	if _, err := svc.RunDueCheck(t.Context()); err != nil {
		t.Fatalf("RunDueCheck() = %v", err)
	}
	if len(sms.sent) != 0 {
		t.Errorf("sms sent without a configured phone")
	}
}

func TestRunDueCheck_FailedChannelsLeaveReminderUnmarked(t *testing.T) {
	repo := &memReminderRepo{rows: []models.PortfolioReminder{
		reminder(models.PriorityMedium, frozenNow.Add(time.Hour)),
	}}
	svc := newReminderService(repo, &stubEmailSender{ok: false}, &stubSMSSender{ok: false}, "")

	n, err := svc.RunDueCheck(t.Context())
	if err != nil {
		t.Fatalf("RunDueCheck() = %v", err)
	}
	if n != 0 {
		t.Errorf("notified = %d, want 0", n)
	}
	if repo.rows[0].NotificationSent {
		t.Errorf("reminder marked notified although every channel failed")
	}
}

func TestRunDueCheck_SMSAloneMarksNotified(t *testing.T) {
	repo := &memReminderRepo{rows: []models.PortfolioReminder{
		reminder(models.PriorityUrgent, frozenNow.Add(time.Hour)),
	}}
	svc := newReminderService(repo, &stubEmailSender{ok: false}, &stubSMSSender{ok: true}, "+31612345678")

	n, err := svc.RunDueCheck(t.Context())
	if err != nil {
		t.Fatalf("RunDueCheck() = %v", err)
	}
	if n != 1 {
		t.Errorf("notified = %d, want 1; sms success should count", n)
	}
}

func TestReminderCreate_Defaults(t *testing.T) {
	repo := &memReminderRepo{}
	svc := newReminderService(repo, &stubEmailSender{ok: true}, &stubSMSSender{ok: true}, "")

	r := &models.PortfolioReminder{
		OwnerID: uuid.NewString(),
		Title:   "Add recent talk",
		DueAt:   frozenNow.Add(7 * 24 * time.Hour),
	}
	if err := svc.Create(t.Context(), r); err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if r.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want medium default", r.Priority)
	}
	if r.ID == "" || r.CreatedAt.IsZero() {
		t.Errorf("id/created_at not defaulted: %+v", r)
	}
}

func TestReminderCreate_Validation(t *testing.T) {
	svc := newReminderService(&memReminderRepo{}, &stubEmailSender{ok: true}, &stubSMSSender{ok: true}, "")

	cases := []struct {
		name string
		rem  *models.PortfolioReminder
	}{
		{"missing title", &models.PortfolioReminder{OwnerID: uuid.NewString(), DueAt: frozenNow}},
		{"missing due date", &models.PortfolioReminder{OwnerID: uuid.NewString(), Title: "t"}},
		{"unknown priority", &models.PortfolioReminder{OwnerID: uuid.NewString(), Title: "t", DueAt: frozenNow, Priority: "whenever"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Create(t.Context(), tc.rem); !apperr.IsCode(err, apperr.CodeInvalidArgument) {
				t.Errorf("Create() = %v, want INVALID_ARGUMENT", err)
			}
		})
	}
}

func TestReminderComplete_NotFound(t *testing.T) {
	svc := newReminderService(&memReminderRepo{}, &stubEmailSender{ok: true}, &stubSMSSender{ok: true}, "")

	if err := svc.Complete(t.Context(), uuid.NewString()); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Errorf("Complete() = %v, want NOT_FOUND", err)
	}
}
