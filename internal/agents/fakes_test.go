package agents

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	"github.com/dverhoeven/folioagent/internal/notify"

	"github.com/sirupsen/logrus"
)

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeModel counts calls and replays a canned reply, so tests can assert the
// model was (or was not) consulted.
type fakeModel struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
	lastTemp   float32
}

func (m *fakeModel) Generate(_ context.Context, prompt string, temp float32) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastTemp = temp
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *fakeModel) Stream(ctx context.Context, prompt string, temp float32) (<-chan string, <-chan error) {
	out := make(chan string, 1)
	errs := make(chan error, 1)
	reply, err := m.Generate(ctx, prompt, temp)
	if err != nil {
		errs <- err
	} else {
		out <- reply
	}
	close(out)
	close(errs)
	return out, errs
}

func (m *fakeModel) Close() error { return nil }

type fakeOwnerRepo struct {
	owner *models.Owner
}

func (r *fakeOwnerRepo) Get(_ context.Context, id string) (*models.Owner, error) {
	if r.owner == nil || r.owner.ID != id {
		return nil, apperr.ErrNotFound
	}
	return r.owner, nil
}

func (r *fakeOwnerRepo) First(_ context.Context) (*models.Owner, error) {
	if r.owner == nil {
		return nil, apperr.ErrNotFound
	}
	return r.owner, nil
}

func (r *fakeOwnerRepo) Upsert(_ context.Context, o *models.Owner) error {
	r.owner = o
	return nil
}

type fakeSkillRepo struct {
	rows []models.Skill
}

func (r *fakeSkillRepo) Create(_ context.Context, s *models.Skill) error {
	r.rows = append(r.rows, *s)
	return nil
}

func (r *fakeSkillRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Skill, error) {
	var out []models.Skill
	for _, s := range r.rows {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeExperienceRepo struct {
	rows []models.Experience
}

func (r *fakeExperienceRepo) Create(_ context.Context, e *models.Experience) error {
	r.rows = append(r.rows, *e)
	return nil
}

func (r *fakeExperienceRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Experience, error) {
	var out []models.Experience
	for _, e := range r.rows {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeProjectRepo struct {
	rows []models.Project
}

func (r *fakeProjectRepo) Create(_ context.Context, p *models.Project) error {
	r.rows = append(r.rows, *p)
	return nil
}

func (r *fakeProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.rows {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) ListFeatured(_ context.Context, ownerID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.rows {
		if p.OwnerID == ownerID && p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeJobAlertRepo struct {
	rows      []models.JobAlert
	failBatch bool
}

func (r *fakeJobAlertRepo) CreateBatch(_ context.Context, alerts []models.JobAlert) error {
	if r.failBatch {
		return errors.New("insert failed")
	}
	r.rows = append(r.rows, alerts...)
	return nil
}

func (r *fakeJobAlertRepo) GetByID(_ context.Context, id string) (*models.JobAlert, error) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			return &r.rows[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeJobAlertRepo) ListByOwner(_ context.Context, ownerID string, status models.JobAlertStatus, _ int) ([]models.JobAlert, error) {
	var out []models.JobAlert
	for _, a := range r.rows {
		if a.OwnerID == ownerID && (status == "" || a.Status == status) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeJobAlertRepo) UpdateStatus(_ context.Context, id string, status models.JobAlertStatus) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Status = status
			return nil
		}
	}
	return apperr.ErrNotFound
}

type fakeDistributionRepo struct {
	rows []models.ResumeDistribution
}

func (r *fakeDistributionRepo) Create(_ context.Context, d *models.ResumeDistribution) error {
	r.rows = append(r.rows, *d)
	return nil
}

func (r *fakeDistributionRepo) GetByID(_ context.Context, id string) (*models.ResumeDistribution, error) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			return &r.rows[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeDistributionRepo) ListByOwner(_ context.Context, ownerID string, _ int) ([]models.ResumeDistribution, error) {
	var out []models.ResumeDistribution
	for _, d := range r.rows {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDistributionRepo) UpdateStatus(_ context.Context, id string, status models.DistributionStatus) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Status = status
			return nil
		}
	}
	return apperr.ErrNotFound
}

type fakeTrendRepo struct {
	rows []models.TechnologyTrend
}

func (r *fakeTrendRepo) Upsert(_ context.Context, t *models.TechnologyTrend) error {
	r.rows = append(r.rows, *t)
	return nil
}

func (r *fakeTrendRepo) List(_ context.Context, _ int) ([]models.TechnologyTrend, error) {
	return r.rows, nil
}

type fakeReminderRepo struct {
	rows []models.PortfolioReminder
}

func (r *fakeReminderRepo) Create(_ context.Context, rem *models.PortfolioReminder) error {
	r.rows = append(r.rows, *rem)
	return nil
}

func (r *fakeReminderRepo) CreateBatch(_ context.Context, rems []models.PortfolioReminder) error {
	r.rows = append(r.rows, rems...)
	return nil
}

func (r *fakeReminderRepo) GetByID(_ context.Context, id string) (*models.PortfolioReminder, error) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			return &r.rows[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeReminderRepo) ListByOwner(_ context.Context, ownerID string, includeCompleted bool) ([]models.PortfolioReminder, error) {
	var out []models.PortfolioReminder
	for _, rem := range r.rows {
		if rem.OwnerID == ownerID && (includeCompleted || !rem.Completed) {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) ListDueUnnotified(_ context.Context, before time.Time) ([]models.PortfolioReminder, error) {
	var out []models.PortfolioReminder
	for _, rem := range r.rows {
		if !rem.Completed && !rem.NotificationSent && !rem.DueAt.After(before) {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) MarkNotified(_ context.Context, id string) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].NotificationSent = true
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (r *fakeReminderRepo) MarkCompleted(_ context.Context, id string) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Completed = true
			return nil
		}
	}
	return apperr.ErrNotFound
}

// fakeEmailSender and fakeSMSSender record what was sent.
type fakeEmailSender struct {
	sent []notify.Email
	ok   bool
}

func (s *fakeEmailSender) Send(_ context.Context, e notify.Email) bool {
	s.sent = append(s.sent, e)
	return s.ok
}

type fakeSMSSender struct {
	sent []string
	ok   bool
}

func (s *fakeSMSSender) Send(_ context.Context, _, body string) bool {
	s.sent = append(s.sent, body)
	return s.ok
}
