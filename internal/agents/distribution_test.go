package agents

import (
	"testing"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"

	"github.com/google/uuid"
)

func identifiedAlert() models.JobAlert {
	now := time.Now().UTC()
	return models.JobAlert{
		ID:        uuid.NewString(),
		OwnerID:   testOwnerID,
		Title:     "Backend Engineer",
		Company:   "Acme",
		Location:  "Remote",
		Summary:   "Go services",
		Status:    models.JobStatusIdentified,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newDistributionAgent(alert models.JobAlert, model *fakeModel) (*DistributionAgent, *fakeJobAlertRepo, *fakeDistributionRepo, *fakeEmailSender) {
	owner := testOwner()
	owner.ResumeURL = "https://storage.example/resumes/dana.pdf"

	alerts := &fakeJobAlertRepo{rows: []models.JobAlert{alert}}
	dists := &fakeDistributionRepo{}
	email := &fakeEmailSender{ok: true}
	notifier := NewOwnerNotifier(email, &fakeSMSSender{ok: true}, "owner@example.com", "", discardLogger())

	a := NewDistributionAgent(
		&fakeOwnerRepo{owner: owner},
		&fakeSkillRepo{rows: skillRows(2)},
		&fakeExperienceRepo{rows: experienceRows(1)},
		alerts,
		dists,
		model,
		notifier,
		discardLogger(),
	)
	return a, alerts, dists, email
}

func TestDistribute_Success(t *testing.T) {
	alert := identifiedAlert()
	model := &fakeModel{reply: `{"subject":"Application: Backend Engineer","body":"Dear hiring team, ..."}`}
	a, alerts, dists, email := newDistributionAgent(alert, model)

	got, err := a.Distribute(t.Context(), DistributeParams{
		OwnerID:      testOwnerID,
		JobAlertID:   alert.ID,
		ContactEmail: "recruiter@acme.example",
	})
	if err != nil {
		t.Fatalf("Distribute() = %v, want nil", err)
	}

	if got.Status != models.DistStatusSent {
		t.Errorf("status = %q, want sent", got.Status)
	}
	if got.Subject != "Application: Backend Engineer" {
		t.Errorf("subject = %q", got.Subject)
	}
	if got.JobAlertID == nil || *got.JobAlertID != alert.ID {
		t.Errorf("job alert link = %v, want %s", got.JobAlertID, alert.ID)
	}
	if got.ResumeURL != "https://storage.example/resumes/dana.pdf" {
		t.Errorf("resume url = %q", got.ResumeURL)
	}
	if len(dists.rows) != 1 {
		t.Fatalf("persisted %d distributions, want 1", len(dists.rows))
	}
	if alerts.rows[0].Status != models.JobStatusApplied {
		t.Errorf("alert status = %q, want applied", alerts.rows[0].Status)
	}
	if model.lastTemp != TempCreative {
		t.Errorf("temperature = %v, want %v", model.lastTemp, TempCreative)
	}
	if len(email.sent) != 1 {
		t.Errorf("owner emails = %d, want 1", len(email.sent))
	}
}

func TestDistribute_AlertNotFound(t *testing.T) {
	model := &fakeModel{reply: `{"subject":"s","body":"b"}`}
	a, _, dists, _ := newDistributionAgent(identifiedAlert(), model)

	_, err := a.Distribute(t.Context(), DistributeParams{
		OwnerID:    testOwnerID,
		JobAlertID: uuid.NewString(),
	})
	if !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
	if model.calls != 0 {
		t.Errorf("model called %d times for a missing alert", model.calls)
	}
	if len(dists.rows) != 0 {
		t.Errorf("persisted %d distributions, want 0", len(dists.rows))
	}
}

func TestDistribute_InvalidContactEmail(t *testing.T) {
	alert := identifiedAlert()
	a, _, _, _ := newDistributionAgent(alert, &fakeModel{reply: `{}`})

	_, err := a.Distribute(t.Context(), DistributeParams{
		OwnerID:      testOwnerID,
		JobAlertID:   alert.ID,
		ContactEmail: "not an address",
	})
	if !apperr.IsCode(err, apperr.CodeInvalidArgument) {
		t.Fatalf("error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestDistribute_MissingLetterFields(t *testing.T) {
	alert := identifiedAlert()
	model := &fakeModel{reply: `{"subject":"only a subject"}`}
	a, alerts, dists, _ := newDistributionAgent(alert, model)

	_, err := a.Distribute(t.Context(), DistributeParams{
		OwnerID:    testOwnerID,
		JobAlertID: alert.ID,
	})
	if !apperr.IsCode(err, apperr.CodeMalformedResponse) {
		t.Fatalf("error = %v, want MALFORMED_RESPONSE", err)
	}
	if len(dists.rows) != 0 {
		t.Errorf("persisted %d distributions, want 0", len(dists.rows))
	}
	if alerts.rows[0].Status != models.JobStatusIdentified {
		t.Errorf("alert status changed to %q on a failed task", alerts.rows[0].Status)
	}
}

func TestDistribute_AlreadyAppliedAlertKeepsStatus(t *testing.T) {
	alert := identifiedAlert()
	alert.Status = models.JobStatusInterview
	model := &fakeModel{reply: `{"subject":"s","body":"b"}`}
	a, alerts, dists, _ := newDistributionAgent(alert, model)

	_, err := a.Distribute(t.Context(), DistributeParams{
		OwnerID:    testOwnerID,
		JobAlertID: alert.ID,
	})
	if err != nil {
		t.Fatalf("Distribute() = %v, want nil", err)
	}
	if len(dists.rows) != 1 {
		t.Fatalf("persisted %d distributions, want 1", len(dists.rows))
	}
	if alerts.rows[0].Status != models.JobStatusInterview {
		t.Errorf("alert status = %q, want interview untouched", alerts.rows[0].Status)
	}
}
