package agents

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	"github.com/dverhoeven/folioagent/internal/prompt"
	"github.com/dverhoeven/folioagent/internal/providers/llm"
	pgrepo "github.com/dverhoeven/folioagent/internal/repositories/postgres"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DistributeParams struct {
	OwnerID      string `json:"owner_id"`
	JobAlertID   string `json:"job_alert_id"`
	ContactEmail string `json:"contact_email"`
}

// DistributionAgent drafts a cover letter for one identified job alert and
// records the resulting resume distribution.
type DistributionAgent struct {
	owners        pgrepo.OwnerRepository
	skills        pgrepo.SkillRepository
	experience    pgrepo.ExperienceRepository
	alerts        pgrepo.JobAlertRepository
	distributions pgrepo.DistributionRepository
	model         llm.Provider
	notifier      *OwnerNotifier
	log           *logrus.Logger
}

func NewDistributionAgent(
	owners pgrepo.OwnerRepository,
	skills pgrepo.SkillRepository,
	experience pgrepo.ExperienceRepository,
	alerts pgrepo.JobAlertRepository,
	distributions pgrepo.DistributionRepository,
	model llm.Provider,
	notifier *OwnerNotifier,
	log *logrus.Logger,
) *DistributionAgent {
	return &DistributionAgent{
		owners:        owners,
		skills:        skills,
		experience:    experience,
		alerts:        alerts,
		distributions: distributions,
		model:         model,
		notifier:      notifier,
		log:           log,
	}
}

type coverLetterResult struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (a *DistributionAgent) Distribute(ctx context.Context, p DistributeParams) (*models.ResumeDistribution, error) {
	const op = "DistributionAgent.Distribute"

	dist, err := a.distribute(ctx, op, p)
	if err != nil {
		a.log.WithFields(logrus.Fields{
			"owner_id":     p.OwnerID,
			"job_alert_id": p.JobAlertID,
		}).WithError(err).Error("resume distribution task failed")
		return nil, err
	}
	return dist, nil
}

func (a *DistributionAgent) distribute(ctx context.Context, op string, p DistributeParams) (*models.ResumeDistribution, error) {
	if _, err := uuid.Parse(p.OwnerID); err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "owner_id must be a valid uuid", err)
	}
	if _, err := uuid.Parse(p.JobAlertID); err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "job_alert_id must be a valid uuid", err)
	}
	if p.ContactEmail != "" {
		if _, err := mail.ParseAddress(p.ContactEmail); err != nil {
			return nil, apperr.E(apperr.CodeInvalidArgument, op, "contact_email is not a valid address", err)
		}
	}

	owner, err := a.owners.Get(ctx, p.OwnerID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.E(apperr.CodeNotFound, op, "owner not found", err)
		}
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load owner", err)
	}

	alert, err := a.alerts.GetByID(ctx, p.JobAlertID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.E(apperr.CodeNotFound, op, "job alert not found", err)
		}
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load job alert", err)
	}

	skills, err := a.skills.ListByOwner(ctx, p.OwnerID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load skills", err)
	}
	experience, err := a.experience.ListByOwner(ctx, p.OwnerID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load experience", err)
	}
	if len(skills) == 0 && len(experience) == 0 {
		return nil, apperr.E(apperr.CodeInsufficientData, op, "owner has no skills and no experience to draft from", nil)
	}

	filled := prompt.Fill(prompt.CoverLetter, map[string]string{
		"full_name":    owner.FullName,
		"headline":     owner.Headline,
		"skills":       prompt.FormatSkills(skills),
		"experience":   prompt.FormatExperience(experience),
		"job_title":    alert.Title,
		"company":      alert.Company,
		"job_location": alert.Location,
		"job_summary":  alert.Summary,
	})

	raw, err := a.model.Generate(ctx, filled, TempCreative)
	if err != nil {
		return nil, apperr.E(apperr.CodeInference, op, "language model call failed", err)
	}

	var letter coverLetterResult
	if err := DecodeModelJSON(op, raw, &letter); err != nil {
		return nil, err
	}
	if letter.Subject == "" || letter.Body == "" {
		return nil, apperr.E(apperr.CodeMalformedResponse, op, "cover letter is missing subject or body", nil)
	}

	now := time.Now().UTC()
	alertID := alert.ID
	dist := &models.ResumeDistribution{
		ID:           uuid.NewString(),
		OwnerID:      p.OwnerID,
		JobAlertID:   &alertID,
		Company:      alert.Company,
		ContactEmail: p.ContactEmail,
		Subject:      letter.Subject,
		CoverLetter:  letter.Body,
		ResumeURL:    owner.ResumeURL,
		Status:       models.DistStatusSent,
		SentAt:       now,
		UpdatedAt:    now,
	}
	if err := a.distributions.Create(ctx, dist); err != nil {
		return nil, apperr.E(apperr.CodePersistence, op, "failed to store distribution", err)
	}

	// the alert moves along with the distribution; failure here is logged only
	if alert.Status.CanTransitionTo(models.JobStatusApplied) {
		if err := a.alerts.UpdateStatus(ctx, alert.ID, models.JobStatusApplied); err != nil {
			a.log.WithField("job_alert_id", alert.ID).WithError(err).Warn("failed to mark job alert applied")
		}
	}

	a.notifier.EmailOwner(ctx,
		fmt.Sprintf("Resume sent: %s at %s", alert.Title, alert.Company),
		fmt.Sprintf("Subject: %s\n\n%s\n\nResume: %s", letter.Subject, letter.Body, dist.ResumeURL))

	a.log.WithFields(logrus.Fields{
		"owner_id":        p.OwnerID,
		"distribution_id": dist.ID,
		"company":         alert.Company,
	}).Info("resume distribution task completed")
	return dist, nil
}
