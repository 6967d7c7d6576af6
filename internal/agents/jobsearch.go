package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	"github.com/dverhoeven/folioagent/internal/prompt"
	"github.com/dverhoeven/folioagent/internal/providers/llm"
	pgrepo "github.com/dverhoeven/folioagent/internal/repositories/postgres"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const (
	defaultJobResults = 5
	maxJobResults     = 10
)

type JobSearchParams struct {
	OwnerID    string `json:"owner_id"`
	Focus      string `json:"focus,omitempty"`    // optional role/domain filter
	Location   string `json:"location,omitempty"` // optional location preference
	MaxResults int    `json:"max_results,omitempty"`
}

// JobSearchAgent runs one fetch, prompt, infer, persist, notify cycle that
// turns the owner's skills and work history into new job alerts.
type JobSearchAgent struct {
	owners     pgrepo.OwnerRepository
	skills     pgrepo.SkillRepository
	experience pgrepo.ExperienceRepository
	alerts     pgrepo.JobAlertRepository
	model      llm.Provider
	notifier   *OwnerNotifier
	log        *logrus.Logger
}

func NewJobSearchAgent(
	owners pgrepo.OwnerRepository,
	skills pgrepo.SkillRepository,
	experience pgrepo.ExperienceRepository,
	alerts pgrepo.JobAlertRepository,
	model llm.Provider,
	notifier *OwnerNotifier,
	log *logrus.Logger,
) *JobSearchAgent {
	return &JobSearchAgent{
		owners:     owners,
		skills:     skills,
		experience: experience,
		alerts:     alerts,
		model:      model,
		notifier:   notifier,
		log:        log,
	}
}

// jobResult is the shape each element of the model's JSON array must match.
type jobResult struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	URL          string   `json:"url"`
	Summary      string   `json:"summary"`
	MatchScore   float64  `json:"match_score"`
	MatchReasons []string `json:"match_reasons"`
}

func (a *JobSearchAgent) SearchJobs(ctx context.Context, p JobSearchParams) ([]models.JobAlert, error) {
	const op = "JobSearchAgent.SearchJobs"

	alerts, err := a.searchJobs(ctx, op, p)
	if err != nil {
		a.log.WithFields(logrus.Fields{
			"owner_id": p.OwnerID,
			"focus":    p.Focus,
		}).WithError(err).Error("job search task failed")
		return nil, err
	}
	return alerts, nil
}

func (a *JobSearchAgent) searchJobs(ctx context.Context, op string, p JobSearchParams) ([]models.JobAlert, error) {
	// validate before any external call
	if _, err := uuid.Parse(p.OwnerID); err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "owner_id must be a valid uuid", err)
	}
	if p.MaxResults < 0 {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "max_results must not be negative", nil)
	}
	if p.MaxResults == 0 {
		p.MaxResults = defaultJobResults
	}
	if p.MaxResults > maxJobResults {
		p.MaxResults = maxJobResults
	}

	// fetch
	owner, err := a.owners.Get(ctx, p.OwnerID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.E(apperr.CodeNotFound, op, "owner not found", err)
		}
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load owner", err)
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
		return nil, apperr.E(apperr.CodeInsufficientData, op, "owner has no skills and no experience to search against", nil)
	}

	// format
	location := p.Location
	if location == "" {
		location = owner.Location
	}
	focusLine := ""
	if p.Focus != "" {
		focusLine = "Focus specifically on roles related to: " + p.Focus + "."
	}
	filled := prompt.Fill(prompt.JobSearch, map[string]string{
		"full_name":   owner.FullName,
		"headline":    owner.Headline,
		"location":    location,
		"skills":      prompt.FormatSkills(skills),
		"experience":  prompt.FormatExperience(experience),
		"max_results": strconv.Itoa(p.MaxResults),
		"focus_line":  focusLine,
	})

	// infer: one best-effort request, no retry
	raw, err := a.model.Generate(ctx, filled, TempAnalytical)
	if err != nil {
		return nil, apperr.E(apperr.CodeInference, op, "language model call failed", err)
	}

	// parse + shape check
	var results []jobResult
	if err := DecodeModelJSON(op, raw, &results); err != nil {
		return nil, err
	}
	// the prompt asks for at most max_results, but the model is not trusted
	// to honor it
	if len(results) > p.MaxResults {
		results = results[:p.MaxResults]
	}
	for i, r := range results {
		if r.Title == "" || r.Company == "" {
			return nil, apperr.E(apperr.CodeMalformedResponse, op,
				fmt.Sprintf("job %d is missing title or company", i), nil)
		}
	}

	// persist: one batch, all-or-nothing
	now := time.Now().UTC()
	alerts := make([]models.JobAlert, 0, len(results))
	for _, r := range results {
		reasons, _ := json.Marshal(r.MatchReasons)
		alerts = append(alerts, models.JobAlert{
			ID:           uuid.NewString(),
			OwnerID:      p.OwnerID,
			Title:        r.Title,
			Company:      r.Company,
			Location:     r.Location,
			URL:          r.URL,
			Summary:      r.Summary,
			MatchScore:   clampScore(r.MatchScore),
			MatchReasons: datatypes.JSON(reasons),
			Status:       models.JobStatusIdentified,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	if err := a.alerts.CreateBatch(ctx, alerts); err != nil {
		return nil, apperr.E(apperr.CodePersistence, op, "failed to store job alerts", err)
	}

	// notify: cosmetic, never fails the task
	a.notifier.EmailOwner(ctx, fmt.Sprintf("Job search: %d new opportunities", len(alerts)), jobDigest(alerts))

	a.log.WithFields(logrus.Fields{
		"owner_id": p.OwnerID,
		"created":  len(alerts),
	}).Info("job search task completed")
	return alerts, nil
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

func jobDigest(alerts []models.JobAlert) string {
	var sb strings.Builder
	sb.WriteString("New opportunities identified:\n\n")
	for _, a := range alerts {
		fmt.Fprintf(&sb, "- %s at %s (%s), match %d/100\n  %s\n", a.Title, a.Company, a.Location, a.MatchScore, a.URL)
	}
	return sb.String()
}
