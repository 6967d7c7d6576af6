package agents

import (
	"context"
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
)

const (
	defaultSuggestions = 5
	maxSuggestions     = 10
	trendSampleSize    = 20
)

type AnalyzeParams struct {
	OwnerID    string `json:"owner_id"`
	MaxResults int    `json:"max_results,omitempty"`
}

// AnalysisAgent audits the portfolio for stale content and skill gaps against
// the technology-trend reference data, producing reminders for the owner.
type AnalysisAgent struct {
	owners     pgrepo.OwnerRepository
	skills     pgrepo.SkillRepository
	experience pgrepo.ExperienceRepository
	projects   pgrepo.ProjectRepository
	trends     pgrepo.TrendRepository
	reminders  pgrepo.ReminderRepository
	model      llm.Provider
	notifier   *OwnerNotifier
	log        *logrus.Logger
}

func NewAnalysisAgent(
	owners pgrepo.OwnerRepository,
	skills pgrepo.SkillRepository,
	experience pgrepo.ExperienceRepository,
	projects pgrepo.ProjectRepository,
	trends pgrepo.TrendRepository,
	reminders pgrepo.ReminderRepository,
	model llm.Provider,
	notifier *OwnerNotifier,
	log *logrus.Logger,
) *AnalysisAgent {
	return &AnalysisAgent{
		owners:     owners,
		skills:     skills,
		experience: experience,
		projects:   projects,
		trends:     trends,
		reminders:  reminders,
		model:      model,
		notifier:   notifier,
		log:        log,
	}
}

type suggestionResult struct {
	Title     string `json:"title"`
	Detail    string `json:"detail"`
	Priority  string `json:"priority"`
	DueInDays int    `json:"due_in_days"`
}

func (a *AnalysisAgent) AnalyzePortfolio(ctx context.Context, p AnalyzeParams) ([]models.PortfolioReminder, error) {
	const op = "AnalysisAgent.AnalyzePortfolio"

	rems, err := a.analyze(ctx, op, p)
	if err != nil {
		a.log.WithField("owner_id", p.OwnerID).WithError(err).Error("portfolio analysis task failed")
		return nil, err
	}
	return rems, nil
}

func (a *AnalysisAgent) analyze(ctx context.Context, op string, p AnalyzeParams) ([]models.PortfolioReminder, error) {
	if _, err := uuid.Parse(p.OwnerID); err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "owner_id must be a valid uuid", err)
	}
	if p.MaxResults <= 0 {
		p.MaxResults = defaultSuggestions
	}
	if p.MaxResults > maxSuggestions {
		p.MaxResults = maxSuggestions
	}

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
	if len(skills) == 0 {
		return nil, apperr.E(apperr.CodeInsufficientData, op, "owner has no skills to analyze", nil)
	}

	experience, err := a.experience.ListByOwner(ctx, p.OwnerID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load experience", err)
	}
	projects, err := a.projects.ListByOwner(ctx, p.OwnerID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load projects", err)
	}
	trends, err := a.trends.List(ctx, trendSampleSize)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load trends", err)
	}

	now := time.Now().UTC()
	staleness := prompt.FormatStaleness(now,
		[]string{"profile", "skills", "projects"},
		[]time.Time{owner.UpdatedAt, newestSkill(skills), newestProject(projects)})

	filled := prompt.Fill(prompt.PortfolioAnalysis, map[string]string{
		"full_name":   owner.FullName,
		"headline":    owner.Headline,
		"skills":      prompt.FormatSkills(skills),
		"projects":    prompt.FormatProjects(projects),
		"experience":  prompt.FormatExperience(experience),
		"staleness":   staleness,
		"trends":      prompt.FormatTrends(trends),
		"max_results": strconv.Itoa(p.MaxResults),
	})

	raw, err := a.model.Generate(ctx, filled, TempAnalytical)
	if err != nil {
		return nil, apperr.E(apperr.CodeInference, op, "language model call failed", err)
	}

	var suggestions []suggestionResult
	if err := DecodeModelJSON(op, raw, &suggestions); err != nil {
		return nil, err
	}
	if len(suggestions) > p.MaxResults {
		suggestions = suggestions[:p.MaxResults]
	}

	rems := make([]models.PortfolioReminder, 0, len(suggestions))
	for i, s := range suggestions {
		pri := models.ReminderPriority(strings.ToLower(s.Priority))
		if s.Title == "" || !pri.Valid() {
			return nil, apperr.E(apperr.CodeMalformedResponse, op,
				fmt.Sprintf("suggestion %d has a missing title or unknown priority", i), nil)
		}
		due := s.DueInDays
		if due <= 0 {
			due = 7
		}
		rems = append(rems, models.PortfolioReminder{
			ID:        uuid.NewString(),
			OwnerID:   p.OwnerID,
			Title:     s.Title,
			Detail:    s.Detail,
			Priority:  pri,
			DueAt:     now.AddDate(0, 0, due),
			CreatedAt: now,
		})
	}

	if err := a.reminders.CreateBatch(ctx, rems); err != nil {
		return nil, apperr.E(apperr.CodePersistence, op, "failed to store reminders", err)
	}

	a.notifier.EmailOwner(ctx,
		fmt.Sprintf("Portfolio analysis: %d suggestions", len(rems)),
		suggestionDigest(rems))

	a.log.WithFields(logrus.Fields{
		"owner_id": p.OwnerID,
		"created":  len(rems),
	}).Info("portfolio analysis task completed")
	return rems, nil
}

func newestSkill(skills []models.Skill) time.Time {
	var newest time.Time
	for _, s := range skills {
		if s.UpdatedAt.After(newest) {
			newest = s.UpdatedAt
		}
	}
	return newest
}

func newestProject(projects []models.Project) time.Time {
	var newest time.Time
	for _, p := range projects {
		if p.UpdatedAt.After(newest) {
			newest = p.UpdatedAt
		}
	}
	return newest
}

func suggestionDigest(rems []models.PortfolioReminder) string {
	var sb strings.Builder
	sb.WriteString("Portfolio improvement suggestions:\n\n")
	for _, r := range rems {
		fmt.Fprintf(&sb, "- [%s] %s (due %s)\n  %s\n", r.Priority, r.Title, r.DueAt.Format("2006-01-02"), r.Detail)
	}
	return sb.String()
}
