package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/dverhoeven/folioagent/internal/models"
)

// Deterministic renderers from entities to prompt variables. Dates are ISO
// (yyyy-mm-dd); a nil end date renders as "Present".

func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func FormatDateRange(start time.Time, end *time.Time) string {
	if end == nil {
		return FormatDate(start) + " to Present"
	}
	return FormatDate(start) + " to " + FormatDate(*end)
}

func FormatSkills(skills []models.Skill) string {
	if len(skills) == 0 {
		return "none listed"
	}
	var sb strings.Builder
	for _, s := range skills {
		fmt.Fprintf(&sb, "- %s (%s, %s, %.1f years)\n", s.Name, s.Category, s.Proficiency, s.YearsExperience)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatExperience(entries []models.Experience) string {
	if len(entries) == 0 {
		return "none listed"
	}
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "- %s at %s (%s): %s", e.Title, e.Company, FormatDateRange(e.StartDate, e.EndDate), e.Summary)
		if len(e.Technologies) > 0 {
			fmt.Fprintf(&sb, " [tech: %s]", strings.Join(e.Technologies, ", "))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatEducation(entries []models.Education) string {
	if len(entries) == 0 {
		return "none listed"
	}
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "- %s in %s, %s (%s)\n", e.Degree, e.Field, e.Institution, FormatDateRange(e.StartDate, e.EndDate))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatProjects(projects []models.Project) string {
	if len(projects) == 0 {
		return "none listed"
	}
	var sb strings.Builder
	for _, p := range projects {
		fmt.Fprintf(&sb, "- %s: %s", p.Name, p.Summary)
		if len(p.Technologies) > 0 {
			fmt.Fprintf(&sb, " [tech: %s]", strings.Join(p.Technologies, ", "))
		}
		if p.URL != "" {
			fmt.Fprintf(&sb, " (%s)", p.URL)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatTrends(trends []models.TechnologyTrend) string {
	if len(trends) == 0 {
		return "none listed"
	}
	var sb strings.Builder
	for _, t := range trends {
		fmt.Fprintf(&sb, "- %s (%s, momentum %d/100): %s\n", t.Name, t.Category, t.Momentum, t.Summary)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatStaleness reports how long ago each content area was touched, feeding
// the analysis agent's refresh suggestions.
func FormatStaleness(now time.Time, labels []string, updatedAt []time.Time) string {
	var sb strings.Builder
	for i, label := range labels {
		if i >= len(updatedAt) {
			break
		}
		if updatedAt[i].IsZero() {
			fmt.Fprintf(&sb, "- %s: never updated\n", label)
			continue
		}
		days := int(now.Sub(updatedAt[i]).Hours() / 24)
		fmt.Fprintf(&sb, "- %s: last updated %d days ago\n", label, days)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatHistory(msgs []models.ChatMessage) string {
	if len(msgs) == 0 {
		return "(no prior messages)"
	}
	var sb strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&sb, "%s: %s\n", m.Sender, m.Content)
	}
	return strings.TrimRight(sb.String(), "\n")
}
