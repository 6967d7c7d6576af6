package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/dverhoeven/folioagent/internal/models"
)

func TestFill(t *testing.T) {
	cases := []struct {
		name     string
		template string
		vars     map[string]string
		want     string
	}{
		{
			name:     "substitutes placeholders",
			template: "Hello {full_name}, based in {location}.",
			vars:     map[string]string{"full_name": "Dana", "location": "Rotterdam"},
			want:     "Hello Dana, based in Rotterdam.",
		},
		{
			name:     "missing var renders empty",
			template: "Skills:\n{skills}\nEnd.",
			vars:     map[string]string{},
			want:     "Skills:\n\nEnd.",
		},
		{
			name:     "repeated placeholder",
			template: "{name} and {name}",
			vars:     map[string]string{"name": "Go"},
			want:     "Go and Go",
		},
		{
			name:     "json literals in templates survive",
			template: `Return [{"title": "...", "score": {score}}]`,
			vars:     map[string]string{"score": "90"},
			want:     `Return [{"title": "...", "score": 90}]`,
		},
		{
			name:     "nil vars",
			template: "static text",
			vars:     nil,
			want:     "static text",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fill(tc.template, tc.vars); got != tc.want {
				t.Errorf("Fill() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatDateRange(t *testing.T) {
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)

	if got := FormatDateRange(start, &end); got != "2021-06-01 to 2023-02-28" {
		t.Errorf("FormatDateRange() = %q", got)
	}
	if got := FormatDateRange(start, nil); got != "2021-06-01 to Present" {
		t.Errorf("FormatDateRange(nil end) = %q", got)
	}
}

func TestFormatSkills(t *testing.T) {
	if got := FormatSkills(nil); got != "none listed" {
		t.Errorf("FormatSkills(nil) = %q", got)
	}

	got := FormatSkills([]models.Skill{
		{Name: "Go", Category: "backend", Proficiency: models.ProficiencyExpert, YearsExperience: 6},
		{Name: "Redis", Category: "infrastructure", Proficiency: models.ProficiencyIntermediate, YearsExperience: 2.5},
	})
	want := "- Go (backend, expert, 6.0 years)\n- Redis (infrastructure, intermediate, 2.5 years)"
	if got != want {
		t.Errorf("FormatSkills() = %q, want %q", got, want)
	}
}

func TestFormatExperience(t *testing.T) {
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	got := FormatExperience([]models.Experience{
		{
			Title:        "Engineer",
			Company:      "Acme",
			StartDate:    time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      &end,
			Summary:      "Built billing services",
			Technologies: []string{"Go", "PostgreSQL"},
		},
	})
	want := "- Engineer at Acme (2021-03-01 to 2024-01-31): Built billing services [tech: Go, PostgreSQL]"
	if got != want {
		t.Errorf("FormatExperience() = %q, want %q", got, want)
	}
}

func TestFormatStaleness(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	got := FormatStaleness(now,
		[]string{"profile", "projects"},
		[]time.Time{now.AddDate(0, 0, -45), {}})
	want := "- profile: last updated 45 days ago\n- projects: never updated"
	if got != want {
		t.Errorf("FormatStaleness() = %q, want %q", got, want)
	}
}

func TestFormatHistory(t *testing.T) {
	if got := FormatHistory(nil); got != "(no prior messages)" {
		t.Errorf("FormatHistory(nil) = %q", got)
	}

	got := FormatHistory([]models.ChatMessage{
		{Sender: models.SenderVisitor, Content: "What does Dana do?"},
		{Sender: models.SenderAssistant, Content: "Backend work in Go."},
	})
	want := "visitor: What does Dana do?\nassistant: Backend work in Go."
	if got != want {
		t.Errorf("FormatHistory() = %q, want %q", got, want)
	}
}

func TestTemplatesDemandJSONOnly(t *testing.T) {
	// the analytical templates must keep the single-JSON-payload instruction;
	// the parser depends on it
	for name, tpl := range map[string]string{
		"job search":         JobSearch,
		"cover letter":       CoverLetter,
		"portfolio analysis": PortfolioAnalysis,
	} {
		if !strings.Contains(tpl, "JSON") {
			t.Errorf("%s template lost its JSON output instruction", name)
		}
	}
}
