package agents

import (
	"testing"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
)

func newAnalysisAgent(skills []models.Skill, model *fakeModel) (*AnalysisAgent, *fakeReminderRepo, *fakeEmailSender) {
	reminders := &fakeReminderRepo{}
	email := &fakeEmailSender{ok: true}
	notifier := NewOwnerNotifier(email, &fakeSMSSender{ok: true}, "owner@example.com", "", discardLogger())

	trends := &fakeTrendRepo{rows: []models.TechnologyTrend{
		{Name: "Rust", Category: "backend", Momentum: 88},
		{Name: "WASM", Category: "platform", Momentum: 72},
	}}

	a := NewAnalysisAgent(
		&fakeOwnerRepo{owner: testOwner()},
		&fakeSkillRepo{rows: skills},
		&fakeExperienceRepo{rows: experienceRows(1)},
		&fakeProjectRepo{},
		trends,
		reminders,
		model,
		notifier,
		discardLogger(),
	)
	return a, reminders, email
}

func TestAnalyzePortfolio_CreatesReminders(t *testing.T) {
	model := &fakeModel{reply: `[
	  {"title":"Add a Rust project","detail":"Trend momentum is high","priority":"high","due_in_days":14},
	  {"title":"Refresh bio","detail":"Profile text is stale","priority":"low","due_in_days":0}
	]`}
	a, reminders, email := newAnalysisAgent(skillRows(3), model)

	got, err := a.AnalyzePortfolio(t.Context(), AnalyzeParams{OwnerID: testOwnerID})
	if err != nil {
		t.Fatalf("AnalyzePortfolio() = %v, want nil", err)
	}
	if len(got) != 2 || len(reminders.rows) != 2 {
		t.Fatalf("created %d reminders (persisted %d), want 2", len(got), len(reminders.rows))
	}
	if got[0].Priority != models.PriorityHigh {
		t.Errorf("priority = %q, want high", got[0].Priority)
	}

	// zero due_in_days defaults to a week out
	wantDue := got[1].CreatedAt.AddDate(0, 0, 7)
	if !got[1].DueAt.Equal(wantDue) {
		t.Errorf("due at = %v, want %v", got[1].DueAt, wantDue)
	}
	if model.lastTemp != TempAnalytical {
		t.Errorf("temperature = %v, want %v", model.lastTemp, TempAnalytical)
	}
	if len(email.sent) != 1 {
		t.Errorf("owner emails = %d, want 1", len(email.sent))
	}
}

func TestAnalyzePortfolio_NoSkills(t *testing.T) {
	model := &fakeModel{reply: `[]`}
	a, reminders, _ := newAnalysisAgent(nil, model)

	_, err := a.AnalyzePortfolio(t.Context(), AnalyzeParams{OwnerID: testOwnerID})
	if !apperr.IsCode(err, apperr.CodeInsufficientData) {
		t.Fatalf("error = %v, want INSUFFICIENT_DATA", err)
	}
	if model.calls != 0 {
		t.Errorf("model called %d times without skills", model.calls)
	}
	if len(reminders.rows) != 0 {
		t.Errorf("persisted %d reminders, want 0", len(reminders.rows))
	}
}

func TestAnalyzePortfolio_UnknownPriority(t *testing.T) {
	model := &fakeModel{reply: `[{"title":"Do something","priority":"someday"}]`}
	a, reminders, _ := newAnalysisAgent(skillRows(2), model)

	_, err := a.AnalyzePortfolio(t.Context(), AnalyzeParams{OwnerID: testOwnerID})
	if !apperr.IsCode(err, apperr.CodeMalformedResponse) {
		t.Fatalf("error = %v, want MALFORMED_RESPONSE", err)
	}
	if len(reminders.rows) != 0 {
		t.Errorf("persisted %d reminders after a bad suggestion, want 0", len(reminders.rows))
	}
}

func TestAnalyzePortfolio_TruncatesOversizedResponse(t *testing.T) {
	model := &fakeModel{reply: `[
	  {"title":"One","priority":"low"},
	  {"title":"Two","priority":"low"},
	  {"title":"Three","priority":"low"}
	]`}
	a, reminders, _ := newAnalysisAgent(skillRows(2), model)

	got, err := a.AnalyzePortfolio(t.Context(), AnalyzeParams{OwnerID: testOwnerID, MaxResults: 2})
	if err != nil {
		t.Fatalf("AnalyzePortfolio() = %v, want nil", err)
	}
	if len(got) != 2 || len(reminders.rows) != 2 {
		t.Fatalf("created %d reminders (persisted %d), want 2", len(got), len(reminders.rows))
	}
	if got[0].Title != "One" || got[1].Title != "Two" {
		t.Errorf("kept the wrong suggestions: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestAnalyzePortfolio_PriorityCaseInsensitive(t *testing.T) {
	model := &fakeModel{reply: `[{"title":"Update skills","priority":"URGENT","due_in_days":3}]`}
	a, _, _ := newAnalysisAgent(skillRows(1), model)

	got, err := a.AnalyzePortfolio(t.Context(), AnalyzeParams{OwnerID: testOwnerID})
	if err != nil {
		t.Fatalf("AnalyzePortfolio() = %v, want nil", err)
	}
	if got[0].Priority != models.PriorityUrgent {
		t.Errorf("priority = %q, want urgent", got[0].Priority)
	}
}

func TestAnalyzePortfolio_StalenessNeverBlocks(t *testing.T) {
	// skills with zero UpdatedAt still analyze; staleness formatting is cosmetic
	skills := skillRows(1)
	skills[0].UpdatedAt = time.Time{}
	model := &fakeModel{reply: `[{"title":"t","priority":"medium"}]`}
	a, _, _ := newAnalysisAgent(skills, model)

	if _, err := a.AnalyzePortfolio(t.Context(), AnalyzeParams{OwnerID: testOwnerID}); err != nil {
		t.Fatalf("AnalyzePortfolio() = %v, want nil", err)
	}
}
