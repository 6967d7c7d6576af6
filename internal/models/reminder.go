package models

import "time"

type ReminderPriority string

const (
	PriorityLow    ReminderPriority = "low"
	PriorityMedium ReminderPriority = "medium"
	PriorityHigh   ReminderPriority = "high"
	PriorityUrgent ReminderPriority = "urgent"
)

// Escalates reports whether the priority is high enough to warrant an SMS in
// addition to email during the due-check.
func (p ReminderPriority) Escalates() bool {
	return p == PriorityHigh || p == PriorityUrgent
}

func (p ReminderPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// PortfolioReminder nudges the owner to refresh stale content. NotificationSent
// keeps the due-check idempotent: a re-run skips already-notified rows.
type PortfolioReminder struct {
	ID               string           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID          string           `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`
	Title            string           `gorm:"column:title;type:text" json:"title"`
	Detail           string           `gorm:"column:detail;type:text" json:"detail"`
	Priority         ReminderPriority `gorm:"column:priority;type:text" json:"priority"`
	DueAt            time.Time        `gorm:"column:due_at;type:timestamptz;index" json:"due_at"`
	Completed        bool             `gorm:"column:completed" json:"completed"`
	NotificationSent bool             `gorm:"column:notification_sent" json:"notification_sent"`
	CreatedAt        time.Time        `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (PortfolioReminder) TableName() string { return "portfolio_reminders" }
