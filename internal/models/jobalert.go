package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobAlertStatus string

const (
	JobStatusIdentified JobAlertStatus = "identified"
	JobStatusApplied    JobAlertStatus = "applied"
	JobStatusInterview  JobAlertStatus = "interview"
	JobStatusRejected   JobAlertStatus = "rejected"
	JobStatusAccepted   JobAlertStatus = "accepted"
)

// JobAlert is one opportunity surfaced by the job-search agent. Rows are
// append-only; only the status field moves after creation.
type JobAlert struct {
	ID           string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID      string         `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`
	Title        string         `gorm:"column:title;type:text" json:"title"`
	Company      string         `gorm:"column:company;type:text" json:"company"`
	Location     string         `gorm:"column:location;type:text" json:"location"`
	URL          string         `gorm:"column:url;type:text" json:"url"`
	Summary      string         `gorm:"column:summary;type:text" json:"summary"`
	MatchScore   int            `gorm:"column:match_score" json:"match_score"`
	MatchReasons datatypes.JSON `gorm:"column:match_reasons;type:jsonb" json:"match_reasons"`
	Status       JobAlertStatus `gorm:"column:status;type:text;index" json:"status"`
	CreatedAt    time.Time      `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (JobAlert) TableName() string { return "job_alerts" }

// JobAlertTransitions lists the allowed status moves.
var JobAlertTransitions = map[JobAlertStatus][]JobAlertStatus{
	JobStatusIdentified: {JobStatusApplied, JobStatusRejected},
	JobStatusApplied:    {JobStatusInterview, JobStatusRejected},
	JobStatusInterview:  {JobStatusAccepted, JobStatusRejected},
}

func (s JobAlertStatus) CanTransitionTo(next JobAlertStatus) bool {
	for _, allowed := range JobAlertTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
