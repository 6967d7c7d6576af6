package models

import "time"

type DistributionStatus string

const (
	DistStatusSent      DistributionStatus = "sent"
	DistStatusViewed    DistributionStatus = "viewed"
	DistStatusResponded DistributionStatus = "responded"
	DistStatusClosed    DistributionStatus = "closed"
)

// ResumeDistribution records one outbound resume + cover letter drafted by the
// distribution agent.
type ResumeDistribution struct {
	ID           string             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID      string             `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`
	JobAlertID   *string            `gorm:"column:job_alert_id;type:uuid" json:"job_alert_id"`
	Company      string             `gorm:"column:company;type:text" json:"company"`
	ContactEmail string             `gorm:"column:contact_email;type:text" json:"contact_email"`
	Subject      string             `gorm:"column:subject;type:text" json:"subject"`
	CoverLetter  string             `gorm:"column:cover_letter;type:text" json:"cover_letter"`
	ResumeURL    string             `gorm:"column:resume_url;type:text" json:"resume_url"`
	Status       DistributionStatus `gorm:"column:status;type:text;index" json:"status"`
	SentAt       time.Time          `gorm:"column:sent_at;type:timestamptz" json:"sent_at"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (ResumeDistribution) TableName() string { return "resume_distributions" }

var distributionTransitions = map[DistributionStatus][]DistributionStatus{
	DistStatusSent:      {DistStatusViewed, DistStatusResponded, DistStatusClosed},
	DistStatusViewed:    {DistStatusResponded, DistStatusClosed},
	DistStatusResponded: {DistStatusClosed},
}

func (s DistributionStatus) CanTransitionTo(next DistributionStatus) bool {
	for _, allowed := range distributionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
