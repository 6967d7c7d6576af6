package models

import (
	"time"

	"github.com/lib/pq"
)

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

type Skill struct {
	ID              string      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID         string      `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`
	Name            string      `gorm:"column:name;type:text" json:"name"`
	Category        string      `gorm:"column:category;type:text" json:"category"`
	Proficiency     Proficiency `gorm:"column:proficiency;type:text" json:"proficiency"`
	YearsExperience float64     `gorm:"column:years_experience" json:"years_experience"`
	UpdatedAt       time.Time   `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Skill) TableName() string { return "skills" }

// Experience is one employment entry. EndDate nil means the position is current
// and is rendered as "Present" in prompts.
type Experience struct {
	ID           string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID      string         `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`
	Company      string         `gorm:"column:company;type:text" json:"company"`
	Title        string         `gorm:"column:title;type:text" json:"title"`
	Summary      string         `gorm:"column:summary;type:text" json:"summary"`
	Technologies pq.StringArray `gorm:"column:technologies;type:text[]" json:"technologies"`
	StartDate    time.Time      `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate      *time.Time     `gorm:"column:end_date;type:date" json:"end_date"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Experience) TableName() string { return "experiences" }

type Education struct {
	ID          string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID     string     `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`
	Institution string     `gorm:"column:institution;type:text" json:"institution"`
	Degree      string     `gorm:"column:degree;type:text" json:"degree"`
	Field       string     `gorm:"column:field;type:text" json:"field"`
	StartDate   time.Time  `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate     *time.Time `gorm:"column:end_date;type:date" json:"end_date"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Education) TableName() string { return "educations" }

type Project struct {
	ID           string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID      string         `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`
	Name         string         `gorm:"column:name;type:text" json:"name"`
	Summary      string         `gorm:"column:summary;type:text" json:"summary"`
	Technologies pq.StringArray `gorm:"column:technologies;type:text[]" json:"technologies"`
	URL          string         `gorm:"column:url;type:text" json:"url"`
	Featured     bool           `gorm:"column:featured" json:"featured"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
