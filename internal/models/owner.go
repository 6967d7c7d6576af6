package models

import (
	"time"

	"gorm.io/datatypes"
)

// Owner is the single profile subject of the portfolio. There is exactly one
// row in practice; agent tasks and notifications all key off its ID.
type Owner struct {
	ID           string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FullName     string         `gorm:"column:full_name;type:text" json:"full_name"`
	Headline     string         `gorm:"column:headline;type:text" json:"headline"`
	Bio          string         `gorm:"column:bio;type:text" json:"bio"`
	Email        string         `gorm:"column:email;type:text" json:"email"`
	Phone        string         `gorm:"column:phone;type:text" json:"phone"`
	Location     string         `gorm:"column:location;type:text" json:"location"`
	Links        datatypes.JSON `gorm:"column:links;type:jsonb" json:"links"`
	ResumeObject string         `gorm:"column:resume_object;type:text" json:"resume_object"`
	ResumeURL    string         `gorm:"column:resume_url;type:text" json:"resume_url"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Owner) TableName() string { return "owners" }
