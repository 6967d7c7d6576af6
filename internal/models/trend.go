package models

import "time"

// TechnologyTrend is reference data fed to the portfolio-analysis agent so its
// skill suggestions track what the market currently rewards.
type TechnologyTrend struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:text;uniqueIndex" json:"name"`
	Category  string    `gorm:"column:category;type:text" json:"category"`
	Momentum  int       `gorm:"column:momentum" json:"momentum"` // 0-100
	Summary   string    `gorm:"column:summary;type:text" json:"summary"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (TechnologyTrend) TableName() string { return "technology_trends" }
