package postgres

import (
	"context"

	"github.com/dverhoeven/folioagent/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrendRepository interface {
	Upsert(ctx context.Context, t *models.TechnologyTrend) error
	List(ctx context.Context, limit int) ([]models.TechnologyTrend, error)
}

type trendRepo struct {
	db *gorm.DB
}

func NewTrendRepo(db *gorm.DB) TrendRepository {
	return &trendRepo{db: db}
}

func (r *trendRepo) Upsert(ctx context.Context, t *models.TechnologyTrend) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"category", "momentum", "summary", "updated_at"}),
		}).
		Create(t).Error
}

func (r *trendRepo) List(ctx context.Context, limit int) ([]models.TechnologyTrend, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.TechnologyTrend
	err := r.db.WithContext(ctx).
		Order("momentum DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
