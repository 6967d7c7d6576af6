package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	"gorm.io/gorm"
)

type DistributionRepository interface {
	Create(ctx context.Context, d *models.ResumeDistribution) error
	GetByID(ctx context.Context, id string) (*models.ResumeDistribution, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]models.ResumeDistribution, error)
	UpdateStatus(ctx context.Context, id string, status models.DistributionStatus) error
}

type distributionRepo struct {
	db *gorm.DB
}

func NewDistributionRepo(db *gorm.DB) DistributionRepository {
	return &distributionRepo{db: db}
}

func (r *distributionRepo) Create(ctx context.Context, d *models.ResumeDistribution) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *distributionRepo) GetByID(ctx context.Context, id string) (*models.ResumeDistribution, error) {
	var row models.ResumeDistribution
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &row, err
}

func (r *distributionRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]models.ResumeDistribution, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.ResumeDistribution
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *distributionRepo) UpdateStatus(ctx context.Context, id string, status models.DistributionStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.ResumeDistribution{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
