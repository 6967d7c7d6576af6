package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	"gorm.io/gorm"
)

type JobAlertRepository interface {
	CreateBatch(ctx context.Context, alerts []models.JobAlert) error
	GetByID(ctx context.Context, id string) (*models.JobAlert, error)
	ListByOwner(ctx context.Context, ownerID string, status models.JobAlertStatus, limit int) ([]models.JobAlert, error)
	UpdateStatus(ctx context.Context, id string, status models.JobAlertStatus) error
}

type jobAlertRepo struct {
	db *gorm.DB
}

func NewJobAlertRepo(db *gorm.DB) JobAlertRepository {
	return &jobAlertRepo{db: db}
}

// CreateBatch inserts all alerts in one statement; a failure persists nothing.
func (r *jobAlertRepo) CreateBatch(ctx context.Context, alerts []models.JobAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&alerts).Error
}

func (r *jobAlertRepo) GetByID(ctx context.Context, id string) (*models.JobAlert, error) {
	var row models.JobAlert
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &row, err
}

func (r *jobAlertRepo) ListByOwner(ctx context.Context, ownerID string, status models.JobAlertStatus, limit int) ([]models.JobAlert, error) {
	if limit <= 0 {
		limit = 50
	}

	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []models.JobAlert
	err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *jobAlertRepo) UpdateStatus(ctx context.Context, id string, status models.JobAlertStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.JobAlert{}).
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
