package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	"gorm.io/gorm"
)

type ReminderRepository interface {
	Create(ctx context.Context, rem *models.PortfolioReminder) error
	CreateBatch(ctx context.Context, rems []models.PortfolioReminder) error
	GetByID(ctx context.Context, id string) (*models.PortfolioReminder, error)
	ListByOwner(ctx context.Context, ownerID string, includeCompleted bool) ([]models.PortfolioReminder, error)
	ListDueUnnotified(ctx context.Context, before time.Time) ([]models.PortfolioReminder, error)
	MarkNotified(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string) error
}

type reminderRepo struct {
	db *gorm.DB
}

func NewReminderRepo(db *gorm.DB) ReminderRepository {
	return &reminderRepo{db: db}
}

func (r *reminderRepo) Create(ctx context.Context, rem *models.PortfolioReminder) error {
	return r.db.WithContext(ctx).Create(rem).Error
}

func (r *reminderRepo) CreateBatch(ctx context.Context, rems []models.PortfolioReminder) error {
	if len(rems) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rems).Error
}

func (r *reminderRepo) GetByID(ctx context.Context, id string) (*models.PortfolioReminder, error) {
	var row models.PortfolioReminder
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &row, err
}

func (r *reminderRepo) ListByOwner(ctx context.Context, ownerID string, includeCompleted bool) ([]models.PortfolioReminder, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !includeCompleted {
		q = q.Where("completed = false")
	}

	var rows []models.PortfolioReminder
	err := q.Order("due_at ASC").Find(&rows).Error
	return rows, err
}

// ListDueUnnotified selects the due-check candidates: incomplete, not yet
// notified, due before the cutoff.
func (r *reminderRepo) ListDueUnnotified(ctx context.Context, before time.Time) ([]models.PortfolioReminder, error) {
	var rows []models.PortfolioReminder
	err := r.db.WithContext(ctx).
		Where("completed = false AND notification_sent = false AND due_at <= ?", before).
		Order("due_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *reminderRepo) MarkNotified(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&models.PortfolioReminder{}).
		Where("id = ?", id).
		Update("notification_sent", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *reminderRepo) MarkCompleted(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&models.PortfolioReminder{}).
		Where("id = ?", id).
		Update("completed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
