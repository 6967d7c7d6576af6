package postgres

import (
	"context"
	"errors"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OwnerRepository interface {
	Get(ctx context.Context, id string) (*models.Owner, error)
	First(ctx context.Context) (*models.Owner, error)
	Upsert(ctx context.Context, o *models.Owner) error
}

type ownerRepo struct {
	db *gorm.DB
}

func NewOwnerRepo(db *gorm.DB) OwnerRepository {
	return &ownerRepo{db: db}
}

func (r *ownerRepo) Get(ctx context.Context, id string) (*models.Owner, error) {
	var o models.Owner
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &o, err
}

// First returns the portfolio subject; the table holds a single row in
// practice.
func (r *ownerRepo) First(ctx context.Context) (*models.Owner, error) {
	var o models.Owner
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Take(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &o, err
}

func (r *ownerRepo) Upsert(ctx context.Context, o *models.Owner) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "headline", "bio", "email", "phone", "location", "links", "resume_object", "resume_url", "updated_at"}),
		}).
		Create(o).Error
}
