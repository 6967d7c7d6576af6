package postgres

import (
	"context"

	"github.com/dverhoeven/folioagent/internal/models"
	"gorm.io/gorm"
)

// Repositories for the profile building blocks (skills, experience, education,
// projects). All multi-row reads carry an explicit sort key.

type SkillRepository interface {
	Create(ctx context.Context, s *models.Skill) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Skill, error)
}

type skillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) Create(ctx context.Context, s *models.Skill) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *skillRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Skill, error) {
	var rows []models.Skill
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}

type ExperienceRepository interface {
	Create(ctx context.Context, e *models.Experience) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Experience, error)
}

type experienceRepo struct {
	db *gorm.DB
}

func NewExperienceRepo(db *gorm.DB) ExperienceRepository {
	return &experienceRepo{db: db}
}

func (r *experienceRepo) Create(ctx context.Context, e *models.Experience) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *experienceRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Experience, error) {
	var rows []models.Experience
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

type EducationRepository interface {
	Create(ctx context.Context, e *models.Education) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Education, error)
}

type educationRepo struct {
	db *gorm.DB
}

func NewEducationRepo(db *gorm.DB) EducationRepository {
	return &educationRepo{db: db}
}

func (r *educationRepo) Create(ctx context.Context, e *models.Education) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *educationRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Education, error) {
	var rows []models.Education
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

type ProjectRepository interface {
	Create(ctx context.Context, p *models.Project) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error)
	ListFeatured(ctx context.Context, ownerID string) ([]models.Project, error)
}

type projectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *models.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error) {
	var rows []models.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *projectRepo) ListFeatured(ctx context.Context, ownerID string) ([]models.Project, error) {
	var rows []models.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND featured = true", ownerID).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}
