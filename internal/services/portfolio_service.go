package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/cache"
	"github.com/dverhoeven/folioagent/internal/models"
	pgrepo "github.com/dverhoeven/folioagent/internal/repositories/postgres"
	"github.com/dverhoeven/folioagent/internal/storage"

	"github.com/google/uuid"
)

// Portfolio is the public read model: everything a visitor sees.
type Portfolio struct {
	Owner      *models.Owner       `json:"owner"`
	Skills     []models.Skill      `json:"skills"`
	Experience []models.Experience `json:"experience"`
	Education  []models.Education  `json:"education"`
	Projects   []models.Project    `json:"projects"`
}

type PortfolioService interface {
	GetPortfolio(ctx context.Context) (*Portfolio, error)
	GetOwner(ctx context.Context) (*models.Owner, error)
	UpsertOwner(ctx context.Context, o *models.Owner) error
	UploadResume(ctx context.Context, filename, contentType string, r io.Reader) (*models.Owner, error)

	AddSkill(ctx context.Context, s *models.Skill) error
	AddExperience(ctx context.Context, e *models.Experience) error
	AddEducation(ctx context.Context, e *models.Education) error
	AddProject(ctx context.Context, p *models.Project) error

	ListSkills(ctx context.Context) ([]models.Skill, error)
	ListExperience(ctx context.Context) ([]models.Experience, error)
	ListEducation(ctx context.Context) ([]models.Education, error)
	ListProjects(ctx context.Context) ([]models.Project, error)

	ListTrends(ctx context.Context, limit int) ([]models.TechnologyTrend, error)
	UpsertTrend(ctx context.Context, t *models.TechnologyTrend) error
}

type portfolioService struct {
	owners     pgrepo.OwnerRepository
	skills     pgrepo.SkillRepository
	experience pgrepo.ExperienceRepository
	education  pgrepo.EducationRepository
	projects   pgrepo.ProjectRepository
	trends     pgrepo.TrendRepository
	uploader   storage.Uploader
	cache      cache.Cache
}

func NewPortfolioService(
	owners pgrepo.OwnerRepository,
	skills pgrepo.SkillRepository,
	experience pgrepo.ExperienceRepository,
	education pgrepo.EducationRepository,
	projects pgrepo.ProjectRepository,
	trends pgrepo.TrendRepository,
	uploader storage.Uploader,
	c cache.Cache,
) PortfolioService {
	return &portfolioService{
		owners:     owners,
		skills:     skills,
		experience: experience,
		education:  education,
		projects:   projects,
		trends:     trends,
		uploader:   uploader,
		cache:      c,
	}
}

func (s *portfolioService) GetOwner(ctx context.Context) (*models.Owner, error) {
	const op = "PortfolioService.GetOwner"

	o, err := s.owners.First(ctx)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.E(apperr.CodeNotFound, op, "owner profile not found", err)
		}
		return nil, apperr.E(apperr.CodeInternal, op, "failed to get owner", err)
	}
	return o, nil
}

func (s *portfolioService) GetPortfolio(ctx context.Context) (*Portfolio, error) {
	const op = "PortfolioService.GetPortfolio"

	owner, err := s.GetOwner(ctx)
	if err != nil {
		return nil, err
	}

	skills, err := s.skills.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list skills", err)
	}
	experience, err := s.experience.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list experience", err)
	}
	education, err := s.education.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list education", err)
	}
	projects, err := s.projects.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list projects", err)
	}

	return &Portfolio{
		Owner:      owner,
		Skills:     skills,
		Experience: experience,
		Education:  education,
		Projects:   projects,
	}, nil
}

func (s *portfolioService) UpsertOwner(ctx context.Context, o *models.Owner) error {
	const op = "PortfolioService.UpsertOwner"

	if o == nil || o.ID == "" {
		return apperr.E(apperr.CodeInvalidArgument, op, "owner.id is required", nil)
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = time.Now().UTC()
	}
	if err := s.owners.Upsert(ctx, o); err != nil {
		return apperr.E(apperr.CodePersistence, op, "failed to upsert owner", err)
	}

	// profile changed: drop the cached chat system prompt
	if s.cache != nil {
		_ = s.cache.Del(ctx, cache.SystemPromptKey(o.ID))
	}
	return nil
}

func (s *portfolioService) UploadResume(ctx context.Context, filename, contentType string, r io.Reader) (*models.Owner, error) {
	const op = "PortfolioService.UploadResume"

	if filename == "" || r == nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "filename and file content are required", nil)
	}
	if s.uploader == nil {
		return nil, apperr.E(apperr.CodeUnavailable, op, "resume storage is not configured", nil)
	}

	owner, err := s.GetOwner(ctx)
	if err != nil {
		return nil, err
	}

	object := fmt.Sprintf("resumes/%s-%s", uuid.NewString(), filename)
	url, err := s.uploader.Upload(ctx, object, contentType, r)
	if err != nil {
		return nil, apperr.E(apperr.CodeUnavailable, op, "failed to upload resume", err)
	}

	owner.ResumeObject = object
	owner.ResumeURL = url
	owner.UpdatedAt = time.Now().UTC()
	if err := s.owners.Upsert(ctx, owner); err != nil {
		return nil, apperr.E(apperr.CodePersistence, op, "failed to record resume location", err)
	}
	return owner, nil
}

func (s *portfolioService) AddSkill(ctx context.Context, sk *models.Skill) error {
	const op = "PortfolioService.AddSkill"

	if sk == nil || sk.OwnerID == "" || sk.Name == "" {
		return apperr.E(apperr.CodeInvalidArgument, op, "owner_id and name are required", nil)
	}
	fillDefaults(&sk.ID, &sk.UpdatedAt)
	if sk.Proficiency == "" {
		sk.Proficiency = models.ProficiencyIntermediate
	}
	if err := s.skills.Create(ctx, sk); err != nil {
		return apperr.E(apperr.CodePersistence, op, "failed to create skill", err)
	}
	s.invalidatePrompt(ctx, sk.OwnerID)
	return nil
}

func (s *portfolioService) AddExperience(ctx context.Context, e *models.Experience) error {
	const op = "PortfolioService.AddExperience"

	if e == nil || e.OwnerID == "" || e.Company == "" || e.Title == "" {
		return apperr.E(apperr.CodeInvalidArgument, op, "owner_id, company, and title are required", nil)
	}
	if e.StartDate.IsZero() {
		return apperr.E(apperr.CodeInvalidArgument, op, "start_date is required", nil)
	}
	fillDefaults(&e.ID, &e.UpdatedAt)
	if err := s.experience.Create(ctx, e); err != nil {
		return apperr.E(apperr.CodePersistence, op, "failed to create experience", err)
	}
	return nil
}

func (s *portfolioService) AddEducation(ctx context.Context, e *models.Education) error {
	const op = "PortfolioService.AddEducation"

	if e == nil || e.OwnerID == "" || e.Institution == "" {
		return apperr.E(apperr.CodeInvalidArgument, op, "owner_id and institution are required", nil)
	}
	fillDefaults(&e.ID, &e.UpdatedAt)
	if err := s.education.Create(ctx, e); err != nil {
		return apperr.E(apperr.CodePersistence, op, "failed to create education", err)
	}
	return nil
}

func (s *portfolioService) AddProject(ctx context.Context, p *models.Project) error {
	const op = "PortfolioService.AddProject"

	if p == nil || p.OwnerID == "" || p.Name == "" {
		return apperr.E(apperr.CodeInvalidArgument, op, "owner_id and name are required", nil)
	}
	fillDefaults(&p.ID, &p.UpdatedAt)
	if err := s.projects.Create(ctx, p); err != nil {
		return apperr.E(apperr.CodePersistence, op, "failed to create project", err)
	}
	s.invalidatePrompt(ctx, p.OwnerID)
	return nil
}

func (s *portfolioService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	const op = "PortfolioService.ListSkills"

	owner, err := s.GetOwner(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.skills.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list skills", err)
	}
	return rows, nil
}

func (s *portfolioService) ListExperience(ctx context.Context) ([]models.Experience, error) {
	const op = "PortfolioService.ListExperience"

	owner, err := s.GetOwner(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.experience.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list experience", err)
	}
	return rows, nil
}

func (s *portfolioService) ListEducation(ctx context.Context) ([]models.Education, error) {
	const op = "PortfolioService.ListEducation"

	owner, err := s.GetOwner(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.education.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list education", err)
	}
	return rows, nil
}

func (s *portfolioService) ListProjects(ctx context.Context) ([]models.Project, error) {
	const op = "PortfolioService.ListProjects"

	owner, err := s.GetOwner(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.projects.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list projects", err)
	}
	return rows, nil
}

func (s *portfolioService) ListTrends(ctx context.Context, limit int) ([]models.TechnologyTrend, error) {
	const op = "PortfolioService.ListTrends"

	rows, err := s.trends.List(ctx, limit)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list trends", err)
	}
	return rows, nil
}

func (s *portfolioService) UpsertTrend(ctx context.Context, t *models.TechnologyTrend) error {
	const op = "PortfolioService.UpsertTrend"

	if t == nil || t.Name == "" {
		return apperr.E(apperr.CodeInvalidArgument, op, "name is required", nil)
	}
	fillDefaults(&t.ID, &t.UpdatedAt)
	if t.Momentum < 0 || t.Momentum > 100 {
		return apperr.E(apperr.CodeInvalidArgument, op, "momentum must be within 0-100", nil)
	}
	if err := s.trends.Upsert(ctx, t); err != nil {
		return apperr.E(apperr.CodePersistence, op, "failed to upsert trend", err)
	}
	return nil
}

func (s *portfolioService) invalidatePrompt(ctx context.Context, ownerID string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, cache.SystemPromptKey(ownerID))
	}
}

func fillDefaults(id *string, updatedAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if updatedAt.IsZero() {
		*updatedAt = time.Now().UTC()
	}
}
