package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	pgrepo "github.com/dverhoeven/folioagent/internal/repositories/postgres"
)

type DistributionService interface {
	List(ctx context.Context, ownerID string, limit int) ([]models.ResumeDistribution, error)
	Transition(ctx context.Context, id string, next models.DistributionStatus) (*models.ResumeDistribution, error)
}

type distributionService struct {
	distributions pgrepo.DistributionRepository
}

func NewDistributionService(distributions pgrepo.DistributionRepository) DistributionService {
	return &distributionService{distributions: distributions}
}

func (s *distributionService) List(ctx context.Context, ownerID string, limit int) ([]models.ResumeDistribution, error) {
	const op = "DistributionService.List"

	if ownerID == "" {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "owner_id is required", nil)
	}
	rows, err := s.distributions.ListByOwner(ctx, ownerID, limit)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list distributions", err)
	}
	return rows, nil
}

func (s *distributionService) Transition(ctx context.Context, id string, next models.DistributionStatus) (*models.ResumeDistribution, error) {
	const op = "DistributionService.Transition"

	if id == "" || next == "" {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "id and status are required", nil)
	}

	dist, err := s.distributions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.E(apperr.CodeNotFound, op, "distribution not found", err)
		}
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load distribution", err)
	}

	if !dist.Status.CanTransitionTo(next) {
		return nil, apperr.E(apperr.CodeInvalidArgument, op,
			fmt.Sprintf("cannot move distribution from %q to %q", dist.Status, next), nil)
	}

	if err := s.distributions.UpdateStatus(ctx, id, next); err != nil {
		return nil, apperr.E(apperr.CodePersistence, op, "failed to update status", err)
	}
	dist.Status = next
	return dist, nil
}
