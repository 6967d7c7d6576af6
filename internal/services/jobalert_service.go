package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	pgrepo "github.com/dverhoeven/folioagent/internal/repositories/postgres"
)

type JobAlertService interface {
	List(ctx context.Context, ownerID string, status models.JobAlertStatus, limit int) ([]models.JobAlert, error)
	Transition(ctx context.Context, id string, next models.JobAlertStatus) (*models.JobAlert, error)
}

type jobAlertService struct {
	alerts pgrepo.JobAlertRepository
}

func NewJobAlertService(alerts pgrepo.JobAlertRepository) JobAlertService {
	return &jobAlertService{alerts: alerts}
}

func (s *jobAlertService) List(ctx context.Context, ownerID string, status models.JobAlertStatus, limit int) ([]models.JobAlert, error) {
	const op = "JobAlertService.List"

	if ownerID == "" {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "owner_id is required", nil)
	}
	rows, err := s.alerts.ListByOwner(ctx, ownerID, status, limit)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list job alerts", err)
	}
	return rows, nil
}

func (s *jobAlertService) Transition(ctx context.Context, id string, next models.JobAlertStatus) (*models.JobAlert, error) {
	const op = "JobAlertService.Transition"

	if id == "" || next == "" {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "id and status are required", nil)
	}

	alert, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.E(apperr.CodeNotFound, op, "job alert not found", err)
		}
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load job alert", err)
	}

	if !alert.Status.CanTransitionTo(next) {
		return nil, apperr.E(apperr.CodeInvalidArgument, op,
			fmt.Sprintf("cannot move job alert from %q to %q", alert.Status, next), nil)
	}

	if err := s.alerts.UpdateStatus(ctx, id, next); err != nil {
		return nil, apperr.E(apperr.CodePersistence, op, "failed to update status", err)
	}
	alert.Status = next
	return alert, nil
}
