package handlers

import (
	"net/http"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	"github.com/dverhoeven/folioagent/internal/services"
	"github.com/gin-gonic/gin"
)

// ArtifactHandler serves the records agents leave behind: job alerts, resume
// distributions, reminders.
type ArtifactHandler struct {
	alerts        services.JobAlertService
	distributions services.DistributionService
	reminders     services.ReminderService
	portfolio     services.PortfolioService
}

func NewArtifactHandler(
	alerts services.JobAlertService,
	distributions services.DistributionService,
	reminders services.ReminderService,
	portfolio services.PortfolioService,
) *ArtifactHandler {
	return &ArtifactHandler{
		alerts:        alerts,
		distributions: distributions,
		reminders:     reminders,
		portfolio:     portfolio,
	}
}

// ownerID resolves the single profile subject; list endpoints are scoped to it.
func (h *ArtifactHandler) ownerID(c *gin.Context) (string, bool) {
	owner, err := h.portfolio.GetOwner(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return "", false
	}
	return owner.ID, true
}

func (h *ArtifactHandler) ListJobs(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	status := models.JobAlertStatus(c.Query("status"))
	rows, err := h.alerts.List(c.Request.Context(), ownerID, status, queryLimit(c, 50, 500))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_alerts": rows})
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (h *ArtifactHandler) TransitionJob(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "ArtifactHandler.TransitionJob", "invalid request body", err))
		return
	}

	alert, err := h.alerts.Transition(c.Request.Context(), c.Param("id"), models.JobAlertStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *ArtifactHandler) ListDistributions(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	rows, err := h.distributions.List(c.Request.Context(), ownerID, queryLimit(c, 50, 500))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"distributions": rows})
}

func (h *ArtifactHandler) TransitionDistribution(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "ArtifactHandler.TransitionDistribution", "invalid request body", err))
		return
	}

	dist, err := h.distributions.Transition(c.Request.Context(), c.Param("id"), models.DistributionStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}

func (h *ArtifactHandler) ListReminders(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	includeCompleted := c.Query("include_completed") == "true"
	rows, err := h.reminders.List(c.Request.Context(), ownerID, includeCompleted)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": rows})
}

func (h *ArtifactHandler) CreateReminder(c *gin.Context) {
	var r models.PortfolioReminder
	if err := c.ShouldBindJSON(&r); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "ArtifactHandler.CreateReminder", "invalid request body", err))
		return
	}
	if err := h.reminders.Create(c.Request.Context(), &r); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *ArtifactHandler) CompleteReminder(c *gin.Context) {
	if err := h.reminders.Complete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": true})
}

func (h *ArtifactHandler) RunDueCheck(c *gin.Context) {
	n, err := h.reminders.RunDueCheck(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notified": n})
}
