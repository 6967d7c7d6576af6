package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	"github.com/dverhoeven/folioagent/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PortfolioHandler struct {
	svc services.PortfolioService
}

func NewPortfolioHandler(svc services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

func (h *PortfolioHandler) Get(c *gin.Context) {
	p, err := h.svc.GetPortfolio(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type UpdateOwnerRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Headline *string `json:"headline,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`

	Links *json.RawMessage `json:"links,omitempty"`
}

func (h *PortfolioHandler) UpdateOwner(c *gin.Context) {
	var req UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "PortfolioHandler.UpdateOwner", "invalid request body", err))
		return
	}

	// Load existing (if not found => create new)
	existing, err := h.svc.GetOwner(c.Request.Context())
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			existing = &models.Owner{ID: uuid.NewString()}
		} else {
			writeError(c, err)
			return
		}
	}

	if req.FullName != nil {
		existing.FullName = *req.FullName
	}
	if req.Headline != nil {
		existing.Headline = *req.Headline
	}
	if req.Bio != nil {
		existing.Bio = *req.Bio
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.Location != nil {
		existing.Location = *req.Location
	}
	if req.Links != nil {
		existing.Links = datatypes.JSON(*req.Links)
	}

	existing.UpdatedAt = time.Now().UTC()

	if err := h.svc.UpsertOwner(c.Request.Context(), existing); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *PortfolioHandler) UploadResume(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "PortfolioHandler.UploadResume", "resume file is required", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	owner, err := h.svc.UploadResume(c.Request.Context(), header.Filename, contentType, file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}

func (h *PortfolioHandler) AddSkill(c *gin.Context) {
	var s models.Skill
	if err := c.ShouldBindJSON(&s); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "PortfolioHandler.AddSkill", "invalid request body", err))
		return
	}
	if err := h.svc.AddSkill(c.Request.Context(), &s); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *PortfolioHandler) AddExperience(c *gin.Context) {
	var e models.Experience
	if err := c.ShouldBindJSON(&e); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "PortfolioHandler.AddExperience", "invalid request body", err))
		return
	}
	if err := h.svc.AddExperience(c.Request.Context(), &e); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *PortfolioHandler) AddEducation(c *gin.Context) {
	var e models.Education
	if err := c.ShouldBindJSON(&e); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "PortfolioHandler.AddEducation", "invalid request body", err))
		return
	}
	if err := h.svc.AddEducation(c.Request.Context(), &e); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *PortfolioHandler) AddProject(c *gin.Context) {
	var p models.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "PortfolioHandler.AddProject", "invalid request body", err))
		return
	}
	if err := h.svc.AddProject(c.Request.Context(), &p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PortfolioHandler) ListSkills(c *gin.Context) {
	rows, err := h.svc.ListSkills(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": rows})
}

func (h *PortfolioHandler) ListExperience(c *gin.Context) {
	rows, err := h.svc.ListExperience(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"experience": rows})
}

func (h *PortfolioHandler) ListEducation(c *gin.Context) {
	rows, err := h.svc.ListEducation(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"education": rows})
}

func (h *PortfolioHandler) ListProjects(c *gin.Context) {
	rows, err := h.svc.ListProjects(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": rows})
}

func (h *PortfolioHandler) ListTrends(c *gin.Context) {
	rows, err := h.svc.ListTrends(c.Request.Context(), queryLimit(c, 50, 200))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trends": rows})
}

func (h *PortfolioHandler) UpsertTrend(c *gin.Context) {
	var t models.TechnologyTrend
	if err := c.ShouldBindJSON(&t); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "PortfolioHandler.UpsertTrend", "invalid request body", err))
		return
	}
	if err := h.svc.UpsertTrend(c.Request.Context(), &t); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
