package handlers

import (
	"net/http"

	"github.com/dverhoeven/folioagent/internal/agents"
	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/gin-gonic/gin"
)

// AgentHandler fronts the three owner-triggered agent tasks. Each endpoint is
// synchronous: the response is the task's created records.
type AgentHandler struct {
	jobSearch    *agents.JobSearchAgent
	distribution *agents.DistributionAgent
	analysis     *agents.AnalysisAgent
}

func NewAgentHandler(jobSearch *agents.JobSearchAgent, distribution *agents.DistributionAgent, analysis *agents.AnalysisAgent) *AgentHandler {
	return &AgentHandler{
		jobSearch:    jobSearch,
		distribution: distribution,
		analysis:     analysis,
	}
}

func (h *AgentHandler) SearchJobs(c *gin.Context) {
	var p agents.JobSearchParams
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "AgentHandler.SearchJobs", "invalid request body", err))
		return
	}

	alerts, err := h.jobSearch.SearchJobs(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": len(alerts), "job_alerts": alerts})
}

func (h *AgentHandler) Distribute(c *gin.Context) {
	var p agents.DistributeParams
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "AgentHandler.Distribute", "invalid request body", err))
		return
	}

	dist, err := h.distribution.Distribute(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dist)
}

func (h *AgentHandler) Analyze(c *gin.Context) {
	var p agents.AnalyzeParams
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "AgentHandler.Analyze", "invalid request body", err))
		return
	}

	rems, err := h.analysis.AnalyzePortfolio(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": len(rems), "reminders": rems})
}
