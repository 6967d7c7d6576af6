package routes

import (
	"github.com/dverhoeven/folioagent/internal/api/handlers"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Portfolio *handlers.PortfolioHandler
	Agent     *handlers.AgentHandler
	Artifact  *handlers.ArtifactHandler
	Chat      *handlers.ChatHandler
	WS        *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public portfolio read + visitor chat
	r.GET("/portfolio", d.Portfolio.Get)

	r.POST("/chat/sessions", d.Chat.StartSession)
	r.GET("/chat/sessions/:session_id/messages", d.Chat.ListMessages)
	r.POST("/chat/sessions/:session_id/messages", d.Chat.SendMessage)
	r.POST("/chat/sessions/:session_id/end", d.Chat.EndSession)
	r.GET("/ws/chat/:session_id", d.WS.ChatWS)

	// Owner content management
	r.PUT("/owner", d.Portfolio.UpdateOwner)
	r.POST("/owner/resume", d.Portfolio.UploadResume)
	r.GET("/skills", d.Portfolio.ListSkills)
	r.POST("/skills", d.Portfolio.AddSkill)
	r.GET("/experience", d.Portfolio.ListExperience)
	r.POST("/experience", d.Portfolio.AddExperience)
	r.GET("/education", d.Portfolio.ListEducation)
	r.POST("/education", d.Portfolio.AddEducation)
	r.GET("/projects", d.Portfolio.ListProjects)
	r.POST("/projects", d.Portfolio.AddProject)
	r.GET("/trends", d.Portfolio.ListTrends)
	r.PUT("/trends", d.Portfolio.UpsertTrend)

	// Agent tasks
	r.POST("/agents/job-search", d.Agent.SearchJobs)
	r.POST("/agents/distribution", d.Agent.Distribute)
	r.POST("/agents/analysis", d.Agent.Analyze)

	// Agent artifacts
	r.GET("/jobs", d.Artifact.ListJobs)
	r.PATCH("/jobs/:id/status", d.Artifact.TransitionJob)
	r.GET("/distributions", d.Artifact.ListDistributions)
	r.PATCH("/distributions/:id/status", d.Artifact.TransitionDistribution)
	r.GET("/reminders", d.Artifact.ListReminders)
	r.POST("/reminders", d.Artifact.CreateReminder)
	r.PATCH("/reminders/:id/complete", d.Artifact.CompleteReminder)
	r.POST("/reminders/due-check", d.Artifact.RunDueCheck)
}
