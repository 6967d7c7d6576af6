package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/dverhoeven/folioagent/config"
	"github.com/dverhoeven/folioagent/internal/agents"
	"github.com/dverhoeven/folioagent/internal/api/handlers"
	"github.com/dverhoeven/folioagent/internal/api/middleware"
	"github.com/dverhoeven/folioagent/internal/api/routes"
	"github.com/dverhoeven/folioagent/internal/cache"
	"github.com/dverhoeven/folioagent/internal/logger"
	"github.com/dverhoeven/folioagent/internal/models"
	"github.com/dverhoeven/folioagent/internal/notify"
	"github.com/dverhoeven/folioagent/internal/providers/llm"
	mongorepo "github.com/dverhoeven/folioagent/internal/repositories/mongo"
	pgrepo "github.com/dverhoeven/folioagent/internal/repositories/postgres"
	"github.com/dverhoeven/folioagent/internal/services"
	"github.com/dverhoeven/folioagent/internal/storage"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()
	app := config.LoadApp()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	l.Info("PostgreSQL connected")

	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	l.Info("MongoDB connected")

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	if err := config.PostgresDB.AutoMigrate(
		&models.Owner{},
		&models.Skill{},
		&models.Experience{},
		&models.Education{},
		&models.Project{},
		&models.JobAlert{},
		&models.ResumeDistribution{},
		&models.PortfolioReminder{},
		&models.TechnologyTrend{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	ctx := context.Background()

	// language model client: constructed once, injected everywhere
	model, err := llm.NewVertexGemini(ctx, app.VertexProject, app.VertexLocation, app.VertexModel)
	if err != nil {
		log.Fatalf("Vertex init error: %v", err)
	}
	defer model.Close()

	var uploader storage.Uploader
	if app.GCSBucket != "" {
		gcsUploader, err := storage.NewGCSUploader(ctx, app.GCSBucket)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer gcsUploader.Close()
		uploader = gcsUploader
	}

	// repositories
	owners := pgrepo.NewOwnerRepo(config.PostgresDB)
	skills := pgrepo.NewSkillRepo(config.PostgresDB)
	experience := pgrepo.NewExperienceRepo(config.PostgresDB)
	education := pgrepo.NewEducationRepo(config.PostgresDB)
	projects := pgrepo.NewProjectRepo(config.PostgresDB)
	alerts := pgrepo.NewJobAlertRepo(config.PostgresDB)
	distributions := pgrepo.NewDistributionRepo(config.PostgresDB)
	reminders := pgrepo.NewReminderRepo(config.PostgresDB)
	trends := pgrepo.NewTrendRepo(config.PostgresDB)

	mongoDB := config.MongoDatabase()
	chatSessions := mongorepo.NewChatSessionRepo(mongoDB)
	chatMessages := mongorepo.NewChatMessageRepo(mongoDB)

	redisCache := cache.NewRedisCache(config.RedisClient)

	// notification senders
	httpClient := &http.Client{Timeout: 15 * time.Second}
	email := notify.NewSMTPEmailSender(app.SMTPHost, app.SMTPPort, app.SMTPUsername, app.SMTPPassword, app.SMTPFrom, app.IsDevelopment(), l)
	sms := notify.NewHTTPSMSSender(app.SMSAPIURL, app.SMSAccountSID, app.SMSAuthToken, app.SMSFromNumber, app.IsDevelopment(), httpClient, l)
	notifier := agents.NewOwnerNotifier(email, sms, app.OwnerEmail, app.OwnerPhone, l)

	// agents + services
	jobSearch := agents.NewJobSearchAgent(owners, skills, experience, alerts, model, notifier, l)
	distribution := agents.NewDistributionAgent(owners, skills, experience, alerts, distributions, model, notifier, l)
	chat := agents.NewChatAgent(chatSessions, chatMessages, owners, skills, projects, model, redisCache, l)
	analysis := agents.NewAnalysisAgent(owners, skills, experience, projects, trends, reminders, model, notifier, l)

	portfolioSvc := services.NewPortfolioService(owners, skills, experience, education, projects, trends, uploader, redisCache)
	alertSvc := services.NewJobAlertService(alerts)
	distSvc := services.NewDistributionService(distributions)
	reminderSvc := services.NewReminderService(reminders, notifier, l)

	if !app.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Portfolio: handlers.NewPortfolioHandler(portfolioSvc),
		Agent:     handlers.NewAgentHandler(jobSearch, distribution, analysis),
		Artifact:  handlers.NewArtifactHandler(alertSvc, distSvc, reminderSvc, portfolioSvc),
		Chat:      handlers.NewChatHandler(chat),
		WS:        handlers.NewWSHandler(chat),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
