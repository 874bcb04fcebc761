package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/onegreenvn/phishing-campaign-service/internal/handlers"
	"github.com/onegreenvn/phishing-campaign-service/internal/middleware"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/auth"
)

// Handlers groups the HTTP handlers served by the router
type Handlers struct {
	Campaigns *handlers.CampaignHandler
	Reports   *handlers.ReportHandler
	Scheduler *handlers.SchedulerHandler
}

// SetupRouter configures the Gin router with the campaign API
func SetupRouter(h Handlers, authService *auth.AuthService, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Credentials cannot be combined with a wildcard origin
	allowCredentials := true
	for _, o := range corsOrigins {
		if o == "*" {
			allowCredentials = false
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(authService)
	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware(authService)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	api := r.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		protected := api.Group("")
		protected.Use(apiKeyMiddleware.APIKeyAuthMiddleware(), bearerTokenMiddleware.BearerTokenAuthMiddleware())
		{
			campaigns := protected.Group("/campaigns")
			{
				campaigns.POST("/validate", h.Campaigns.ValidateRecurring)
				campaigns.POST("", h.Campaigns.CreateCampaign)
				campaigns.GET("", h.Campaigns.ListCampaigns)
				campaigns.GET("/:id", h.Campaigns.GetCampaignByID)
				campaigns.POST("/:id/run", h.Campaigns.RunCampaign)
				campaigns.POST("/:id/start", h.Campaigns.StartCampaign)
				campaigns.POST("/:id/stop", h.Campaigns.StopCampaign)
				campaigns.GET("/:id/runs", h.Campaigns.GetCampaignRuns)
				campaigns.GET("/:id/report", h.Reports.GetClickReport)
				campaigns.GET("/:id/report/export", h.Reports.ExportClickReport)
				campaigns.GET("/:id/sent/:email", h.Campaigns.GetSentEmail)
			}

			protected.GET("/scheduler/jobs", h.Scheduler.ListJobs)
			protected.POST("/demo", h.Campaigns.SendDemo)
		}
	}

	return r
}
