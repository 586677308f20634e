package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joshua-takyi/meetapp/internal/container"
	"github.com/joshua-takyi/meetapp/internal/handlers"
	"github.com/joshua-takyi/meetapp/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	origins := []string{"http://localhost:3000"}
	if container.Config != nil {
		if container.Config.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}
		if len(container.Config.CORSOrigins) > 0 {
			origins = container.Config.CORSOrigins
		}
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", handlers.Health("meetapp-api"))

		v1.GET("/meetups", handlers.ListMeetups(container.MeetupService))
		v1.GET("/meetups/:id", handlers.ShowMeetup(container.MeetupService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Tokens, container.Logger))
	{
		protected.GET("/organizing", handlers.ListUserMeetups(container.MeetupService))
		protected.POST("/meetups", handlers.CreateMeetup(container.MeetupService))
		protected.PUT("/meetups/:id", handlers.UpdateMeetup(container.MeetupService))
		protected.DELETE("/meetups/:id", handlers.DeleteMeetup(container.MeetupService))
	}

	return r
}
