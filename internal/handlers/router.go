package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/craftportal/learning-service/internal/auth"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/repositories"
	"github.com/craftportal/learning-service/internal/services"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	userHandler        *UserHandler
	areaHandler        *AreaHandler
	forumHandler       *ForumHandler
	appointmentHandler *AppointmentHandler
	healthHandler      *HealthHandler
	authMiddleware     *AuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:        NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:        NewUserHandler(serviceManager.User(), logger),
		areaHandler:        NewAreaHandler(serviceManager.Area(), serviceManager.Assignment(), logger),
		forumHandler:       NewForumHandler(serviceManager.Forum(), logger),
		appointmentHandler: NewAppointmentHandler(serviceManager.Appointment(), logger),
		healthHandler:      NewHealthHandler(serviceManager, logger),
		authMiddleware:     NewAuthMiddleware(tokens, userRepo),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Public routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", hm.authHandler.Register)
		authRoutes.POST("/login", hm.authHandler.Login)
	}

	router.GET("/health", hm.healthHandler.Check)

	// Authenticated routes
	api := router.Group("/")
	api.Use(hm.authMiddleware.Authenticate())
	{
		// Admin routes - active admins only
		admin := api.Group("/admin")
		admin.Use(RequireActive(), RequireRoles(AnyOf, models.RoleAdmin))
		{
			admin.GET("/users", hm.userHandler.ListUsers)
			admin.PUT("/users/:id", hm.userHandler.UpdateUser)

			admin.GET("/instructors", hm.userHandler.ListInstructors)
			admin.GET("/instructors/export", hm.userHandler.ExportInstructors)

			admin.GET("/professional-area", hm.areaHandler.ListAreas)
			admin.POST("/professional-area", hm.areaHandler.CreateArea)
			admin.GET("/professional-area/:id", hm.areaHandler.GetArea)
			admin.PUT("/professional-area/:id", hm.areaHandler.UpdateArea)
			admin.DELETE("/professional-area/:id", hm.areaHandler.DeleteArea)
			admin.GET("/professional-area/:id/instructors", hm.areaHandler.AreaInstructors)

			admin.POST("/instructors-to-area/:instructorId/:areaId", hm.areaHandler.AssignInstructor)
			admin.DELETE("/instructors-to-area/:instructorId/:areaId", hm.areaHandler.UnassignInstructor)
		}

		// Forum routes - any active user; instructors are additionally
		// area-gated inside the service
		forum := api.Group("/forum")
		forum.Use(RequireActive())
		{
			topics := forum.Group("/topics")
			{
				topics.GET("", hm.forumHandler.ListTopics)
				topics.POST("", RequireRoles(AnyOf, models.RoleTeacher, models.RoleAdmin, models.RoleInstructor), hm.forumHandler.CreateTopic)
				topics.GET("/:id", hm.forumHandler.GetTopic)
				topics.PUT("/:id", hm.forumHandler.UpdateTopic)
				topics.DELETE("/:id", hm.forumHandler.DeleteTopic)

				topics.GET("/:id/posts", hm.forumHandler.ListPosts)
				topics.POST("/:id/posts", hm.forumHandler.CreatePost)
				topics.GET("/:id/posts/:postId", hm.forumHandler.GetPost)
				topics.PUT("/:id/posts/:postId", hm.forumHandler.UpdatePost)
				topics.DELETE("/:id/posts/:postId", hm.forumHandler.DeletePost)

				topics.GET("/:id/posts/:postId/reactions", hm.forumHandler.GetReactions)
				topics.POST("/:id/posts/:postId/reactions", hm.forumHandler.SetReaction)
				topics.DELETE("/:id/posts/:postId/reactions", hm.forumHandler.RemoveReaction)
			}
		}

		// Appointment routes - any active user; owner-gated mutate inside
		// the service
		appointments := api.Group("/appointments")
		appointments.Use(RequireActive())
		{
			appointments.GET("", hm.appointmentHandler.ListAppointments)
			appointments.POST("", hm.appointmentHandler.CreateAppointment)
			appointments.PUT("/:id", hm.appointmentHandler.UpdateAppointment)
			appointments.DELETE("/:id", hm.appointmentHandler.DeleteAppointment)
		}
	}
}
