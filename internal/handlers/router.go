package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/services"
	"github.com/internlink/internship-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	userHandler         *UserHandler
	internshipHandler   *InternshipHandler
	applicationHandler  *ApplicationHandler
	taskHandler         *TaskHandler
	feedbackHandler     *FeedbackHandler
	notificationHandler *NotificationHandler
	authMiddleware      *AuthMiddleware
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:         NewUserHandler(serviceManager.Users(), logger),
		internshipHandler:   NewInternshipHandler(serviceManager.Internships(), logger),
		applicationHandler:  NewApplicationHandler(serviceManager.Applications(), logger),
		taskHandler:         NewTaskHandler(serviceManager.Tasks(), logger),
		feedbackHandler:     NewFeedbackHandler(serviceManager.Feedback(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notifications(), logger),
		authMiddleware:      NewAuthMiddleware(serviceManager.Auth()),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "internship-service",
		})
	})

	v1 := router.Group("/api/v1")

	// Public endpoints
	auth := v1.Group("/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
		auth.POST("/logout", hm.authHandler.Logout)
		auth.GET("/me", hm.authMiddleware.RequireAuth(), hm.authHandler.Me)
	}

	// Browsing postings requires no session; listings stay readable for
	// prospective applicants.
	v1.GET("/internships", hm.authMiddleware.OptionalAuth(), hm.internshipHandler.List)
	v1.GET("/internships/:id", hm.authMiddleware.OptionalAuth(), hm.internshipHandler.Get)

	authed := v1.Group("")
	authed.Use(hm.authMiddleware.RequireAuth())
	{
		// Profile
		profile := authed.Group("/profile")
		{
			profile.GET("", hm.userHandler.GetProfile)
			profile.PUT("", hm.userHandler.UpdateProfile)
			profile.POST("/picture", hm.userHandler.UploadProfilePicture)
			profile.DELETE("/picture", hm.userHandler.RemoveProfilePicture)
		}

		// Internship management - mentors and admins
		internships := authed.Group("/internships")
		{
			mentorOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleMentor, models.RoleAdmin)
			internships.POST("", mentorOnly, hm.internshipHandler.Create)
			internships.PUT("/:id", mentorOnly, hm.internshipHandler.Update)
			internships.DELETE("/:id", mentorOnly, hm.internshipHandler.Delete)
			internships.GET("/mine", mentorOnly, hm.internshipHandler.ListMine)
			internships.GET("/:id/applications", mentorOnly, hm.applicationHandler.ListByInternship)
			internships.GET("/:id/tasks", mentorOnly, hm.taskHandler.ListByInternship)
			internships.GET("/:id/feedback", mentorOnly, hm.feedbackHandler.ListByInternship)
		}

		// Applications
		applications := authed.Group("/applications")
		{
			studentOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent)
			mentorOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleMentor, models.RoleAdmin)
			applications.POST("", studentOnly, hm.applicationHandler.Create)
			applications.GET("/mine", studentOnly, hm.applicationHandler.ListMine)
			applications.DELETE("/:id", studentOnly, hm.applicationHandler.Withdraw)
			applications.GET("", mentorOnly, hm.applicationHandler.ListForMentor)
			applications.PUT("/:id/status", mentorOnly, hm.applicationHandler.UpdateStatus)
		}

		// Tasks
		tasks := authed.Group("/tasks")
		{
			studentOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent)
			mentorOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleMentor, models.RoleAdmin)
			tasks.POST("", mentorOnly, hm.taskHandler.Create)
			tasks.GET("/mine", studentOnly, hm.taskHandler.ListMine)
			tasks.PUT("/:id/progress", studentOnly, hm.taskHandler.UpdateProgress)
			tasks.POST("/:id/cancel", mentorOnly, hm.taskHandler.Cancel)
			tasks.GET("/student/:id", mentorOnly, hm.taskHandler.ListByStudent)
		}

		// Feedback
		feedback := authed.Group("/feedback")
		{
			mentorOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleMentor, models.RoleAdmin)
			feedback.POST("", mentorOnly, hm.feedbackHandler.Create)
			feedback.PUT("/:id", mentorOnly, hm.feedbackHandler.Update)
			feedback.GET("/mine", hm.feedbackHandler.ListMine)
			feedback.GET("/student/:id", mentorOnly, hm.feedbackHandler.ListByStudent)
		}

		// Notifications
		notifications := authed.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.List)
			notifications.PUT("/:id/read", hm.notificationHandler.MarkRead)
		}

		// Mentor dashboard
		authed.GET("/mentor/stats",
			hm.authMiddleware.RequireRoleMiddleware(models.RoleMentor, models.RoleAdmin),
			hm.userHandler.MentorStats)

		// Admin
		admin := authed.Group("/admin")
		admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			admin.GET("/users", hm.userHandler.ListUsers)
			admin.GET("/users/:id", hm.userHandler.GetUser)
			admin.PUT("/users/:id", hm.userHandler.UpdateUser)
			admin.DELETE("/users/:id", hm.userHandler.DeleteUser)
			admin.GET("/stats", hm.userHandler.SystemStats)
		}
	}
}
