package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/internal/handlers"
	"github.com/teamup-dev/teamup/internal/middleware"
	"github.com/teamup-dev/teamup/internal/types"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Projects      *handlers.ProjectHandler
	Tasks         *handlers.TaskHandler
	Applications  *handlers.ApplicationHandler
	Memberships   *handlers.MembershipHandler
	Hackathons    *handlers.HackathonHandler
	Notifications *handlers.NotificationHandler
	Admin         *handlers.AdminHandler
	WS            *handlers.WSHandler
}

func New(h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.HealthCheck)

	r.GET("/ws/notifications/:user_id", h.WS.Notifications)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("/me", h.Users.Me)
			users.PATCH("/me", h.Users.UpdateMe)
			users.GET("/:user_id", h.Users.GetUser)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", h.Projects.List)
			projects.GET("/:project_id", h.Projects.Get)

			authed := projects.Group("", middleware.AuthMiddleware())
			{
				authed.POST("", middleware.RequireProjectCreator(), h.Projects.Create)
				authed.PATCH("/:project_id", h.Projects.Update)
				authed.DELETE("/:project_id", h.Projects.Delete)
				authed.POST("/:project_id/invite", h.Projects.Invite)
				authed.POST("/:project_id/required-roles", h.Projects.AddRoleRequirement)
			}
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.POST("", h.Tasks.Create)
			tasks.GET("/project/:project_id", h.Tasks.ListByProject)
			tasks.PATCH("/:task_id", h.Tasks.Update)
			tasks.DELETE("/:task_id", h.Tasks.Delete)
			tasks.POST("/:task_id/comments", h.Tasks.AddComment)
			tasks.GET("/:task_id/comments", h.Tasks.ListComments)
		}

		applications := api.Group("/applications", middleware.AuthMiddleware())
		{
			applications.POST("", h.Applications.Submit)
			applications.GET("", h.Applications.List)
			applications.POST("/:application_id/approve", h.Applications.Approve)
			applications.POST("/:application_id/reject", h.Applications.Reject)
		}

		memberships := api.Group("/memberships", middleware.AuthMiddleware())
		{
			memberships.GET("/project/:project_id", h.Memberships.ListByProject)
			memberships.GET("/user/:user_id", h.Memberships.ListByUser)
			memberships.POST("/:membership_id/accept", h.Memberships.Accept)
		}

		hackathons := api.Group("/hackathons")
		{
			hackathons.GET("", h.Hackathons.List)
			hackathons.GET("/active", h.Hackathons.ListActive)
			hackathons.GET("/:hackathon_id", h.Hackathons.Get)

			authed := hackathons.Group("", middleware.AuthMiddleware())
			{
				authed.POST("", middleware.RequireProjectCreator(), h.Hackathons.Create)
				authed.POST("/:hackathon_id/join", h.Hackathons.Join)
				authed.DELETE("/:hackathon_id", h.Hackathons.Delete)
			}
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", h.Notifications.List)
			notifications.PATCH("/:notification_id/read", h.Notifications.MarkAsRead)
		}

		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			admin.GET("/applications", h.Admin.ListApplications)
			admin.GET("/applications/:application_id", h.Admin.GetApplication)
			admin.POST("/applications/:application_id/approve", h.Admin.ApproveApplication)
			admin.POST("/applications/:application_id/reject", h.Admin.RejectApplication)

			admin.POST("/projects", h.Admin.CreateProject)
			admin.GET("/projects", h.Admin.ListProjects)
			admin.DELETE("/projects/:project_id", h.Admin.DeleteProject)

			admin.GET("/users", h.Admin.ListUsers)
			admin.GET("/users/:user_id", h.Admin.GetUser)
			admin.PATCH("/users/:user_id", h.Admin.UpdateUser)
			admin.DELETE("/users/:user_id", h.Admin.DeleteUser)

			admin.GET("/stats", h.Admin.GetStats)
		}
	}

	return r
}
