package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/teamup-dev/teamup/db"
	"github.com/teamup-dev/teamup/internal/auth"
	"github.com/teamup-dev/teamup/internal/config"
	"github.com/teamup-dev/teamup/internal/handlers"
	"github.com/teamup-dev/teamup/internal/repository"
	"github.com/teamup-dev/teamup/internal/router"
	"github.com/teamup-dev/teamup/internal/services"
	"github.com/teamup-dev/teamup/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := auth.InitJWT(cfg.JWTSecret, cfg.AccessTTLMin, cfg.RefreshTTLDays); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	users := repository.NewUserRepository(db.DB)
	projects := repository.NewProjectRepository(db.DB)
	hackathons := repository.NewHackathonRepository(db.DB)
	applications := repository.NewApplicationRepository(db.DB)
	memberships := repository.NewMembershipRepository(db.DB)
	tasks := repository.NewTaskRepository(db.DB)
	notifications := repository.NewNotificationRepository(db.DB)
	stats := repository.NewStatsRepository(db.DB)

	hub := ws.NewHub()

	notificationService := services.NewNotificationService(notifications, hub)
	authService := services.NewAuthService(users)
	projectService := services.NewProjectService(projects)
	hackathonService := services.NewHackathonService(hackathons)
	membershipService := services.NewMembershipService(memberships, projects, users, notificationService)
	applicationService := services.NewApplicationService(applications, projects, hackathons, memberships, notificationService)
	taskService := services.NewTaskService(tasks, projects, notificationService)

	r := router.New(router.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Users:         handlers.NewUserHandler(users),
		Projects:      handlers.NewProjectHandler(projectService, membershipService),
		Tasks:         handlers.NewTaskHandler(taskService),
		Applications:  handlers.NewApplicationHandler(applicationService),
		Memberships:   handlers.NewMembershipHandler(membershipService),
		Hackathons:    handlers.NewHackathonHandler(hackathonService, applicationService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Admin:         handlers.NewAdminHandler(applicationService, projectService, users, stats),
		WS:            handlers.NewWSHandler(hub),
	})

	log.Printf("Starting TeamUp API on port %s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
