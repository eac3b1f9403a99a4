package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/db"
)

func HealthCheck(c *gin.Context) {
	dbStatus := "ok"

	if sqlDB, err := db.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	c.JSON(200, gin.H{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func Root(c *gin.Context) {
	c.JSON(200, gin.H{
		"name":    "TeamUp API",
		"message": "TeamUp is running",
	})
}
