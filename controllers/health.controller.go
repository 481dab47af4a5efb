package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root menangani banner server.
func (ctrl *Controller) Root(c *gin.Context) {
	env := "development"
	if ctrl.Config != nil {
		env = ctrl.Config.Environment
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "HugoX E-commerce API Server",
		"version":     "1.0.0",
		"environment": env,
		"timestamp":   ctrl.now(),
	})
}

// HealthCheck menangani pemeriksaan kesehatan server dan database.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	database := "connected"
	status := http.StatusOK
	if ctrl.Ping != nil {
		ctx, cancel := requestContext(c)
		defer cancel()
		if err := ctrl.Ping(ctx); err != nil {
			database = "disconnected"
			status = http.StatusServiceUnavailable
		}
	}
	c.JSON(status, gin.H{
		"success":   status == http.StatusOK,
		"message":   "Server is running",
		"database":  database,
		"timestamp": ctrl.now(),
	})
}
