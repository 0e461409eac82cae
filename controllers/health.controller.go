package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck memeriksa status koneksi database.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "connected"
	if err := ctrl.DB.Client().Ping(ctx, nil); err != nil {
		dbStatus = "disconnected"
	}

	ok(c, http.StatusOK, gin.H{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().Unix(),
	})
}

// GetStats mengambil data statistik untuk dasbor admin.
func (ctrl *Controller) GetStats(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	stats, err := ctrl.Orders.Stats(ctx)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, stats)
}
