package controller

import (
	"net/http"

	"practicetime_backend/internal/util"
	"practicetime_backend/pkg/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Store store.Store
}

func NewHealthController(db *gorm.DB, st store.Store) *HealthController {
	return &HealthController{DB: db, Store: st}
}

// @Summary Health check
// @Description Reports service, store and database status
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{"store": "up", "database": "up"}
	healthy := true

	if err := c.Store.Ping(ctx.Request.Context()); err != nil {
		components["store"] = "down"
		healthy = false
	}

	if sqlDB, err := c.DB.DB(); err != nil || sqlDB.Ping() != nil {
		components["database"] = "down"
		healthy = false
	}

	if !healthy {
		util.Error(ctx, http.StatusServiceUnavailable, "degraded")
		return
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
