package controllers

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/heatmapp/heatmapp/config"
	"github.com/heatmapp/heatmapp/services"
	"github.com/heatmapp/heatmapp/utils"
)

// CronController exposes the streak reset sweep to an external scheduler.
type CronController struct {
	db *gorm.DB
}

// NewCronController creates a CronController.
func NewCronController(db *gorm.DB) *CronController {
	return &CronController{db: db}
}

// ResetStreaks triggers the sweep. Callers authenticate with the shared cron
// token, via the X-Cron-Token header or a token query parameter.
func (c *CronController) ResetStreaks(ctx *gin.Context) {
	expected := config.Get().CronToken
	if expected == "" {
		utils.Error(ctx, http.StatusForbidden, 40310, "cron endpoint disabled")
		return
	}

	token := ctx.GetHeader("X-Cron-Token")
	if token == "" {
		token = ctx.Query("token")
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
		utils.Error(ctx, http.StatusForbidden, 40311, "invalid cron token")
		return
	}

	result, err := services.ResetStreaks(c.db)
	if err != nil {
		if errors.Is(err, services.ErrResetInProgress) {
			utils.Error(ctx, http.StatusConflict, 40910, "streak reset already running")
			return
		}
		utils.Sugar.Errorf("streak reset sweep failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50040, "streak reset failed")
		return
	}

	if result.Updated > 0 {
		utils.InvalidateByPrefix(rankingCacheKey)
	}
	utils.Success(ctx, result)
}
