package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/heatmapp/heatmapp/middleware"
	"github.com/heatmapp/heatmapp/models"
	"github.com/heatmapp/heatmapp/utils"
)

const rankingCacheKey = utils.RankingCacheKey

// UserController exposes profile and ranking endpoints.
type UserController struct {
	db *gorm.DB
}

// NewUserController creates a UserController.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// CurrentUser returns the caller's own profile.
func (u *UserController) CurrentUser(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := u.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	utils.Success(ctx, user)
}

// Ranking returns all users ordered by streak descending.
func (u *UserController) Ranking(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(rankingCacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var users []models.User
	if err := u.db.Order("streak DESC").Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load ranking")
		return
	}

	entries := make([]gin.H, 0, len(users))
	for _, user := range users {
		entries = append(entries, gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"streak":     user.Streak,
			"id_icone":   user.IconID,
		})
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: entries}
	utils.CacheSetJSON(rankingCacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, entries)
}

// SelectIcon equips one of the caller's owned icons, or unequips with a null id.
func (u *UserController) SelectIcon(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		IconID *uint `json:"id_icone"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	var user models.User
	if err := u.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	if req.IconID != nil {
		var owned int64
		if err := u.db.Model(&models.IconPurchase{}).
			Where("user_id = ? AND icon_id = ?", userID, *req.IconID).
			Count(&owned).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to check ownership")
			return
		}
		if owned == 0 {
			utils.Error(ctx, http.StatusBadRequest, 40011, "Você ainda não comprou esse ícone.")
			return
		}
	}

	user.IconID = req.IconID
	if err := u.db.Save(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to update profile")
		return
	}

	utils.InvalidateByPrefix(rankingCacheKey)
	utils.Success(ctx, user)
}

// getUserID fetches the authenticated user id stored by the auth middleware.
func getUserID(ctx *gin.Context) (uint, bool) {
	v, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
