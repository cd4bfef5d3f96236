package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/heatmapp/heatmapp/models"
	"github.com/heatmapp/heatmapp/services"
	"github.com/heatmapp/heatmapp/utils"
)

const (
	postsCacheKey      = "cache:posts:list"
	noisePostsCacheKey = "cache:posts_ruido:list"
)

// PostController manages plain and noise-measurement posts. Creating either
// kind runs the reward engine; both creations share one transaction with the
// ledger mutation so a failed insert also rolls the reward back.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

type postRequest struct {
	Latitude  *float64 `json:"local_latitude" binding:"required"`
	Longitude *float64 `json:"local_longitude" binding:"required"`
}

func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// CreatePost records a location-tagged entry and applies the daily reward.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if !validCoordinates(*req.Latitude, *req.Longitude) {
		utils.Error(ctx, http.StatusBadRequest, 40021, "Coordenadas inválidas.")
		return
	}

	var post models.Post
	var outcome services.RewardOutcome
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var err error
		outcome, err = services.ApplyReward(tx, userID)
		if err != nil {
			return err
		}
		post = models.Post{UserID: userID, Latitude: *req.Latitude, Longitude: *req.Longitude}
		return tx.Create(&post).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}

	utils.InvalidateByPrefix(postsCacheKey)
	utils.InvalidateByPrefix(rankingCacheKey)

	utils.Success(ctx, gin.H{
		"post":       post,
		"recompensa": outcome,
	})
}

// ListPosts returns every post for the heat map, newest first.
func (p *PostController) ListPosts(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(postsCacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var posts []models.Post
	if err := p.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list posts")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: posts}
	utils.CacheSetJSON(postsCacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, posts)
}

// CreateNoisePost records a decibel reading; it counts as daily activity
// exactly like a plain post.
func (p *PostController) CreateNoisePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		postRequest
		Decibels *float64 `json:"decibeis" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}
	if !validCoordinates(*req.Latitude, *req.Longitude) {
		utils.Error(ctx, http.StatusBadRequest, 40021, "Coordenadas inválidas.")
		return
	}
	if *req.Decibels < 0 {
		utils.Error(ctx, http.StatusBadRequest, 40023, "Leitura de decibéis inválida.")
		return
	}

	var post models.NoisePost
	var outcome services.RewardOutcome
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var err error
		outcome, err = services.ApplyReward(tx, userID)
		if err != nil {
			return err
		}
		post = models.NoisePost{
			UserID:    userID,
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
			Decibels:  *req.Decibels,
		}
		return tx.Create(&post).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to create noise post")
		return
	}

	utils.InvalidateByPrefix(noisePostsCacheKey)
	utils.InvalidateByPrefix(rankingCacheKey)

	utils.Success(ctx, gin.H{
		"post":       post,
		"recompensa": outcome,
	})
}

// ListNoisePosts returns every noise post, newest first.
func (p *PostController) ListNoisePosts(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(noisePostsCacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var posts []models.NoisePost
	if err := p.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to list noise posts")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: posts}
	utils.CacheSetJSON(noisePostsCacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, posts)
}
