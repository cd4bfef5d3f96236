package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heatmapp/heatmapp/models"
	"github.com/heatmapp/heatmapp/utils"
)

const greenAreasCacheKey = "cache:posts_areas:list"

// GreenAreaController manages green-area posts. Their photos are passed
// through whole to the external object store; creating one never touches
// the reward engine.
type GreenAreaController struct {
	db      *gorm.DB
	storage *utils.StorageClient
}

// NewGreenAreaController creates a GreenAreaController with the injected
// storage client.
func NewGreenAreaController(db *gorm.DB, storage *utils.StorageClient) *GreenAreaController {
	return &GreenAreaController{db: db, storage: storage}
}

type greenAreaResponse struct {
	models.GreenAreaPost
	ImageURL string `json:"imagem_url"`
}

func (g *GreenAreaController) toResponse(post models.GreenAreaPost) greenAreaResponse {
	return greenAreaResponse{GreenAreaPost: post, ImageURL: g.storage.PublicURL(post.ImageName)}
}

// Create stores a green-area post after uploading its image.
func (g *GreenAreaController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Latitude         *float64 `json:"local_latitude" binding:"required"`
		Longitude        *float64 `json:"local_longitude" binding:"required"`
		Title            string   `json:"titulo" binding:"required"`
		AccessMode       string   `json:"modo_acesso"`
		Description      string   `json:"descricao"`
		ImageBase64      string   `json:"imagem_base64" binding:"required"`
		ImageName        string   `json:"imagem_nome" binding:"required"`
		ImageContentType string   `json:"imagem_content_type"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}
	if !validCoordinates(*req.Latitude, *req.Longitude) {
		utils.Error(ctx, http.StatusBadRequest, 40021, "Coordenadas inválidas.")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40025, "Título é obrigatório.")
		return
	}

	content, err := utils.DecodeBase64Image(req.ImageBase64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40026, "Imagem inválida em base64.")
		return
	}

	// Prefix the client-supplied name so concurrent uploads cannot collide.
	objectName := uuid.NewString() + "-" + strings.TrimSpace(req.ImageName)
	if err := g.storage.Upload(ctx.Request.Context(), objectName, content, req.ImageContentType); err != nil {
		if errors.Is(err, utils.ErrStorageNotConfigured) {
			utils.Error(ctx, http.StatusServiceUnavailable, 50330, "object storage unavailable")
			return
		}
		utils.Sugar.Errorf("green area image upload failed: %v", err)
		utils.Error(ctx, http.StatusBadGateway, 50230, "Falha ao enviar imagem para o armazenamento.")
		return
	}

	post := models.GreenAreaPost{
		UserID:      userID,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Title:       title,
		AccessMode:  utils.Sanitize(strings.TrimSpace(req.AccessMode)),
		Description: utils.Sanitize(req.Description),
		ImageName:   objectName,
	}
	if err := g.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to create green area post")
		return
	}

	utils.InvalidateByPrefix(greenAreasCacheKey)
	utils.Success(ctx, g.toResponse(post))
}

// List returns all green-area posts, newest first.
func (g *GreenAreaController) List(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(greenAreasCacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var posts []models.GreenAreaPost
	if err := g.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to list green area posts")
		return
	}

	out := make([]greenAreaResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, g.toResponse(post))
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: out}
	utils.CacheSetJSON(greenAreasCacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, out)
}

// Get returns one green-area post.
func (g *GreenAreaController) Get(ctx *gin.Context) {
	var post models.GreenAreaPost
	if err := g.db.First(&post, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "green area post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to load green area post")
		return
	}

	utils.Success(ctx, g.toResponse(post))
}
