package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/heatmapp/heatmapp/models"
	"github.com/heatmapp/heatmapp/services"
	"github.com/heatmapp/heatmapp/utils"
)

// ShopController exposes the icon shop: catalog, purchases and inventory.
type ShopController struct {
	db *gorm.DB
}

// NewShopController creates a ShopController.
func NewShopController(db *gorm.DB) *ShopController {
	return &ShopController{db: db}
}

// AvailableIcons returns the catalog minus icons the caller already owns.
func (s *ShopController) AvailableIcons(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	owned := s.db.Model(&models.IconPurchase{}).Select("icon_id").Where("user_id = ?", userID)

	var icons []models.Icon
	if err := s.db.Where("id NOT IN (?)", owned).Order("price ASC").Find(&icons).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load catalog")
		return
	}

	utils.Success(ctx, icons)
}

// Purchase runs the atomic coin-debit / ownership-insert transaction.
func (s *ShopController) Purchase(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	iconID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid icon id")
		return
	}

	switch err := services.PurchaseIcon(s.db, userID, uint(iconID)); {
	case err == nil:
		utils.Success(ctx, gin.H{"detail": "Compra realizada com sucesso!"})
	case errors.Is(err, services.ErrIconNotFound):
		utils.Error(ctx, http.StatusNotFound, 40403, "icon not found")
	case errors.Is(err, services.ErrAlreadyOwned):
		utils.Error(ctx, http.StatusBadRequest, 40031, "Você já comprou esse ícone!")
	case errors.Is(err, services.ErrInsufficientCoins):
		utils.Error(ctx, http.StatusBadRequest, 40032, "Saldo insuficiente!")
	case errors.Is(err, services.ErrPurchaseFailed):
		utils.Error(ctx, http.StatusBadRequest, 40033, "Erro ao processar a compra! Tente novamente.")
	default:
		utils.Sugar.Errorf("purchase failed user=%d icon=%d: %v", userID, iconID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to process purchase")
	}
}

// MyIcons returns the icons the caller has purchased.
func (s *ShopController) MyIcons(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var purchases []models.IconPurchase
	if err := s.db.Preload("Icon").Where("user_id = ?", userID).Find(&purchases).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load purchases")
		return
	}

	icons := make([]models.Icon, 0, len(purchases))
	for _, p := range purchases {
		icons = append(icons, p.Icon)
	}

	utils.Success(ctx, icons)
}
