package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/heatmapp/heatmapp/config"
	"github.com/heatmapp/heatmapp/controllers"
	"github.com/heatmapp/heatmapp/middleware"
	"github.com/heatmapp/heatmapp/utils"
)

// SetupRouter wires routes, middlewares, and controllers. Paths stay
// compatible with the mobile app's API client.
func SetupRouter(db *gorm.DB, storage *utils.StorageClient) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access and panic logs go to a rotated file through zap instead of the
	// default console logger.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Cron-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	postController := controllers.NewPostController(db)
	greenAreaController := controllers.NewGreenAreaController(db, storage)
	shopController := controllers.NewShopController(db)
	cronController := controllers.NewCronController(db)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)

	// Public reads
	api.GET("/usuarios/ranking/", userController.Ranking)
	api.GET("/posts/", postController.ListPosts)
	api.GET("/posts_ruido/", postController.ListNoisePosts)
	api.GET("/posts_areas/", greenAreaController.List)
	api.GET("/posts_areas/:id", greenAreaController.Get)

	// Streak reset trigger for the external scheduler, guarded by the cron
	// token rather than a user JWT.
	api.GET("/cron/reset-streaks/", cronController.ResetStreaks)
	api.POST("/cron/reset-streaks/", cronController.ResetStreaks)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.GET("/current_user/", userController.CurrentUser)
	protected.PATCH("/current_user/icone/", userController.SelectIcon)
	protected.POST("/posts/", postController.CreatePost)
	protected.POST("/posts_ruido/", postController.CreateNoisePost)
	protected.POST("/posts_areas/", greenAreaController.Create)
	protected.GET("/icones/disponiveis/", shopController.AvailableIcons)
	protected.POST("/icones/:id/comprar/", shopController.Purchase)
	protected.GET("/icones_comprados/meus_icones/", shopController.MyIcons)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
