package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/config"
	"aimrealty.com/estateapi/internal/handler"
	"aimrealty.com/estateapi/internal/i18n"
	"aimrealty.com/estateapi/internal/middleware"
	"aimrealty.com/estateapi/internal/repository"
	"aimrealty.com/estateapi/internal/service"
	"aimrealty.com/estateapi/pkg/storage"
)

type Server struct {
	engine      *gin.Engine
	cfg         *config.Config
	scheduler   *service.Scheduler
	redisClient *redis.Client
	logger      *zap.SugaredLogger
}

func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *zap.SugaredLogger) *Server {
	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	waveRepo := repository.NewWaveRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db)
	pointsRepo := repository.NewPointsRepository(db)
	searchRepo := repository.NewSearchRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Warnw("cloudinary storage unavailable, image upload disabled", "error", err)
		imageStorage = nil
	}

	meiliClient := meilisearch.New(cfg.MeiliHost, meilisearch.WithAPIKey(cfg.MeiliAPIKey))
	meiliSvc := service.NewMeiliSearchService(meiliClient)

	sessions := service.NewRedisSessionStore(redisClient)
	authSvc := service.NewAuthService(userRepo, sessions)
	pointsSvc := service.NewPointsService(pointsRepo, logger)
	propertySvc := service.NewPropertyService(propertyRepo, userRepo, waveRepo, pointsSvc, meiliSvc, imageStorage, redisClient, logger)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, propertyRepo, pointsSvc, redisClient, logger)
	inquirySvc := service.NewInquiryService(inquiryRepo, propertyRepo, userRepo, pointsSvc, redisClient, logger)
	currencySvc := service.NewCurrencyService(currencyRepo)
	waveSvc := service.NewWaveService(waveRepo, userRepo)
	searchSvc := service.NewSearchService(meiliSvc, propertyRepo, searchRepo, logger)
	locationSvc := service.NewLocationService(locationRepo)

	viewSvc := service.NewViewService(redisClient, propertyRepo, logger)
	if redisClient != nil {
		go viewSvc.StartViewSyncWorker(context.Background())
	}

	scheduler := service.NewScheduler(userRepo, currencyRepo, logger)
	scheduler.Start()

	authHandler := handler.NewAuthHandler(authSvc, sessions)
	propertyHandler := handler.NewPropertyHandler(propertySvc, imageStorage)
	favoriteHandler := handler.NewFavoriteHandler(favoriteSvc)
	inquiryHandler := handler.NewInquiryHandler(inquirySvc)
	currencyHandler := handler.NewCurrencyHandler(currencySvc)
	waveHandler := handler.NewWaveHandler(waveSvc)
	searchHandler := handler.NewSearchHandler(searchSvc)
	pointsHandler := handler.NewPointsHandler(pointsSvc)
	locationHandler := handler.NewLocationHandler(locationSvc)
	webHandler := handler.NewWebHandler(cfg.BaseURL)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg)

	authMiddleware := middleware.NewAuthMiddleware(sessions, userRepo)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/user", authHandler.CurrentUser)
	}

	// Public catalog surface. OptionalAuth lets signed-in traffic attach
	// identity to search history and inquiries without requiring it.
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/properties", propertyHandler.List)
		public.GET("/properties/search", searchHandler.Search)
		public.GET("/properties/:id", propertyHandler.Get)
		public.POST("/inquiries", inquiryHandler.Create)
		public.GET("/currency/rates", currencyHandler.Rates)
		public.GET("/currency/convert", currencyHandler.Convert)
		public.GET("/waves", waveHandler.List)
		public.POST("/locations", locationHandler.Report)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/auth/token", authMiddleware.RequireAdmin(), authHandler.IssueToken)

		protected.GET("/favorites", favoriteHandler.List)
		protected.POST("/favorites", favoriteHandler.Toggle)
		protected.POST("/favorites/import", favoriteHandler.Import)
		protected.DELETE("/favorites/:propertyId", favoriteHandler.Remove)

		protected.GET("/customer/points", pointsHandler.Status)
		protected.GET("/customer/activities", pointsHandler.Activities)
		protected.GET("/search/recent", searchHandler.Recent)
		protected.GET("/locations", locationHandler.History)
		protected.GET("/waves/:id/permission", waveHandler.MyPermission)

		agent := protected.Group("")
		agent.Use(authMiddleware.RequireAgent())
		{
			agent.POST("/properties", propertyHandler.Create)
			agent.PUT("/properties/:id", propertyHandler.Update)
			agent.DELETE("/properties/:id", propertyHandler.Delete)
			agent.POST("/properties/:id/images", propertyHandler.UploadImage)
			agent.GET("/properties/:id/inquiries", inquiryHandler.ListByProperty)
		}

		admin := protected.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.GET("/inquiries", inquiryHandler.List)
			admin.PUT("/inquiries/:id/status", inquiryHandler.UpdateStatus)
			admin.POST("/currency/rates", currencyHandler.SetRate)
			admin.POST("/waves", waveHandler.Create)
			admin.PUT("/waves/:id", waveHandler.Update)
			admin.DELETE("/waves/:id", waveHandler.Delete)
			admin.POST("/waves/permissions", waveHandler.GrantPermission)
		}
	}

	router.GET("/sitemap.xml", webHandler.Sitemap)
	registerWebRoutes(router, webHandler)

	return &Server{
		engine:      router,
		cfg:         cfg,
		scheduler:   scheduler,
		redisClient: redisClient,
		logger:      logger,
	}
}

// registerWebRoutes mounts the language-prefixed page entry points. Each
// language prefix is registered explicitly; the NoRoute handler funnels
// legacy unprefixed paths through language resolution so they 301 to their
// canonical prefixed form.
func registerWebRoutes(router *gin.Engine, webHandler *handler.WebHandler) {
	resolve := middleware.ResolveLanguage()

	router.GET("/", resolve, webHandler.Entry)
	for _, lang := range i18n.Supported() {
		router.GET("/"+lang, resolve, webHandler.Entry)
		router.GET("/"+lang+"/*page", resolve, webHandler.Entry)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if _, _, ok := i18n.FromPath(c.Request.URL.Path); !ok {
			resolve(c)
			if c.IsAborted() {
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.Port)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Shutdown() {
	s.scheduler.Stop()
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
