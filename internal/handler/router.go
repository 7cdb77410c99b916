package handler

import (
	"RieperLogistics_ScanLedger/internal/auth"
	"RieperLogistics_ScanLedger/internal/middleware"

	_ "RieperLogistics_ScanLedger/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type APIRouterConfig struct {
	Appender            Appender
	Provider            string
	UploadRatePerMinute int
	AdminKeyHash        string
	// nil이면 OAuth 경로를 등록하지 않는다 (dropbox 외 저장소)
	Tokens OAuthTokens
	States *auth.StateSigner
}

func newEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "X-Admin-Key")
	router.Use(cors.New(config))
	return router
}

// Append 백엔드 라우터
func NewAPIRouter(cfg APIRouterConfig, logger logrus.FieldLogger) *gin.Engine {
	router := newEngine()

	appendHandler := NewAppendHandler(cfg.Appender, cfg.Provider, logger)
	router.GET("/", appendHandler.Status)
	router.POST("/upload-append", middleware.UploadRateLimit(cfg.UploadRatePerMinute), appendHandler.UploadAppend)

	if cfg.Tokens != nil && cfg.States != nil {
		oauth := NewOAuthHandler(cfg.Tokens, cfg.States, logger)
		router.GET("/auth/start", middleware.AdminKey(cfg.AdminKeyHash), oauth.Start)
		router.GET("/auth/callback", oauth.Callback)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}

// 디바이스 로컬 API 라우터
func NewDeviceRouter(svc Ledger, logger logrus.FieldLogger) *gin.Engine {
	router := newEngine()
	h := NewEntryHandler(svc, logger)

	api := router.Group("/api")
	{
		api.GET("/worker", h.GetWorker)
		api.PUT("/worker", h.SetWorker)
		api.GET("/entries", h.ListEntries)
		api.POST("/entries", h.CreateEntry)
		api.PUT("/entries/:id", h.UpdateEntry)
		api.DELETE("/entries/:id", h.DeleteEntry)
		api.POST("/sync", h.Sync)
		api.GET("/export.csv", h.ExportCSV)
		api.GET("/export.xlsx", h.ExportXLSX)
	}

	router.GET("/ws/entries", h.Feed)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}
