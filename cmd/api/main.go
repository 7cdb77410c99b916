package main

import (
	"context"
	"io"
	"os"

	"RieperLogistics_ScanLedger/internal/auth"
	"RieperLogistics_ScanLedger/internal/config"
	"RieperLogistics_ScanLedger/internal/handler"
	"RieperLogistics_ScanLedger/internal/remote"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title           Scan Ledger API
// @version         1.0
// @description     창고 입력 장부 디바이스 API와 CSV Append 백엔드
// @BasePath        /
func main() {
	config.LoadEnv()
	cfg, err := config.LoadServer()
	logger := config.NewLogger(cfg.LogLevel, true)
	if err != nil {
		logger.WithError(err).Fatal("main(): invalid configuration")
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	store, tokens, closer, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("main(): failed to initialize storage provider")
	}
	if closer != nil {
		defer closer.Close()
	}

	routerCfg := handler.APIRouterConfig{
		Appender:            remote.NewAppender(store, cfg.StorageRoot, logger),
		Provider:            cfg.StorageProvider,
		UploadRatePerMinute: cfg.UploadRatePerMinute,
		AdminKeyHash:        cfg.AdminKeyHash,
	}
	if tokens != nil {
		routerCfg.Tokens = tokens
		routerCfg.States = auth.NewStateSigner(cfg.OAuthStateSecret, logger)
	}

	router := handler.NewAPIRouter(routerCfg, logger)
	logger.WithFields(logrus.Fields{"port": cfg.Port, "storage": cfg.StorageProvider}).Info("main(): append backend listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Error("main(): server stopped")
		os.Exit(1)
	}
}

// STORAGE_PROVIDER에 맞는 원격 저장소. dropbox일 때만 OAuth 토큰 관리자를 함께 돌려준다.
func newStore(ctx context.Context, cfg config.Server, logger *logrus.Logger) (remote.Store, *remote.DropboxTokens, io.Closer, error) {
	switch cfg.StorageProvider {
	case "gcs":
		g, err := remote.NewGCS(ctx, cfg.GCSBucket, cfg.GCSCredentialsJSON)
		if err != nil {
			return nil, nil, nil, err
		}
		return g, nil, g, nil
	case "local":
		l, err := remote.NewLocalDir(cfg.LocalStorageDir)
		if err != nil {
			return nil, nil, nil, err
		}
		return l, nil, nil, nil
	default:
		tokens := remote.NewDropboxTokens(ctx,
			remote.DropboxOAuthConfig(cfg),
			&remote.EnvTokenPersister{Path: cfg.EnvFile},
			logger,
			cfg.DropboxRefreshToken,
			cfg.DropboxAccessToken,
		)
		return remote.NewDropbox(tokens.Client(ctx)), tokens, nil, nil
	}
}
