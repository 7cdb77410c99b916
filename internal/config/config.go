/**
* Name: 			config.go
* Description: 		환경 변수(.env) 기반 프로세스 설정
* Workflow: 		godotenv.Load -> 기본값 적용 -> Validate
 */
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Append 백엔드 설정
type Server struct {
	Port            string
	StorageProvider string
	StorageRoot     string
	EnvFile         string

	DropboxAppKey       string
	DropboxAppSecret    string
	DropboxRefreshToken string
	DropboxAccessToken  string
	OAuthRedirectURL    string
	OAuthStateSecret    string
	AdminKeyHash        string

	GCSBucket          string
	GCSCredentialsJSON string

	LocalStorageDir string

	UploadRatePerMinute int
	LogLevel            string
}

// 디바이스(ledger) 도구 설정
type Device struct {
	DBPath           string
	AppendEndpoint   string
	Addr             string
	AutoSyncInterval time.Duration
	HTTPTimeout      time.Duration
	LogLevel         string
}

// .env 파일이 있으면 읽는다. 없으면 무시.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "LoadEnv(): failed to parse env file: %v\n", err)
	}
}

func LoadServer() (Server, error) {
	cfg := Server{
		Port:                getEnv("PORT", "5000"),
		StorageProvider:     strings.ToLower(getEnv("STORAGE_PROVIDER", "dropbox")),
		StorageRoot:         getEnv("STORAGE_ROOT", "/RieperLogistik"),
		EnvFile:             getEnv("ENV_FILE", ".env"),
		DropboxAppKey:       os.Getenv("DROPBOX_APP_KEY"),
		DropboxAppSecret:    os.Getenv("DROPBOX_APP_SECRET"),
		DropboxRefreshToken: os.Getenv("DROPBOX_REFRESH_TOKEN"),
		DropboxAccessToken:  os.Getenv("DROPBOX_ACCESS_TOKEN"),
		OAuthRedirectURL:    getEnv("OAUTH_REDIRECT_URL", "http://localhost:5000/auth/callback"),
		OAuthStateSecret:    os.Getenv("OAUTH_STATE_SECRET"),
		AdminKeyHash:        os.Getenv("ADMIN_KEY_HASH"),
		GCSBucket:           os.Getenv("GCS_BUCKET"),
		GCSCredentialsJSON:  os.Getenv("GCS_CREDENTIALS_JSON"),
		LocalStorageDir:     getEnv("LOCAL_STORAGE_DIR", "data/uploads"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	rate, err := getEnvInt("UPLOAD_RATE_PER_MINUTE", 60)
	if err != nil {
		return cfg, err
	}
	cfg.UploadRatePerMinute = rate

	return cfg, cfg.Validate()
}

func (c Server) Validate() error {
	switch c.StorageProvider {
	case "dropbox":
		if c.DropboxAccessToken == "" && (c.DropboxAppKey == "" || c.DropboxAppSecret == "") {
			return errors.New("config: DROPBOX_APP_KEY and DROPBOX_APP_SECRET are required without DROPBOX_ACCESS_TOKEN")
		}
	case "gcs":
		if c.GCSBucket == "" {
			return errors.New("config: GCS_BUCKET is required for STORAGE_PROVIDER=gcs")
		}
	case "local":
		if c.LocalStorageDir == "" {
			return errors.New("config: LOCAL_STORAGE_DIR is required for STORAGE_PROVIDER=local")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_PROVIDER %q", c.StorageProvider)
	}
	if c.UploadRatePerMinute <= 0 {
		return errors.New("config: UPLOAD_RATE_PER_MINUTE must be positive")
	}
	return nil
}

func LoadDevice() (Device, error) {
	cfg := Device{
		DBPath:         getEnv("LEDGER_DB", "./ledger.db"),
		AppendEndpoint: getEnv("APPEND_ENDPOINT", "http://localhost:5000/upload-append"),
		Addr:           getEnv("DEVICE_ADDR", ":8090"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.AutoSyncInterval, err = getEnvDuration("AUTO_SYNC_INTERVAL", 0); err != nil {
		return cfg, err
	}
	if cfg.HTTPTimeout, err = getEnvDuration("HTTP_TIMEOUT", 30*time.Second); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
