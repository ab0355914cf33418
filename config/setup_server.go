package config

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"
	"net/http"
	"os"
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	ServerAddr     string         `yaml:"serverAddr"`
	S3Config       S3Config       `yaml:"s3Config"`
	JWT            JWTConfig      `yaml:"jwt"`
	Webhook        WebhookConfig  `yaml:"webhook"`
	Log            LogConfig      `yaml:"log"`
	Images         ImagesConfig   `yaml:"images"`
	Tokens         TokensConfig   `yaml:"tokens"`
	TTL            TTL            `yaml:"TTL"`
}

func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(file)
}

// ParseConfig : разбирает yaml и заполняет значения по умолчанию
func ParseConfig(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

func (cfg *AppConfig) ApplyDefaults() {
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}
	if cfg.DatabaseConfig.ConnectAttempts <= 0 {
		cfg.DatabaseConfig.ConnectAttempts = 5
	}
	if cfg.JWT.AccessTokenTTL == "" {
		cfg.JWT.AccessTokenTTL = "15m"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Images.MaxDimension <= 0 {
		cfg.Images.MaxDimension = 1600
	}
	if cfg.Images.Quality <= 0 || cfg.Images.Quality > 100 {
		cfg.Images.Quality = 72
	}
	if cfg.Images.BatchConcurrency <= 0 {
		cfg.Images.BatchConcurrency = 3
	}
	if cfg.Images.MaxUploadMB <= 0 {
		cfg.Images.MaxUploadMB = 64
	}
	if cfg.Tokens.RetentionDays <= 0 {
		cfg.Tokens.RetentionDays = 90
	}
	if cfg.Tokens.AccessLogQueue <= 0 {
		cfg.Tokens.AccessLogQueue = 256
	}
	if cfg.TTL.SettingsCache <= 0 {
		cfg.TTL.SettingsCache = 60
	}
	if cfg.TTL.FeatureFlags <= 0 {
		cfg.TTL.FeatureFlags = 300
	}
	if cfg.TTL.PresignedURL <= 0 {
		cfg.TTL.PresignedURL = 900
	}
	if cfg.TTL.RequestTimeout <= 0 {
		cfg.TTL.RequestTimeout = 30
	}
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(cfg *DatabaseConfig) (*Database, error) {
	return NewDatabaseConnection("postgres", cfg)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
