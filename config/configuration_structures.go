package config

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"time"
)

type DatabaseConfig struct {
	DSN             string `yaml:"dsn"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnectAttempts int    `yaml:"connect_attempts"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Client    *s3.Client
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Local     bool   `yaml:"local"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type JWTConfig struct {
	SecretKey      string `yaml:"secret_key"`
	AccessTokenTTL string `yaml:"access_token_ttl"`
	Issuer         string `yaml:"issuer"`
}

type WebhookConfig struct {
	Secret string `yaml:"secret"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ImagesConfig : параметры пайплайна обработки фотографий
type ImagesConfig struct {
	MaxDimension     int `yaml:"max_dimension"`
	Quality          int `yaml:"quality"`
	BatchConcurrency int `yaml:"batch_concurrency"`
	MaxUploadMB      int `yaml:"max_upload_mb"`
}

// TokensConfig : параметры жизненного цикла токенов доступа
type TokensConfig struct {
	RetentionDays  int `yaml:"retention_days"`
	AccessLogQueue int `yaml:"access_log_queue"`
}

// TTL : времена жизни в секундах
type TTL struct {
	SettingsCache  int `yaml:"settings_cache"`
	FeatureFlags   int `yaml:"feature_flags"`
	PresignedURL   int `yaml:"presigned_url"`
	RequestTimeout int `yaml:"request_timeout"`
}

func (t TTL) Settings() time.Duration {
	return time.Duration(t.SettingsCache) * time.Second
}

func (t TTL) Features() time.Duration {
	return time.Duration(t.FeatureFlags) * time.Second
}

func (t TTL) Presign() time.Duration {
	return time.Duration(t.PresignedURL) * time.Second
}

func (t TTL) Request() time.Duration {
	return time.Duration(t.RequestTimeout) * time.Second
}
