package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultPort           = "8080"
	defaultHost           = "0.0.0.0"
	defaultAllowOrigin    = "https://xuconghu.github.io"
	defaultDataDir        = "/var/www/candy-game/data"
	defaultMaxUploadBytes = 10 << 20
	defaultServerName     = "candy-game-server"
	defaultServerVersion  = "1.0.0"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Host              string
	CORSAllowOrigin   string
	DataDir           string
	MaxUploadBytes    int64
	ServerName        string
	ServerVersion     string
	Env               string
	ObjectStoreType   string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	SSEKMSKeyID       string
	RateLimitRPS      float64
	RateLimitBurst    int
	RetentionMaxAge   time.Duration
	RetentionSchedule string
	MetricsEnabled    bool
}

// Load reads configuration from the environment, optional .env files and an
// optional config.yaml, falling back to defaults.
func Load() (Config, error) {
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("HOST", defaultHost)
	v.SetDefault("CORS_ALLOW_ORIGIN", defaultAllowOrigin)
	v.SetDefault("DATA_DIR", defaultDataDir)
	v.SetDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	v.SetDefault("SERVER_NAME", defaultServerName)
	v.SetDefault("SERVER_VERSION", defaultServerVersion)
	v.SetDefault("ENV", "dev")
	v.SetDefault("OBJECT_STORE", "local")
	v.SetDefault("AWS_REGION", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_PREFIX", "")
	v.SetDefault("SSE_KMS_KEY_ID", "")
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 0)
	v.SetDefault("RETENTION_MAX_AGE", "0s")
	v.SetDefault("RETENTION_SCHEDULE", "@hourly")
	v.SetDefault("METRICS_ENABLED", true)
}

func fromViper(v *viper.Viper) Config {
	maxUpload := v.GetInt64("MAX_UPLOAD_BYTES")
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}

	return Config{
		Port:              strings.TrimSpace(v.GetString("PORT")),
		Host:              strings.TrimSpace(v.GetString("HOST")),
		CORSAllowOrigin:   strings.TrimSpace(v.GetString("CORS_ALLOW_ORIGIN")),
		DataDir:           strings.TrimSpace(v.GetString("DATA_DIR")),
		MaxUploadBytes:    maxUpload,
		ServerName:        v.GetString("SERVER_NAME"),
		ServerVersion:     v.GetString("SERVER_VERSION"),
		Env:               normalizeEnv(v.GetString("ENV")),
		ObjectStoreType:   normalizeStoreType(v.GetString("OBJECT_STORE")),
		AWSRegion:         strings.TrimSpace(v.GetString("AWS_REGION")),
		S3Bucket:          strings.TrimSpace(v.GetString("S3_BUCKET")),
		S3Prefix:          strings.TrimSpace(v.GetString("S3_PREFIX")),
		SSEKMSKeyID:       strings.TrimSpace(v.GetString("SSE_KMS_KEY_ID")),
		RateLimitRPS:      v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:    v.GetInt("RATE_LIMIT_BURST"),
		RetentionMaxAge:   v.GetDuration("RETENTION_MAX_AGE"),
		RetentionSchedule: strings.TrimSpace(v.GetString("RETENTION_SCHEDULE")),
		MetricsEnabled:    v.GetBool("METRICS_ENABLED"),
	}
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
