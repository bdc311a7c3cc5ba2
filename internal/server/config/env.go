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

const envPrefix = "INKWELL_"

// parseEnv overlays INKWELL_* environment variables. A .env file in the
// working directory is loaded first; it never overrides variables that are
// already set. Unparsable numbers and durations are reported together and
// leave the previous value in place.
func parseEnv(config *Config) error {
	_ = godotenv.Load()

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	str("HTTP_ADDR", &config.HTTPAddr)
	str("STORAGE_BACKEND", &config.StorageBackend)
	str("DATA_DIR", &config.DataDir)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("UPLOAD_BACKEND", &config.UploadBackend)
	str("UPLOAD_DIR", &config.UploadDir)
	str("PUBLIC_BASE_URL", &config.PublicBaseURL)
	str("S3_ACCESS_KEY", &config.S3AccessKey)
	str("S3_SECRET_KEY", &config.S3SecretKey)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("AI_API_KEY", &config.AIAPIKey)
	str("AI_BASE_URL", &config.AIBaseURL)
	str("AI_MODEL", &config.AIModel)
	str("ADMIN_PASSWORD_HASH", &config.AdminPasswordHash)
	str("SECRET_KEY", &config.SecretKey)
	str("LOG_FORMAT", &config.LogFormat)
	str("LOG_LEVEL", &config.LogLevel)

	var errs []error
	parsed := func(name string, apply func(v string) error) {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			return
		}
		if err := apply(v); err != nil {
			errs = append(errs, fmt.Errorf("%s%s=%q: %w", envPrefix, name, v, err))
		}
	}

	parsed("DB_MAX_OPEN_CONNS", func(v string) error {
		n, err := strconv.Atoi(v)
		if err == nil {
			config.DBMaxOpenConns = n
		}
		return err
	})
	parsed("MAX_UPLOAD_BYTES", func(v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			config.MaxUploadBytes = n
		}
		return err
	})
	parsed("TRUST_PROXY_HEADERS", func(v string) error {
		b, err := strconv.ParseBool(v)
		if err == nil {
			config.TrustProxyHeaders = b
		}
		return err
	})
	parsed("TOKEN_VALIDITY", func(v string) error {
		d, err := time.ParseDuration(v)
		if err == nil {
			config.TokenValidityDuration = d
		}
		return err
	})
	if v, ok := os.LookupEnv(envPrefix + "ALLOWED_ORIGINS"); ok {
		config.AllowedOrigins = splitList(v)
	}
	return errors.Join(errs...)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
