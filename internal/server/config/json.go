package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/inkwell/internal/flagx"
	"github.com/dmitrijs2005/inkwell/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Only keys
// present in the file override earlier layers, hence the pointers.
// Durations accept both "12h" strings and integer nanoseconds.
type JsonConfig struct {
	HTTPAddr              *string         `json:"http_addr"`
	StorageBackend        *string         `json:"storage_backend"`
	DataDir               *string         `json:"data_dir"`
	DatabaseDSN           *string         `json:"database_dsn"`
	DBMaxOpenConns        *int            `json:"db_max_open_conns"`
	UploadBackend         *string         `json:"upload_backend"`
	UploadDir             *string         `json:"upload_dir"`
	PublicBaseURL         *string         `json:"public_base_url"`
	S3AccessKey           *string         `json:"s3_access_key"`
	S3SecretKey           *string         `json:"s3_secret_key"`
	S3Bucket              *string         `json:"s3_bucket"`
	S3Region              *string         `json:"s3_region"`
	S3BaseEndpoint        *string         `json:"s3_base_endpoint"`
	AIAPIKey              *string         `json:"ai_api_key"`
	AIBaseURL             *string         `json:"ai_base_url"`
	AIModel               *string         `json:"ai_model"`
	AdminPasswordHash     *string         `json:"admin_password_hash"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	AllowedOrigins        []string        `json:"allowed_origins"`
	TrustProxyHeaders     *bool           `json:"trust_proxy_headers"`
	LogFormat             *string         `json:"log_format"`
	LogLevel              *string         `json:"log_level"`
	MaxUploadBytes        *int64          `json:"max_upload_bytes"`
}

// parseJson loads the file named by -c or -config into config.
// Without the flag nothing is loaded. An unreadable or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set(&config.HTTPAddr, c.HTTPAddr)
	set(&config.StorageBackend, c.StorageBackend)
	set(&config.DataDir, c.DataDir)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.DBMaxOpenConns, c.DBMaxOpenConns)
	set(&config.UploadBackend, c.UploadBackend)
	set(&config.UploadDir, c.UploadDir)
	set(&config.PublicBaseURL, c.PublicBaseURL)
	set(&config.S3AccessKey, c.S3AccessKey)
	set(&config.S3SecretKey, c.S3SecretKey)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.AIAPIKey, c.AIAPIKey)
	set(&config.AIBaseURL, c.AIBaseURL)
	set(&config.AIModel, c.AIModel)
	set(&config.AdminPasswordHash, c.AdminPasswordHash)
	set(&config.SecretKey, c.SecretKey)
	set(&config.LogFormat, c.LogFormat)
	set(&config.LogLevel, c.LogLevel)
	set(&config.MaxUploadBytes, c.MaxUploadBytes)
	set(&config.TrustProxyHeaders, c.TrustProxyHeaders)
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
