package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asBool
}

// GetList splits a comma separated value, dropping blanks.
func GetList(config map[string]string, key string, defaultValue []string) []string {
	s := GetString(config, key, "")
	if s == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

const (
	UploadBackendDisk = "disk"
	UploadBackendS3   = "s3"
)

type DatabaseConfig struct {
	Type         string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	URL          string
	ReplicaDSN   string
	MaxOpenConns int
	MaxIdleConns int
}

type UploadConfig struct {
	Backend       string
	Dir           string
	Bucket        string
	PublicBaseURL string
}

type Config struct {
	Port              string
	Database          DatabaseConfig
	JWTSecret         string
	JWTSecretSSMParam string
	TokenTTL          time.Duration
	SecureCookies     bool
	AcceptedOrigins   []string
	Upload            UploadConfig
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ErrorWebhookURL   string
	LogLevel          string
	LogPretty         bool
	GenerateModels    bool
}

// Load folds the environment map into a Config. The JWT secret may still be empty here when
// it is meant to come from SSM; see ResolveJWTSecret.
func Load(env map[string]string) (Config, error) {
	cfg := Config{
		Port: GetString(env, "PORT", "8080"),
		Database: DatabaseConfig{
			Type:         GetString(env, "DB_TYPE", "postgres"),
			Host:         GetString(env, "DB_HOST", "localhost"),
			Port:         GetString(env, "DB_PORT", "5432"),
			User:         GetString(env, "DB_USER", "postgres"),
			Password:     GetString(env, "DB_PASSWORD", ""),
			Name:         GetString(env, "DB_NAME", "diyhub"),
			URL:          GetString(env, "DATABASE_URL", ""),
			ReplicaDSN:   GetString(env, "DB_REPLICA_DSN", ""),
			MaxOpenConns: GetInt(env, "DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: GetInt(env, "DB_MAX_IDLE_CONNS", 5),
		},
		JWTSecret:         GetString(env, "JWT_SECRET", ""),
		JWTSecretSSMParam: GetString(env, "JWT_SECRET_SSM_PARAM", ""),
		TokenTTL:          time.Duration(GetInt(env, "TOKEN_TTL_MINUTES", 60)) * time.Minute,
		SecureCookies:     GetBool(env, "COOKIE_SECURE", true),
		AcceptedOrigins:   GetList(env, "ACCEPTED_ORIGINS", []string{"*"}),
		Upload: UploadConfig{
			Backend:       strings.ToLower(GetString(env, "UPLOAD_BACKEND", UploadBackendDisk)),
			Dir:           GetString(env, "UPLOAD_DIR", "uploads"),
			Bucket:        GetString(env, "UPLOAD_BUCKET", ""),
			PublicBaseURL: strings.TrimRight(GetString(env, "UPLOAD_PUBLIC_BASE_URL", ""), "/"),
		},
		ReadTimeout:     time.Duration(GetInt(env, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout:    time.Duration(GetInt(env, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:     time.Duration(GetInt(env, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
		ErrorWebhookURL: GetString(env, "ERROR_WEBHOOK_URL", ""),
		LogLevel:        GetString(env, "LOG_LEVEL", "info"),
		LogPretty:       GetBool(env, "LOG_PRETTY", false),
		GenerateModels:  GetBool(env, "GENERATE_MODELS", false),
	}

	if cfg.TokenTTL <= 0 {
		return cfg, fmt.Errorf("TOKEN_TTL_MINUTES must be positive")
	}

	switch cfg.Upload.Backend {
	case UploadBackendDisk:
	case UploadBackendS3:
		if cfg.Upload.Bucket == "" {
			return cfg, fmt.Errorf("UPLOAD_BUCKET is required when UPLOAD_BACKEND=s3")
		}
	default:
		return cfg, fmt.Errorf("unsupported UPLOAD_BACKEND %q", cfg.Upload.Backend)
	}

	return cfg, nil
}
