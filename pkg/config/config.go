package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Configuration is environment-driven; the recognized variable names are
// part of the deployment contract and match the existing manifests
// (REDIS_DNS, BACKEND_DNS, BACKEND_PORT, ...).

// CORSConfig controls the CORS middleware on the backend API.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// BackendConfig holds everything the backend process needs.
type BackendConfig struct {
	Environment string
	Host        string
	Port        int

	// RedisAddr is empty when REDIS_DNS is unset; the cache is then
	// disabled for the process lifetime without any network attempt.
	RedisAddr           string
	RedisConnectRetries int
	RedisRetryDelay     time.Duration
	RedisCallTimeout    time.Duration

	CORS CORSConfig
}

// FrontendConfig holds everything the frontend process needs.
type FrontendConfig struct {
	Environment string
	Port        int

	BackendDNS  string
	BackendPort int

	StaticDir      string
	RequestTimeout time.Duration
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

// LoadBackend reads the backend configuration from the environment.
func LoadBackend() (*BackendConfig, error) {
	v := newViper()
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("BACKEND_HOST", "0.0.0.0")
	v.SetDefault("BACKEND_PORT", 9000)
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_CONNECT_RETRIES", 5)
	v.SetDefault("REDIS_RETRY_DELAY_SECONDS", 2)
	v.SetDefault("REDIS_CALL_TIMEOUT_SECONDS", 5)

	cfg := &BackendConfig{
		Environment:         v.GetString("APP_ENV"),
		Host:                v.GetString("BACKEND_HOST"),
		Port:                v.GetInt("BACKEND_PORT"),
		RedisConnectRetries: v.GetInt("REDIS_CONNECT_RETRIES"),
		RedisRetryDelay:     time.Duration(v.GetInt("REDIS_RETRY_DELAY_SECONDS")) * time.Second,
		RedisCallTimeout:    time.Duration(v.GetInt("REDIS_CALL_TIMEOUT_SECONDS")) * time.Second,
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Origin", "Content-Type"},
		},
	}

	if dns := v.GetString("REDIS_DNS"); dns != "" {
		cfg.RedisAddr = fmt.Sprintf("%s:%d", dns, v.GetInt("REDIS_PORT"))
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid backend port %d", cfg.Port)
	}
	return cfg, nil
}

// LoadFrontend reads the frontend configuration from the environment.
func LoadFrontend() (*FrontendConfig, error) {
	v := newViper()
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("FRONTEND_PORT", 8080)
	v.SetDefault("BACKEND_DNS", "localhost")
	v.SetDefault("BACKEND_PORT", 9000)
	v.SetDefault("STATIC_DIR", "./static")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 10)

	cfg := &FrontendConfig{
		Environment:    v.GetString("APP_ENV"),
		Port:           v.GetInt("FRONTEND_PORT"),
		BackendDNS:     v.GetString("BACKEND_DNS"),
		BackendPort:    v.GetInt("BACKEND_PORT"),
		StaticDir:      v.GetString("STATIC_DIR"),
		RequestTimeout: time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid frontend port %d", cfg.Port)
	}
	return cfg, nil
}
