package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	HIRA      HIRAConfig
	Redis     RedisConfig
	Typesense TypesenseConfig
	Kakao     KakaoConfig
	Recents   RecentsConfig
	OTEL      OTELConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// HIRAConfig holds the open-data portal upstream configuration. The three
// endpoints share one service key but live under different base paths.
type HIRAConfig struct {
	ServiceKey        string
	HospitalBaseURL   string
	NonPaymentBaseURL string
	DetailBaseURL     string
	PageSize          int
	Timeout           time.Duration
	RequestsPerSecond int
	DetailConcurrency int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// KakaoConfig holds the Kakao Local (places/geocoding) API configuration
type KakaoConfig struct {
	RESTAPIKey string
	BaseURL    string
}

// RecentsConfig holds the recently-viewed hospitals store configuration
type RecentsConfig struct {
	Dir string
	Cap int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("APP_ENV", "development"),
		},
		HIRA: HIRAConfig{
			ServiceKey:        getEnv("HIRA_SERVICE_KEY", ""),
			HospitalBaseURL:   getEnv("HIRA_HOSPITAL_BASE_URL", "http://apis.data.go.kr/B551182/hospInfoServicev2"),
			NonPaymentBaseURL: getEnv("HIRA_NONPAYMENT_BASE_URL", "http://apis.data.go.kr/B551182/nonPaymentDamtInfoService"),
			DetailBaseURL:     getEnv("HIRA_DETAIL_BASE_URL", "http://apis.data.go.kr/B551182/MadmDtlInfoService2.7"),
			PageSize:          getEnvAsInt("HIRA_PAGE_SIZE", 100),
			Timeout:           getEnvAsDuration("HIRA_TIMEOUT", 10*time.Second),
			RequestsPerSecond: getEnvAsInt("HIRA_RPS", 10),
			DetailConcurrency: getEnvAsInt("HIRA_DETAIL_CONCURRENCY", 8),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", ""),
			APIKey: getEnv("TYPESENSE_API_KEY", ""),
		},
		Kakao: KakaoConfig{
			RESTAPIKey: getEnv("KAKAO_REST_API_KEY", ""),
			BaseURL:    getEnv("KAKAO_BASE_URL", "https://dapi.kakao.com"),
		},
		Recents: RecentsConfig{
			Dir: getEnv("RECENTS_DIR", "./data/recents"),
			Cap: getEnvAsInt("RECENTS_CAP", 5),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "doctorpay-backend"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if cfg.HIRA.ServiceKey == "" {
		return nil, fmt.Errorf("HIRA_SERVICE_KEY is required")
	}

	return cfg, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
