package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreDriverFile     = "file"
	StoreDriverMemory   = "memory"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
	StoreDriverR2       = "r2"
)

type Config struct {
	Env      string
	LogLevel string
	// Remote profile service
	APIBaseURL   string
	APITimeout   time.Duration
	APIRatePerS  float64
	APIBurst     int
	MaxImageSize int64
	// Durable store
	StoreDriver    string
	StorePath      string
	StoreNamespace string
	RedisURL       string
	// DB Config
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2Endpoint        string
	R2Timeout         time.Duration
	// Telemetry
	TraceOutput    string
	PushgatewayURL string
	// Ephemeral object URLs
	ObjectURLTTL time.Duration
	// Mock API
	MockAPIPort       string
	AllowedOrigin     string
	MockAPIRatePerS   float64
	MockAPIBurst      int
	AccountRatePerS   float64
	AccountBurst      int
	JWTSecret         string
	AccessTokenExpiry time.Duration
	SeedUserID        string
	SeedEmail         string
	SeedPassword      string
	SeedName          string
}

// DefaultJWTSecret signs mock service tokens when JWT_SECRET is unset.
const DefaultJWTSecret = "default_secret_CHANGE_ME"

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		}
	} else {
		// 2. Default fallback: .env in the working directory, if any
		_ = godotenv.Load()
	}

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "warn"),

		APIBaseURL:   getEnv("API_BASE_URL", "https://interview-task-bmcl.onrender.com/api/user"),
		APITimeout:   getDurationEnv("API_TIMEOUT", 30*time.Second),
		APIRatePerS:  getFloatEnv("API_RATE_PER_SEC", 5),
		APIBurst:     getIntEnv("API_BURST", 5),
		MaxImageSize: getInt64Env("MAX_IMAGE_BYTES", 5_000_000),

		StoreDriver:    getEnv("STORE_DRIVER", StoreDriverFile),
		StorePath:      getEnv("STORE_PATH", defaultStorePath()),
		StoreNamespace: getEnv("STORE_NAMESPACE", "dashboard"),
		RedisURL:       getEnv("REDIS_URL", ""),

		DBUrl:             getEnv("DB_DSN", ""),
		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 4),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 0),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*5),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2Endpoint:        getEnv("R2_ENDPOINT", ""),
		R2Timeout:         getDurationEnv("R2_TIMEOUT", 30*time.Second),

		ObjectURLTTL: getDurationEnv("OBJECT_URL_TTL", 0),

		TraceOutput:    getEnv("TRACE_OUTPUT", ""),
		PushgatewayURL: getEnv("METRICS_PUSHGATEWAY_URL", ""),

		MockAPIPort:       getEnv("MOCKAPI_PORT", "8090"),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "*"),
		MockAPIRatePerS:   getFloatEnv("MOCKAPI_RATE_PER_SEC", 50),
		MockAPIBurst:      getIntEnv("MOCKAPI_BURST", 100),
		AccountRatePerS:   getFloatEnv("MOCKAPI_ACCOUNT_RATE_PER_SEC", 5),
		AccountBurst:      getIntEnv("MOCKAPI_ACCOUNT_BURST", 10),
		JWTSecret:         getEnv("JWT_SECRET", DefaultJWTSecret),
		AccessTokenExpiry: getDurationEnv("ACCESS_TOKEN_EXPIRY", time.Hour),
		SeedUserID:        getEnv("MOCKAPI_SEED_USER_ID", "42"),
		SeedEmail:         getEnv("MOCKAPI_SEED_EMAIL", "a@b.com"),
		SeedPassword:      getEnv("MOCKAPI_SEED_PASSWORD", "x"),
		SeedName:          getEnv("MOCKAPI_SEED_NAME", "Alice"),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("CRITICAL: %v", err)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	switch c.StoreDriver {
	case StoreDriverFile:
		if c.StorePath == "" {
			return fmt.Errorf("STORE_PATH is required for the file store")
		}
	case StoreDriverMemory:
	case StoreDriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis store")
		}
	case StoreDriverPostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("DB_DSN is required for the postgres store")
		}
	case StoreDriverR2:
		if (c.R2AccountID == "" && c.R2Endpoint == "") || c.R2BucketName == "" {
			return fmt.Errorf("R2_BUCKET_NAME and one of R2_ACCOUNT_ID or R2_ENDPOINT are required for the r2 store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.MaxImageSize <= 0 {
		return fmt.Errorf("MAX_IMAGE_BYTES must be positive")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret for the mock API.")
	}
	return nil
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dashboard", "store.json")
	}
	return filepath.Join(home, ".dashboard", "store.json")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}
