package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN builds the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled is false when REDIS_HOST is left empty.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type Config struct {
	Port string

	Database DatabaseConfig
	Redis    RedisConfig

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	FederatedSecret   string
	FederatedIssuer   string
	FederatedProvider string

	KafkaBrokers []string
	KafkaTopic   string

	CORSOrigins []string
	RateLimit   int
	RateWindow  time.Duration

	ScoringURL           string
	ScoringTimeout       time.Duration
	ScoringFailurePolicy string
	ScoringMaxFailures   uint32
	ScoringResetTimeout  time.Duration

	KVEngine       string
	LocalStorePath string

	// APIURL is where the CLI finds the API server.
	APIURL string
}

// Load reads an optional .env file and then the environment. Values already
// present in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			log.Printf("[CONFIG] Ignoring %s: %v", f, err)
		}
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "screenaware"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "screenaware"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTIssuer:            getEnv("JWT_ISSUER", "screenaware"),
		FederatedSecret:      os.Getenv("FEDERATED_SECRET"),
		FederatedIssuer:      os.Getenv("FEDERATED_ISSUER"),
		FederatedProvider:    getEnv("FEDERATED_PROVIDER", "google"),
		KafkaBrokers:         splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:           os.Getenv("KAFKA_TOPIC"),
		CORSOrigins:          splitList(os.Getenv("CORS_ORIGINS")),
		ScoringURL:           getEnv("SCORING_URL", "http://localhost:8000"),
		ScoringFailurePolicy: os.Getenv("SCORING_FAILURE_POLICY"),
		KVEngine:             getEnv("KV_ENGINE", "sqlite"),
		LocalStorePath:       getEnv("LOCAL_STORE_PATH", "screenaware.db"),
		APIURL:               getEnv("API_URL", "http://localhost:8080"),
	}

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 100); err != nil {
		return nil, err
	}
	maxFailures, err := getInt("SCORING_MAX_FAILURES", 0)
	if err != nil {
		return nil, err
	}
	if maxFailures < 0 {
		return nil, fmt.Errorf("config: SCORING_MAX_FAILURES must not be negative")
	}
	cfg.ScoringMaxFailures = uint32(maxFailures)

	durations := []struct {
		key      string
		fallback time.Duration
		dst      *time.Duration
	}{
		{"JWT_TTL", 24 * time.Hour, &cfg.JWTTTL},
		{"RATE_WINDOW", time.Minute, &cfg.RateWindow},
		{"SCORING_TIMEOUT", 10 * time.Second, &cfg.ScoringTimeout},
		{"SCORING_RESET_TIMEOUT", 30 * time.Second, &cfg.ScoringResetTimeout},
	}
	for _, d := range durations {
		if *d.dst, err = getDuration(d.key, d.fallback); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// ValidateServer checks what the API server cannot start without.
func (c *Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("config: DB_PASSWORD is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration like 30s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
