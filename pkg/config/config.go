package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPAddr string
	GRPCAddr string

	StorageBackend    string
	SubmissionBackend string
	RedisAddr         string
	MySQLDSN          string

	SessionTTL     time.Duration
	EventQueueSize int
	HealthInterval time.Duration
	CORSOrigins    []string
}

// Load reads configuration from the environment. Values from a .env file in
// the working directory fill in variables that are not already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "load .env")
	}

	cfg := Config{
		AppEnv:         getEnv("APP_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		GRPCAddr:       getEnv("GRPC_ADDR", ":50051"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendRedis)),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		MySQLDSN:       getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/bakery?parseTime=true"),
		SessionTTL:     getEnvDuration("SESSION_TTL", 30*time.Minute),
		EventQueueSize: getEnvInt("EVENT_QUEUE_SIZE", 256),
		HealthInterval: getEnvDuration("HEALTH_INTERVAL", 10*time.Second),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
	}
	cfg.SubmissionBackend = strings.ToLower(getEnv("SUBMISSION_BACKEND", cfg.StorageBackend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendRedis:
	default:
		return errors.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.SubmissionBackend {
	case BackendMemory, BackendRedis, BackendMySQL:
	default:
		return errors.Errorf("unsupported SUBMISSION_BACKEND %q", c.SubmissionBackend)
	}
	if c.SubmissionBackend == BackendMemory && c.StorageBackend != BackendMemory {
		return errors.New("SUBMISSION_BACKEND=memory requires STORAGE_BACKEND=memory")
	}
	if c.EventQueueSize < 1 {
		return errors.Errorf("EVENT_QUEUE_SIZE must be positive, got %d", c.EventQueueSize)
	}
	return nil
}

func (c Config) UsesRedis() bool {
	return c.StorageBackend == BackendRedis || c.SubmissionBackend == BackendRedis
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
