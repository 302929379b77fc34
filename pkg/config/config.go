package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	ServerPort int
	GinMode    string

	DBDriver            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSQLitePath        string
	DBConnectRetries    int
	DBConnectRetryDelay time.Duration

	CORSAllowedOrigin string
	SeedData          bool
}

// New loads .env files (without overriding the real environment) and builds
// the config from environment variables.
func New() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := &Config{
		GinMode:           getEnv("GIN_MODE", "release"),
		DBDriver:          getEnv("DB_DRIVER", DriverPostgres),
		DBHost:            getEnv("DB_HOST", "postgres"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "program"),
		DBPassword:        getEnv("DB_PASSWORD", "test"),
		DBName:            getEnv("DB_NAME", "libros"),
		DBSQLitePath:      getEnv("DB_SQLITE_PATH", "libros.db"),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
	}

	var err error
	if cfg.ServerPort, err = getInt("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.DBConnectRetries, err = getInt("DB_CONNECT_RETRIES", 10); err != nil {
		return nil, err
	}
	if cfg.DBConnectRetryDelay, err = getDuration("DB_CONNECT_RETRY_DELAY", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.SeedData, err = getBool("SEED_DATA", false); err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return nil, errors.Errorf("unsupported GIN_MODE %q", cfg.GinMode)
	}
	if cfg.DBConnectRetries < 1 {
		return nil, errors.New("DB_CONNECT_RETRIES must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Wrapf(err, "invalid %s", key)
	}
	return b, nil
}
