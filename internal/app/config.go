package app

import (
	"time"

	"github.com/yungbote/restkit-backend/internal/data/cache"
	"github.com/yungbote/restkit-backend/internal/data/db"
	"github.com/yungbote/restkit-backend/internal/observability"
	"github.com/yungbote/restkit-backend/internal/platform/envutil"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

type Config struct {
	Env             string
	Addr            string
	ShutdownTimeout time.Duration
	AutoMigrate     bool
	CORSOrigins     []string

	// ClassesFile is an optional YAML file of per-resource class tables.
	ClassesFile string

	DB    db.Config
	Redis cache.Config
	Otel  observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	env := envutil.String("APP_ENV", "development", log)
	return Config{
		Env:             env,
		Addr:            envutil.String("HTTP_ADDR", ":8080", log),
		ShutdownTimeout: envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second, log),
		AutoMigrate:     envutil.Bool("DB_AUTO_MIGRATE", env == "development", log),
		CORSOrigins:     envutil.List("CORS_ORIGINS", nil, log),
		ClassesFile:     envutil.String("REST_CLASSES_FILE", "", log),
		DB: db.Config{
			Driver:        envutil.String("DB_DRIVER", db.DriverPostgres, log),
			Host:          envutil.String("POSTGRES_HOST", "localhost", log),
			Port:          envutil.String("POSTGRES_PORT", "5432", log),
			User:          envutil.String("POSTGRES_USER", "postgres", log),
			Password:      envutil.String("POSTGRES_PASSWORD", "", log),
			Name:          envutil.String("POSTGRES_NAME", "restkit", log),
			SSLMode:       envutil.String("POSTGRES_SSLMODE", "disable", log),
			SQLitePath:    envutil.String("SQLITE_PATH", "restkit.db", log),
			SlowThreshold: envutil.Duration("DB_SLOW_THRESHOLD", time.Second, log),
		},
		Redis: cache.Config{
			Addr:     envutil.String("REDIS_ADDR", "", log),
			Password: envutil.String("REDIS_PASSWORD", "", log),
			DB:       envutil.Int("REDIS_DB", 0, log),
			TTL:      envutil.Duration("CACHE_TTL", 5*time.Minute, log),
		},
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "restkit", log),
			Environment: env,
			Version:     envutil.String("APP_VERSION", "dev", log),
			SampleRatio: float64(envutil.Int("OTEL_SAMPLER_PERCENT", 10, log)) / 100,
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
		},
	}
}
