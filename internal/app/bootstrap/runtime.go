package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/doctor-finder/internal/assistant"
	appconfig "github.com/wolfman30/doctor-finder/internal/config"
	"github.com/wolfman30/doctor-finder/internal/doctors"
	"github.com/wolfman30/doctor-finder/internal/ingest"
	"github.com/wolfman30/doctor-finder/migrations"
	"github.com/wolfman30/doctor-finder/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, sessions stay in memory", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildSessionStore keeps sessions in Redis when a client is available.
func BuildSessionStore(redisClient *redis.Client, cfg *appconfig.Config) assistant.SessionStore {
	ttl := assistant.DefaultSessionTTL
	if cfg != nil && cfg.SessionTTL > 0 {
		ttl = cfg.SessionTTL
	}
	if redisClient == nil {
		return assistant.NewMemorySessionStore(ttl)
	}
	return assistant.NewRedisSessionStore(redisClient, ttl, nil)
}

// BuildDoctorStore opens the Postgres store when DATABASE_URL is set and
// falls back to the in-memory store otherwise. The returned pool is nil for
// the memory store and must be closed by the caller.
func BuildDoctorStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (doctors.Store, *pgxpool.Pool, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		logger.Info("DATABASE_URL not set, using in-memory doctor store")
		return doctors.NewMemoryStore(), nil, nil
	}

	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.DatabaseURL); err != nil {
			return nil, nil, fmt.Errorf("bootstrap: migrate: %w", err)
		}
		logger.Info("database migrations applied")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
	}
	return doctors.NewPostgresStore(pool), pool, nil
}

// BuildSource picks where doctor files are read from. A bucket wins over a
// directory; with neither configured the result is nil.
func BuildSource(ctx context.Context, cfg *appconfig.Config) (ingest.Source, error) {
	if cfg == nil {
		return nil, nil
	}
	if bucket := strings.TrimSpace(cfg.DataBucket); bucket != "" {
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.AWSEndpointOverride != "" {
				o.BaseEndpoint = aws.String(cfg.AWSEndpointOverride)
				o.UsePathStyle = true
			}
		})
		return ingest.NewS3Source(client, bucket, cfg.DataPrefix), nil
	}
	if dir := strings.TrimSpace(cfg.DataDir); dir != "" {
		return ingest.NewDirSource(dir), nil
	}
	return nil, nil
}

// ShouldImport reports whether the store needs a load at startup.
func ShouldImport(ctx context.Context, cfg *appconfig.Config, store doctors.Store, source ingest.Source) (bool, error) {
	if source == nil {
		return false, nil
	}
	if cfg != nil && cfg.ImportOnStartup {
		return true, nil
	}
	n, err := store.Count(ctx, "", "")
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
