// Package redis implementa el cache de dashboards sobre go-redis. Los fallos
// del cache se degradan a miss: el motor de reportes siempre puede leer
// directo de la base.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gcharles/autoshop-inventory/internal/application/reporting"
	"github.com/gcharles/autoshop-inventory/pkg/config"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

var _ reporting.Cache = (*ReportCache)(nil)

// ReportCache cache de payloads de reportes con TTL corto.
type ReportCache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewReportCache conecta al servidor y verifica con un ping.
func NewReportCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*ReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &ReportCache{client: client, log: log}, nil
}

// Get devuelve el payload cacheado; cualquier error cuenta como miss.
func (c *ReportCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache de reportes: lectura fallida")
		}
		return nil, false
	}
	return payload, true
}

// Set guarda el payload con TTL. Errores solo se loguean.
func (c *ReportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache de reportes: escritura fallida")
	}
}

// Close libera la conexión.
func (c *ReportCache) Close() error {
	return c.client.Close()
}
