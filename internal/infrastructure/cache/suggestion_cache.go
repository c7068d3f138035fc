// Package cache implementa el cache Redis de reportes de sugerencias.
// El cache es una optimización: sus errores nunca deben tumbar el reporte,
// el use case los registra y sigue contra la base de datos.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/procurement-core/internal/application/dto"
	"github.com/tu-usuario/procurement-core/internal/application/suggestion"
	"github.com/tu-usuario/procurement-core/pkg/config"
)

const suggestionKeyPrefix = "suggestions:report"

var _ suggestion.ReportCache = (*RedisReportCache)(nil)
var _ suggestion.ReportCache = (*NoopReportCache)(nil)

// RedisReportCache cachea el reporte serializado en JSON, una clave por
// filtro de bodega.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NoopReportCache variante para cuando el cache está deshabilitado: nunca
// acierta y nunca falla.
type NoopReportCache struct{}

// NewReportCache construye el cache según configuración. Con Enabled=false
// devuelve la variante noop sin tocar Redis.
func NewReportCache(cfg config.CacheConfig) (suggestion.ReportCache, error) {
	if !cfg.Enabled {
		return &NoopReportCache{}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisReportCache{client: client, ttl: ttl}, nil
}

func (c *RedisReportCache) Get(ctx context.Context, warehouseID string) (*dto.SuggestionReportDTO, bool, error) {
	payload, err := c.client.Get(ctx, buildKey(warehouseID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report dto.SuggestionReportDTO
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode suggestion report cache: %w", err)
	}
	return &report, true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, warehouseID string, report *dto.SuggestionReportDTO) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode suggestion report cache: %w", err)
	}
	if err := c.client.Set(ctx, buildKey(warehouseID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate borra la clave de la bodega y la global: un PR nuevo cambia
// hasPendingPR en ambas vistas.
func (c *RedisReportCache) Invalidate(ctx context.Context, warehouseID string) error {
	keys := []string{buildKey(warehouseID)}
	if warehouseID != "" {
		keys = append(keys, buildKey(""))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (n *NoopReportCache) Get(ctx context.Context, warehouseID string) (*dto.SuggestionReportDTO, bool, error) {
	return nil, false, nil
}

func (n *NoopReportCache) Set(ctx context.Context, warehouseID string, report *dto.SuggestionReportDTO) error {
	return nil
}

func (n *NoopReportCache) Invalidate(ctx context.Context, warehouseID string) error {
	return nil
}

func buildKey(warehouseID string) string {
	if warehouseID == "" {
		return suggestionKeyPrefix + ":all"
	}
	return fmt.Sprintf("%s:%s", suggestionKeyPrefix, warehouseID)
}
