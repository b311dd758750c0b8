package reporting

import (
	"context"
	"time"
)

// Cache puerto opcional para servir dashboards desde un cache con TTL corto.
// Las lecturas de reportes toleran datos levemente desactualizados; cualquier
// fallo del cache degrada a lectura directa, nunca falla el reporte.
type Cache interface {
	// Get devuelve el payload serializado y true si la clave existe.
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
}

// NopCache cache nulo: todo miss, escrituras descartadas.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (NopCache) Set(context.Context, string, []byte, time.Duration) {}
