package utils

import (
	"context"
	"sync"
	"time"

	"salonbook/cache"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the snapshot served on /health: reachability of the
// backing stores plus view-cache counters when the in-memory backend
// is active.
type HealthStatus struct {
	Mongo     bool         `json:"mongo"`
	Redis     []bool       `json:"redis"`
	ViewCache *cache.Stats `json:"view_cache,omitempty"`
	CheckedAt time.Time    `json:"checked_at"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings mongo and every redis client each minute and
// stores the result. memCache is nil when the redis view-cache backend
// is in use; its counters then stay out of the snapshot.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client, memCache *cache.MemoryViewCache) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			var redisHealth []bool
			for _, client := range redisClients {
				redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
			}

			status := HealthStatus{
				Mongo:     mongoClient.Ping(ctx, nil) == nil,
				Redis:     redisHealth,
				CheckedAt: time.Now(),
			}
			if memCache != nil {
				stats := memCache.Stats()
				status.ViewCache = &stats
			}

			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}
