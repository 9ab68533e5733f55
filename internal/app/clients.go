package app

import (
	"os"
	"strings"

	"github.com/artcove/artcove-backend/internal/clients/gcp"
	"github.com/artcove/artcove-backend/internal/clients/redis"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

type Clients struct {
	GcpBucket gcp.BucketService
	Cache     redis.Cache
}

// wireClients builds the optional outbound clients. A missing bucket or
// cache leaves the field nil and the server runs degraded: uploads return
// 503 and catalog reads skip the cache.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")

	var clients Clients

	bucket, err := gcp.NewBucketService(log)
	if err != nil {
		log.Warn("Bucket client unavailable, file uploads disabled", "error", err)
	} else {
		clients.GcpBucket = bucket
	}

	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		cache, err := redis.NewCache(log)
		if err != nil {
			log.Warn("Redis cache unavailable, catalog reads go straight to the database", "error", err)
		} else {
			clients.Cache = cache
		}
	}

	return clients
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
