// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"finance_backend/internal/feature/ledger/usecase"
	"finance_backend/internal/platform/cache"
	infrahttp "finance_backend/internal/platform/http"
	"finance_backend/internal/platform/quoteapi"
	"finance_backend/internal/shared/ratelimiter"
)

// Twelve Dataの無料枠は1分あたり8リクエストまで。
const (
	quoteRateLimit    = 8
	quoteRateInterval = time.Minute
)

// NewQuoteRepository creates the quote lookup chain: a rate-limited
// Twelve Data client wrapped in a Redis cache. If rdb is nil the cache
// layer passes lookups straight through.
func NewQuoteRepository(rdb *redis.Client, ttl time.Duration) usecase.QuoteRepository {
	cfg := quoteapi.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(quoteRateLimit, quoteRateInterval)
	client := quoteapi.NewTwelveDataQuotes(cfg, httpClient, limiter)
	return cache.NewCachingQuoteRepository(rdb, ttl, client, "quotes")
}
