package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lolstreamsearch/lib/dto"
	"lolstreamsearch/lib/monitoring/global_metrics"
	"lolstreamsearch/lib/utils/logging"
)

var logger = logging.NewLogger("IDENTITY_SERVICE")

// PUUIDs never change for an account; the TTL only bounds stale Riot IDs after a rename
const puuidCacheDuration = 24 * time.Hour

// ErrCacheMiss is returned by a Cache that has no value for a key
var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// PUUIDLookup is the upstream account API
type PUUIDLookup interface {
	GetPUUID(ctx context.Context, region, gameName, tagLine string) (string, error)
}

// CachedResolver resolves Riot IDs through a cache before asking the account API.
// Cache failures are logged and bypassed.
type CachedResolver struct {
	lookup PUUIDLookup
	cache  Cache // nil disables caching
	ttl    time.Duration
}

func NewCachedResolver(lookup PUUIDLookup, cache Cache) *CachedResolver {
	return &CachedResolver{
		lookup: lookup,
		cache:  cache,
		ttl:    puuidCacheDuration,
	}
}

// CacheKey returns the cache key of a Riot ID. Riot IDs are case-insensitive.
func CacheKey(region, gameName, tagLine string) string {
	return strings.ToLower(fmt.Sprintf("puuid:%s:%s:%s", region, gameName, tagLine))
}

// Resolve returns the identity behind a Riot ID. Name and tag are kept as given.
func (r *CachedResolver) Resolve(ctx context.Context, region, gameName, tagLine string) (*dto.PlayerIdentity, error) {
	puuid, err := r.resolvePUUID(ctx, region, gameName, tagLine)
	if err != nil {
		return nil, err
	}
	return &dto.PlayerIdentity{
		GameName: gameName,
		TagLine:  tagLine,
		PUUID:    puuid,
	}, nil
}

func (r *CachedResolver) resolvePUUID(ctx context.Context, region, gameName, tagLine string) (string, error) {
	if r.cache == nil {
		return r.lookup.GetPUUID(ctx, region, gameName, tagLine)
	}

	key := CacheKey(region, gameName, tagLine)
	fields := map[string]any{
		logging.KEY:       key,
		logging.GAME_NAME: gameName,
		logging.TAG_LINE:  tagLine,
	}

	puuid, err := r.cache.Get(ctx, key)
	switch {
	case err == nil && puuid != "":
		global_metrics.PUUIDCacheLookups.WithLabelValues("hit").Inc()
		return puuid, nil
	case err == nil, errors.Is(err, ErrCacheMiss):
		global_metrics.PUUIDCacheLookups.WithLabelValues("miss").Inc()
	default:
		global_metrics.PUUIDCacheLookups.WithLabelValues("error").Inc()
		logger.Warn("PUUID_CACHE_READ_FAILED", err, fields)
	}

	puuid, err = r.lookup.GetPUUID(ctx, region, gameName, tagLine)
	if err != nil {
		return "", err
	}

	if err := r.cache.Set(ctx, key, puuid, r.ttl); err != nil {
		logger.Warn("PUUID_CACHE_WRITE_FAILED", err, fields)
	}
	return puuid, nil
}
