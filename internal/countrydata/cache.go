package countrydata

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// defaultCacheTTL is how long a country entry stays in Redis
	defaultCacheTTL = 6 * time.Hour
	// cacheKeyPrefix namespaces the cache entries
	cacheKeyPrefix = "hub:country:"
)

// CachedProvider is a read-through Redis cache in front of another provider.
// Cache failures are logged and the upstream provider is used instead.
type CachedProvider struct {
	upstream Provider
	client   redis.UniversalClient
	ttl      time.Duration
}

// NewCachedProvider wraps upstream with a Redis cache; a ttl of zero uses the default
func NewCachedProvider(upstream Provider, client redis.UniversalClient, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &CachedProvider{upstream: upstream, client: client, ttl: ttl}
}

// Country returns the cached entry or fetches and caches it
func (p *CachedProvider) Country(ctx context.Context, code string) (Country, error) {
	code = NormalizeCode(code)
	key := cacheKeyPrefix + code

	raw, err := p.client.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		var c Country
		if jsonErr := json.Unmarshal(raw, &c); jsonErr == nil {
			return c, nil
		}

		log.Warn().Str("country", code).Msg("discarding undecodable cached country data")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("country", code).Msg("country cache read failed")
	}

	c, err := p.upstream.Country(ctx, code)
	if err != nil {
		return Country{}, err
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return c, nil
	}

	if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("country", code).Msg("country cache write failed")
	}

	return c, nil
}

// Invalidate drops the cached entry of a country
func (p *CachedProvider) Invalidate(ctx context.Context, code string) error {
	return p.client.Del(ctx, cacheKeyPrefix+NormalizeCode(code)).Err()
}
