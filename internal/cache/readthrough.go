package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// ReadThrough serves reference data from a Store for at most ttl before
// reloading it. Backend failures fall through to the loader.
type ReadThrough struct {
	store Store
	ttl   time.Duration
	log   zerolog.Logger
}

func NewReadThrough(store Store, ttl time.Duration, log zerolog.Logger) *ReadThrough {
	return &ReadThrough{store: store, ttl: ttl, log: log}
}

func (rt *ReadThrough) Invalidate(ctx context.Context, keys ...string) {
	if err := rt.store.Delete(ctx, keys...); err != nil {
		rt.log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidate failed")
	}
}

// Load returns the cached value for key or calls loader and caches its result.
func Load[T any](
	ctx context.Context,
	rt *ReadThrough,
	key string,
	loader func(ctx context.Context) (T, error),
) (T, error) {

	if b, ok, err := rt.store.Get(ctx, key); err != nil {
		rt.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	} else if ok {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			return v, nil
		}
		rt.log.Warn().Str("key", key).Msg("cache entry undecodable, reloading")
	}

	v, err := loader(ctx)
	if err != nil {
		return v, err
	}

	b, err := json.Marshal(v)
	if err != nil {
		return v, nil
	}
	if err := rt.store.Set(ctx, key, b, rt.ttl); err != nil {
		rt.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return v, nil
}
