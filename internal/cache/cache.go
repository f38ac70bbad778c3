package cache

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Client is the process-wide read/mutation orchestrator. It is built
// once at startup and shared by reference; ad-hoc instances would
// invalidate a cache no reader ever sees.
type Client struct {
	store Store
	group singleflight.Group
	log   zerolog.Logger

	onInvalidate func(keys []string)
}

func NewClient(store Store, log zerolog.Logger) *Client {
	return &Client{store: store, log: log}
}

// OnInvalidate registers a hook receiving every invalidated key set,
// used to push refetch notifications to subscribed views.
func (c *Client) OnInvalidate(fn func(keys []string)) {
	c.onInvalidate = fn
}

// Invalidate marks the given keys stale. A bare operation key drops
// every parameterized entry under it as well.
func (c *Client) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := c.store.Delete(ctx, key); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
		}
	}
	if c.onInvalidate != nil && len(keys) > 0 {
		c.onInvalidate(keys)
	}
}

// Mutate runs fn and, on success only, invalidates the declared keys.
// Identical in-flight mutations for the same (operation, entity) pair
// are coalesced: the duplicate caller shares the first call's result
// instead of firing a second request.
func (c *Client) Mutate(ctx context.Context, op, entity string, fn func(ctx context.Context) error, invalidates ...string) error {
	_, err, _ := c.group.Do(op+"#"+entity, func() (any, error) {
		if err := fn(ctx); err != nil {
			return nil, err
		}
		c.Invalidate(ctx, invalidates...)
		return nil, nil
	})
	return err
}

// MutateResult is Mutate for mutations that produce a value. A
// coalesced duplicate caller receives the first call's result, never
// a zero value.
func MutateResult[T any](ctx context.Context, c *Client, op, entity string, fn func(ctx context.Context) (T, error), invalidates ...string) (T, error) {
	var zero T
	result, err, _ := c.group.Do(op+"#"+entity, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.Invalidate(ctx, invalidates...)
		return value, nil
	})
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}

// ApplyOptimistic writes value under key immediately and returns a
// revert function restoring whatever was cached before. Callers apply
// the local change, run the mutation, and revert on failure.
func (c *Client) ApplyOptimistic(ctx context.Context, key string, value any) (func(ctx context.Context), error) {
	prev, had, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, key, encoded); err != nil {
		return nil, err
	}

	revert := func(ctx context.Context) {
		var rerr error
		if had {
			rerr = c.store.Set(ctx, key, prev)
		} else {
			rerr = c.store.Delete(ctx, key)
		}
		if rerr != nil {
			c.log.Warn().Err(rerr).Str("key", key).Msg("optimistic revert failed")
		}
	}
	return revert, nil
}

// PeekJSON reports whether key is cached, decoding into v when it is.
// It never fetches.
func (c *Client) PeekJSON(ctx context.Context, key string, v any) (bool, error) {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

// GetJSON is a read-through lookup. With enabled false the read is
// skipped entirely and the zero value returned. Concurrent fetches of
// the same key are coalesced.
func GetJSON[T any](ctx context.Context, c *Client, key string, enabled bool, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if !enabled {
		return zero, nil
	}

	if cached, ok, err := c.store.Get(ctx, key); err == nil && ok {
		var value T
		if err := json.Unmarshal(cached, &value); err == nil {
			return value, nil
		}
		// Unreadable entry; fall through to refetch.
		_ = c.store.Delete(ctx, key)
	} else if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	result, err, _ := c.group.Do("get#"+key, func() (any, error) {
		value, err := fetch(ctx)
		if err != nil {
			return zero, err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return zero, err
		}
		if err := c.store.Set(ctx, key, encoded); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
		return value, nil
	})
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}
