package gate

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Resolver loads the subject behind a key (usually a user id) together with
// its permission bundle.
type Resolver[K comparable] interface {
	Resolve(ctx context.Context, key K) (Subject, error)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc[K comparable] func(ctx context.Context, key K) (Subject, error)

func (f ResolverFunc[K]) Resolve(ctx context.Context, key K) (Subject, error) {
	return f(ctx, key)
}

// CachedResolver wraps a Resolver with a bounded TTL cache so repeated
// decisions for the same user do not hit the database.
type CachedResolver[K comparable] struct {
	inner Resolver[K]
	cache *expirable.LRU[K, Subject]
}

// NewCachedResolver wraps inner. size bounds the number of cached subjects,
// ttl is how long an entry lives before it is fetched again.
func NewCachedResolver[K comparable](inner Resolver[K], size int, ttl time.Duration) *CachedResolver[K] {
	return &CachedResolver[K]{
		inner: inner,
		cache: expirable.NewLRU[K, Subject](size, nil, ttl),
	}
}

// Resolve returns the cached subject or fetches it from the inner resolver.
// Errors are not cached.
func (r *CachedResolver[K]) Resolve(ctx context.Context, key K) (Subject, error) {
	if s, ok := r.cache.Get(key); ok {
		return s, nil
	}
	s, err := r.inner.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	r.cache.Add(key, s)
	return s, nil
}

// Invalidate drops one subject. Call it when a user's role or group changes.
func (r *CachedResolver[K]) Invalidate(key K) {
	r.cache.Remove(key)
}

// InvalidateAll clears the cache. Call it when a group's flags change.
func (r *CachedResolver[K]) InvalidateAll() {
	r.cache.Purge()
}

// Len is the number of live entries.
func (r *CachedResolver[K]) Len() int {
	return r.cache.Len()
}
