// Package cache is the read-side query cache. Results are stored under a
// canonical key tuple (entity tag, ordered filter values) and invalidation
// evicts every entry whose entity tag matches, so collection-level and
// record-level entries for one entity fan out together.
package cache

import (
	"context"
	"encoding/json"
	"strings"
)

// keySep separates key parts; it cannot occur in entity tags or ids
const keySep = "\x1f"

// Key identifies one cached read: an entity tag plus the ordered filter
// argument values of the query.
type Key struct {
	Entity string
	Args   []string
}

// NewKey builds a key from an entity tag and filter arguments
func NewKey(entity string, args ...string) Key {
	return Key{Entity: entity, Args: args}
}

// String renders the canonical form. The entity tag is always followed by
// the separator so prefix matching on "entity<sep>" is exact.
func (k Key) String() string {
	return k.Entity + keySep + strings.Join(k.Args, keySep)
}

// Store is a query cache backend
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, bool)
	Set(ctx context.Context, key Key, value []byte)
	// Invalidate evicts every entry whose key carries the entity tag
	Invalidate(ctx context.Context, entity string)
}

// Through serves a read from the cache when present, otherwise runs fetch
// and caches the result. A nil store, a cache miss or an undecodable entry
// all fall through to fetch; fetch errors are never cached.
func Through[T any](ctx context.Context, s Store, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var out T
	if s != nil {
		if b, ok := s.Get(ctx, key); ok {
			if err := json.Unmarshal(b, &out); err == nil {
				return out, nil
			}
		}
	}

	out, err := fetch(ctx)
	if err != nil {
		return out, err
	}

	if s != nil {
		if b, err := json.Marshal(out); err == nil {
			s.Set(ctx, key, b)
		}
	}
	return out, nil
}
