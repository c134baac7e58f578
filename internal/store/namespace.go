package store

import (
	"context"
	"time"
)

type namespaced struct {
	kv     KeyValueStore
	prefix string
}

// Namespaced returns a view of kv in which every key is prefixed, so
// several logical owners (e.g. website visitors) can share one backend
// without colliding.
func Namespaced(kv KeyValueStore, prefix string) KeyValueStore {
	return &namespaced{kv: kv, prefix: prefix}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return n.kv.Set(ctx, n.prefix+key, value, ttl)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.kv.Delete(ctx, n.prefix+key)
}
