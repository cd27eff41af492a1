package backend

import (
	"github.com/redis/go-redis/v9"

	"github.com/hyp3rd/jitterbench/internal/libs/serializer"
)

// iConfigurableBackend is implemented by stores that accept a result limit.
type iConfigurableBackend interface {
	// setLimit sets the maximum number of results kept.
	setLimit(limit int)
}

// setLimit sets the `limit` field of the `InMemory` backend.
func (inm *InMemory) setLimit(limit int) {
	inm.limit = limit
}

// setLimit sets the `limit` field of the `Redis` backend.
func (rb *Redis) setLimit(limit int) {
	rb.limit = limit
}

// Option is a function type that can be used to configure a result store.
type Option[T IBackendConstrain] func(*T)

// ApplyOptions applies the given options to the given backend.
func ApplyOptions[T IBackendConstrain](backend *T, options ...Option[T]) {
	for _, option := range options {
		option(backend)
	}
}

// WithLimit caps the number of results a store keeps. When the cap is reached
// the oldest result is dropped. Zero means unlimited.
func WithLimit[T IBackendConstrain](limit int) Option[T] {
	return func(a *T) {
		if configurable, ok := any(a).(iConfigurableBackend); ok {
			configurable.setLimit(limit)
		}
	}
}

// WithRedisClient is an option that sets the redis client to use. Both
// *redis.Client and *redis.ClusterClient are accepted.
func WithRedisClient(client redis.UniversalClient) Option[Redis] {
	return func(backend *Redis) {
		backend.rdb = client
	}
}

// WithKeyPrefix sets the prefix of the keys holding serialized results. On a
// cluster the prefix must carry the same hash tag as the index key.
func WithKeyPrefix(prefix string) Option[Redis] {
	return func(backend *Redis) {
		backend.keyPrefix = prefix
	}
}

// WithIndexKey sets the name of the sorted set indexing result ids. On a cluster
// it must carry the same hash tag as the key prefix, e.g. "bench:{lab1}".
func WithIndexKey(key string) Option[Redis] {
	return func(backend *Redis) {
		backend.indexKey = key
	}
}

// WithSerializer sets the serializer used to encode results.
func WithSerializer(ser serializer.ISerializer) Option[Redis] {
	return func(backend *Redis) {
		backend.Serializer = ser
	}
}
