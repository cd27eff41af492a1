// Package constants defines default configuration values for the jitterbench system.
// It provides the standard measurement sizes, runtime tuning switches, and the
// settings used by the Redis result store.
package constants

import "time"

const (
	// DefaultIterations is the number of timed iterations in a sample set.
	DefaultIterations = 2000
	// DefaultWarmupIterations is the number of untimed iterations run before
	// measurement starts, to settle caches and branch predictors.
	DefaultWarmupIterations = 500
	// NoCPUPinning disables pinning the measuring thread to a logical CPU.
	NoCPUPinning = -1
	// DefaultRedisSerializer is the serializer used by the Redis result store.
	DefaultRedisSerializer = "msgpack"
	// ClockCheckPairs is the number of back-to-back clock reads checked at startup.
	ClockCheckPairs = 64
	// ClockOverheadRounds is the number of rounds used to estimate the clock read overhead.
	ClockOverheadRounds = 10000
)

const (
	// RedisKeyPrefix prefixes every key written by the Redis result store. The
	// {results} hash tag keeps result blobs in the same cluster slot as RedisIndexKey.
	RedisKeyPrefix = "jitterbench:{results}:"
	// RedisIndexKey is the sorted set holding result ids scored by start time.
	RedisIndexKey = "jitterbench:{results}"
	// RedisDialTimeout is the timeout for the Redis dialer.
	RedisDialTimeout = 10 * time.Second
	// RedisClientMaxRetries is the maximum number of retries for the Redis client.
	RedisClientMaxRetries = 10
	// RedisClientReadTimeout is the read timeout for the Redis client.
	RedisClientReadTimeout = 30 * time.Second
	// RedisClientWriteTimeout is the write timeout for the Redis client.
	RedisClientWriteTimeout = 30 * time.Second
	// RedisClientPoolTimeout is the pool timeout for the Redis client.
	RedisClientPoolTimeout = 30 * time.Second
	// RedisClientPoolSize is the pool size for the Redis client.
	RedisClientPoolSize = 20
	// RedisClientMinIdleConns is the minimum number of idle connections for the Redis client.
	RedisClientMinIdleConns = 10
)
