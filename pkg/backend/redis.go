package backend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/redis/go-redis/v9"

	"github.com/hyp3rd/jitterbench/internal/constants"
	"github.com/hyp3rd/jitterbench/internal/libs/serializer"
	"github.com/hyp3rd/jitterbench/internal/sentinel"
	"github.com/hyp3rd/jitterbench/types"
)

const (
	maxRetries   = 3
	retriesDelay = 100 * time.Millisecond
)

// Redis is a result store backed by a redis server or cluster. Each result is
// kept as a serialized blob under keyPrefix+ID; ids are indexed in a sorted set
// scored by the result start time.
type Redis struct {
	rdb        redis.UniversalClient  // single node or cluster client
	keyPrefix  string                 // prefix of the keys holding serialized results
	indexKey   string                 // sorted set of result ids
	limit      int                    // maximum number of results kept, 0 for unlimited
	Serializer serializer.ISerializer // Serializer encodes results before storing them
}

// NewRedis creates a new redis store with the given options.
func NewRedis(redisOptions ...Option[Redis]) (*Redis, error) {
	rb := &Redis{}
	// Apply the backend options
	ApplyOptions(rb, redisOptions...)

	if rb.rdb == nil {
		return nil, sentinel.ErrNilClient
	}

	if rb.limit < 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfig, "limit %d", rb.limit)
	}

	if rb.keyPrefix == "" {
		rb.keyPrefix = constants.RedisKeyPrefix
	}

	if rb.indexKey == "" {
		rb.indexKey = constants.RedisIndexKey
	}

	// Put and trim touch a result key and the index in one transaction.
	_, isCluster := rb.rdb.(*redis.ClusterClient)
	if isCluster && (hashTag(rb.keyPrefix) == "" || hashTag(rb.keyPrefix) != hashTag(rb.indexKey)) {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfig,
			"cluster keys %q and %q must share a hash tag", rb.keyPrefix, rb.indexKey)
	}

	if rb.Serializer == nil {
		var err error

		rb.Serializer, err = serializer.New(constants.DefaultRedisSerializer)
		if err != nil {
			return nil, err
		}
	}

	return rb, nil
}

// hashTag returns the part of key between the first '{' and the next '}', the
// only part redis cluster hashes. It is empty when there is none.
func hashTag(key string) string {
	_, after, ok := strings.Cut(key, "{")
	if !ok {
		return ""
	}

	tag, _, ok := strings.Cut(after, "}")
	if !ok {
		return ""
	}

	return tag
}

func (store *Redis) key(id string) string {
	return store.keyPrefix + id
}

// Put serializes the result and indexes its ID in one transaction.
func (store *Redis) Put(ctx context.Context, result *types.Result) error {
	if result == nil || result.ID == "" {
		return ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "result id")
	}

	data, err := store.Serializer.Marshal(result)
	if err != nil {
		return ewrap.Wrap(err, "serializing result")
	}

	pipe := store.rdb.TxPipeline()
	pipe.Set(ctx, store.key(result.ID), data, 0)
	pipe.ZAdd(ctx, store.indexKey, redis.Z{
		Score:  float64(result.StartedAt.UnixNano()),
		Member: result.ID,
	})

	_, err = pipe.Exec(ctx)
	if err != nil {
		return ewrap.Wrap(err, "failed to execute redis pipeline")
	}

	if store.limit > 0 {
		return store.trim(ctx)
	}

	return nil
}

// trim drops the oldest results beyond the limit.
func (store *Redis) trim(ctx context.Context) error {
	stale, err := store.rdb.ZRange(ctx, store.indexKey, 0, int64(-store.limit-1)).Result()
	if err != nil {
		return ewrap.Wrap(err, "reading result index")
	}

	if len(stale) == 0 {
		return nil
	}

	_, err = store.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range stale {
			pipe.Del(ctx, store.key(id))
			pipe.ZRem(ctx, store.indexKey, id)
		}

		return nil
	})
	if err != nil {
		return ewrap.Wrap(err, "trimming results")
	}

	return nil
}

// Get fetches and decodes the result with the given ID.
func (store *Redis) Get(ctx context.Context, id string) (*types.Result, error) {
	data, err := store.rdb.Get(ctx, store.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ewrap.Wrapf(sentinel.ErrResultNotFound, "id %q", id)
		}

		return nil, ewrap.Wrap(err, "reading result")
	}

	result := &types.Result{}

	err = store.Serializer.Unmarshal(data, result)
	if err != nil {
		return nil, ewrap.Wrap(err, "decoding result")
	}

	return result, nil
}

// List returns all indexed results ordered by start time. Ids whose blob has
// gone missing are skipped.
func (store *Redis) List(ctx context.Context) ([]*types.Result, error) {
	ids, err := store.rdb.ZRange(ctx, store.indexKey, 0, -1).Result()
	if err != nil {
		return nil, ewrap.Wrap(err, "reading result index")
	}

	cmds, err := store.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Get(ctx, store.key(id))
		}

		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, ewrap.Wrap(err, "fetching results")
	}

	results := make([]*types.Result, 0, len(cmds))

	for _, cmd := range cmds {
		getCmd, ok := cmd.(*redis.StringCmd)
		if !ok {
			continue
		}

		data, err := getCmd.Bytes()
		if err != nil {
			continue
		}

		result := &types.Result{}

		err = store.Serializer.Unmarshal(data, result)
		if err != nil {
			return nil, ewrap.Wrap(err, "decoding result")
		}

		results = append(results, result)
	}

	return results, nil
}

// Clear removes every result written by this store and its index.
func (store *Redis) Clear(ctx context.Context) error {
	ids, err := store.rdb.ZRange(ctx, store.indexKey, 0, -1).Result()
	if err != nil {
		return ewrap.Wrap(err, "reading result index")
	}

	// one DEL per key: a cluster rejects multi-key commands across slots
	_, err = store.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Del(ctx, store.key(id))
		}

		pipe.Del(ctx, store.indexKey)

		return nil
	})
	if err != nil {
		return ewrap.Wrap(err, "clearing results", ewrap.WithRetry(maxRetries, retriesDelay))
	}

	return nil
}
