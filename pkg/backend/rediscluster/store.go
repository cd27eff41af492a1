package rediscluster

import (
	"context"
	"net"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/redis/go-redis/v9"

	"github.com/hyp3rd/jitterbench/internal/constants"
	"github.com/hyp3rd/jitterbench/internal/sentinel"
)

// Store owns the cluster client used by the result store.
type Store struct {
	Client *redis.ClusterClient
}

// New builds a cluster client from the package defaults overlaid with opts.
// At least one non-empty seed address is required.
func New(opts ...Option) (*Store, error) {
	opt := &redis.ClusterOptions{
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Timeout: constants.RedisDialTimeout}

			return dialer.DialContext(ctx, network, addr)
		},
		MaxRetries:   constants.RedisClientMaxRetries,
		ReadTimeout:  constants.RedisClientReadTimeout,
		WriteTimeout: constants.RedisClientWriteTimeout,
		PoolSize:     constants.RedisClientPoolSize,
		MinIdleConns: constants.RedisClientMinIdleConns,
		PoolTimeout:  constants.RedisClientPoolTimeout,
	}

	ApplyOptions(opt, opts...)

	if len(opt.Addrs) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "redis cluster addrs")
	}

	for _, addr := range opt.Addrs {
		if strings.TrimSpace(addr) == "" {
			return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "redis cluster address")
		}
	}

	return &Store{Client: redis.NewClusterClient(opt)}, nil
}

// Ping checks that every master answers.
func (s *Store) Ping(ctx context.Context) error {
	err := s.Client.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
		return node.Ping(ctx).Err()
	})
	if err != nil {
		return ewrap.Wrap(err, "pinging redis cluster")
	}

	return nil
}

// Close releases the client connections.
func (s *Store) Close() error {
	return s.Client.Close()
}
