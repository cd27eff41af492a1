// Package rediscluster builds the go-redis cluster client used when results
// are stored in a Redis Cluster.
package rediscluster

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option mutates the redis.ClusterOptions a Store is built from.
type Option func(*redis.ClusterOptions)

// ApplyOptions applies the given options in order.
func ApplyOptions(opt *redis.ClusterOptions, options ...Option) {
	for _, option := range options {
		option(opt)
	}
}

// WithAddrs sets the seed nodes. Each value may itself be a comma separated
// list, as given on a command line.
func WithAddrs(addrs ...string) Option {
	return func(opt *redis.ClusterOptions) {
		opt.Addrs = opt.Addrs[:0]

		for _, addr := range addrs {
			for part := range strings.SplitSeq(addr, ",") {
				opt.Addrs = append(opt.Addrs, strings.TrimSpace(part))
			}
		}
	}
}

// WithPassword sets the password used by AUTH on every node.
func WithPassword(password string) Option {
	return func(opt *redis.ClusterOptions) {
		opt.Password = password
	}
}

// WithReadTimeout sets the socket read timeout.
func WithReadTimeout(readTimeout time.Duration) Option {
	return func(opt *redis.ClusterOptions) {
		opt.ReadTimeout = readTimeout
	}
}

// WithTLSConfig enables TLS with the given configuration.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(opt *redis.ClusterOptions) {
		opt.TLSConfig = tlsConfig
	}
}

// WithPoolSize sets the per-node connection pool size.
func WithPoolSize(size int) Option {
	return func(opt *redis.ClusterOptions) {
		opt.PoolSize = size
	}
}
