// Package redis builds the go-redis client used by the Redis result store.
// It includes functional options for configuring redis.Options.
package redis

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option mutates the redis.Options a Store is built from.
type Option func(*redis.Options)

// ApplyOptions applies the given options in order.
func ApplyOptions(opt *redis.Options, options ...Option) {
	for _, option := range options {
		option(opt)
	}
}

// WithAddr sets the server address. A value starting with redis:// or
// rediss:// is parsed as a URL and may also carry credentials and a database.
func WithAddr(addr string) Option {
	return func(opt *redis.Options) {
		if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
			parsed, err := redis.ParseURL(addr)
			if err == nil {
				opt.Addr = parsed.Addr
				opt.Username = parsed.Username
				opt.Password = parsed.Password
				opt.DB = parsed.DB
				opt.TLSConfig = parsed.TLSConfig

				return
			}
		}

		opt.Addr = addr
	}
}

// WithPassword sets the password used by AUTH.
func WithPassword(password string) Option {
	return func(opt *redis.Options) {
		opt.Password = password
	}
}

// WithDB selects the logical database.
func WithDB(db int) Option {
	return func(opt *redis.Options) {
		opt.DB = db
	}
}

// WithDialTimeout sets the dial timeout.
func WithDialTimeout(dialTimeout time.Duration) Option {
	return func(opt *redis.Options) {
		opt.DialTimeout = dialTimeout
	}
}

// WithReadTimeout sets the socket read timeout.
func WithReadTimeout(readTimeout time.Duration) Option {
	return func(opt *redis.Options) {
		opt.ReadTimeout = readTimeout
	}
}

// WithWriteTimeout sets the socket write timeout.
func WithWriteTimeout(writeTimeout time.Duration) Option {
	return func(opt *redis.Options) {
		opt.WriteTimeout = writeTimeout
	}
}

// WithPoolSize sets the maximum number of socket connections.
func WithPoolSize(poolSize int) Option {
	return func(opt *redis.Options) {
		opt.PoolSize = poolSize
	}
}

// WithTLSConfig enables TLS with the given configuration.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(opt *redis.Options) {
		opt.TLSConfig = tlsConfig
	}
}
