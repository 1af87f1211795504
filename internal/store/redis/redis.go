// Package redis keeps the rate prompt record in a Redis hash, one hash per
// namespace. It suits hosts that share prompt state between machines.
package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/maloquacious/apprater/internal/logger"
	"github.com/maloquacious/apprater/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

const defaultTimeout = 2 * time.Second

// Store implements store.Settings with HGET/HSET on a single hash.
type Store struct {
	rdb     goredis.UniversalClient
	prefix  string
	key     string
	timeout time.Duration
	log     logger.Logger
}

var _ store.Settings = (*Store)(nil)

type Option func(*Store)

// WithTimeout bounds every Redis round trip.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// WithKeyPrefix changes the prefix of the hash key (default "apprater:").
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New returns the record stored under the namespace hash.
func New(rdb goredis.UniversalClient, namespace string, log logger.Logger, opts ...Option) *Store {
	if log == nil {
		log = logger.Default
	}
	s := &Store{
		rdb:     rdb,
		prefix:  "apprater:",
		timeout: defaultTimeout,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.key = s.prefix + namespace
	return s
}

// Key returns the hash key holding the record.
func (s *Store) Key() string { return s.key }

func (s *Store) FirstLaunchDate() int64 {
	v, ok := s.get(store.KeyFirstLaunchDate)
	if !ok {
		return store.NotSet
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		s.log.Error("redis: bad %s value %q: %v", store.KeyFirstLaunchDate, v, err)
		return store.NotSet
	}
	return ms
}

func (s *Store) SetFirstLaunchDate(ms int64) {
	s.set(store.KeyFirstLaunchDate, strconv.FormatInt(ms, 10))
}

func (s *Store) LaunchCount() int {
	v, ok := s.get(store.KeyLaunchCount)
	if !ok {
		return store.NotSet
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		s.log.Error("redis: bad %s value %q: %v", store.KeyLaunchCount, v, err)
		return store.NotSet
	}
	return n
}

func (s *Store) SetLaunchCount(n int) {
	s.set(store.KeyLaunchCount, strconv.Itoa(n))
}

func (s *Store) DoNotShowAgain() bool {
	v, ok := s.get(store.KeyDoNotShowAgain)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		s.log.Error("redis: bad %s value %q: %v", store.KeyDoNotShowAgain, v, err)
		return false
	}
	return b
}

func (s *Store) SetDoNotShowAgain(v bool) {
	s.set(store.KeyDoNotShowAgain, strconv.FormatBool(v))
}

func (s *Store) get(field string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	v, err := s.rdb.HGet(ctx, s.key, field).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false
	}
	if err != nil {
		s.log.Error("redis: hget %s %s: %v", s.key, field, err)
		return "", false
	}
	return v, true
}

func (s *Store) set(field, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.rdb.HSet(ctx, s.key, field, value).Err(); err != nil {
		s.log.Error("redis: hset %s %s: %v", s.key, field, err)
		return
	}
	s.log.Debug("redis: %s %s = %s", s.key, field, value)
}
