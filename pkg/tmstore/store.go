package tmstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/jsonloc/pkg/logger"
	"github.com/dmitrymomot/jsonloc/pkg/resource"
)

// DefaultPrefix namespaces snapshot keys when no prefix is configured.
const DefaultPrefix = "jsonloc"

// Client is the subset of the go-redis API used by Store.
// *redis.Client and *redis.ClusterClient satisfy it.
type Client interface {
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store saves and loads translation snapshots.
type Store struct {
	client Client
	prefix string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix. Empty values are ignored.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store backed by client.
func New(client Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the Redis key of the snapshot name.
func (s *Store) Key(name string) string {
	return s.prefix + ":" + name
}

// Save replaces the snapshot name with the records of set.
// Saving an empty set removes the snapshot.
func (s *Store) Save(ctx context.Context, name string, set *resource.Set) error {
	key := s.Key(name)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return errors.Join(ErrSaveSnapshot, err)
	}

	records := set.All()
	if len(records) == 0 {
		return nil
	}

	fields := make(map[string]any, len(records))
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return errors.Join(ErrSaveSnapshot, err)
		}
		fields[r.HashKey()] = string(data)
	}

	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return errors.Join(ErrSaveSnapshot, err)
	}

	s.logger.InfoContext(ctx, "translation snapshot saved",
		slog.String("key", key),
		logger.Count(len(fields)),
	)
	return nil
}

// Load reads the snapshot name into a new set for sourceLocale. Records are
// added in hash key order. A missing snapshot yields an empty set.
func (s *Store) Load(ctx context.Context, name, sourceLocale string) (*resource.Set, error) {
	key := s.Key(name)
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, errors.Join(ErrLoadSnapshot, err)
	}

	hashes := make([]string, 0, len(fields))
	for h := range fields {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	set := resource.NewSet(sourceLocale)
	for _, h := range hashes {
		var r resource.Resource
		if err := json.Unmarshal([]byte(fields[h]), &r); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, h, err)
		}
		set.Add(r)
	}

	s.logger.DebugContext(ctx, "translation snapshot loaded",
		slog.String("key", key),
		logger.Count(set.Size()),
	)
	return set, nil
}

// Delete removes the snapshot name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.Key(name)).Err(); err != nil {
		return errors.Join(ErrSaveSnapshot, err)
	}
	return nil
}
