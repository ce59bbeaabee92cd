// Package redis is the Redis record store. Documents are JSON strings; each
// collection keeps a sorted set index that yields the listing order directly.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/lazyconn"
	"github.com/naitik09090/backend-games/internal/logger"
	redisconn "github.com/naitik09090/backend-games/internal/redis"
	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for games and users.
// The client is dialled on first use.
type Store struct {
	conn   *lazyconn.Conn[*redis.Client]
	opts   redisconn.ConnectOptions
	logger logger.Logger
}

// New creates a Redis store. Nothing is dialled until the first operation;
// connectTimeout bounds each dial attempt.
func New(opts redisconn.ConnectOptions, connectTimeout time.Duration, log logger.Logger) *Store {
	s := &Store{opts: opts, logger: log}
	s.conn = lazyconn.New(func(ctx context.Context) (*redis.Client, error) {
		return redisconn.Connect(ctx, opts, log)
	}, connectTimeout)
	return s
}

func (s *Store) client(ctx context.Context) (*redis.Client, error) {
	c, err := s.conn.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}
	return c, nil
}

func (s *Store) Local() domain.LocalGameStore {
	return localStore{collection{s: s, prefix: KeyPrefixLocal, index: KeyLocalIndex}}
}

func (s *Store) Catalog() domain.CatalogGameStore {
	return catalogStore{collection{s: s, prefix: KeyPrefixCatalog, index: KeyCatalogIndex}}
}

func (s *Store) Users() domain.UserStore { return userStore{s} }

func (s *Store) Backend() string { return "redis" }

// Ping dials if needed and checks the server answers.
func (s *Store) Ping(ctx context.Context) error {
	c, err := s.client(ctx)
	if err != nil {
		return err
	}
	return c.Ping(ctx).Err()
}

func (s *Store) Describe(ctx context.Context) (domain.StoreInfo, error) {
	info := domain.StoreInfo{
		Backend:     "redis",
		Collections: []string{KeyLocalIndex, KeyCatalogIndex, KeyUsers},
	}
	ro, err := s.opts.Options()
	if err != nil {
		return info, err
	}
	info.Target = ro.Addr
	info.Database = strconv.Itoa(ro.DB)
	_, info.Connected = s.conn.Peek()
	return info, nil
}

// Close releases the client if one was dialled.
func (s *Store) Close(ctx context.Context) error {
	if c, ok := s.conn.Reset(); ok {
		return c.Close()
	}
	return nil
}

// entry is one document ready to be written.
type entry struct {
	id    string
	score float64
	data  []byte
}

// collection is a set of JSON documents under prefix, indexed by a sorted set.
type collection struct {
	s      *Store
	prefix string
	index  string
}

func (c collection) key(id string) string { return c.prefix + id }

// insert writes entries without overwriting. A batch holding an ID that
// already exists, or the same ID twice, is rejected with ErrDuplicate before
// anything is written. SETNX still guards against a concurrent writer
// between the check and the transaction.
func (c collection) insert(ctx context.Context, entries []entry) error {
	if len(entries) == 0 {
		return nil
	}
	client, err := c.s.client(ctx)
	if err != nil {
		return err
	}

	keys := make([]string, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if _, dup := seen[e.id]; dup {
			return domain.ErrDuplicate
		}
		seen[e.id] = struct{}{}
		keys[i] = c.key(e.id)
	}
	existing, err := client.Exists(ctx, keys...).Result()
	if err != nil {
		return fmt.Errorf("failed to check documents: %w", err)
	}
	if existing > 0 {
		return domain.ErrDuplicate
	}

	pipe := client.TxPipeline()
	set := make([]*redis.BoolCmd, len(entries))
	for i, e := range entries {
		set[i] = pipe.SetNX(ctx, keys[i], e.data, 0)
		pipe.ZAddNX(ctx, c.index, redis.Z{Score: e.score, Member: e.id})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert documents: %w", err)
	}
	for _, cmd := range set {
		if !cmd.Val() {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (c collection) get(ctx context.Context, id string) ([]byte, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	client, err := c.s.client(ctx)
	if err != nil {
		return nil, err
	}
	data, err := client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return data, nil
}

// list returns documents in descending index order.
func (c collection) list(ctx context.Context, skip, limit int) ([][]byte, error) {
	if limit <= 0 {
		return nil, nil
	}
	client, err := c.s.client(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := client.ZRevRange(ctx, c.index, int64(skip), int64(skip+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	return c.fetch(ctx, client, ids)
}

func (c collection) fetch(ctx context.Context, client *redis.Client, ids []string) ([][]byte, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.key(id)
	}
	vals, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}

	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		// Index entries whose document vanished are skipped
		if s, ok := v.(string); ok {
			out = append(out, []byte(s))
		}
	}
	return out, nil
}

func (c collection) count(ctx context.Context) (int, error) {
	client, err := c.s.client(ctx)
	if err != nil {
		return 0, err
	}
	n, err := client.ZCard(ctx, c.index).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return int(n), nil
}

// replace overwrites an existing document. Returns ErrNotFound if absent.
func (c collection) replace(ctx context.Context, e entry) error {
	if !domain.ValidID(e.id) {
		return domain.ErrNotFound
	}
	client, err := c.s.client(ctx)
	if err != nil {
		return err
	}
	ok, err := client.SetXX(ctx, c.key(e.id), e.data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	if err := client.ZAdd(ctx, c.index, redis.Z{Score: e.score, Member: e.id}).Err(); err != nil {
		return fmt.Errorf("failed to update index: %w", err)
	}
	return nil
}

func (c collection) remove(ctx context.Context, ids ...string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	client, err := c.s.client(ctx)
	if err != nil {
		return 0, err
	}
	keys := make([]string, len(ids))
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		keys[i] = c.key(id)
		members[i] = id
	}

	pipe := client.Pipeline()
	del := pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, c.index, members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to delete documents: %w", err)
	}
	return int(del.Val()), nil
}

// all returns every document in index order.
func (c collection) all(ctx context.Context) ([][]byte, error) {
	client, err := c.s.client(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := client.ZRevRange(ctx, c.index, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	return c.fetch(ctx, client, ids)
}
