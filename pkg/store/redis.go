package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-redis/redis/v8"
)

// txMaxRetries bounds WATCH/EXEC retries when another client touches the
// watched key mid-transaction.
const txMaxRetries = 16

// RedisStore keeps every document under its slash-separated path as a plain
// redis key holding JSON. Child listing scans "path/*" and keeps the first
// segment after the prefix, so nested paths group the way a document tree
// would.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, path string, dest interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, path).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, wrapPathErr("get", path, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, wrapPathErr("decode", path, err)
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, path string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return wrapPathErr("encode", path, err)
	}
	if err := s.client.Set(ctx, path, raw, 0).Err(); err != nil {
		return wrapPathErr("set", path, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, path string) error {
	keys, err := s.scan(ctx, path+"/*")
	if err != nil {
		return wrapPathErr("remove", path, err)
	}
	keys = append(keys, path)
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return wrapPathErr("remove", path, err)
	}
	return nil
}

func (s *RedisStore) Children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	prefix := path + "/"
	keys, err := s.scan(ctx, prefix+"*")
	if err != nil {
		return nil, wrapPathErr("children", path, err)
	}

	children := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		rest := strings.TrimPrefix(key, prefix)
		// Only direct children; deeper paths belong to nested documents.
		if strings.Contains(rest, "/") {
			continue
		}
		raw, err := s.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, wrapPathErr("children", key, err)
		}
		children[rest] = json.RawMessage(raw)
	}
	return children, nil
}

func (s *RedisStore) ChildSegments(ctx context.Context, path string) ([]string, error) {
	prefix := path + "/"
	keys, err := s.scan(ctx, prefix+"*")
	if err != nil {
		return nil, wrapPathErr("children", path, err)
	}

	seen := make(map[string]bool)
	var segments []string
	for _, key := range keys {
		rest := strings.TrimPrefix(key, prefix)
		if i := strings.Index(rest, "/"); i >= 0 {
			rest = rest[:i]
		}
		if !seen[rest] {
			seen[rest] = true
			segments = append(segments, rest)
		}
	}
	return segments, nil
}

func (s *RedisStore) Transaction(ctx context.Context, path string, update UpdateFunc) (bool, error) {
	committed := false

	txn := func(tx *redis.Tx) error {
		var current json.RawMessage
		raw, err := tx.Get(ctx, path).Bytes()
		if err != nil && err != redis.Nil {
			return err
		}
		if err == nil {
			current = json.RawMessage(raw)
		}

		value, commit := update(current)
		if !commit {
			committed = false
			return nil
		}

		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, path, encoded, 0)
			return nil
		})
		if err == nil {
			committed = true
		}
		return err
	}

	for i := 0; i < txMaxRetries; i++ {
		err := s.client.Watch(ctx, txn, path)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return false, wrapPathErr("transaction", path, err)
		}
		return committed, nil
	}
	return false, wrapPathErr("transaction", path, ErrTooMuchContention)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}
