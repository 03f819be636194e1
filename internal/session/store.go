package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotFound means no record exists under the game id.
	ErrNotFound = errors.New("game session not found")
	// ErrAlreadyExists means a conditional create lost to an existing record.
	ErrAlreadyExists = errors.New("game session already exists")
	// ErrConflict means a concurrent write advanced the record between the
	// caller's read and its write.
	ErrConflict = errors.New("game session version conflict")
)

// Store persists sessions as JSON under game:<id> with a sliding TTL.
// Concurrency safety comes entirely from the store's conditional semantics:
// SetNX on create, WATCH plus an explicit version check on update.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// NewStoreFromURL dials Redis at redisURL and pings it before returning.
func NewStoreFromURL(redisURL string, ttl time.Duration) (*Store, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for session store")
	}
	opts, err := parseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewStore(rdb, ttl), nil
}

func (s *Store) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

// TTL returns the sliding expiry window.
func (s *Store) TTL() time.Duration { return s.ttl }

func gameKey(id string) string { return "game:" + strings.TrimSpace(id) }

// Create writes a brand-new session, failing with ErrAlreadyExists if the id
// is taken.
func (s *Store) Create(ctx context.Context, sess *GameSession) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ok, err := s.rdb.SetNX(ctx, gameKey(sess.GameID), raw, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("store create: %w", err)
	}
	if !ok {
		return ErrAlreadyExists
	}
	return nil
}

// Get loads a session by game id.
func (s *Store) Get(ctx context.Context, gameID string) (*GameSession, error) {
	raw, err := s.rdb.Get(ctx, gameKey(gameID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store get: %w", err)
	}
	var sess GameSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Update rewrites a previously read session. The write is guarded by WATCH
// on the game key and by comparing the stored version with the version the
// caller read, so two racing read-modify-write cycles cannot both win: the
// loser gets ErrConflict and the record stays append-only. The TTL is
// refreshed on success.
func (s *Store) Update(ctx context.Context, sess *GameSession) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	key := gameKey(sess.GameID)
	readVersion := sess.Version

	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var current GameSession
		if err := json.Unmarshal(raw, &current); err != nil {
			return fmt.Errorf("unmarshal session: %w", err)
		}
		if current.Version != readVersion {
			return ErrConflict
		}

		sess.Version = readVersion + 1
		out, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		pipe := tx.TxPipeline()
		pipe.Set(ctx, key, out, s.ttl)
		_, err = pipe.Exec(ctx)
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		sess.Version = readVersion
		return ErrConflict
	}
	if err != nil {
		if errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("store update: %w", err)
	}
	return nil
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}
