package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/platform/obs"
	"run-tracker-service/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "run-tracker:session:"

type sessionRecord struct {
	UserID    int64 `json:"user_id"`
	ExpiresAt int64 `json:"expires_at"`
}

// RedisSessionStore keeps sessions as JSON values whose Redis TTL matches the
// session expiry, so expired sessions disappear without a sweeper.
type RedisSessionStore struct {
	Client *redis.Client
	now    func() time.Time
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client, now: time.Now}
}

// Open a client from a redis:// URL and verify it answers PING.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}
	return client, nil
}

func (s *RedisSessionStore) SaveSession(ctx context.Context, sess domain.Session) (err error) {
	defer obs.Time(ctx, "sessions.redis.save")(&err)

	if s.Client == nil {
		return errors.New("redis session store: client is nil")
	}

	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.DeleteSession(ctx, sess.Token)
	}

	payload, err := json.Marshal(sessionRecord{UserID: sess.UserID, ExpiresAt: sess.ExpiresAt.UnixMilli()})
	if err != nil {
		return fmt.Errorf("save session: encode: %w", err)
	}

	if err := s.Client.Set(ctx, keyPrefix+sess.Token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session user_id=%d: %w", sess.UserID, err)
	}
	return nil
}

func (s *RedisSessionStore) GetSession(ctx context.Context, token string) (_ *domain.Session, err error) {
	defer obs.Time(ctx, "sessions.redis.get")(&err)

	if s.Client == nil {
		return nil, errors.New("redis session store: client is nil")
	}

	raw, err := s.Client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get session: %w", ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("get session: decode: %w", err)
	}

	return &domain.Session{
		Token:     token,
		UserID:    rec.UserID,
		ExpiresAt: time.UnixMilli(rec.ExpiresAt).UTC(),
	}, nil
}

func (s *RedisSessionStore) DeleteSession(ctx context.Context, token string) (err error) {
	defer obs.Time(ctx, "sessions.redis.delete")(&err)

	if s.Client == nil {
		return errors.New("redis session store: client is nil")
	}

	if err := s.Client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

var _ ports.SessionStore = (*RedisSessionStore)(nil)
