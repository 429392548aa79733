package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sbdiallo/bizstock/internal/auth"
	"github.com/sbdiallo/bizstock/internal/domain/models"
	"github.com/sbdiallo/bizstock/internal/errs"
)

const sessionKeyPrefix = "session:"

// RedisManager stores session records in redis with a TTL, so sessions
// survive process restarts and are shared across replicas.
type RedisManager struct {
	rdb    *redis.Client
	secret string
	ttl    time.Duration
}

// NewRedisManager connects a session manager to redis.
func NewRedisManager(addr, password string, db int, secret string, ttl time.Duration) (*RedisManager, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisManager{rdb: rdb, secret: secret, ttl: ttl}, nil
}

func (m *RedisManager) Create(ctx context.Context, tenant models.Tenant) (string, error) {
	sid := uuid.NewString()

	token, err := auth.GenerateToken(sid, tenant.Username, m.secret, m.ttl)
	if err != nil {
		return "", err
	}

	b, err := json.Marshal(tenant)
	if err != nil {
		return "", err
	}
	if err := m.rdb.Set(ctx, sessionKeyPrefix+sid, b, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

func (m *RedisManager) Get(ctx context.Context, token string) (*models.Tenant, error) {
	claims, err := auth.ParseToken(token, m.secret)
	if err != nil {
		return nil, errs.ErrNoSession
	}

	val, err := m.rdb.Get(ctx, sessionKeyPrefix+claims.SessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, errs.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var tenant models.Tenant
	if err := json.Unmarshal([]byte(val), &tenant); err != nil {
		return nil, errs.ErrNoSession
	}
	return &tenant, nil
}

func (m *RedisManager) Clear(ctx context.Context, token string) error {
	claims, err := auth.ParseToken(token, m.secret)
	if err != nil {
		return errs.ErrNoSession
	}
	return m.rdb.Del(ctx, sessionKeyPrefix+claims.SessionID).Err()
}

// Close releases the redis connection.
func (m *RedisManager) Close() error {
	return m.rdb.Close()
}
