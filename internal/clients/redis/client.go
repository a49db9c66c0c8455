package redis

import (
	"context"
	"fmt"
	"realtime-bridge/internal/config"
	"realtime-bridge/internal/observability"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	presenceKey = "realtime:sessions"
	DefaultTTL  = 10 * time.Minute
)

// Client wraps the Redis client with observability
type Client struct {
	client *redis.Client
	logger *observability.Logger
	ttl    time.Duration
	now    func() time.Time
}

// NewClient creates a new Redis client. It returns nil when Redis is
// disabled; every method of a nil Client is a no-op.
func NewClient(cfg config.RedisConfig, logger *observability.Logger) (*Client, error) {
	if !cfg.Enabled {
		logger.Info(context.Background(), "Redis is disabled, skipping presence mirror")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "host", Value: cfg.Host},
		observability.Field{Key: "port", Value: cfg.Port},
		observability.Field{Key: "db", Value: cfg.DB},
	), "successfully connected to Redis")

	return newClient(client, logger), nil
}

func newClient(client *redis.Client, logger *observability.Logger) *Client {
	return &Client{
		client: client,
		logger: logger,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// MarkActive records a live session. The score is the expiry time so entries
// of crashed processes age out.
func (c *Client) MarkActive(ctx context.Context, sessionID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	expiresAt := c.now().Add(c.ttl).Unix()
	err := c.client.ZAdd(ctx, presenceKey, redis.Z{Score: float64(expiresAt), Member: sessionID}).Err()
	if err != nil {
		return fmt.Errorf("failed to mark session active: %w", err)
	}
	return nil
}

// ClearActive removes a session from the presence set.
func (c *Client) ClearActive(ctx context.Context, sessionID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.ZRem(ctx, presenceKey, sessionID).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// ActiveSessions prunes expired entries and lists the live session ids.
func (c *Client) ActiveSessions(ctx context.Context) ([]string, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	now := strconv.FormatInt(c.now().Unix(), 10)
	if err := c.client.ZRemRangeByScore(ctx, presenceKey, "-inf", "("+now).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune sessions: %w", err)
	}
	ids, err := c.client.ZRange(ctx, presenceKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// IsEnabled reports whether Redis is configured
func (c *Client) IsEnabled() bool {
	return c != nil && c.client != nil
}
