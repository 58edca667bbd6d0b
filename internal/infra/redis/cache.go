package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/kmazurek/saldo/internal/platform/ledger"
	"github.com/kmazurek/saldo/pkg/logger"
)

const (
	// DefaultTTL bounds summary staleness if an invalidation is ever missed
	DefaultTTL = 60 * time.Second

	// KeyPrefix is the prefix for summary cache keys
	KeyPrefix = "summary:"
)

// SummaryCache is a Redis-backed cache for per-user dashboard summaries.
// The ledger service invalidates a user's entry on every balance mutation.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewSummaryCache creates a new summary cache with the default TTL
func NewSummaryCache(client *redis.Client, log *logger.Logger) *SummaryCache {
	return NewSummaryCacheWithTTL(client, DefaultTTL, log)
}

// NewSummaryCacheWithTTL creates a new summary cache with a custom TTL
func NewSummaryCacheWithTTL(client *redis.Client, ttl time.Duration, log *logger.Logger) *SummaryCache {
	return &SummaryCache{
		client: client,
		ttl:    ttl,
		logger: log.WithField("component", "summary_cache"),
	}
}

// cachedSummary is the stored representation; amounts serialize as strings
// to keep the fixed-point values exact.
type cachedSummary struct {
	Income    string    `json:"income"`
	Expense   string    `json:"expense"`
	Net       string    `json:"net"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get retrieves a cached summary for a user
func (c *SummaryCache) Get(ctx context.Context, userID uuid.UUID) (*ledger.Summary, bool, error) {
	val, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		c.logger.Debug("cache miss", "user_id", userID)
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("cache error", "operation", "get", "user_id", userID, "error", err)
		return nil, false, fmt.Errorf("failed to get cached summary: %w", err)
	}

	var cached cachedSummary
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached summary: %w", err)
	}

	summary, err := cached.toSummary()
	if err != nil {
		return nil, false, err
	}

	c.logger.Debug("cache hit", "user_id", userID)
	return summary, true, nil
}

// Set stores a user's summary
func (c *SummaryCache) Set(ctx context.Context, userID uuid.UUID, s ledger.Summary) error {
	cached := cachedSummary{
		Income:    s.Income.String(),
		Expense:   s.Expense.String(),
		Net:       s.Net.String(),
		UpdatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := c.client.Set(ctx, c.key(userID), data, c.ttl).Err(); err != nil {
		c.logger.Error("cache error", "operation", "set", "user_id", userID, "error", err)
		return fmt.Errorf("failed to set cached summary: %w", err)
	}

	return nil
}

// Invalidate drops a user's cached summary
func (c *SummaryCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		c.logger.Error("cache error", "operation", "invalidate", "user_id", userID, "error", err)
		return fmt.Errorf("failed to invalidate cached summary: %w", err)
	}

	return nil
}

func (c *SummaryCache) key(userID uuid.UUID) string {
	return KeyPrefix + userID.String()
}

func (s cachedSummary) toSummary() (*ledger.Summary, error) {
	income, err := decimalFromString(s.Income)
	if err != nil {
		return nil, err
	}

	expense, err := decimalFromString(s.Expense)
	if err != nil {
		return nil, err
	}

	net, err := decimalFromString(s.Net)
	if err != nil {
		return nil, err
	}

	return &ledger.Summary{Income: income, Expense: expense, Net: net}, nil
}

func decimalFromString(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("corrupt cached amount %q: %w", s, err)
	}
	return d, nil
}
