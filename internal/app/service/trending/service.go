package trending

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stockbrief/membership/internal/models"
	"github.com/stockbrief/membership/pkg/config"
	"github.com/stockbrief/membership/pkg/logctx"
	"github.com/stockbrief/membership/pkg/tool"
)

const (
	cacheKeyPrefix  = "trending"
	defaultLimit    = 10
	maxLimit        = 50
	maxSymbolLength = 10
)

type Service struct {
	cfg *config.Config
	db  *gorm.DB
	rdb *redis.Client
	log *zap.SugaredLogger
}

func NewService(cfg *config.Config, db *gorm.DB, rdb *redis.Client, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, db: db, rdb: rdb, log: log}
}

// TickerCount is one ranked symbol with its mention count for the window.
type TickerCount struct {
	Symbol   string `json:"symbol"`
	Mentions int64  `json:"mentions"`
}

// Trending returns the most-mentioned symbols within the window, serving
// from the redis cache when a fresh aggregate exists. Cache failures fall
// through to the database.
func (s *Service) Trending(ctx context.Context, windowHours, limit int) ([]*TickerCount, error) {
	if windowHours <= 0 {
		windowHours = s.cfg.Trending.DefaultWindowHours
	}
	if max := s.cfg.Trending.MaxWindowHours; max > 0 && windowHours > max {
		windowHours = max
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	key := fmt.Sprintf("%s:%dh:%d", cacheKeyPrefix, windowHours, limit)
	if counts, ok := s.CacheGet(ctx, key); ok {
		return counts, nil
	}

	since := time.Now().Add(-time.Duration(windowHours) * time.Hour)
	var counts []*TickerCount
	if err := s.db.WithContext(ctx).Model(&models.TickerMention{}).
		Select("symbol, count(*) as mentions").
		Where("mentioned_at > ?", since).
		Group("symbol").
		Order("mentions DESC, symbol ASC").
		Limit(limit).
		Find(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate mentions: %w", err)
	}

	s.CacheSet(ctx, key, counts)
	return counts, nil
}

// Record ingests the ticker symbols mentioned by one post. Symbols are
// normalized and de-duplicated; posts with no valid symbols are a no-op.
func (s *Service) Record(ctx context.Context, postID, userID string, symbols []string, at time.Time) (int, error) {
	if postID == "" || userID == "" {
		return 0, fmt.Errorf("missing post or user id")
	}
	if at.IsZero() {
		at = time.Now()
	}

	normalized := lo.Uniq(lo.FilterMap(symbols, func(raw string, _ int) (string, bool) {
		sym := NormalizeSymbol(raw)
		return sym, sym != ""
	}))
	if len(normalized) == 0 {
		return 0, nil
	}

	rows := lo.Map(normalized, func(sym string, _ int) *models.TickerMention {
		return &models.TickerMention{
			ID:          tool.GenerateUUIDV7(),
			Symbol:      sym,
			UserID:      userID,
			PostID:      postID,
			MentionedAt: at,
		}
	})
	if err := s.db.WithContext(ctx).Create(rows).Error; err != nil {
		return 0, fmt.Errorf("failed to record mentions: %w", err)
	}
	return len(rows), nil
}

// NormalizeSymbol upper-cases a ticker and strips the cashtag prefix.
// Anything non-alphabetic or implausibly long is rejected.
func NormalizeSymbol(raw string) string {
	sym := strings.ToUpper(strings.TrimSpace(raw))
	sym = strings.TrimPrefix(sym, "$")
	if sym == "" || len(sym) > maxSymbolLength {
		return ""
	}
	for _, r := range sym {
		if (r < 'A' || r > 'Z') && r != '.' {
			return ""
		}
	}
	return sym
}

// CacheGet loads a cached aggregate; any redis or decode error is a miss.
func (s *Service) CacheGet(ctx context.Context, key string) ([]*TickerCount, bool) {
	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logctx.FromCtx(ctx, s.log).Warnw("trending_cache_get_failed", "key", key, "err", err)
		}
		return nil, false
	}
	var counts []*TickerCount
	if err := json.Unmarshal(payload, &counts); err != nil {
		return nil, false
	}
	return counts, true
}

// CacheSet stores an aggregate with the configured TTL; failures are logged
// and ignored.
func (s *Service) CacheSet(ctx context.Context, key string, counts []*TickerCount) {
	payload, err := json.Marshal(counts)
	if err != nil {
		return
	}
	ttl := time.Duration(s.cfg.Trending.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := s.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("trending_cache_set_failed", "key", key, "err", err)
	}
}
