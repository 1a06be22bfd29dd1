package trending

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockbrief/membership/pkg/config"
)

func TestNormalizeSymbol(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"aapl", "AAPL"},
		{"$TSLA", "TSLA"},
		{"  msft ", "MSFT"},
		{"BRK.B", "BRK.B"},
		{"", ""},
		{"$", ""},
		{"GOOG1", ""},
		{"TOO-LONG-SYMBOL", ""},
		{"ABCDEFGHIJK", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizeSymbol(tc.in), "input %q", tc.in)
	}
}

func newCacheService(t *testing.T, ttlSeconds int) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Trending.CacheTTLSeconds = ttlSeconds
	return NewService(cfg, nil, client, zap.NewNop().Sugar()), mr
}

func TestCacheRoundTrip(t *testing.T) {
	svc, _ := newCacheService(t, 60)
	ctx := context.Background()

	_, ok := svc.CacheGet(ctx, "trending:24h:10")
	require.False(t, ok, "empty cache must miss")

	counts := []*TickerCount{
		{Symbol: "AAPL", Mentions: 12},
		{Symbol: "TSLA", Mentions: 7},
	}
	svc.CacheSet(ctx, "trending:24h:10", counts)

	got, ok := svc.CacheGet(ctx, "trending:24h:10")
	require.True(t, ok)
	require.Equal(t, counts, got)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	svc, mr := newCacheService(t, 30)
	ctx := context.Background()

	svc.CacheSet(ctx, "trending:1h:5", []*TickerCount{{Symbol: "NVDA", Mentions: 3}})
	mr.FastForward(31 * time.Second)

	_, ok := svc.CacheGet(ctx, "trending:1h:5")
	require.False(t, ok)
}

func TestCacheGet_CorruptPayloadIsAMiss(t *testing.T) {
	svc, mr := newCacheService(t, 60)
	require.NoError(t, mr.Set("trending:24h:10", "{not json"))

	_, ok := svc.CacheGet(context.Background(), "trending:24h:10")
	require.False(t, ok)
}
