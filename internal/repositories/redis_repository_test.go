package repository_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitRepository_CheckRateLimit(t *testing.T) {
	now := time.Unix(1_700_000_100, 500)
	window := 60 * time.Second
	cfg := &config.Config{RateConfig: config.RateConfig{MaxAttempts: 3, WindowSize: window}}
	key := "rate_limit:coupon:user:42"
	member := strconv.FormatInt(now.UnixNano(), 10)

	expectPipeline := func(mock redismock.ClientMock, count int64) {
		mock.ExpectZRemRangeByScore(key, "0", "1700000040").SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now.Unix()), Member: member}).SetVal(1)
		mock.ExpectZCard(key).SetVal(count)
		mock.ExpectExpire(key, window).SetVal(true)
	}

	t.Run("Allowed within the window", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return now })
		expectPipeline(mock, 2)

		// Act
		allowed, remaining, retryAfter, err := repo.CheckRateLimit(t.Context(), "coupon:user:42")

		// Assert
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, remaining)
		assert.Zero(t, retryAfter)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Exceeded reports time until the oldest request leaves the window", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return now })
		expectPipeline(mock, 4)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: 1_700_000_070, Member: "x"}})

		// Act
		allowed, remaining, retryAfter, err := repo.CheckRateLimit(t.Context(), "coupon:user:42")

		// Assert
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		assert.Equal(t, 30, retryAfter)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Pipeline failure is returned", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return now })
		mock.ExpectZRemRangeByScore(key, "0", "1700000040").SetErr(errors.New("redis down"))

		// Act
		allowed, _, _, err := repo.CheckRateLimit(t.Context(), "coupon:user:42")

		// Assert
		require.Error(t, err)
		assert.False(t, allowed)
	})
}
