package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateRange(t *testing.T) {
	now := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)

	t.Run("sem datas assume os últimos 7 dias", func(t *testing.T) {
		dateRange, err := NewDateRange(nil, nil, now)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, -7), dateRange.From)
		assert.Equal(t, now, dateRange.To)
	})

	t.Run("datas explícitas são expandidas para o dia inteiro", func(t *testing.T) {
		from := time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

		dateRange, err := NewDateRange(&from, &to, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), dateRange.From)
		assert.Equal(t, time.Date(2026, 8, 10, 23, 59, 59, 999_000_000, time.UTC), dateRange.To)
	})

	t.Run("intervalo invertido devolve erro", func(t *testing.T) {
		from := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

		_, err := NewDateRange(&from, &to, now)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}
