package web

import (
	"fmt"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/la-rentals/fleet/internal/importer"
	"github.com/la-rentals/fleet/internal/store"
)

func TestParseDateRange(t *testing.T) {
	t.Run("explicit range", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/reports/abc/csv?from=2025-01-01&to=2025-06-30", nil)
		from, to, err := parseDateRange(r)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("defaults to last twelve months", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/reports/abc/csv", nil)
		from, to, err := parseDateRange(r)
		require.NoError(t, err)
		assert.True(t, from.Before(to))
		assert.InDelta(t, 365, to.Sub(from).Hours()/24, 2)
	})

	t.Run("invalid from", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/reports/abc/csv?from=31-01-2025", nil)
		_, _, err := parseDateRange(r)
		assert.ErrorIs(t, err, errBadRequest)
	})

	t.Run("reversed range", func(t *testing.T) {
		q := url.Values{"from": {"2025-06-30"}, "to": {"2025-01-01"}}
		r := httptest.NewRequest("GET", "/api/reports/abc/csv?"+q.Encode(), nil)
		_, _, err := parseDateRange(r)
		assert.ErrorIs(t, err, errBadRequest)
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("scooter x: %w", store.ErrNotFound), 404},
		{fmt.Errorf("category y: %w", store.ErrCategoryNotEmpty), 409},
		{fmt.Errorf("%w: service date", importer.ErrMissingColumns), 422},
		{fmt.Errorf("%w: bad input", errBadRequest), 400},
		{fmt.Errorf("boom"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err))
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("10.0.0.1"), "request %d should pass", i)
	}
	assert.False(t, rl.allow("10.0.0.1"), "fourth request should be limited")

	// other clients have their own bucket
	assert.True(t, rl.allow("10.0.0.2"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := newRateLimiter(1, 10*time.Millisecond)

	require.True(t, rl.allow("10.0.0.1"))
	require.False(t, rl.allow("10.0.0.1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.allow("10.0.0.1"))
}
