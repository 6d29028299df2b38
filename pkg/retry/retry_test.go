package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type rateLimitErr struct{}

func (rateLimitErr) Error() string     { return "rate limit exceeded" }
func (rateLimitErr) RateLimited() bool { return true }

func TestDoWithPolicy_SucceedsFirstTry(t *testing.T) {
	calls := 0

	result, err := DoWithPolicy(context.Background(), func(context.Context) (string, error) {
		calls++
		return "ok", nil
	}, 3, time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestDoWithPolicy_RecoversAfterFailures(t *testing.T) {
	calls := 0

	result, err := DoWithPolicy(context.Background(), func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("falha transitória")
		}
		return 42, nil
	}, 3, time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, calls)
}

func TestDoWithPolicy_ExhaustsAttempts(t *testing.T) {
	calls := 0
	lastErr := errors.New("sempre falha")

	_, err := DoWithPolicy(context.Background(), func(context.Context) (int, error) {
		calls++
		return 0, fmt.Errorf("tentativa %d: %w", calls, lastErr)
	}, 3, time.Millisecond)

	assert.Error(t, err)
	assert.ErrorIs(t, err, lastErr)
	assert.Equal(t, 3, calls)
	// O erro devolvido é o da última tentativa
	assert.Contains(t, err.Error(), "tentativa 3")
}

func TestDoWithPolicy_RateLimitedDoublesDelay(t *testing.T) {
	base := 10 * time.Millisecond
	calls := 0

	started := time.Now()
	_, err := DoWithPolicy(context.Background(), func(context.Context) (int, error) {
		calls++
		return 0, rateLimitErr{}
	}, 2, base)
	elapsed := time.Since(started)

	assert.Error(t, err)
	assert.Equal(t, 2, calls)
	// Uma espera de base×1×2 entre as duas tentativas
	assert.GreaterOrEqual(t, elapsed, 2*base)
}

func TestDoWithPolicy_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	calls := 0
	_, err := DoWithPolicy(ctx, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("falha")
	}, 3, time.Second)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, calls)
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(rateLimitErr{}))
	assert.True(t, IsRateLimited(fmt.Errorf("embrulhado: %w", rateLimitErr{})))
	assert.False(t, IsRateLimited(errors.New("qualquer outro erro")))
	assert.False(t, IsRateLimited(nil))
}
