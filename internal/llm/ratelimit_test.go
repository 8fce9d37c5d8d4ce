package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsBurstUpToCapacity(t *testing.T) {
	rl := newRateLimiter(5)
	defer rl.Close()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.tryAcquire(), "token %d", i)
	}
	assert.False(t, rl.tryAcquire(), "bucket should be empty")
}

func TestRateLimiterWaitCanceled(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.Close()

	require.True(t, rl.tryAcquire())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := rl.wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNilRateLimiterNeverBlocks(t *testing.T) {
	var rl *rateLimiter
	assert.NoError(t, rl.wait(context.Background()))
	rl.Close()
}

func TestRateLimiterCloseIdempotent(t *testing.T) {
	rl := newRateLimiter(2)
	rl.Close()
	rl.Close()

	select {
	case <-rl.stopCh:
	default:
		t.Fatal("stop channel should be closed")
	}
}

func TestRateLimiterDisabledForNonPositiveRate(t *testing.T) {
	assert.Nil(t, newRateLimiter(0))
	assert.Nil(t, newRateLimiter(-10))
}
