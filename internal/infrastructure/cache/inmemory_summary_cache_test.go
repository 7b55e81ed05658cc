package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySummaryCache_SetGet(t *testing.T) {
	c := NewInMemorySummaryCache(time.Hour)
	defer c.Close()
	ctx := context.Background()

	_, found, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "fp-1", "summary text"))

	text, found, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "summary text", text)
}

func TestInMemorySummaryCache_Expiry(t *testing.T) {
	c := NewInMemorySummaryCache(10 * time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "fp-1", "summary text"))
	time.Sleep(20 * time.Millisecond)

	_, found, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.False(t, found, "entries past their TTL must be treated as absent")
	// The expired entry is evicted on read.
	assert.Equal(t, 0, c.Size())
}

func TestInMemorySummaryCache_SetResetsTTL(t *testing.T) {
	c := NewInMemorySummaryCache(50 * time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "fp-1", "v1"))
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, c.Set(ctx, "fp-1", "v2"))
	time.Sleep(30 * time.Millisecond)

	// 60ms after the first write but only 30ms after the second.
	text, found, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", text)
}

func TestInMemorySummaryCache_Invalidate(t *testing.T) {
	c := NewInMemorySummaryCache(time.Hour)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "fp-1", "summary text"))
	require.NoError(t, c.Invalidate(ctx, "fp-1"))

	_, found, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.False(t, found)

	// Invalidating an absent fingerprint is a no-op.
	require.NoError(t, c.Invalidate(ctx, "fp-missing"))
}

func TestInMemorySummaryCache_ConcurrentAccess(t *testing.T) {
	c := NewInMemorySummaryCache(time.Hour)
	defer c.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			fp := fmt.Sprintf("fp-%d", n)
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, fp, "text")
				_, _, _ = c.Get(ctx, fp)
				if j%10 == 0 {
					_ = c.Invalidate(ctx, fp)
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestInMemorySummaryCache_CloseIsIdempotent(t *testing.T) {
	c := NewInMemorySummaryCache(time.Hour)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}
