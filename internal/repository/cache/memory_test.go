package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, ok := m.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "key", "value", time.Minute))
	got, ok := m.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "short", "v", time.Minute))
	require.NoError(t, m.Set(ctx, "forever", "v", 0))

	now = now.Add(2 * time.Minute)

	_, ok := m.Get(ctx, "short")
	assert.False(t, ok, "expired entry should not be served")

	_, ok = m.Get(ctx, "forever")
	assert.True(t, ok, "zero ttl entries never expire")
}

func TestMemorySweep(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "a", "v", time.Minute))
	require.NoError(t, m.Set(ctx, "b", "v", time.Hour))
	assert.Equal(t, 2, m.Len())

	now = now.Add(30 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
}

func TestRequestKeyStable(t *testing.T) {
	a := RequestKey([]byte(`{"principal":100000}`))
	b := RequestKey([]byte(`{"principal":100000}`))
	c := RequestKey([]byte(`{"principal":100001}`))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
