package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "/dapps", Key("/dapps", ""))
	assert.Equal(t, "/dapps?chainId=1", Key("/dapps", "chainId=1"))
}

func TestGetSet(t *testing.T) {
	c := New(time.Minute, 2*time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", 42)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, c.ItemCount())

	c.Clear()
	assert.Zero(t, c.ItemCount())
}

func TestRemember(t *testing.T) {
	c := New(time.Minute, 2*time.Minute)
	calls := 0
	load := func() (any, error) {
		calls++
		return "value", nil
	}

	for range 3 {
		v, err := c.Remember("k", load)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}
	assert.Equal(t, 1, calls)
}

func TestRememberDoesNotCacheErrors(t *testing.T) {
	c := New(time.Minute, 2*time.Minute)
	boom := errors.New("boom")

	_, err := c.Remember("k", func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	v, err := c.Remember("k", func() (any, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestExpiry(t *testing.T) {
	c := New(30*time.Millisecond, time.Minute)
	c.Set("k", "v")

	assert.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
