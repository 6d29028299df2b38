package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fixedClock permite avançar o relógio do cache manualmente nos testes
type fixedClock struct {
	now time.Time
}

func (f *fixedClock) Now() time.Time { return f.now }

func (f *fixedClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCache(ttl time.Duration) (*Cache, *fixedClock) {
	clock := &fixedClock{now: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
	c := NewWithTTL(ttl)
	c.nowFn = clock.Now
	return c, clock
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(30 * time.Second)

	c.Set("all_sales", []string{"SALE00001"})

	value, ok := c.Get("all_sales")
	assert.True(t, ok)
	assert.Equal(t, []string{"SALE00001"}, value)
}

func TestCache_MissingKey(t *testing.T) {
	c, _ := newTestCache(30 * time.Second)

	value, ok := c.Get("targets_a@x.com")
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	c, clock := newTestCache(30 * time.Second)

	c.Set("users", "valor")

	// No limite do TTL a entrada ainda vale
	clock.Advance(30 * time.Second)
	_, ok := c.Get("users")
	assert.True(t, ok)

	// Passou do TTL: ausente e removida
	clock.Advance(time.Millisecond)
	_, ok = c.Get("users")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestCache_SetWithTTLOverridesDefault(t *testing.T) {
	c, clock := newTestCache(30 * time.Second)

	c.SetWithTTL("curto", 1, time.Second)
	c.Set("longo", 2)

	clock.Advance(2 * time.Second)

	_, ok := c.Get("curto")
	assert.False(t, ok)

	_, ok = c.Get("longo")
	assert.True(t, ok)
}

func TestCache_SetOverwrites(t *testing.T) {
	c, _ := newTestCache(30 * time.Second)

	c.Set("users", "antigo")
	c.Set("users", "novo")

	value, _ := c.Get("users")
	assert.Equal(t, "novo", value)
}

func TestCache_Clear(t *testing.T) {
	c, _ := newTestCache(30 * time.Second)

	c.Set("users", 1)
	c.Set("all_sales", 2)
	c.Clear()

	assert.Zero(t, c.Len())
	_, ok := c.Get("users")
	assert.False(t, ok)
}
