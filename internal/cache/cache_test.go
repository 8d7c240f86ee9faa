package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string](10, time.Minute)

	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Set("a", "1")
	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestStore_Expiry(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New[string](10, 30*time.Minute).WithNow(func() time.Time { return clock })

	s.Set("a", "1")

	clock = clock.Add(29 * time.Minute)
	_, ok := s.Get("a")
	assert.True(t, ok)

	clock = clock.Add(2 * time.Minute)
	_, ok = s.Get("a")
	assert.False(t, ok)
}

func TestStore_EvictsExpiredBeforeOldest(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New[int](2, 10*time.Minute).WithNow(func() time.Time { return clock })

	s.Set("stale", 1)
	clock = clock.Add(11 * time.Minute)
	s.Set("fresh", 2)
	s.Set("other", 3)

	// "stale" was expired, so both live entries fit.
	_, ok := s.Get("fresh")
	assert.True(t, ok)
	_, ok = s.Get("other")
	assert.True(t, ok)
}

func TestStore_EvictsOldestAtCapacity(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New[int](2, time.Hour).WithNow(func() time.Time { return clock })

	s.Set("first", 1)
	clock = clock.Add(time.Second)
	s.Set("second", 2)
	clock = clock.Add(time.Second)
	s.Set("third", 3)

	_, ok := s.Get("first")
	assert.False(t, ok)
	_, ok = s.Get("second")
	assert.True(t, ok)
	_, ok = s.Get("third")
	assert.True(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestStore_Overwrite(t *testing.T) {
	s := New[string](5, time.Minute)
	s.Set("k", "old")
	s.Set("k", "new")
	v, _ := s.Get("k")
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, s.Len())
}
