package linked

import (
	"testing"

	"github.com/couchcryptid/quake-views/internal/domain"
	"github.com/stretchr/testify/assert"
)

func regionOf(ids ...int) domain.RecordSet {
	set := make(domain.RecordSet, 0, len(ids))
	for _, id := range ids {
		set = append(set, domain.Record{ID: id})
	}
	return set
}

func TestLRUCache_PutGet(t *testing.T) {
	c := newLRUCache(2)

	c.put(1, regionOf(1, 2))

	got, ok := c.get(1)
	assert.True(t, ok)
	assert.Equal(t, regionOf(1, 2), got)

	_, ok = c.get(2)
	assert.False(t, ok)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newLRUCache(2)

	c.put(1, regionOf(1))
	c.put(2, regionOf(2))

	// Touch 1 so 2 becomes the eviction candidate.
	_, ok := c.get(1)
	assert.True(t, ok)

	c.put(3, regionOf(3))

	_, ok = c.get(2)
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.get(1)
	assert.True(t, ok)
	_, ok = c.get(3)
	assert.True(t, ok)
	assert.Equal(t, 2, c.len())
}

func TestLRUCache_UpdateExistingKey(t *testing.T) {
	c := newLRUCache(2)

	c.put(1, regionOf(1))
	c.put(1, regionOf(1, 2))

	got, ok := c.get(1)
	assert.True(t, ok)
	assert.Equal(t, regionOf(1, 2), got)
	assert.Equal(t, 1, c.len())
}

func TestLRUCache_SingleEntryCapacity(t *testing.T) {
	c := newLRUCache(1)

	c.put(1, regionOf(1))
	c.put(2, regionOf(2))

	_, ok := c.get(1)
	assert.False(t, ok)
	_, ok = c.get(2)
	assert.True(t, ok)
}
