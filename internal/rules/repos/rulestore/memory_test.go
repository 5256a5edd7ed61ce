package rulestore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetHas(t *testing.T) {
	m := NewMemory(nil)
	assert.False(t, m.Has("doDaylightCycle"))

	require.NoError(t, m.SetOrCreate("doDaylightCycle", "false"))
	v, ok := m.Get("doDaylightCycle")
	assert.True(t, ok)
	assert.Equal(t, "false", v)
	assert.True(t, m.Has("doDaylightCycle"))

	require.NoError(t, m.SetOrCreate("doDaylightCycle", "true"))
	v, _ = m.Get("doDaylightCycle")
	assert.Equal(t, "true", v)
}

func TestMemory_SeedIsCopied(t *testing.T) {
	seed := map[string]string{"keepInventory": "false"}
	m := NewMemory(seed)
	seed["keepInventory"] = "true"

	v, ok := m.Get("keepInventory")
	assert.True(t, ok)
	assert.Equal(t, "false", v)
}

func TestMemory_KeysSortedAndSnapshot(t *testing.T) {
	m := NewMemory(map[string]string{"b": "2", "a": "1", "c": "3"})
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	snap := m.Snapshot()
	snap["a"] = "changed"
	v, _ := m.Get("a")
	assert.Equal(t, "1", v)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = m.SetOrCreate("k", "v")
				_ = m.Has("k")
				_ = m.Keys()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, []string{"k"}, m.Keys())
}
