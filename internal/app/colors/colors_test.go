package colors

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFor_Idempotent(t *testing.T) {
	table := NewTable()

	first := table.ColorFor("alice")
	assert.Equal(t, first, table.ColorFor("alice"))
	assert.Equal(t, first, table.ColorFor(" Alice "))
	assert.Equal(t, 1, table.Len())
}

func TestColorFor_CyclesWithPalettePeriod(t *testing.T) {
	table := NewTable()
	n := len(DefaultPalette)

	got := make([]Color, 0, 2*n)
	for i := range 2 * n {
		got = append(got, table.ColorFor(fmt.Sprintf("user%d", i)))
	}

	for i := range n {
		assert.Equal(t, DefaultPalette[i], got[i])
		assert.Equal(t, got[i], got[i+n])
	}
	assert.Equal(t, 2*n, table.Len())
}

func TestColorFor_ReservedNameUsesSentinel(t *testing.T) {
	table := NewTable()

	for _, name := range []string{"Server", "server", "SERVER", " server "} {
		assert.Equal(t, ServerColor, table.ColorFor(name))
	}
	assert.Zero(t, table.Len())

	// The first real user still gets the first palette slot.
	assert.Equal(t, DefaultPalette[0], table.ColorFor("bob"))
}

func TestColorFor_DeterministicAcrossTables(t *testing.T) {
	names := []string{"carol", "dave", "carol", "erin", "Server", "dave", "frank"}

	a, b := NewTable(), NewTable()
	for _, name := range names {
		assert.Equal(t, a.ColorFor(name), b.ColorFor(name))
	}
}

func TestNewTable_CustomPalette(t *testing.T) {
	palette := []Color{"#111111", "#222222"}
	table := NewTable(palette...)
	palette[0] = "#999999"

	assert.Equal(t, Color("#111111"), table.ColorFor("a"))
	assert.Equal(t, Color("#222222"), table.ColorFor("b"))
	assert.Equal(t, Color("#111111"), table.ColorFor("c"))
}

func TestColorFor_Concurrent(t *testing.T) {
	table := NewTable()

	var wg sync.WaitGroup
	results := make([][]Color, 8)
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range 50 {
				results[g] = append(results[g], table.ColorFor(fmt.Sprintf("user%d", i)))
			}
		}(g)
	}
	wg.Wait()

	require.Equal(t, 50, table.Len())
	for g := 1; g < len(results); g++ {
		assert.Equal(t, results[0], results[g])
	}
}
