package tspro

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerTableSetReplaceRemove(t *testing.T) {
	table := NewHandlerTable()

	var calls []string
	table.Set(EventMoveFinished, func(Event) { calls = append(calls, "first") })
	table.Set(EventMoveFinished, func(Event) { calls = append(calls, "second") })
	assert.Equal(t, 1, table.Len())

	h, ok := table.Lookup(EventMoveFinished)
	require.True(t, ok)
	h(MoveFinished{})
	assert.Equal(t, []string{"second"}, calls)

	table.Remove(EventMoveFinished)
	assert.False(t, table.Has(EventMoveFinished))
	assert.Equal(t, 0, table.Len())
}

func TestHandlerTableRemoveAbsent(t *testing.T) {
	table := NewHandlerTable()
	table.Set(EventError, func(Event) {})

	assert.NotPanics(t, func() { table.Remove(EventToolEngaged) })
	assert.True(t, table.Has(EventError))
}

func TestHandlerTableNilHandlerRemoves(t *testing.T) {
	table := NewHandlerTable()
	table.Set(EventError, func(Event) {})
	table.Set(EventError, nil)
	assert.False(t, table.Has(EventError))
}

func TestArgsHandler(t *testing.T) {
	var got []string
	h := ArgsHandler(func(args ...string) { got = args })
	h(Unknown{ID: 42, rawArgs: rawArgs{"a", "b"}})
	assert.Equal(t, []string{"a", "b"}, got)

	assert.Nil(t, ArgsHandler(nil))
}

func TestHandlerTableSetArgs(t *testing.T) {
	table := NewHandlerTable()

	var got []string
	table.SetArgs(EventReceivedPosition, func(args ...string) { got = args })
	assert.True(t, table.IsRaw(EventReceivedPosition))

	h, ok := table.Lookup(EventReceivedPosition)
	require.True(t, ok)
	h(Unknown{ID: EventReceivedPosition, rawArgs: rawArgs{"abc"}})
	assert.Equal(t, []string{"abc"}, got)

	table.Set(EventReceivedPosition, func(Event) {})
	assert.False(t, table.IsRaw(EventReceivedPosition))

	table.SetArgs(EventReceivedPosition, nil)
	assert.False(t, table.Has(EventReceivedPosition))
	assert.False(t, table.IsRaw(EventMoveFinished))
}

// TestHandlerTableConcurrentAccess hammers the table from writers and
// readers at once; run with -race to catch unguarded access.
func TestHandlerTableConcurrentAccess(t *testing.T) {
	table := NewHandlerTable()
	const workers = 8
	const iterations = 500

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(2)
		code := EventCode(100 + w)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				table.Set(code, func(Event) {})
				table.Remove(code)
			}
			table.Set(code, func(Event) {})
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				if h, ok := table.Lookup(code); ok {
					h(Unknown{ID: code})
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, table.Len())
}
