package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit(t *testing.T) {
	t.Run("delivers with timestamp", func(t *testing.T) {
		ch := make(chan Event, 1)
		Emit(ch, Event{Type: RunStart})

		e := <-ch
		assert.Equal(t, RunStart, e.Type)
		assert.False(t, e.Timestamp.IsZero())
	})

	t.Run("does not block on a full channel", func(t *testing.T) {
		ch := make(chan Event, 1)
		Emit(ch, Event{Type: TurnStart, Turn: 1})
		Emit(ch, Event{Type: TurnStart, Turn: 2})

		e := <-ch
		assert.Equal(t, 1, e.Turn)
		select {
		case <-ch:
			t.Fatal("second event should have been dropped")
		default:
		}
	})

	t.Run("tolerates a nil channel", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Emit(nil, Event{Type: RunEnd})
		})
	})
}

func TestNewChannel(t *testing.T) {
	ch := NewChannel()
	require.NotNil(t, ch)
	assert.Equal(t, 100, cap(ch))
}
