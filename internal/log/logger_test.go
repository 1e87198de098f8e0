package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoggerDropsOldest(t *testing.T) {
	l := NewMemoryLogger(3)
	for i := 1; i <= 5; i++ {
		l.Log(NewTurnEvent(i, "Main Phase", 0))
	}

	events := l.Events()
	require.Len(t, events, 3)
	assert.Equal(t, 3, events[0].Seq)
	assert.Equal(t, 5, events[2].Seq)
	assert.Equal(t, 5, l.Seq())
	assert.Equal(t, 5, l.LastEvent().Turn)
}

func TestMemoryLoggerUnbounded(t *testing.T) {
	l := NewMemoryLogger(0)
	for i := 0; i < 100; i++ {
		l.Log(NewOpponentSkipEvent(1, "Opponent Turn", "has nothing to do"))
	}
	assert.Len(t, l.Events(), 100)
}

func TestEventsReturnsCopy(t *testing.T) {
	l := NewMemoryLogger(0)
	l.Log(NewWinEvent(1, "Game Over", 0, "test"))
	events := l.Events()
	events[0].Details = "mutated"
	assert.NotEqual(t, "mutated", l.LastEvent().Details)
}

func TestSinceAndEventsOfType(t *testing.T) {
	l := NewMemoryLogger(0)
	l.Log(NewDrawEvent(1, "Main Phase", 0, "Footman", 1))
	l.Log(NewRejectedEvent(1, "Main Phase", 0, "draw", "deck is empty"))
	l.Log(NewDrawEvent(1, "Main Phase", 0, "Archer", 1))

	assert.Len(t, l.EventsOfType(EventDraw), 2)
	since := l.Since(1)
	require.Len(t, since, 2)
	assert.Equal(t, EventRejected, since[0].Type)
	assert.Equal(t, "Player cannot draw: deck is empty", since[0].Details)
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, 0)
	l.Log(NewPlayEvent(2, "Main Phase", 1, "Orc Brute", 3))

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "T2 "))
	assert.Contains(t, line, "Opponent plays Orc Brute for 3 gold")
	assert.Len(t, l.Events(), 1)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "DirectAttackDeclare", EventDirectAttackDeclare.String())
	assert.Equal(t, "Unknown", EventType(999).String())
}
