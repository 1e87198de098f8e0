package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: keeps the most recent events in memory ---

type MemoryLogger struct {
	events   []GameEvent
	seq      int
	capacity int // 0 = unbounded
}

// NewMemoryLogger returns a logger holding at most capacity events.
// The oldest events are dropped first; capacity 0 keeps everything.
func NewMemoryLogger(capacity int) *MemoryLogger {
	return &MemoryLogger{capacity: capacity}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
	if l.capacity > 0 && len(l.events) > l.capacity {
		drop := len(l.events) - l.capacity
		l.events = append(l.events[:0], l.events[drop:]...)
	}
}

// Events returns a copy of the retained events, oldest first.
func (l *MemoryLogger) Events() []GameEvent {
	out := make([]GameEvent, len(l.events))
	copy(out, l.events)
	return out
}

// EventsOfType returns all retained events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Since returns the retained events with a sequence number greater than seq.
func (l *MemoryLogger) Since(seq int) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Seq > seq {
			result = append(result, e)
		}
	}
	return result
}

// Seq returns the sequence number of the last logged event.
func (l *MemoryLogger) Seq() int {
	return l.seq
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer, capacity int) *TextLogger {
	return &TextLogger{MemoryLogger: MemoryLogger{capacity: capacity}, w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(l.LastEvent()))
}

// --- Formatting ---

// SideName returns "Player" or "Opponent" for display.
func SideName(side int) string {
	if side == 0 {
		return "Player"
	}
	return "Opponent"
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	for len(phase) < 16 {
		phase += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewScenarioLoadedEvent(turn int, phase string, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventScenarioLoaded,
		Details: fmt.Sprintf("Scenario loaded: %s", name),
	}
}

func NewTurnEvent(turn int, phase string, side int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, SideName(side)),
	}
}

func NewPhaseChangeEvent(turn int, phase string, side int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewDrawEvent(turn int, phase string, side int, cardName string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s (paid %d gold)", SideName(side), cardName, cost),
	}
}

func NewPlayEvent(turn int, phase string, side int, cardName string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventPlay,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s for %d gold", SideName(side), cardName, cost),
	}
}

func NewSelectAttackerEvent(turn int, phase string, side int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventSelectAttacker,
		Card:    cardName,
		Details: fmt.Sprintf("%s readies %s to attack", SideName(side), cardName),
	}
}

func NewCancelTargetEvent(turn int, phase string, side int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventCancelTarget,
		Card:    cardName,
		Details: fmt.Sprintf("%s stands %s down", SideName(side), cardName),
	}
}

func NewAttackDeclareEvent(turn int, phase string, side int, attacker, defender string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventAttackDeclare,
		Card:    attacker,
		Details: fmt.Sprintf("%s attacks: %s → %s", SideName(side), attacker, defender),
	}
}

func NewDirectAttackDeclareEvent(turn int, phase string, side int, attacker string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventDirectAttackDeclare,
		Card:    attacker,
		Details: fmt.Sprintf("%s attacks %s directly with %s", SideName(side), SideName(1-side), attacker),
	}
}

func NewDamageEvent(turn int, phase string, side int, cardName string, damage, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventDamage,
		Card:    cardName,
		Details: fmt.Sprintf("%s takes %d damage (HP %d → %d)", cardName, damage, oldHP, newHP),
	}
}

func NewDefeatEvent(turn int, phase string, side int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventDefeat,
		Card:    cardName,
		Details: fmt.Sprintf("%s is defeated and leaves %s's battlefield", cardName, SideName(side)),
	}
}

func NewGoldChangeEvent(turn int, phase string, side int, oldGold, newGold int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventGoldChange,
		Details: fmt.Sprintf("%s gold: %d → %d (%s)", SideName(side), oldGold, newGold, reason),
	}
}

func NewHealthChangeEvent(turn int, phase string, side int, oldHP, newHP int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventHealthChange,
		Details: fmt.Sprintf("%s health: %d → %d (%s)", SideName(side), oldHP, newHP, reason),
	}
}

func NewOpponentSkipEvent(turn int, phase string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    1,
		Type:    EventOpponentSkip,
		Details: fmt.Sprintf("Opponent %s", reason),
	}
}

func NewRejectedEvent(turn int, phase string, side int, op, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventRejected,
		Details: fmt.Sprintf("%s cannot %s: %s", SideName(side), op, reason),
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", SideName(winner), reason),
	}
}
