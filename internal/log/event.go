package log

// EventType enumerates all observable battle events.
type EventType int

const (
	EventScenarioLoaded EventType = iota
	EventNewTurn
	EventPhaseChange
	EventDraw
	EventPlay
	EventSelectAttacker
	EventCancelTarget
	EventAttackDeclare
	EventDirectAttackDeclare
	EventDamage
	EventDefeat
	EventGoldChange
	EventHealthChange
	EventOpponentSkip
	EventRejected
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventScenarioLoaded:
		return "ScenarioLoaded"
	case EventNewTurn:
		return "NewTurn"
	case EventPhaseChange:
		return "PhaseChange"
	case EventDraw:
		return "Draw"
	case EventPlay:
		return "Play"
	case EventSelectAttacker:
		return "SelectAttacker"
	case EventCancelTarget:
		return "CancelTarget"
	case EventAttackDeclare:
		return "AttackDeclare"
	case EventDirectAttackDeclare:
		return "DirectAttackDeclare"
	case EventDamage:
		return "Damage"
	case EventDefeat:
		return "Defeat"
	case EventGoldChange:
		return "GoldChange"
	case EventHealthChange:
		return "HealthChange"
	case EventOpponentSkip:
		return "OpponentSkip"
	case EventRejected:
		return "Rejected"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq     int       // monotonic sequence number, never reused even when the log drops events
	Turn    int       // which turn (1-based)
	Phase   string    // phase name at the time of the event
	Side    int       // acting side (0 = player, 1 = opponent)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
