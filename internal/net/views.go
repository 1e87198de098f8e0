package net

import (
	"github.com/peterkuimelis/skirmish/internal/game"
	"github.com/peterkuimelis/skirmish/internal/log"
)

// BuildStateView creates a StateView from a session snapshot. The opponent's
// hand is hidden; both decks are reported by size only.
func BuildStateView(v game.View) *StateView {
	sv := &StateView{
		Scenario:      v.ScenarioName,
		ScenarioIndex: v.ScenarioIndex,
		Turn:          v.Turn,
		TurnSide:      v.TurnSide.String(),
		Phase:         v.Phase.String(),
		Status:        v.Status.String(),
		You:           playerView(v.Player, true),
		Opponent:      playerView(v.Opponent, false),
		LegalTargets:  v.LegalTargets,
	}
	if v.Attacker != nil {
		cv := BuildCardView(v.Attacker)
		sv.Attacker = &cv
	}
	return sv
}

func playerView(s game.SideView, isOwner bool) PlayerView {
	pv := PlayerView{
		Gold:        s.Gold,
		Health:      s.Health,
		HandCount:   len(s.Hand),
		DeckCount:   len(s.Deck),
		Battlefield: []CardView{},
	}
	if isOwner {
		for _, c := range s.Hand {
			pv.Hand = append(pv.Hand, BuildCardView(c))
		}
	}
	for _, c := range s.Battlefield {
		pv.Battlefield = append(pv.Battlefield, BuildCardView(c))
	}
	return pv
}

// BuildCardView converts a card instance.
func BuildCardView(c *game.CardInstance) CardView {
	cv := CardView{
		ID:        c.ID,
		Name:      c.Name,
		Faction:   c.Faction,
		Health:    c.Health,
		MaxHealth: c.MaxHealth,
		Armor:     c.Armor,
		Attack:    c.Attack,
		Cost:      c.Cost,
		Bounty:    c.Bounty,
		Acted:     c.Acted,
	}
	for _, k := range c.Keywords {
		cv.Keywords = append(cv.Keywords, k.String())
	}
	return cv
}

// BuildEventView converts a game event.
func BuildEventView(e log.GameEvent) EventView {
	return EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Phase:   e.Phase,
		Side:    log.SideName(e.Side),
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
}

// EventsSince converts the events newer than seq. It returns the newest
// sequence number seen and how many events after seq had already been
// dropped from the bounded log.
func EventsSince(events []log.GameEvent, seq int) ([]EventView, int, int) {
	var (
		out     []EventView
		dropped int
	)
	for _, e := range events {
		if e.Seq <= seq {
			continue
		}
		if out == nil && e.Seq > seq+1 {
			dropped = e.Seq - seq - 1
		}
		out = append(out, BuildEventView(e))
		seq = e.Seq
	}
	return out, seq, dropped
}
