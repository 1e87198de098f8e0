package game

// PolicyView is what an opponent policy may look at. It is a detached copy.
type PolicyView struct {
	Self            SideView
	Enemy           SideView
	BattlefieldSize int
	HealthPools     bool
}

// OpponentPolicy drives the scripted opponent turn. Implementations must be
// pure functions of the view.
type OpponentPolicy interface {
	// ChoosePlay picks a card from the opponent's hand or deck to deploy.
	ChoosePlay(view PolicyView) (cardID string, ok bool)
	// ChooseTarget picks the target for one ready attacker. direct means the
	// enemy side itself.
	ChooseTarget(view PolicyView, attacker *CardInstance) (targetID string, direct bool)
}

// GreedyPolicy plays the strongest affordable card, then focuses the weakest
// enemy unit with every ready attacker.
type GreedyPolicy struct{}

func (GreedyPolicy) ChoosePlay(view PolicyView) (string, bool) {
	if len(view.Self.Battlefield) >= view.BattlefieldSize {
		return "", false
	}
	var best *CardInstance
	for _, pool := range [][]*CardInstance{view.Self.Hand, view.Self.Deck} {
		for _, c := range pool {
			if c.Cost > view.Self.Gold {
				continue
			}
			if best == nil || c.Attack > best.Attack {
				best = c
			}
		}
	}
	if best == nil {
		return "", false
	}
	return best.ID, true
}

func (GreedyPolicy) ChooseTarget(view PolicyView, attacker *CardInstance) (string, bool) {
	var weakest *CardInstance
	for _, c := range view.Enemy.Battlefield {
		if weakest == nil || c.Health < weakest.Health {
			weakest = c
		}
	}
	if weakest == nil {
		return OpponentSide, true
	}
	return weakest.ID, false
}
