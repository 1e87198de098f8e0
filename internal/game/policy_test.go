package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func card(name string, cost, atk, hp int) *CardInstance {
	tpl := unit(name, hp, atk, 0)
	tpl.Cost = cost
	return Instantiate(tpl)
}

func TestGreedyChoosePlay(t *testing.T) {
	strong := card("Strong", 3, 5, 5)
	first := card("TieFirst", 2, 4, 5)
	second := card("TieSecond", 1, 4, 5)
	dear := card("Dear", 9, 9, 9)

	view := PolicyView{
		Self: SideView{
			Gold: 3,
			Hand: []*CardInstance{first, dear},
			Deck: []*CardInstance{second, strong},
		},
		BattlefieldSize: 5,
	}
	id, ok := GreedyPolicy{}.ChoosePlay(view)
	assert.True(t, ok)
	assert.Equal(t, strong.ID, id)

	view.Self.Gold = 2
	id, ok = GreedyPolicy{}.ChoosePlay(view)
	assert.True(t, ok)
	assert.Equal(t, first.ID, id, "ties go to the first card encountered")

	view.Self.Gold = 0
	_, ok = GreedyPolicy{}.ChoosePlay(view)
	assert.False(t, ok)
}

func TestGreedyChoosePlayNeedsRoom(t *testing.T) {
	view := PolicyView{
		Self: SideView{
			Gold:        10,
			Hand:        []*CardInstance{card("Any", 1, 1, 1)},
			Battlefield: []*CardInstance{card("Occupant", 1, 1, 1)},
		},
		BattlefieldSize: 1,
	}
	_, ok := GreedyPolicy{}.ChoosePlay(view)
	assert.False(t, ok)
}

func TestGreedyChooseTarget(t *testing.T) {
	attacker := card("Attacker", 0, 3, 5)
	tough := card("Tough", 0, 1, 9)
	weakA := card("WeakA", 0, 1, 2)
	weakB := card("WeakB", 0, 1, 2)

	view := PolicyView{Enemy: SideView{Battlefield: []*CardInstance{tough, weakA, weakB}}}
	id, direct := GreedyPolicy{}.ChooseTarget(view, attacker)
	assert.False(t, direct)
	assert.Equal(t, weakA.ID, id)

	id, direct = GreedyPolicy{}.ChooseTarget(PolicyView{}, attacker)
	assert.True(t, direct)
	assert.Equal(t, OpponentSide, id)
}
