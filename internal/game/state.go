package game

import "math/rand"

// Side represents one side's entire state.
type Side struct {
	ID          SideID
	Deck        []*CardInstance // top of deck is last element (pop from end)
	Hand        []*CardInstance
	Battlefield []*CardInstance
	Gold        int
	Health      int // shared pool hit by direct attacks
}

// DeckCount returns the number of cards remaining in the deck.
func (s *Side) DeckCount() int {
	return len(s.Deck)
}

// DrawCard removes the top card from the deck and adds it to the hand.
// Returns the drawn card, or nil if the deck is empty.
func (s *Side) DrawCard() *CardInstance {
	if len(s.Deck) == 0 {
		return nil
	}
	card := s.Deck[len(s.Deck)-1]
	s.Deck = s.Deck[:len(s.Deck)-1]
	s.Hand = append(s.Hand, card)
	return card
}

// HandCard returns the hand card with the given ID, or nil.
func (s *Side) HandCard(id string) *CardInstance {
	return find(s.Hand, id)
}

// DeckCard returns the deck card with the given ID, or nil.
func (s *Side) DeckCard(id string) *CardInstance {
	return find(s.Deck, id)
}

// BattlefieldCard returns the battlefield card with the given ID, or nil.
func (s *Side) BattlefieldCard(id string) *CardInstance {
	return find(s.Battlefield, id)
}

// RemoveFromHand removes a card from the hand by instance ID.
func (s *Side) RemoveFromHand(id string) *CardInstance {
	var card *CardInstance
	s.Hand, card = remove(s.Hand, id)
	if card == nil {
		invariant("%s hand has no card %s", s.ID, id)
	}
	return card
}

// RemoveFromDeck removes a card from the deck by instance ID.
func (s *Side) RemoveFromDeck(id string) *CardInstance {
	var card *CardInstance
	s.Deck, card = remove(s.Deck, id)
	if card == nil {
		invariant("%s deck has no card %s", s.ID, id)
	}
	return card
}

// RemoveFromBattlefield removes a card from the battlefield by instance ID.
func (s *Side) RemoveFromBattlefield(id string) *CardInstance {
	var card *CardInstance
	s.Battlefield, card = remove(s.Battlefield, id)
	if card == nil {
		invariant("%s battlefield has no card %s", s.ID, id)
	}
	return card
}

// PlaceOnBattlefield puts a card into play, ready to act.
func (s *Side) PlaceOnBattlefield(card *CardInstance) {
	card.Acted = false
	s.Battlefield = append(s.Battlefield, card)
}

// ResetActedFlags lets every battlefield card act again.
func (s *Side) ResetActedFlags() {
	for _, c := range s.Battlefield {
		c.Acted = false
	}
}

// Ready returns the battlefield cards that have not acted this turn.
func (s *Side) Ready() []*CardInstance {
	var result []*CardInstance
	for _, c := range s.Battlefield {
		if !c.Acted {
			result = append(result, c)
		}
	}
	return result
}

// ShuffleDeck randomizes the deck order.
func (s *Side) ShuffleDeck(rng *rand.Rand) {
	rng.Shuffle(len(s.Deck), func(i, j int) {
		s.Deck[i], s.Deck[j] = s.Deck[j], s.Deck[i]
	})
}

// View returns a deep copy for read-only consumers.
func (s *Side) View() SideView {
	return SideView{
		ID:          s.ID,
		Gold:        s.Gold,
		Health:      s.Health,
		Deck:        cloneAll(s.Deck),
		Hand:        cloneAll(s.Hand),
		Battlefield: cloneAll(s.Battlefield),
	}
}

// SideView is a detached snapshot of a Side.
type SideView struct {
	ID          SideID
	Gold        int
	Health      int
	Deck        []*CardInstance
	Hand        []*CardInstance
	Battlefield []*CardInstance
}

func find(cards []*CardInstance, id string) *CardInstance {
	for _, c := range cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func remove(cards []*CardInstance, id string) ([]*CardInstance, *CardInstance) {
	for i, c := range cards {
		if c.ID == id {
			return append(cards[:i], cards[i+1:]...), c
		}
	}
	return cards, nil
}

func cloneAll(cards []*CardInstance) []*CardInstance {
	out := make([]*CardInstance, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Clone())
	}
	return out
}
