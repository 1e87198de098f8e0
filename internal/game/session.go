package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/peterkuimelis/skirmish/internal/config"
	"github.com/peterkuimelis/skirmish/internal/log"
)

// legal is the phase transition table: which player commands each phase accepts.
// GameOver accepts none; only LoadScenario and ResetGame leave it.
var legal = map[Phase]map[Command]bool{
	PhaseMain: {
		CommandDraw:           true,
		CommandPlay:           true,
		CommandSelectAttacker: true,
		CommandEndTurn:        true,
	},
	PhaseTargetSelection: {
		CommandAttack:       true,
		CommandCancelTarget: true,
	},
	PhaseOpponentTurn: {},
	PhaseGameOver:     {},
}

// Session is one single-player battle against the scripted opponent.
// It is not safe for concurrent use; callers serialize commands.
type Session struct {
	rules     config.Rules
	catalog   *Catalog
	scenarios []Scenario
	policy    OpponentPolicy
	logger    log.EventLogger
	hook      EffectHook
	rng       *rand.Rand

	scenario int
	sides    [2]*Side
	turn     int // 1-based turn counter
	turnSide SideID
	phase    Phase
	attacker *CardInstance
	status   Status
}

// Option configures a Session.
type Option func(*Session)

// WithRules overrides config.Default().
func WithRules(r config.Rules) Option {
	return func(s *Session) { s.rules = r }
}

// WithPolicy swaps the opponent policy.
func WithPolicy(p OpponentPolicy) Option {
	return func(s *Session) { s.policy = p }
}

// WithLogger replaces the bounded in-memory event log.
func WithLogger(l log.EventLogger) Option {
	return func(s *Session) { s.logger = l }
}

// WithRand sets the RNG used for deck shuffles.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// NewSession validates the scenarios and loads the first one.
func NewSession(cat *Catalog, scenarios []Scenario, opts ...Option) (*Session, error) {
	s := &Session{
		rules:     config.Default(),
		catalog:   cat,
		scenarios: scenarios,
		policy:    GreedyPolicy{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios")
	}
	for _, sc := range scenarios {
		if err := sc.Validate(cat); err != nil {
			return nil, err
		}
	}
	if s.logger == nil {
		s.logger = log.NewMemoryLogger(s.rules.LogCapacity)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.hook = NoEffects{}
	if s.rules.KeywordEffects {
		s.hook = KeywordEffects{}
	}
	s.load(0)
	return s, nil
}

// --- Command surface ---

// Draw moves the top deck card of the side in turn into its hand for DrawCost gold.
func (s *Session) Draw() error {
	if err := s.guard(CommandDraw); err != nil {
		return err
	}
	by := s.turnSide
	side := s.sides[by]
	switch {
	case len(side.Deck) == 0:
		return s.reject(by, "draw", "deck is empty")
	case len(side.Hand) >= s.rules.HandSize:
		return s.reject(by, "draw", "hand is full (%d cards)", len(side.Hand))
	case side.Gold < s.rules.DrawCost:
		return s.reject(by, "draw", "drawing costs %d gold, have %d", s.rules.DrawCost, side.Gold)
	}
	card := side.DrawCard()
	s.log(log.NewDrawEvent(s.turn, s.phase.String(), int(by), card.Name, s.rules.DrawCost))
	s.addGold(by, -s.rules.DrawCost, "draw")
	return nil
}

// Play moves a hand card onto the battlefield, paying its cost.
func (s *Session) Play(cardID string) error {
	if err := s.guard(CommandPlay); err != nil {
		return err
	}
	by := s.turnSide
	card := s.sides[by].HandCard(cardID)
	if card == nil {
		return s.reject(by, "play", "card %q is not in hand", cardID)
	}
	return s.deploy(by, card, s.sides[by].RemoveFromHand)
}

// SelectAttacker readies a battlefield unit and enters target selection.
func (s *Session) SelectAttacker(cardID string) error {
	if err := s.guard(CommandSelectAttacker); err != nil {
		return err
	}
	by := s.turnSide
	own := s.sides[by]
	card := own.BattlefieldCard(cardID)
	if card == nil {
		return s.reject(by, "select attacker", "card %q is not on the battlefield", cardID)
	}
	if card.Defeated() {
		invariant("defeated card %s still on %s battlefield", card.ID, by)
	}
	if card.Acted {
		return s.reject(by, "select attacker", "%s has already acted this turn", card.Name)
	}
	if EffectiveAttack(card, own.Battlefield, s.hook) <= 0 {
		return s.reject(by, "select attacker", "%s has no attack", card.Name)
	}
	s.attacker = card
	s.setPhase(PhaseTargetSelection)
	s.log(log.NewSelectAttackerEvent(s.turn, s.phase.String(), int(by), card.Name))
	return nil
}

// Attack resolves the selected attacker against target: an opposing
// battlefield card ID, or OpponentSide for a direct attack.
func (s *Session) Attack(target string) (AttackResult, error) {
	if err := s.guard(CommandAttack); err != nil {
		return AttackResult{}, err
	}
	by := s.turnSide
	attacker := s.attacker
	if attacker == nil || s.sides[by].BattlefieldCard(attacker.ID) == nil {
		invariant("target selection without an attacker on the %s battlefield", by)
	}

	var (
		res AttackResult
		err error
	)
	if target == OpponentSide {
		res, err = s.resolveDirect(by, attacker)
	} else {
		res, err = s.resolveAttack(by, attacker, target)
	}
	if err != nil {
		return AttackResult{}, err
	}

	s.attacker = nil
	s.setPhase(PhaseMain)
	s.checkGameOver()
	return res, nil
}

// CancelTargetSelection returns to the main phase without attacking.
func (s *Session) CancelTargetSelection() error {
	if err := s.guard(CommandCancelTarget); err != nil {
		return err
	}
	name := s.attacker.Name
	s.attacker = nil
	s.setPhase(PhaseMain)
	s.log(log.NewCancelTargetEvent(s.turn, s.phase.String(), int(s.turnSide), name))
	return nil
}

// EndTurn hands control to the opponent, runs its whole turn and, unless the
// game ended, starts the player's next turn.
func (s *Session) EndTurn() error {
	if err := s.guard(CommandEndTurn); err != nil {
		return err
	}
	s.runOpponentTurn()
	return nil
}

// LoadScenario replaces the whole session state with a fresh copy of scenario i.
func (s *Session) LoadScenario(i int) error {
	if i < 0 || i >= len(s.scenarios) {
		return s.reject(s.turnSide, "load scenario", "no scenario %d (have %d)", i, len(s.scenarios))
	}
	s.load(i)
	return nil
}

// ResetGame reloads the current scenario.
func (s *Session) ResetGame() {
	s.load(s.scenario)
}

// --- Query surface ---

func (s *Session) Phase() Phase          { return s.phase }
func (s *Session) TurnSide() SideID      { return s.turnSide }
func (s *Session) Turn() int             { return s.turn }
func (s *Session) Status() Status        { return s.status }
func (s *Session) Rules() config.Rules   { return s.rules }
func (s *Session) Catalog() *Catalog     { return s.catalog }
func (s *Session) Scenarios() []Scenario { return s.scenarios }

// Scenario returns the index and definition of the active scenario.
func (s *Session) Scenario() (int, Scenario) {
	return s.scenario, s.scenarios[s.scenario]
}

// Side returns a detached copy of one side.
func (s *Session) Side(id SideID) SideView {
	return s.sides[id].View()
}

// Attacker returns a copy of the selected attacker, or nil outside target selection.
func (s *Session) Attacker() *CardInstance {
	return s.attacker.Clone()
}

// LegalTargets lists what the selected attacker may attack.
func (s *Session) LegalTargets() []string {
	if s.phase != PhaseTargetSelection {
		return nil
	}
	var targets []string
	for _, c := range s.sides[s.turnSide.Other()].Battlefield {
		targets = append(targets, c.ID)
	}
	if s.healthPools() {
		targets = append(targets, OpponentSide)
	}
	return targets
}

// Events returns the retained event log, oldest first.
func (s *Session) Events() []log.GameEvent {
	return s.logger.Events()
}

// View is a complete detached snapshot of the session.
type View struct {
	ScenarioIndex int
	ScenarioName  string
	Turn          int
	TurnSide      SideID
	Phase         Phase
	Status        Status
	Player        SideView
	Opponent      SideView
	Attacker      *CardInstance
	LegalTargets  []string
	Events        []log.GameEvent
}

// Snapshot returns the whole query surface in one value.
func (s *Session) Snapshot() View {
	return View{
		ScenarioIndex: s.scenario,
		ScenarioName:  s.scenarios[s.scenario].Name,
		Turn:          s.turn,
		TurnSide:      s.turnSide,
		Phase:         s.phase,
		Status:        s.status,
		Player:        s.Side(SidePlayer),
		Opponent:      s.Side(SideOpponent),
		Attacker:      s.Attacker(),
		LegalTargets:  s.LegalTargets(),
		Events:        s.Events(),
	}
}

// --- Internals ---

func (s *Session) load(i int) {
	sc := s.scenarios[i]
	s.scenario = i
	s.turn = 1
	s.turnSide = SidePlayer
	s.phase = PhaseMain
	s.attacker = nil
	s.status = StatusPlaying
	s.sides = [2]*Side{
		s.buildSide(SidePlayer, sc.PlayerGold, sc.PlayerRoster, sc.PlayerHand, sc.PlayerDeck, sc.ShuffleDecks),
		s.buildSide(SideOpponent, sc.OpponentGold, sc.OpponentRoster, sc.OpponentHand, sc.OpponentDeck, sc.ShuffleDecks),
	}
	s.log(log.NewScenarioLoadedEvent(s.turn, s.phase.String(), sc.Name))

	if sc.First == SideOpponent {
		s.runOpponentTurn()
		return
	}
	s.log(log.NewTurnEvent(s.turn, s.phase.String(), int(SidePlayer)))
}

func (s *Session) buildSide(id SideID, gold int, roster, hand, deck []string, shuffle bool) *Side {
	side := &Side{ID: id, Gold: gold, Health: s.rules.SideHealth}
	for _, name := range roster {
		side.PlaceOnBattlefield(s.catalog.MustInstantiate(name))
	}
	for _, name := range hand {
		side.Hand = append(side.Hand, s.catalog.MustInstantiate(name))
	}
	// Deck lists are top-first; the top of Side.Deck is its last element.
	for i := len(deck) - 1; i >= 0; i-- {
		side.Deck = append(side.Deck, s.catalog.MustInstantiate(deck[i]))
	}
	if shuffle {
		side.ShuffleDeck(s.rng)
	}
	return side
}

// deploy pays for card and places it on the battlefield. take removes it from
// its current collection.
func (s *Session) deploy(by SideID, card *CardInstance, take func(id string) *CardInstance) error {
	side := s.sides[by]
	if card.Cost > side.Gold {
		return s.reject(by, "play", "%s costs %d gold, have %d", card.Name, card.Cost, side.Gold)
	}
	if len(side.Battlefield) >= s.rules.BattlefieldSize {
		return s.reject(by, "play", "battlefield is full (%d units)", len(side.Battlefield))
	}
	take(card.ID)
	side.PlaceOnBattlefield(card)
	s.log(log.NewPlayEvent(s.turn, s.phase.String(), int(by), card.Name, card.Cost))
	s.addGold(by, -card.Cost, "played "+card.Name)
	return nil
}

// runOpponentTurn executes the scripted opponent turn as one synchronous batch.
func (s *Session) runOpponentTurn() {
	s.attacker = nil
	s.turnSide = SideOpponent
	s.setPhase(PhaseOpponentTurn)
	s.log(log.NewTurnEvent(s.turn, s.phase.String(), int(SideOpponent)))

	opp := s.sides[SideOpponent]
	s.addGold(SideOpponent, s.rules.TurnIncome, "turn income")
	opp.ResetActedFlags()

	if id, ok := s.policy.ChoosePlay(s.policyView()); ok {
		if card := opp.HandCard(id); card != nil {
			_ = s.deploy(SideOpponent, card, opp.RemoveFromHand)
		} else if card := opp.DeckCard(id); card != nil {
			_ = s.deploy(SideOpponent, card, opp.RemoveFromDeck)
		} else {
			_ = s.reject(SideOpponent, "play", "card %q is not in hand or deck", id)
		}
	} else {
		s.log(log.NewOpponentSkipEvent(s.turn, s.phase.String(), "has no affordable card to play"))
	}

	ready := opp.Ready()
	if len(ready) == 0 {
		s.log(log.NewOpponentSkipEvent(s.turn, s.phase.String(), "has no unit ready to attack"))
	}
	for _, attacker := range ready {
		if s.status != StatusPlaying {
			break
		}
		target, direct := s.policy.ChooseTarget(s.policyView(), attacker.Clone())
		if direct {
			_, _ = s.resolveDirect(SideOpponent, attacker)
		} else {
			_, _ = s.resolveAttack(SideOpponent, attacker, target)
		}
		s.checkGameOver()
	}
	if s.checkGameOver() {
		return
	}

	s.turn++
	s.turnSide = SidePlayer
	s.sides[SidePlayer].ResetActedFlags()
	opp.ResetActedFlags()
	s.setPhase(PhaseMain)
	s.log(log.NewTurnEvent(s.turn, s.phase.String(), int(SidePlayer)))
	s.addGold(SidePlayer, s.rules.TurnIncome, "turn income")
}

func (s *Session) policyView() PolicyView {
	return PolicyView{
		Self:            s.sides[SideOpponent].View(),
		Enemy:           s.sides[SidePlayer].View(),
		BattlefieldSize: s.rules.BattlefieldSize,
		HealthPools:     s.healthPools(),
	}
}

// checkGameOver runs Evaluate and enters GameOver on a decisive result.
func (s *Session) checkGameOver() bool {
	if s.status != StatusPlaying {
		return true
	}
	status := Evaluate(s.sides[SidePlayer], s.sides[SideOpponent])
	if status == StatusPlaying && s.healthPools() && s.rules.HealthDefeat {
		status = EvaluateHealth(s.sides[SidePlayer], s.sides[SideOpponent])
	}
	if status == StatusPlaying {
		return false
	}
	s.status = status
	s.attacker = nil
	s.setPhase(PhaseGameOver)
	winner, _ := status.Winner()
	loser := s.sides[winner.Other()]
	reason := fmt.Sprintf("%s battlefield is empty", winner.Other())
	if len(loser.Battlefield) > 0 {
		reason = fmt.Sprintf("%s health is exhausted", winner.Other())
	}
	s.log(log.NewWinEvent(s.turn, s.phase.String(), int(winner), reason))
	return true
}

// guard checks the transition table and turn ownership for a player command.
func (s *Session) guard(cmd Command) error {
	if s.phase == PhaseGameOver {
		return s.reject(SidePlayer, cmd.String(), "the game is over")
	}
	if s.turnSide != SidePlayer {
		return s.reject(SidePlayer, cmd.String(), "it is the %s's turn", s.turnSide)
	}
	if !legal[s.phase][cmd] {
		return s.reject(SidePlayer, cmd.String(), "not allowed during %s", s.phase)
	}
	return nil
}

func (s *Session) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.phase = p
	s.log(log.NewPhaseChangeEvent(s.turn, p.String(), int(s.turnSide)))
}

func (s *Session) addGold(id SideID, delta int, reason string) {
	if delta == 0 {
		return
	}
	side := s.sides[id]
	old := side.Gold
	side.Gold += delta
	s.log(log.NewGoldChangeEvent(s.turn, s.phase.String(), int(id), old, side.Gold, reason))
}

func (s *Session) healthPools() bool {
	return s.rules.SideHealth > 0
}

// reject logs a policy rejection and returns it as an error.
func (s *Session) reject(by SideID, op, format string, args ...any) error {
	r := &Rejection{Op: op, Reason: fmt.Sprintf(format, args...)}
	s.log(log.NewRejectedEvent(s.turn, s.phase.String(), int(by), op, r.Reason))
	return r
}

func (s *Session) log(event log.GameEvent) {
	s.logger.Log(event)
}
