package game

import "github.com/peterkuimelis/skirmish/internal/log"

// EffectHook lets keyword abilities adjust combat. The resolver consults it on
// every attack; NoEffects leaves the base damage law untouched.
type EffectHook interface {
	// AttackBonus is added to the attacker's attack. allies is the attacker's battlefield.
	AttackBonus(attacker *CardInstance, allies []*CardInstance) int
	// ArmorBonus is added to the defender's armor.
	ArmorBonus(defender *CardInstance) int
	// IgnoresArmor reports whether the attacker bypasses armor entirely.
	IgnoresArmor(attacker *CardInstance) bool
}

// NoEffects resolves keywords as labels only.
type NoEffects struct{}

func (NoEffects) AttackBonus(*CardInstance, []*CardInstance) int { return 0 }
func (NoEffects) ArmorBonus(*CardInstance) int                   { return 0 }
func (NoEffects) IgnoresArmor(*CardInstance) bool                { return false }

// KeywordEffects applies the rules text of each Keyword.
type KeywordEffects struct{}

func (KeywordEffects) AttackBonus(attacker *CardInstance, allies []*CardInstance) int {
	if !attacker.HasKeyword(KeywordLeadership) {
		return 0
	}
	bonus := 0
	for _, a := range allies {
		if a.ID != attacker.ID && a.HasKeyword(KeywordLeadership) {
			bonus++
		}
	}
	return bonus
}

func (KeywordEffects) ArmorBonus(defender *CardInstance) int {
	if defender.HasKeyword(KeywordFortified) {
		return 1
	}
	return 0
}

func (KeywordEffects) IgnoresArmor(attacker *CardInstance) bool {
	return attacker.HasKeyword(KeywordPiercing)
}

// EffectiveAttack returns the attacker's attack after keyword bonuses.
func EffectiveAttack(attacker *CardInstance, allies []*CardInstance, hook EffectHook) int {
	atk := attacker.Attack + hook.AttackBonus(attacker, allies)
	if atk < 0 {
		atk = 0
	}
	return atk
}

// Damage is the single damage law: max(0, attack - armor).
func Damage(attacker, target *CardInstance, allies []*CardInstance, hook EffectHook) int {
	armor := target.Armor + hook.ArmorBonus(target)
	if hook.IgnoresArmor(attacker) {
		armor = 0
	}
	return max(0, EffectiveAttack(attacker, allies, hook)-armor)
}

// resolveAttack applies one unit-versus-unit attack for side by.
func (s *Session) resolveAttack(by SideID, attacker *CardInstance, targetID string) (AttackResult, error) {
	own := s.sides[by]
	enemy := s.sides[by.Other()]

	if attacker.Acted {
		return AttackResult{}, s.reject(by, "attack", "%s has already acted this turn", attacker.Name)
	}
	target := enemy.BattlefieldCard(targetID)
	if target == nil {
		return AttackResult{}, s.reject(by, "attack", "target %q is not on the opposing battlefield", targetID)
	}

	dmg := Damage(attacker, target, own.Battlefield, s.hook)
	oldHP := target.Health
	target.Health = max(0, oldHP-dmg)
	attacker.Acted = true

	phase := s.phase.String()
	s.log(log.NewAttackDeclareEvent(s.turn, phase, int(by), attacker.Name, target.Name))
	s.log(log.NewDamageEvent(s.turn, phase, int(by.Other()), target.Name, dmg, oldHP, target.Health))

	res := AttackResult{Attacker: attacker.ID, Target: target.ID, Damage: dmg}
	if target.Defeated() {
		enemy.RemoveFromBattlefield(target.ID)
		res.Defeated = true
		res.Bounty = target.Bounty
		s.log(log.NewDefeatEvent(s.turn, phase, int(by.Other()), target.Name))
		s.addGold(by, target.Bounty, "defeated "+target.Name)
	}
	return res, nil
}

// resolveDirect applies an attack on the opposing side's health pool.
// Armor does not apply and no gold is awarded.
func (s *Session) resolveDirect(by SideID, attacker *CardInstance) (AttackResult, error) {
	if attacker.Acted {
		return AttackResult{}, s.reject(by, "attack", "%s has already acted this turn", attacker.Name)
	}
	if !s.healthPools() {
		return AttackResult{}, s.reject(by, "attack", "direct attacks are disabled")
	}
	enemy := s.sides[by.Other()]

	dmg := EffectiveAttack(attacker, s.sides[by].Battlefield, s.hook)
	oldHP := enemy.Health
	enemy.Health = max(0, oldHP-dmg)
	attacker.Acted = true

	phase := s.phase.String()
	s.log(log.NewDirectAttackDeclareEvent(s.turn, phase, int(by), attacker.Name))
	s.log(log.NewHealthChangeEvent(s.turn, phase, int(by.Other()), oldHP, enemy.Health, "direct attack by "+attacker.Name))

	return AttackResult{Attacker: attacker.ID, Target: OpponentSide, Direct: true, Damage: dmg}, nil
}
