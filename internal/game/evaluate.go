package game

// Evaluate is the win/loss check. It looks only at battlefield sizes: a side
// with an empty battlefield is defeated.
//
// The opponent is checked first. A single attack can only ever defeat the
// defending side, so the order never decides a real game.
func Evaluate(player, opponent *Side) Status {
	switch {
	case len(opponent.Battlefield) == 0:
		return StatusPlayerWins
	case len(player.Battlefield) == 0:
		return StatusOpponentWins
	}
	return StatusPlaying
}

// EvaluateHealth is the optional health pool check used when the
// health_defeat rule is on. A side whose health is exhausted is defeated.
func EvaluateHealth(player, opponent *Side) Status {
	switch {
	case opponent.Health <= 0:
		return StatusPlayerWins
	case player.Health <= 0:
		return StatusOpponentWins
	}
	return StatusPlaying
}
