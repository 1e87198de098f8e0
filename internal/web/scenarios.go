package web

import "github.com/peterkuimelis/skirmish/internal/game"

// ScenarioInfo is the JSON representation of a scenario for the /api/scenarios endpoint.
type ScenarioInfo struct {
	Index        int      `json:"index"`
	Name         string   `json:"name"`
	First        string   `json:"first"`
	PlayerGold   int      `json:"playerGold"`
	OpponentGold int      `json:"opponentGold"`
	Player       []string `json:"player"`
	Opponent     []string `json:"opponent"`
}

func scenarioInfo(i int, sc game.Scenario) ScenarioInfo {
	return ScenarioInfo{
		Index:        i,
		Name:         sc.Name,
		First:        sc.First.String(),
		PlayerGold:   sc.PlayerGold,
		OpponentGold: sc.OpponentGold,
		Player:       uniqueNames(sc.PlayerRoster, sc.PlayerHand, sc.PlayerDeck),
		Opponent:     uniqueNames(sc.OpponentRoster, sc.OpponentHand, sc.OpponentDeck),
	}
}

// uniqueNames lists each card name once, in first-seen order.
func uniqueNames(lists ...[]string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, list := range lists {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
