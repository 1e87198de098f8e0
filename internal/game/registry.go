package game

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// CardRegistry maps card names to their template constructors.
var CardRegistry = map[string]func() Template{
	// Kingdom
	"Squire":  Squire,
	"Footman": Footman,
	"Archer":  Archer,
	"Pikeman": Pikeman,
	"Captain": Captain,
	"Knight":  Knight,
	// Horde
	"Goblin Raider":   GoblinRaider,
	"Orc Shaman":      OrcShaman,
	"Warg Rider":      WargRider,
	"Goblin Warchief": GoblinWarchief,
	"Orc Brute":       OrcBrute,
	"Troll":           Troll,
}

func Squire() Template {
	return Template{Name: "Squire", Faction: "Kingdom", MaxHealth: 3, Attack: 1, Cost: 1, Bounty: 1,
		Description: "Eager, cheap, and first into the mud."}
}

func Footman() Template {
	return Template{Name: "Footman", Faction: "Kingdom", MaxHealth: 6, Armor: 1, Attack: 2, Cost: 2, Bounty: 1,
		Description: "The backbone of every royal levy."}
}

func Archer() Template {
	return Template{Name: "Archer", Faction: "Kingdom", MaxHealth: 4, Attack: 3, Cost: 2, Bounty: 1,
		Description: "Looses arrows from behind the shield wall."}
}

func Pikeman() Template {
	return Template{Name: "Pikeman", Faction: "Kingdom", MaxHealth: 7, Armor: 1, Attack: 2, Cost: 3, Bounty: 2,
		Keywords: []Keyword{KeywordPiercing}}
}

func Captain() Template {
	return Template{Name: "Captain", Faction: "Kingdom", MaxHealth: 8, Armor: 1, Attack: 3, Cost: 4, Bounty: 2,
		Keywords: []Keyword{KeywordLeadership}}
}

func Knight() Template {
	return Template{Name: "Knight", Faction: "Kingdom", MaxHealth: 10, Armor: 2, Attack: 4, Cost: 5, Bounty: 3,
		Keywords: []Keyword{KeywordFortified}}
}

func GoblinRaider() Template {
	return Template{Name: "Goblin Raider", Faction: "Horde", MaxHealth: 4, Attack: 2, Cost: 1, Bounty: 1,
		Description: "Quick to strike, quicker to flee."}
}

func OrcShaman() Template {
	return Template{Name: "Orc Shaman", Faction: "Horde", MaxHealth: 5, Attack: 2, Cost: 2, Bounty: 2}
}

func WargRider() Template {
	return Template{Name: "Warg Rider", Faction: "Horde", MaxHealth: 6, Attack: 3, Cost: 3, Bounty: 2,
		Keywords: []Keyword{KeywordPiercing}}
}

func GoblinWarchief() Template {
	return Template{Name: "Goblin Warchief", Faction: "Horde", MaxHealth: 7, Armor: 1, Attack: 3, Cost: 4, Bounty: 3,
		Keywords: []Keyword{KeywordLeadership}}
}

func OrcBrute() Template {
	return Template{Name: "Orc Brute", Faction: "Horde", MaxHealth: 9, Armor: 1, Attack: 4, Cost: 4, Bounty: 2}
}

func Troll() Template {
	return Template{Name: "Troll", Faction: "Horde", MaxHealth: 14, Armor: 1, Attack: 5, Cost: 6, Bounty: 4,
		Keywords: []Keyword{KeywordFortified}}
}

// Instantiate stamps a fresh identity onto a template. Every call returns an
// independent instance at full health with its acted-flag cleared.
func Instantiate(t Template) *CardInstance {
	return &CardInstance{
		ID:        uuid.NewString(),
		Name:      t.Name,
		Faction:   t.Faction,
		Health:    t.MaxHealth,
		MaxHealth: t.MaxHealth,
		Armor:     t.Armor,
		Attack:    t.Attack,
		Cost:      t.Cost,
		Bounty:    t.Bounty,
		Keywords:  append([]Keyword(nil), t.Keywords...),
	}
}

// Catalog is the set of templates available to a session.
type Catalog struct {
	templates map[string]Template
}

// NewCatalog returns a catalog holding every template in CardRegistry.
func NewCatalog() *Catalog {
	c := &Catalog{templates: make(map[string]Template, len(CardRegistry))}
	for name, ctor := range CardRegistry {
		c.templates[name] = ctor()
	}
	return c
}

// Add registers or replaces a template.
func (c *Catalog) Add(t Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.Keywords = append([]Keyword(nil), t.Keywords...)
	c.templates[t.Name] = t
	return nil
}

func (c *Catalog) clone() *Catalog {
	out := &Catalog{templates: make(map[string]Template, len(c.templates))}
	for name, t := range c.templates {
		out.templates[name] = t
	}
	return out
}

// Lookup returns the template registered under name.
func (c *Catalog) Lookup(name string) (Template, bool) {
	t, ok := c.templates[name]
	return t, ok
}

// MustInstantiate instances a card by name.
// Panics if the card is not found.
func (c *Catalog) MustInstantiate(name string) *CardInstance {
	t, ok := c.templates[name]
	if !ok {
		panic(fmt.Sprintf("card not found in catalog: %q", name))
	}
	return Instantiate(t)
}

// Names returns all template names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Templates returns all templates sorted by name.
func (c *Catalog) Templates() []Template {
	var out []Template
	for _, name := range c.Names() {
		out = append(out, c.templates[name])
	}
	return out
}
