package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EncounterFile represents the top-level YAML structure of an encounters file.
type EncounterFile struct {
	Encounters []Encounter `yaml:"encounters"`
}

// Encounter is a battle setup: the player's loadout and the enemy roster.
type Encounter struct {
	Name        string      `yaml:"name"`
	HP          int         `yaml:"hp"`
	MaxHP       int         `yaml:"max_hp"`
	Energy      int         `yaml:"energy"`
	Difficulty  int         `yaml:"difficulty"`
	Deck        []CardEntry `yaml:"deck"`
	Enemies     []string    `yaml:"enemies"`
	Supplies    []string    `yaml:"supplies"`
	Consumables []string    `yaml:"consumables"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	Card  string `yaml:"card"`
	Count int    `yaml:"count"`
}

// DeckList expands the deck entries into a flat list of definition ids.
func (e Encounter) DeckList() []string {
	var ids []string
	for _, entry := range e.Deck {
		for i := 0; i < entry.Count; i++ {
			ids = append(ids, entry.Card)
		}
	}
	return ids
}

// ParseEncounterFile reads and decodes a YAML encounters file.
func ParseEncounterFile(path string) (*EncounterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ef EncounterFile
	if err := yaml.Unmarshal(data, &ef); err != nil {
		return nil, fmt.Errorf("parse encounters YAML: %w", err)
	}
	return &ef, nil
}

// ByName returns the named encounter.
func (f *EncounterFile) ByName(name string) (Encounter, error) {
	for _, e := range f.Encounters {
		if e.Name == name {
			return e, nil
		}
	}
	return Encounter{}, fmt.Errorf("encounter %q not found", name)
}

// ByNumber returns the Nth encounter (1-indexed).
func (f *EncounterFile) ByNumber(n int) (Encounter, error) {
	if n < 1 || n > len(f.Encounters) {
		return Encounter{}, fmt.Errorf("encounter %d not found (have %d encounters)", n, len(f.Encounters))
	}
	return f.Encounters[n-1], nil
}

// Validate reports every id in the encounter that the tables do not know.
func (e Encounter) Validate(t *Tables) error {
	for _, entry := range e.Deck {
		if _, ok := t.Card(entry.Card); !ok {
			return fmt.Errorf("encounter %q: unknown card %q", e.Name, entry.Card)
		}
	}
	for _, id := range e.Enemies {
		if _, ok := t.Enemy(id); !ok {
			return fmt.Errorf("encounter %q: unknown enemy %q", e.Name, id)
		}
	}
	return nil
}

// DefaultEncounters is used by the hosts when no encounters file is given.
func DefaultEncounters() *EncounterFile {
	starter := []CardEntry{
		{Card: "strike", Count: 4},
		{Card: "defend", Count: 4},
		{Card: "twin_strike", Count: 1},
		{Card: "iron_wave", Count: 1},
		{Card: "toxic_dart", Count: 1},
		{Card: "expose", Count: 1},
		{Card: "quick_jab", Count: 1},
		{Card: "shrug", Count: 1},
	}
	return &EncounterFile{Encounters: []Encounter{
		{Name: "Slime Pit", HP: 60, MaxHP: 60, Energy: 3, Difficulty: 1, Deck: starter,
			Enemies: []string{"acid_slime", "acid_slime"}},
		{Name: "Cult Gathering", HP: 60, MaxHP: 60, Energy: 3, Difficulty: 1, Deck: starter,
			Enemies: []string{"cultist", "shield_warden"}, Supplies: []string{"war_drum"}},
		{Name: "Nest", HP: 60, MaxHP: 60, Energy: 3, Difficulty: 2, Deck: starter,
			Enemies: []string{"broodmother"}, Consumables: []string{"fire_bomb", "healing_draught"}},
		{Name: "The Archive", HP: 70, MaxHP: 70, Energy: 3, Difficulty: 3, Deck: starter,
			Enemies: []string{"archivist"}, Supplies: []string{"anchor_stone", "bramble_mail"},
			Consumables: []string{"energy_tea"}},
	}}
}
