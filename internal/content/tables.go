// Package content holds the static definitions the battle engine consumes by
// identifier: cards, statuses, enemies, supplies and consumables. Tables are
// built once at startup and only read afterwards.
package content

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tables is the read-only content lookup.
type Tables struct {
	cards       map[string]CardDef
	statuses    map[string]StatusDef
	enemies     map[string]EnemyDef
	supplies    map[string]SupplyDef
	consumables map[string]ConsumableDef
}

// File is the YAML shape of a content file.
type File struct {
	Cards       []CardDef       `yaml:"cards"`
	Statuses    []StatusDef     `yaml:"statuses"`
	Enemies     []EnemyDef      `yaml:"enemies"`
	Supplies    []SupplyDef     `yaml:"supplies"`
	Consumables []ConsumableDef `yaml:"consumables"`
}

// NewTables builds tables from the given file contents. Later entries with
// the same id replace earlier ones.
func NewTables(files ...File) *Tables {
	t := &Tables{
		cards:       make(map[string]CardDef),
		statuses:    make(map[string]StatusDef),
		enemies:     make(map[string]EnemyDef),
		supplies:    make(map[string]SupplyDef),
		consumables: make(map[string]ConsumableDef),
	}
	for _, f := range files {
		for _, c := range f.Cards {
			if c.ID != "" {
				t.cards[c.ID] = c
			}
		}
		for _, s := range f.Statuses {
			if s.ID != "" {
				t.statuses[s.ID] = s
			}
		}
		for _, e := range f.Enemies {
			if e.ID != "" {
				t.enemies[e.ID] = e
			}
		}
		for _, s := range f.Supplies {
			if s.ID != "" {
				t.supplies[s.ID] = s
			}
		}
		for _, c := range f.Consumables {
			if c.ID != "" {
				t.consumables[c.ID] = c
			}
		}
	}
	return t
}

// ParseFile decodes a YAML content file.
func ParseFile(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse content YAML: %w", err)
	}
	return f, nil
}

// Load reads a YAML content file and layers it over the built-in content.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseFile(data)
	if err != nil {
		return nil, err
	}
	return NewTables(BuiltinFile(), f), nil
}

// DefID returns the definition id of a card instance id ("strike#3" → "strike").
func DefID(cardID string) string {
	if i := strings.IndexByte(cardID, '#'); i >= 0 {
		return cardID[:i]
	}
	return cardID
}

// Card looks up a card definition by definition or instance id.
func (t *Tables) Card(id string) (CardDef, bool) {
	if t == nil {
		return CardDef{}, false
	}
	c, ok := t.cards[DefID(id)]
	return c, ok
}

func (t *Tables) Status(id string) (StatusDef, bool) {
	if t == nil {
		return StatusDef{}, false
	}
	s, ok := t.statuses[id]
	return s, ok
}

// Enemy looks up an enemy definition by definition or instance id.
func (t *Tables) Enemy(id string) (EnemyDef, bool) {
	if t == nil {
		return EnemyDef{}, false
	}
	e, ok := t.enemies[DefID(id)]
	return e, ok
}

func (t *Tables) Supply(id string) (SupplyDef, bool) {
	if t == nil {
		return SupplyDef{}, false
	}
	s, ok := t.supplies[id]
	return s, ok
}

func (t *Tables) Consumable(id string) (ConsumableDef, bool) {
	if t == nil {
		return ConsumableDef{}, false
	}
	c, ok := t.consumables[id]
	return c, ok
}

// IsDebuff reports whether a status is classed as a debuff.
func (t *Tables) IsDebuff(id string) bool {
	s, ok := t.Status(id)
	return ok && s.Class == ClassDebuff
}

// IsBuff reports whether a status is classed as a buff.
func (t *Tables) IsBuff(id string) bool {
	s, ok := t.Status(id)
	return ok && s.Class == ClassBuff
}

// CardIDs returns all card definition ids, sorted.
func (t *Tables) CardIDs() []string {
	ids := make([]string, 0, len(t.cards))
	for id := range t.cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnemyIDs returns all enemy definition ids, sorted.
func (t *Tables) EnemyIDs() []string {
	ids := make([]string, 0, len(t.enemies))
	for id := range t.enemies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
