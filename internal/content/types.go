package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- Cards ---

type CardType int

const (
	CardAttack CardType = iota
	CardBlock
	CardSkill
	CardCurse
)

func (ct CardType) String() string {
	switch ct {
	case CardAttack:
		return "Attack"
	case CardBlock:
		return "Block"
	case CardSkill:
		return "Skill"
	case CardCurse:
		return "Curse"
	default:
		return "Unknown"
	}
}

func (ct *CardType) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(node.Value) {
	case "attack":
		*ct = CardAttack
	case "block":
		*ct = CardBlock
	case "skill", "":
		*ct = CardSkill
	case "curse":
		*ct = CardCurse
	default:
		return fmt.Errorf("line %d: unknown card type %q", node.Line, node.Value)
	}
	return nil
}

// EffectKind selects how a card resolves. Unknown kinds load as EffectUnknown
// and resolve to nothing.
type EffectKind int

const (
	EffectUnknown EffectKind = iota
	EffectDamage
	EffectMultiHit
	EffectPierce
	EffectDamageAll
	EffectDamageFromResource
	EffectBlock
	EffectBlockDraw
	EffectBlockDamage
	EffectSpendEnergyBlock
	EffectSpendEnergyDamage
	EffectHeal
	EffectHealFromPoison
	EffectDraw
	EffectGainMaxEnergy
	EffectGainStrength
	EffectDoubleStrength
	EffectDoubleBlock
	EffectDoubleNextAttack
	EffectCleanse
	EffectApplyPoison
	EffectApplyVulnerable
	EffectApplyWeak
	EffectDoublePoison
	EffectMulligan
	EffectGainRegen
	EffectNone
)

var effectKindNames = map[EffectKind]string{
	EffectDamage:             "damage",
	EffectMultiHit:           "multi_hit",
	EffectPierce:             "pierce",
	EffectDamageAll:          "damage_all",
	EffectDamageFromResource: "damage_from_resource",
	EffectBlock:              "block",
	EffectBlockDraw:          "block_draw",
	EffectBlockDamage:        "block_damage",
	EffectSpendEnergyBlock:   "spend_energy_block",
	EffectSpendEnergyDamage:  "spend_energy_damage",
	EffectHeal:               "heal",
	EffectHealFromPoison:     "heal_from_poison",
	EffectDraw:               "draw",
	EffectGainMaxEnergy:      "gain_max_energy",
	EffectGainStrength:       "gain_strength",
	EffectDoubleStrength:     "double_strength",
	EffectDoubleBlock:        "double_block",
	EffectDoubleNextAttack:   "double_next_attack",
	EffectCleanse:            "cleanse",
	EffectApplyPoison:        "apply_poison",
	EffectApplyVulnerable:    "apply_vulnerable",
	EffectApplyWeak:          "apply_weak",
	EffectDoublePoison:       "double_poison",
	EffectMulligan:           "mulligan",
	EffectGainRegen:          "gain_regen",
	EffectNone:               "none",
}

func (k EffectKind) String() string {
	if name, ok := effectKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseEffectKind maps a content name to a kind. Unrecognized names map to
// EffectUnknown.
func ParseEffectKind(s string) EffectKind {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range effectKindNames {
		if name == s {
			return k
		}
	}
	return EffectUnknown
}

func (k *EffectKind) UnmarshalYAML(node *yaml.Node) error {
	*k = ParseEffectKind(node.Value)
	return nil
}

// IsAttack reports whether the effect deals damage and so consumes empower.
func (k EffectKind) IsAttack() bool {
	switch k {
	case EffectDamage, EffectMultiHit, EffectPierce, EffectDamageAll,
		EffectDamageFromResource, EffectBlockDamage, EffectSpendEnergyDamage:
		return true
	}
	return false
}

// Effect is the parameter record of a card effect. Which fields matter
// depends on Kind.
type Effect struct {
	Kind     EffectKind `yaml:"kind" json:"kind"`
	Amount   int        `yaml:"amount,omitempty" json:"amount,omitempty"`
	Hits     int        `yaml:"hits,omitempty" json:"hits,omitempty"`
	Block    int        `yaml:"block,omitempty" json:"block,omitempty"`
	Draw     int        `yaml:"draw,omitempty" json:"draw,omitempty"`
	Resource string     `yaml:"resource,omitempty" json:"resource,omitempty"` // block, energy, hand, strength
}

// CardDef is a static card definition.
type CardDef struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Cost        int      `yaml:"cost"`
	Type        CardType `yaml:"type"`
	Effect      Effect   `yaml:"effect"`

	// Exhaust sends the card to the exhaust pile after it resolves.
	Exhaust bool `yaml:"exhaust"`
	// Ethereal cards exhaust from hand at the end of the player's turn.
	Ethereal bool `yaml:"ethereal"`
	// Unplayable cards can never be played from hand.
	Unplayable bool `yaml:"unplayable"`
	// Instant cards resolve without a question.
	Instant bool `yaml:"instant"`
	// MustAnswer cards block every other play while in hand and return to
	// hand on a wrong answer.
	MustAnswer bool `yaml:"must_answer"`
}

func (c CardDef) String() string {
	return c.Name
}

// --- Statuses ---

const (
	StatusStrength   = "strength"
	StatusWeak       = "weak"
	StatusVulnerable = "vulnerable"
	StatusPoison     = "poison"
	StatusRegen      = "regen"
	StatusEmpower    = "empower"
)

type Stacking int

const (
	StackAdditive Stacking = iota
	StackRefresh
	StackNone
)

func (s *Stacking) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(node.Value) {
	case "additive", "":
		*s = StackAdditive
	case "refresh":
		*s = StackRefresh
	case "none":
		*s = StackNone
	default:
		return fmt.Errorf("line %d: unknown stacking %q", node.Line, node.Value)
	}
	return nil
}

type StatusClass int

const (
	ClassNeutral StatusClass = iota
	ClassBuff
	ClassDebuff
)

func (c *StatusClass) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(node.Value) {
	case "neutral", "":
		*c = ClassNeutral
	case "buff":
		*c = ClassBuff
	case "debuff":
		*c = ClassDebuff
	default:
		return fmt.Errorf("line %d: unknown status class %q", node.Line, node.Value)
	}
	return nil
}

// StatusDef is presentational apart from Stacking and Class.
type StatusDef struct {
	ID       string      `yaml:"id"`
	Label    string      `yaml:"label"`
	Icon     string      `yaml:"icon"`
	Stacking Stacking    `yaml:"stacking"`
	Class    StatusClass `yaml:"class"`
}

// --- Enemies ---

type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentAttack
	IntentBlock
	IntentDebuff
	IntentBuff
	IntentHeal
	IntentSummon
	IntentAddCard
	IntentEraseBuffs
	IntentConsumeMinions
	IntentExhaustCard
	IntentForceQuestion
	IntentCleanse
)

var intentKindNames = map[IntentKind]string{
	IntentAttack:         "attack",
	IntentBlock:          "block",
	IntentDebuff:         "debuff",
	IntentBuff:           "buff",
	IntentHeal:           "heal",
	IntentSummon:         "summon",
	IntentAddCard:        "add_card",
	IntentEraseBuffs:     "erase_buffs",
	IntentConsumeMinions: "consume_minions",
	IntentExhaustCard:    "exhaust_card",
	IntentForceQuestion:  "force_question",
	IntentCleanse:        "cleanse",
}

func (k IntentKind) String() string {
	if name, ok := intentKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func ParseIntentKind(s string) IntentKind {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range intentKindNames {
		if name == s {
			return k
		}
	}
	return IntentUnknown
}

func (k *IntentKind) UnmarshalYAML(node *yaml.Node) error {
	*k = ParseIntentKind(node.Value)
	return nil
}

// Intent is a declared enemy action. Which fields matter depends on Kind.
type Intent struct {
	Kind   IntentKind `yaml:"kind" json:"kind"`
	Amount int        `yaml:"amount,omitempty" json:"amount,omitempty"`
	Hits   int        `yaml:"hits,omitempty" json:"hits,omitempty"`
	Count  int        `yaml:"count,omitempty" json:"count,omitempty"`
	Status string     `yaml:"status,omitempty" json:"status,omitempty"`
	Card   string     `yaml:"card,omitempty" json:"card,omitempty"`
	Enemy  string     `yaml:"enemy,omitempty" json:"enemy,omitempty"`
	Pile   string     `yaml:"pile,omitempty" json:"pile,omitempty"` // draw, discard, hand
}

// Move is one selectable enemy action: one or more simultaneous intents.
type Move struct {
	ID       string   `yaml:"id"`
	Category string   `yaml:"category"`
	Weight   float64  `yaml:"weight"`
	Intents  []Intent `yaml:"intents"`
}

// CategoryOf returns the category used by the no-repeat rule: the declared
// category, else the kind of the first intent.
func (m Move) CategoryOf() string {
	if m.Category != "" {
		return m.Category
	}
	if len(m.Intents) > 0 {
		return m.Intents[0].Kind.String()
	}
	return m.ID
}

// Phase switches an enemy onto a keyed sequence once its HP percentage is
// at or below Threshold.
type Phase struct {
	Threshold int    `yaml:"threshold"`
	Sequence  string `yaml:"sequence"`
}

// Behavior drives intent selection.
type Behavior struct {
	Moves          []Move              `yaml:"moves"`
	NoRepeat       bool                `yaml:"no_repeat"`
	IntentsPerTurn int                 `yaml:"intents_per_turn"`
	Sequence       []string            `yaml:"sequence"`
	Sequences      map[string][]string `yaml:"sequences"`
	Phases         []Phase             `yaml:"phases"`
}

// Move looks up a move by id.
func (b Behavior) Move(id string) (Move, bool) {
	for _, m := range b.Moves {
		if m.ID == id {
			return m, true
		}
	}
	return Move{}, false
}

const (
	ThresholdBlock      = "block"
	ThresholdStripBuffs = "strip_buffs"
	ThresholdClone      = "clone"
)

// Threshold is a one-shot reaction that fires the first time HP drops to or
// below HP.
type Threshold struct {
	HP     int    `yaml:"hp"`
	Action string `yaml:"action"`
	Amount int    `yaml:"amount"`
}

// EnemyDef is a static enemy definition.
type EnemyDef struct {
	ID           string     `yaml:"id"`
	Name         string     `yaml:"name"`
	MaxHP        int        `yaml:"max_hp"`
	Block        int        `yaml:"block"`
	Behavior     Behavior   `yaml:"behavior"`
	PoisonImmune bool       `yaml:"poison_immune"`
	Guard        bool       `yaml:"guard"`
	Threshold    *Threshold `yaml:"threshold"`
	// Escalation raises the summoner's future summon count each time this
	// enemy acts.
	Escalation int `yaml:"escalation"`
}

// --- Supplies & consumables ---

type SupplyDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type ConsumableDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Targeted    bool   `yaml:"targeted"`
}
