package content

// Builtin returns tables holding only the stock content.
func Builtin() *Tables {
	return NewTables(BuiltinFile())
}

// BuiltinFile returns the stock content as a File, so YAML files can be
// layered over it.
func BuiltinFile() File {
	return File{
		Cards:       builtinCards(),
		Statuses:    builtinStatuses(),
		Enemies:     builtinEnemies(),
		Supplies:    builtinSupplies(),
		Consumables: builtinConsumables(),
	}
}

func attackCard(id, name string, cost int, eff Effect, desc string) CardDef {
	return CardDef{ID: id, Name: name, Cost: cost, Type: CardAttack, Effect: eff, Description: desc}
}

func blockCard(id, name string, cost int, eff Effect, desc string) CardDef {
	return CardDef{ID: id, Name: name, Cost: cost, Type: CardBlock, Effect: eff, Description: desc}
}

func skillCard(id, name string, cost int, eff Effect, desc string) CardDef {
	return CardDef{ID: id, Name: name, Cost: cost, Type: CardSkill, Effect: eff, Description: desc}
}

func exhausting(c CardDef) CardDef {
	c.Exhaust = true
	return c
}

func instant(c CardDef) CardDef {
	c.Instant = true
	return c
}

func builtinCards() []CardDef {
	return []CardDef{
		attackCard("strike", "Strike", 1, Effect{Kind: EffectDamage, Amount: 6}, "Deal 6 damage."),
		blockCard("defend", "Defend", 1, Effect{Kind: EffectBlock, Amount: 5}, "Gain 5 block."),
		attackCard("twin_strike", "Twin Strike", 1, Effect{Kind: EffectMultiHit, Amount: 3, Hits: 2}, "Deal 3 damage twice."),
		attackCard("piercing_shot", "Piercing Shot", 1, Effect{Kind: EffectPierce, Amount: 7}, "Deal 7 damage, ignoring block."),
		attackCard("cleave", "Cleave", 1, Effect{Kind: EffectDamageAll, Amount: 8}, "Deal 8 damage to all enemies."),
		attackCard("body_slam", "Body Slam", 1, Effect{Kind: EffectDamageFromResource, Resource: "block"}, "Deal damage equal to your block."),
		blockCard("shrug", "Shrug It Off", 1, Effect{Kind: EffectBlockDraw, Amount: 8, Draw: 1}, "Gain 8 block. Draw 1 card."),
		attackCard("iron_wave", "Iron Wave", 1, Effect{Kind: EffectBlockDamage, Amount: 5, Block: 5}, "Gain 5 block. Deal 5 damage."),
		blockCard("bulwark", "Bulwark", 0, Effect{Kind: EffectSpendEnergyBlock, Amount: 5}, "Spend all energy. Gain 5 block per energy."),
		attackCard("whirlwind", "Whirlwind", 0, Effect{Kind: EffectSpendEnergyDamage, Amount: 5}, "Spend all energy. Deal 5 damage per energy."),
		exhausting(skillCard("bandage", "Bandage", 1, Effect{Kind: EffectHeal, Amount: 6}, "Heal 6 HP. Exhaust.")),
		skillCard("leech_toxin", "Leech Toxin", 1, Effect{Kind: EffectHealFromPoison, Amount: 1}, "Heal HP equal to the target's poison."),
		skillCard("study", "Study", 1, Effect{Kind: EffectDraw, Draw: 2}, "Draw 2 cards."),
		exhausting(skillCard("insight", "Insight", 2, Effect{Kind: EffectGainMaxEnergy, Amount: 1}, "Gain 1 max energy. Exhaust.")),
		skillCard("inflame", "Inflame", 1, Effect{Kind: EffectGainStrength, Amount: 2}, "Gain 2 strength."),
		exhausting(skillCard("limit_break", "Limit Break", 1, Effect{Kind: EffectDoubleStrength}, "Double your strength. Exhaust.")),
		blockCard("entrench", "Entrench", 2, Effect{Kind: EffectDoubleBlock}, "Double your block."),
		skillCard("empower", "Empower", 1, Effect{Kind: EffectDoubleNextAttack}, "Your next attack deals double damage."),
		exhausting(skillCard("purify", "Purify", 0, Effect{Kind: EffectCleanse}, "Remove a random debuff. Exhaust.")),
		skillCard("toxic_dart", "Toxic Dart", 1, Effect{Kind: EffectApplyPoison, Amount: 5}, "Apply 5 poison."),
		skillCard("expose", "Expose", 1, Effect{Kind: EffectApplyVulnerable, Amount: 2}, "Apply 2 vulnerable."),
		skillCard("sap", "Sap", 1, Effect{Kind: EffectApplyWeak, Amount: 2}, "Apply 2 weak."),
		exhausting(skillCard("catalyst", "Catalyst", 1, Effect{Kind: EffectDoublePoison}, "Double the target's poison. Exhaust.")),
		skillCard("rethink", "Rethink", 0, Effect{Kind: EffectMulligan, Amount: 2, Draw: 2}, "Discard 2 cards, then draw 2."),
		exhausting(skillCard("mend", "Mend", 1, Effect{Kind: EffectGainRegen, Amount: 4}, "Gain 4 regen. Exhaust.")),
		instant(attackCard("quick_jab", "Quick Jab", 0, Effect{Kind: EffectDamage, Amount: 3}, "Deal 3 damage. No question.")),
		instant(skillCard("focus", "Focus", 0, Effect{Kind: EffectDraw, Draw: 1}, "Draw 1 card. No question.")),

		// Negative cards enemies shuffle in.
		{ID: "dazed", Name: "Dazed", Type: CardCurse, Unplayable: true, Ethereal: true,
			Effect: Effect{Kind: EffectNone}, Description: "Unplayable. Exhausts at end of turn."},
		{ID: "slimed", Name: "Slimed", Type: CardCurse, Cost: 1, Exhaust: true, Instant: true,
			Effect: Effect{Kind: EffectNone}, Description: "Exhaust."},
		{ID: "pop_quiz", Name: "Pop Quiz", Type: CardCurse, Cost: 0, Exhaust: true, MustAnswer: true,
			Effect: Effect{Kind: EffectNone}, Description: "Must be answered before any other card."},
	}
}

func builtinStatuses() []StatusDef {
	return []StatusDef{
		{ID: StatusStrength, Label: "Strength", Icon: "💪", Class: ClassBuff},
		{ID: StatusWeak, Label: "Weak", Icon: "🥀", Class: ClassDebuff},
		{ID: StatusVulnerable, Label: "Vulnerable", Icon: "💔", Class: ClassDebuff},
		{ID: StatusPoison, Label: "Poison", Icon: "☠", Class: ClassDebuff},
		{ID: StatusRegen, Label: "Regen", Icon: "✚", Class: ClassBuff},
		{ID: StatusEmpower, Label: "Empower", Icon: "⚡", Class: ClassBuff, Stacking: StackNone},
	}
}

func attack(amount, hits int) Intent {
	return Intent{Kind: IntentAttack, Amount: amount, Hits: hits}
}

func move(id string, weight float64, intents ...Intent) Move {
	return Move{ID: id, Weight: weight, Intents: intents}
}

func builtinEnemies() []EnemyDef {
	return []EnemyDef{
		{
			ID: "acid_slime", Name: "Acid Slime", MaxHP: 30,
			Behavior: Behavior{
				NoRepeat: true,
				Moves: []Move{
					move("tackle", 3, attack(7, 1)),
					{ID: "corrode", Category: "debuff", Weight: 2, Intents: []Intent{
						attack(5, 1), {Kind: IntentDebuff, Status: StatusWeak, Amount: 1},
					}},
					move("spit", 1, Intent{Kind: IntentAddCard, Card: "slimed", Count: 1, Pile: "discard"}),
				},
			},
		},
		{
			ID: "cultist", Name: "Cultist", MaxHP: 40,
			Behavior: Behavior{
				Moves: []Move{
					move("incantation", 1, Intent{Kind: IntentBuff, Status: StatusStrength, Amount: 3}),
					move("dark_strike", 1, attack(6, 1)),
				},
				Sequence: []string{"incantation", "dark_strike", "dark_strike"},
			},
		},
		{
			ID: "twin_fang", Name: "Twin Fang", MaxHP: 42,
			Behavior: Behavior{
				NoRepeat:       true,
				IntentsPerTurn: 2,
				Moves: []Move{
					move("bite", 3, attack(6, 1)),
					move("growl", 1, Intent{Kind: IntentBuff, Status: StatusStrength, Amount: 2}),
					move("hunker", 2, Intent{Kind: IntentBlock, Amount: 6}),
				},
			},
		},
		{
			ID: "shield_warden", Name: "Shield Warden", MaxHP: 36, Guard: true,
			Behavior: Behavior{
				Moves: []Move{
					move("fortify", 2, Intent{Kind: IntentBlock, Amount: 8}),
					move("bash", 1, attack(8, 1)),
				},
			},
		},
		{
			ID: "broodmother", Name: "Broodmother", MaxHP: 55,
			Behavior: Behavior{
				Moves: []Move{
					move("spawn", 1, Intent{Kind: IntentSummon, Enemy: "spiderling", Count: 1}),
					move("bite", 1, attack(8, 1)),
					move("devour", 1, Intent{Kind: IntentConsumeMinions}),
				},
				Sequence: []string{"spawn", "bite", "spawn", "devour"},
			},
		},
		{
			ID: "spiderling", Name: "Spiderling", MaxHP: 8, Escalation: 1,
			Behavior: Behavior{
				Moves: []Move{move("nibble", 1, attack(3, 1))},
			},
		},
		{
			ID: "mirror_golem", Name: "Mirror Golem", MaxHP: 50,
			Threshold: &Threshold{HP: 25, Action: ThresholdClone},
			Behavior: Behavior{
				NoRepeat: true,
				Moves: []Move{
					move("slam", 2, attack(9, 1)),
					move("harden", 1, Intent{Kind: IntentBlock, Amount: 7}),
				},
			},
		},
		{
			ID: "sentinel", Name: "Sentinel", MaxHP: 45,
			Threshold: &Threshold{HP: 20, Action: ThresholdBlock, Amount: 15},
			Behavior: Behavior{
				Moves: []Move{
					move("beam", 1, attack(10, 1)),
					move("barrier", 1, Intent{Kind: IntentBlock, Amount: 10}),
				},
				Sequence: []string{"beam", "barrier"},
			},
		},
		{
			ID: "hexer", Name: "Hexer", MaxHP: 38,
			Threshold: &Threshold{HP: 15, Action: ThresholdStripBuffs},
			Behavior: Behavior{
				NoRepeat: true,
				Moves: []Move{
					move("curse", 2, Intent{Kind: IntentDebuff, Status: StatusVulnerable, Amount: 2}),
					move("hex", 1, Intent{Kind: IntentEraseBuffs}),
					move("zap", 2, attack(7, 1)),
					move("daze", 1, Intent{Kind: IntentAddCard, Card: "dazed", Count: 2, Pile: "draw"}),
				},
			},
		},
		{
			ID: "thornback", Name: "Thornback", MaxHP: 40, PoisonImmune: true,
			Behavior: Behavior{
				NoRepeat: true,
				Moves: []Move{
					move("quills", 2, attack(3, 3)),
					move("shed", 1, Intent{Kind: IntentCleanse}, Intent{Kind: IntentBlock, Amount: 5}),
					move("venom", 1, Intent{Kind: IntentDebuff, Status: StatusPoison, Amount: 3}),
				},
			},
		},
		{
			ID: "archivist", Name: "The Archivist", MaxHP: 120,
			Behavior: Behavior{
				Moves: []Move{
					move("lecture", 1, Intent{Kind: IntentForceQuestion, Amount: 15}),
					move("strike", 1, attack(10, 1)),
					move("ward", 1, Intent{Kind: IntentBlock, Amount: 12}),
					move("barrage", 1, attack(6, 3)),
					move("shred", 1, Intent{Kind: IntentExhaustCard, Count: 1}, attack(8, 1)),
					move("mend", 1, Intent{Kind: IntentHeal, Amount: 10}),
				},
				Sequences: map[string][]string{
					"calm":   {"lecture", "strike", "ward"},
					"frenzy": {"barrage", "shred", "lecture", "mend"},
				},
				Phases: []Phase{
					{Threshold: 100, Sequence: "calm"},
					{Threshold: 50, Sequence: "frenzy"},
				},
			},
		},
	}
}

func builtinSupplies() []SupplyDef {
	return []SupplyDef{
		{ID: "war_drum", Name: "War Drum", Description: "Start each battle with 1 strength."},
		{ID: "anchor_stone", Name: "Anchor Stone", Description: "Start each battle with 10 block."},
		{ID: "oil_lamp", Name: "Oil Lamp", Description: "Gain 1 energy on the first turn of each battle."},
		{ID: "bramble_mail", Name: "Bramble Mail", Description: "Half of the damage you block is dealt back to the attacker."},
		{ID: "stone_wall", Name: "Stone Wall", Description: "Block is not removed at the start of your turn."},
		{ID: "quill", Name: "Quill", Description: "Draw 1 extra card at the start of each turn."},
		{ID: "herbal_pouch", Name: "Herbal Pouch", Description: "Heal 6 HP after each battle."},
		{ID: "lucky_coin", Name: "Lucky Coin", Description: "Gain 25% more gold."},
		{ID: "merchant_map", Name: "Merchant Map", Description: "Shops and rewards offer 1 more choice."},
	}
}

func builtinConsumables() []ConsumableDef {
	return []ConsumableDef{
		{ID: "healing_draught", Name: "Healing Draught", Description: "Heal 15 HP."},
		{ID: "fire_bomb", Name: "Fire Bomb", Description: "Deal 20 damage to an enemy.", Targeted: true},
		{ID: "iron_tonic", Name: "Iron Tonic", Description: "Gain 2 strength."},
		{ID: "swift_elixir", Name: "Swift Elixir", Description: "Draw 2 cards."},
		{ID: "poison_vial", Name: "Poison Vial", Description: "Apply 6 poison to an enemy.", Targeted: true},
		{ID: "energy_tea", Name: "Energy Tea", Description: "Gain 2 energy."},
	}
}
