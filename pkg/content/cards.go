package content

var allCards = []Card{
	// Shared basics.
	{ID: "strike", Name: "Strike", Text: "Deal 6 damage."},
	{ID: "guard", Name: "Guard", Text: "Gain 5 block."},
	{ID: "quick_jab", Name: "Quick Jab", Text: "Deal 3 damage. Draw a card."},

	// Species cards.
	{ID: "ember_swipe", Name: "Ember Swipe", Text: "Deal 5 damage. Apply 1 burn."},
	{ID: "cinder_roar", Name: "Cinder Roar", Text: "Deal 4 damage to all enemies."},
	{ID: "flame_burst", Name: "Flame Burst", Text: "Deal 10 damage. Apply 2 burn."},
	{ID: "vine_lash", Name: "Vine Lash", Text: "Deal 5 damage. Root the target."},
	{ID: "thorn_guard", Name: "Thorn Guard", Text: "Gain 6 block. Attackers take 2."},
	{ID: "overgrowth", Name: "Overgrowth", Text: "Heal 4. Gain 4 block."},
	{ID: "tide_surge", Name: "Tide Surge", Text: "Deal 6 damage. Push the target back."},
	{ID: "bubble_veil", Name: "Bubble Veil", Text: "Gain 5 block. Cleanse burn."},
	{ID: "riptide", Name: "Riptide", Text: "Deal 8 damage to the front row."},
	{ID: "static_bite", Name: "Static Bite", Text: "Deal 5 damage. Apply 1 stun charge."},
	{ID: "volt_rush", Name: "Volt Rush", Text: "Deal 7 damage. Gain 1 energy next turn."},
	{ID: "storm_call", Name: "Storm Call", Text: "Deal 5 damage to all enemies. Apply 1 stun charge."},
	{ID: "gust_slash", Name: "Gust Slash", Text: "Deal 5 damage twice."},
	{ID: "tailwind", Name: "Tailwind", Text: "Draw 2 cards. Gain 3 block."},
	{ID: "stone_wall", Name: "Stone Wall", Text: "Gain 9 block."},
	{ID: "landslide", Name: "Landslide", Text: "Deal 9 damage to the front row."},
	{ID: "moth_dust", Name: "Moth Dust", Text: "Apply 2 sleep dust to an enemy."},
	{ID: "shimmer_veil", Name: "Shimmer Veil", Text: "All allies gain 3 block."},
	{ID: "shadow_feint", Name: "Shadow Feint", Text: "Deal 6 damage. Swap rows."},
	{ID: "dusk_veil", Name: "Dusk Veil", Text: "Become untargetable for a turn."},
	{ID: "quill_volley", Name: "Quill Volley", Text: "Deal 2 damage four times."},
	{ID: "frost_lance", Name: "Frost Lance", Text: "Deal 7 damage. Apply 1 chill."},
	{ID: "hailstorm", Name: "Hailstorm", Text: "Deal 3 damage to all enemies. Apply 1 chill."},

	// Status and marker cards.
	{ID: "dazed", Name: "Dazed", SingleUse: true, Curse: true, Text: "Unplayable. Burns off when drawn."},
	{ID: "mending_scar", Name: "Mending Scar", Curse: true, Text: "Unplayable. A mark of a narrow escape."},

	// Shop stock.
	{ID: "tonic_draught", Name: "Tonic Draught", SingleUse: true, Cost: 45, Text: "Heal 12. Consumed on use."},
	{ID: "iron_charm", Name: "Iron Charm", Cost: 60, Text: "Gain 4 block. Retain."},
	{ID: "lucky_feather", Name: "Lucky Feather", Cost: 75, Text: "Draw a card. Gain 1 energy."},
	{ID: "ward_stone", Name: "Ward Stone", Cost: 65, Text: "Negate the next debuff."},

	// Epic draft stock.
	{ID: "meteor_call", Name: "Meteor Call", Text: "Deal 16 damage to all enemies."},
	{ID: "ancient_roots", Name: "Ancient Roots", Text: "Heal all allies 8."},
	{ID: "maelstrom", Name: "Maelstrom", Text: "Deal 12 damage. Hit every row."},
	{ID: "thunder_crown", Name: "Thunder Crown", Text: "Stun every enemy for a turn."},
}

var epicPool = []string{"meteor_call", "ancient_roots", "maelstrom", "thunder_crown"}

var shopPool = []string{"tonic_draught", "iron_charm", "lucky_feather", "ward_stone"}

var allPassives = []Passive{
	{ID: "scavenger", Name: "Scavenger", Text: "Battle gold rewards are increased by 25%."},
	{ID: "thick_hide", Name: "Thick Hide", Text: "Take 1 less damage from attacks."},
	{ID: "keen_eye", Name: "Keen Eye", Text: "Attacks cannot miss."},
	{ID: "swift_paws", Name: "Swift Paws", Text: "Draw an extra card on the first turn."},
	{ID: "deep_roots", Name: "Deep Roots", Text: "Cannot be pushed or pulled."},
	{ID: "night_stalker", Name: "Night Stalker", Text: "Deal +2 damage from the back row."},
	{ID: "stone_skin", Name: "Stone Skin", Text: "Start each battle with 5 block."},
	{ID: "frost_armor", Name: "Frost Armor", Text: "Attackers gain 1 chill."},
	{ID: "tide_blessing", Name: "Tide Blessing", Text: "Heal 2 at the end of each turn."},
	{ID: "ember_heart", Name: "Ember Heart", Text: "Immune to burn."},
}
