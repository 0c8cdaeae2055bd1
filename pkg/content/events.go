package content

import "github.com/mcamden/wildrun/pkg/event"

// eventPools lists the candidates the assignment pass draws from for
// each act's open event nodes. Fixed-content events (hidden_grove,
// sunken_hoard) never appear in a pool.
var eventPools = map[int][]string{
	1: {"training_camp", "forked_trail", "murmuring_idol", "healing_spring", "storm_omen"},
	2: {"wandering_merchant", "echo_chamber", "old_hermit", "collapsing_cave", "lost_cub"},
	3: {"moonlit_shrine", "ancient_arena", "mirror_pool", "collapsing_cave", "storm_omen"},
}

// recruitPools lists the wild species offered on each act's open recruit
// nodes. Starters are never wild.
var recruitPools = map[int][]string{
	1: {"gustling", "pebblit", "glimmoth", "bramblehog"},
	2: {"duskit", "frostfawn", "gustling", "pebblit"},
	3: {"duskit", "frostfawn", "glimmoth", "bramblehog"},
}

var allEvents = []event.Definition{
	{
		ID:     "training_camp",
		Title:  "Training Camp",
		Prompt: "A clearing of battered dummies and worn sparring rings. An old drill instructor waves you over.",
		Choices: []event.Choice{
			{
				Label: "Train Hard",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectMaxHPBoost, Target: event.TargetOne, Amount: 5}},
					Flavor:  "Hours of drills leave one of yours tougher than before.",
				},
			},
			{
				Label: "Spar Together",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectExp, Target: event.TargetAll, Amount: 2}},
					Flavor:  "The whole party trades blows until dusk.",
				},
			},
			{
				Label: "Rest Easy",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectPercentHeal, Target: event.TargetAll, Percent: 0.25}},
					Flavor:  "You doze in the shade while the instructor grumbles.",
				},
			},
		},
	},
	{
		ID:     "forked_trail",
		Title:  "Forked Trail",
		Prompt: "The path splits around a sinkhole. One fork glitters faintly; the other smells of rot.",
		Choices: []event.Choice{
			{
				Label: "Take the glittering fork",
				Outcome: event.Outcome{
					Kind: event.OutcomeRandom,
					Branches: []event.Branch{
						{Weight: 50, Effects: []event.Effect{{Type: event.EffectGold, Amount: 40}}, Flavor: "Coins spill from a rotted satchel."},
						{Weight: 50, Effects: []event.Effect{{Type: event.EffectDamage, Target: event.TargetRandom, Amount: 7}}, Flavor: "The glitter was a lure. Something bites."},
					},
				},
			},
			{
				Label: "Keep to the main path",
				Outcome: event.Outcome{
					Kind:   event.OutcomeFixed,
					Flavor: "You press on without incident.",
				},
			},
		},
	},
	{
		ID:     "murmuring_idol",
		Title:  "Murmuring Idol",
		Prompt: "A squat stone idol hums at the trail's edge. Its eyes follow you.",
		Choices: []event.Choice{
			{
				Label: "Touch the idol",
				Outcome: event.Outcome{
					Kind: event.OutcomeRandom,
					Branches: []event.Branch{
						{Weight: 60, Effects: []event.Effect{{Type: event.EffectGold, Amount: 60}}, Flavor: "The idol purrs and coughs up old offerings."},
						{Weight: 40, Effects: []event.Effect{{Type: event.EffectDazed, Target: event.TargetAll, Amount: 2}}, Flavor: "The hum swells into a skull-splitting drone."},
					},
				},
			},
			{
				Label: "Give it a wide berth",
				Outcome: event.Outcome{
					Kind:   event.OutcomeFixed,
					Flavor: "The murmuring fades behind you.",
				},
			},
		},
	},
	{
		ID:     "healing_spring",
		Title:  "Healing Spring",
		Prompt: "Steam rises off a pool ringed with pale moss. The water smells of copper and mint.",
		Choices: []event.Choice{
			{
				Label: "Drink deep",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectFullHeal, Target: event.TargetAll}},
					Flavor:  "Warmth spreads through every wound.",
				},
			},
			{
				Label: "Bottle some for one of yours",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectPercentHeal, Target: event.TargetOne, Percent: 0.3}},
					Flavor:  "The bottled water stays warm all day.",
				},
			},
		},
	},
	{
		ID:     "storm_omen",
		Title:  "Storm Omen",
		Prompt: "Green lightning forks over the ridge ahead. The air tastes of metal.",
		Choices: []event.Choice{
			{
				Label: "Brace and push through",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectEnergyMod, Target: event.TargetOne, Amount: 1}},
					Flavor:  "The charge settles into one of your creatures.",
				},
			},
			{
				Label: "Study the sky",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectDrawMod, Target: event.TargetOne, Amount: 1}},
					Flavor:  "Patterns in the storm sharpen your instincts.",
				},
			},
			{
				Label: "Wait it out",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectExp, Target: event.TargetAll, Amount: 1}},
					Flavor:  "The storm passes. The waiting taught patience.",
				},
			},
		},
	},
	{
		ID:     "wandering_merchant",
		Title:  "Wandering Merchant",
		Prompt: "A cart rattles out of the fog, hung with cages, charms, and a grinning peddler.",
		Choices: []event.Choice{
			{
				Label: "Browse the wares",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectShopDraft, Target: event.TargetOne, Amount: 1}},
					Flavor:  "The peddler spreads his stock across a blanket.",
				},
			},
			{
				Label: "Move along",
				Outcome: event.Outcome{
					Kind:   event.OutcomeFixed,
					Flavor: "The cart rattles off into the fog.",
				},
			},
		},
	},
	{
		ID:     "echo_chamber",
		Title:  "Echo Chamber",
		Prompt: "A cavern where every sound returns doubled. Your creatures' calls come back layered and strange.",
		Choices: []event.Choice{
			{
				Label: "Sing into the dark",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectCloneCard, Target: event.TargetOne}},
					Flavor:  "An echo lingers, solid enough to keep.",
				},
			},
			{
				Label: "Keep quiet and move through",
				Outcome: event.Outcome{
					Kind:   event.OutcomeFixed,
					Flavor: "You cross in careful silence.",
				},
			},
		},
	},
	{
		ID:     "old_hermit",
		Title:  "Old Hermit",
		Prompt: "A hermit mends nets outside a lean-to. He squints at your party's tangled fighting habits.",
		Choices: []event.Choice{
			{
				Label: "Accept his lesson",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectRemoveCards, Target: event.TargetOne, Amount: 2}},
					Flavor:  "He unpicks bad habits like knots from a net.",
				},
			},
			{
				Label: "Decline politely",
				Outcome: event.Outcome{
					Kind:   event.OutcomeFixed,
					Flavor: "He shrugs and returns to his nets.",
				},
			},
		},
	},
	{
		ID:     "collapsing_cave",
		Title:  "Collapsing Cave",
		Prompt: "The shortcut runs under a ceiling webbed with cracks. Dust sifts down with every step.",
		Choices: []event.Choice{
			{
				Label: "Dash through",
				Outcome: event.Outcome{
					Kind: event.OutcomeRandom,
					Branches: []event.Branch{
						{Weight: 70, Effects: []event.Effect{{Type: event.EffectGold, Amount: 50}}, Flavor: "You clear the cave and scoop up a dropped purse."},
						{Weight: 30, Effects: []event.Effect{{Type: event.EffectDamage, Target: event.TargetRandom, Amount: 8}}, Flavor: "A slab drops. Someone doesn't dodge in time."},
					},
				},
			},
			{
				Label: "Back away",
				Outcome: event.Outcome{
					Kind:   event.OutcomeFixed,
					Flavor: "The long way around costs only daylight.",
				},
			},
		},
	},
	{
		ID:     "lost_cub",
		Title:  "Lost Cub",
		Prompt: "A glimmoth cub flutters in a snare, wings dusted with frost. It stops struggling when you approach.",
		Choices: []event.Choice{
			{
				Label: "Cut it loose and take it along",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectRecruit, SpeciesID: "glimmoth"}},
					Flavor:  "It rides on your pack, glowing faintly after dark.",
				},
			},
			{
				Label: "Free it and let it go",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectGold, Amount: 25}},
					Flavor:  "It circles twice and drops something shiny in thanks.",
				},
			},
		},
	},
	{
		ID:     "moonlit_shrine",
		Title:  "Moonlit Shrine",
		Prompt: "An altar of silver stone under a hole in the canopy. Moonlight pools on it like water.",
		Choices: []event.Choice{
			{
				Label: "Commune",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectEpicDraft, Target: event.TargetOne, Amount: 1}},
					Flavor:  "The light condenses into something you can hold.",
				},
			},
			{
				Label: "Pry up the silver",
				Outcome: event.Outcome{
					Kind: event.OutcomeRandom,
					Branches: []event.Branch{
						{Weight: 50, Effects: []event.Effect{{Type: event.EffectGold, Amount: 80}}, Flavor: "The stone comes free. No one stops you. Nothing forgives you either."},
						{Weight: 50, Effects: []event.Effect{{Type: event.EffectDamage, Target: event.TargetAll, Amount: 10}}, Flavor: "The moonlight turns sharp as glass."},
					},
				},
			},
		},
	},
	{
		ID:     "ancient_arena",
		Title:  "Ancient Arena",
		Prompt: "Terraced stone seats ring a sunken floor scarred by centuries of bouts.",
		Choices: []event.Choice{
			{
				Label: "Run the old gauntlet",
				Outcome: event.Outcome{
					Kind: event.OutcomeRandom,
					Branches: []event.Branch{
						{Weight: 60, Effects: []event.Effect{{Type: event.EffectExp, Target: event.TargetAll, Amount: 3}}, Flavor: "The old course still teaches hard lessons."},
						{Weight: 40, Effects: []event.Effect{{Type: event.EffectDamage, Target: event.TargetOne, Amount: 6}, {Type: event.EffectExp, Target: event.TargetAll, Amount: 2}}, Flavor: "A trap still works. So does the lesson."},
					},
				},
			},
			{
				Label: "Study the carvings",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectExp, Target: event.TargetOne, Amount: 4}},
					Flavor:  "One of yours stares longest, and learns most.",
				},
			},
		},
	},
	{
		ID:     "mirror_pool",
		Title:  "Mirror Pool",
		Prompt: "A still pool reflects your party — but the reflections move a half-beat late.",
		Choices: []event.Choice{
			{
				Label: "Reach into the reflection",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectCloneCard, Target: event.TargetOne}},
					Flavor:  "Your hand closes on a copy, cold as pondwater.",
				},
			},
			{
				Label: "Drink from the pool",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectPercentHeal, Target: event.TargetAll, Percent: 0.3}},
					Flavor:  "The lagging reflections drink a moment after you.",
				},
			},
		},
	},

	// Fixed-content events. Never pooled; referenced directly by map nodes.
	{
		ID:     "hidden_grove",
		Title:  "Hidden Grove",
		Prompt: "The bramble wall here looks solid, but cool air leaks between the thorns.",
		Choices: []event.Choice{
			{
				Label: "Push through the bramble",
				Outcome: event.Outcome{
					Kind: event.OutcomeFixed,
					Effects: []event.Effect{
						{Type: event.EffectSetPath, NodeID: "a1_grove", Edges: []string{"a1_hidden"}},
					},
					Flavor: "Thorns part onto a path no map shows.",
				},
			},
			{
				Label: "Stay on the trail",
				Outcome: event.Outcome{
					Kind:   event.OutcomeFixed,
					Flavor: "The cool draft stays a mystery.",
				},
			},
		},
	},
	{
		ID:     "sunken_hoard",
		Title:  "Sunken Hoard",
		Prompt: "A collapsed wagon rots in the hidden hollow, its strongbox split open across the moss.",
		Choices: []event.Choice{
			{
				Label: "Gather everything",
				Outcome: event.Outcome{
					Kind:    event.OutcomeFixed,
					Effects: []event.Effect{{Type: event.EffectGold, Amount: 120}},
					Flavor:  "Whoever lost this isn't coming back for it.",
				},
			},
			{
				Label: "Take only what you need",
				Outcome: event.Outcome{
					Kind: event.OutcomeFixed,
					Effects: []event.Effect{
						{Type: event.EffectGold, Amount: 60},
						{Type: event.EffectExp, Target: event.TargetAll, Amount: 1},
					},
					Flavor: "Restraint weighs less on the road.",
				},
			},
		},
	},
}
