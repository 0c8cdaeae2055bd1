package content

// starterSpecies are offered when a new run is created.
var starterSpecies = []string{"cindercub", "mossling", "puddlefin", "sparkvole"}

var allSpecies = []Species{
	{
		ID: "cindercub", Name: "Cindercub",
		Forms: []Form{
			{ID: "cindercub", Name: "Cindercub", BaseMaxHP: 42, BaseDeck: []string{"ember_swipe", "ember_swipe", "guard", "quick_jab"}},
			{ID: "emberbruin", Name: "Emberbruin", BaseMaxHP: 58, BaseDeck: []string{"ember_swipe", "cinder_roar", "guard", "quick_jab"}},
			{ID: "pyremaw", Name: "Pyremaw", BaseMaxHP: 74, BaseDeck: []string{"cinder_roar", "flame_burst", "guard", "quick_jab"}},
		},
	},
	{
		ID: "mossling", Name: "Mossling",
		Forms: []Form{
			{ID: "mossling", Name: "Mossling", BaseMaxHP: 46, BaseDeck: []string{"vine_lash", "vine_lash", "guard", "strike"}},
			{ID: "thornstag", Name: "Thornstag", BaseMaxHP: 66, BaseDeck: []string{"vine_lash", "thorn_guard", "overgrowth", "strike"}},
		},
	},
	{
		ID: "puddlefin", Name: "Puddlefin",
		Forms: []Form{
			{ID: "puddlefin", Name: "Puddlefin", BaseMaxHP: 44, BaseDeck: []string{"tide_surge", "bubble_veil", "strike", "quick_jab"}},
			{ID: "tidecaller", Name: "Tidecaller", BaseMaxHP: 62, BaseDeck: []string{"tide_surge", "riptide", "bubble_veil", "quick_jab"}},
		},
	},
	{
		ID: "sparkvole", Name: "Sparkvole",
		Forms: []Form{
			{ID: "sparkvole", Name: "Sparkvole", BaseMaxHP: 38, BaseDeck: []string{"static_bite", "quick_jab", "quick_jab", "guard"}},
			{ID: "voltmarten", Name: "Voltmarten", BaseMaxHP: 54, BaseDeck: []string{"static_bite", "volt_rush", "quick_jab", "guard"}},
		},
	},
	{
		ID: "gustling", Name: "Gustling",
		Forms: []Form{
			{ID: "gustling", Name: "Gustling", BaseMaxHP: 40, BaseDeck: []string{"gust_slash", "gust_slash", "quick_jab", "guard"}},
			{ID: "galehawk", Name: "Galehawk", BaseMaxHP: 58, BaseDeck: []string{"gust_slash", "tailwind", "quick_jab", "guard"}},
		},
	},
	{
		ID: "pebblit", Name: "Pebblit",
		Forms: []Form{
			{ID: "pebblit", Name: "Pebblit", BaseMaxHP: 52, BaseDeck: []string{"stone_wall", "strike", "strike", "guard"}},
			{ID: "cragback", Name: "Cragback", BaseMaxHP: 72, BaseDeck: []string{"stone_wall", "landslide", "strike", "guard"}},
		},
	},
	{
		ID: "glimmoth", Name: "Glimmoth",
		Forms: []Form{
			{ID: "glimmoth", Name: "Glimmoth", BaseMaxHP: 36, BaseDeck: []string{"moth_dust", "shimmer_veil", "quick_jab", "quick_jab"}},
		},
	},
	{
		ID: "duskit", Name: "Duskit",
		Forms: []Form{
			{ID: "duskit", Name: "Duskit", BaseMaxHP: 41, BaseDeck: []string{"shadow_feint", "quick_jab", "strike", "guard"}},
			{ID: "umbrawisp", Name: "Umbrawisp", BaseMaxHP: 60, BaseDeck: []string{"shadow_feint", "dusk_veil", "strike", "guard"}},
		},
	},
	{
		ID: "bramblehog", Name: "Bramblehog",
		Forms: []Form{
			{ID: "bramblehog", Name: "Bramblehog", BaseMaxHP: 48, BaseDeck: []string{"quill_volley", "guard", "guard", "strike"}},
		},
	},
	{
		ID: "frostfawn", Name: "Frostfawn",
		Forms: []Form{
			{ID: "frostfawn", Name: "Frostfawn", BaseMaxHP: 43, BaseDeck: []string{"frost_lance", "guard", "quick_jab", "strike"}},
			{ID: "glacielk", Name: "Glacielk", BaseMaxHP: 61, BaseDeck: []string{"frost_lance", "hailstorm", "quick_jab", "strike"}},
		},
	},

	// Act bosses. Enemy-only: no progression tree, never recruitable.
	{
		ID: "ashtyrant", Name: "Ashtyrant",
		Forms: []Form{
			{ID: "ashtyrant", Name: "Ashtyrant", BaseMaxHP: 120, BaseDeck: []string{"cinder_roar", "flame_burst", "strike", "strike"}},
		},
	},
	{
		ID: "galecrown", Name: "Galecrown",
		Forms: []Form{
			{ID: "galecrown", Name: "Galecrown", BaseMaxHP: 150, BaseDeck: []string{"gust_slash", "tailwind", "storm_call", "strike"}},
		},
	},
	{
		ID: "nightmaw", Name: "Nightmaw",
		Forms: []Form{
			{ID: "nightmaw", Name: "Nightmaw", BaseMaxHP: 190, BaseDeck: []string{"shadow_feint", "dusk_veil", "landslide", "strike"}},
		},
	},
}

// allTrees holds one progression ladder per playable species. The
// level-1 rung is the starting state; rungs 2-4 are applied by level-ups.
var allTrees = []Tree{
	{
		SpeciesID: "cindercub",
		Rungs: [4]Rung{
			{Level: 1},
			{Level: 2, EvolveTo: "emberbruin", MaxHPDelta: 6, PassiveID: "ember_heart", CardIDs: []string{"cinder_roar"}},
			{Level: 3, MaxHPDelta: 5, CardIDs: []string{"flame_burst"}},
			{Level: 4, EvolveTo: "pyremaw", MaxHPDelta: 8, CardIDs: []string{"flame_burst"}},
		},
	},
	{
		SpeciesID: "mossling",
		Rungs: [4]Rung{
			{Level: 1},
			{Level: 2, MaxHPDelta: 5, PassiveID: "deep_roots", CardIDs: []string{"thorn_guard"}},
			{Level: 3, EvolveTo: "thornstag", MaxHPDelta: 7, CardIDs: []string{"overgrowth"}},
			{Level: 4, MaxHPDelta: 6, CardIDs: []string{"overgrowth"}},
		},
	},
	{
		SpeciesID: "puddlefin",
		Rungs: [4]Rung{
			{Level: 1},
			{Level: 2, MaxHPDelta: 5, CardIDs: []string{"tide_surge"}},
			{Level: 3, EvolveTo: "tidecaller", MaxHPDelta: 7, PassiveID: "tide_blessing", CardIDs: []string{"riptide"}},
			{Level: 4, MaxHPDelta: 6, CardIDs: []string{"riptide"}},
		},
	},
	{
		SpeciesID: "sparkvole",
		Rungs: [4]Rung{
			{Level: 1},
			{Level: 2, EvolveTo: "voltmarten", MaxHPDelta: 6, PassiveID: "scavenger", CardIDs: []string{"volt_rush"}},
			{Level: 3, MaxHPDelta: 5, CardIDs: []string{"storm_call"}},
			{Level: 4, MaxHPDelta: 7, PassiveID: "swift_paws", CardIDs: []string{"storm_call"}},
		},
	},
	{
		SpeciesID: "gustling",
		Rungs: [4]Rung{
			{Level: 1},
			{Level: 2, MaxHPDelta: 4, PassiveID: "keen_eye", CardIDs: []string{"tailwind"}},
			{Level: 3, EvolveTo: "galehawk", MaxHPDelta: 8, CardIDs: []string{"gust_slash"}},
			{Level: 4, MaxHPDelta: 6, CardIDs: []string{"tailwind"}},
		},
	},
	{
		SpeciesID: "pebblit",
		Rungs: [4]Rung{
			{Level: 1},
			{Level: 2, EvolveTo: "cragback", MaxHPDelta: 8, PassiveID: "stone_skin", CardIDs: []string{"landslide"}},
			{Level: 3, MaxHPDelta: 6, CardIDs: []string{"stone_wall"}},
			{Level: 4, MaxHPDelta: 8, CardIDs: []string{"landslide"}},
		},
	},
	{
		SpeciesID: "glimmoth",
		Rungs: [4]Rung{
			{Level: 1},
			{Level: 2, MaxHPDelta: 4, PassiveID: "keen_eye", CardIDs: []string{"moth_dust"}},
			{Level: 3, MaxHPDelta: 5, CardIDs: []string{"shimmer_veil"}},
			{Level: 4, MaxHPDelta: 6, PassiveID: "swift_paws", CardIDs: []string{"moth_dust"}},
		},
	},
	{
		SpeciesID: "duskit",
		Rungs: [4]Rung{
			{Level: 1},
			{Level: 2, MaxHPDelta: 5, PassiveID: "night_stalker", CardIDs: []string{"dusk_veil"}},
			{Level: 3, MaxHPDelta: 5, CardIDs: []string{"shadow_feint"}},
			{Level: 4, EvolveTo: "umbrawisp", MaxHPDelta: 8, CardIDs: []string{"dusk_veil"}},
		},
	},
	{
		SpeciesID: "bramblehog",
		Rungs: [4]Rung{
			{Level: 1},
			{Level: 2, MaxHPDelta: 6, PassiveID: "thick_hide", CardIDs: []string{"quill_volley"}},
			{Level: 3, MaxHPDelta: 5, PassiveID: "scavenger", CardIDs: []string{"thorn_guard"}},
			{Level: 4, MaxHPDelta: 7, CardIDs: []string{"quill_volley"}},
		},
	},
	{
		SpeciesID: "frostfawn",
		Rungs: [4]Rung{
			{Level: 1},
			{Level: 2, MaxHPDelta: 5, CardIDs: []string{"hailstorm"}},
			{Level: 3, EvolveTo: "glacielk", MaxHPDelta: 7, PassiveID: "frost_armor", CardIDs: []string{"frost_lance"}},
			{Level: 4, MaxHPDelta: 6, CardIDs: []string{"hailstorm"}},
		},
	},
}
