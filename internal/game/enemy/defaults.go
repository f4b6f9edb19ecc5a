package enemy

// DefaultTemplates returns the built-in bestiary. The game is playable with
// no enemy files on disk; templates loaded from a directory are appended to
// these, overriding by ID at registry construction.
func DefaultTemplates() []*Template {
	return []*Template{
		{
			ID:          "glyph_leech",
			Name:        "Glyph Leech",
			Description: "A pallid worm that drinks the ink out of living words.",
			BaseHP:      30,
			BaseAttack:  6,
			XPReward:    20,
			GoldReward:  8,
			AttackMessages: []string{
				"drains the letters from your fingertips",
				"latches onto your cursor",
			},
			BattleCry:     "The leech quivers hungrily.",
			DefeatMessage: "The leech dissolves into a puddle of stolen ink.",
		},
		{
			ID:          "rust_scrivener",
			Name:        "Rust Scrivener",
			Description: "A clockwork clerk still transcribing a ruined archive.",
			BaseHP:      40,
			BaseAttack:  8,
			XPReward:    30,
			GoldReward:  12,
			TypingTheme: "machinery",
			AttackMessages: []string{
				"slashes with a corroded pen nib",
				"hurls a fistful of broken type",
			},
			BattleCry:     "The scrivener's gears shriek to life.",
			DefeatMessage: "The scrivener winds down mid-sentence.",
		},
		{
			ID:          "ink_shade",
			Name:        "Ink Shade",
			Description: "A silhouette of spilled ink that hates being read.",
			BaseHP:      35,
			BaseAttack:  10,
			XPReward:    35,
			GoldReward:  14,
			TypingTheme: "shadows",
			AttackMessages: []string{
				"washes over you in a cold wave",
				"whispers a word you almost recognize",
			},
			BattleCry:     "The shade unfolds from the margin.",
			DefeatMessage: "The shade blots itself out.",
		},
		{
			ID:          "lexicon_golem",
			Name:        "Lexicon Golem",
			Description: "Bound dictionaries stacked into a lumbering brute.",
			BaseHP:      60,
			BaseAttack:  9,
			XPReward:    50,
			GoldReward:  20,
			Tier:        TierElite,
			AttackMessages: []string{
				"slams you with a thousand pages",
				"crushes down like a closing cover",
			},
			BattleCry:     "The golem creaks open to a blank page.",
			DefeatMessage: "The golem collapses into loose leaves.",
		},
		{
			ID:          "null_warden",
			Name:        "Null Warden",
			Description: "Keeper of erased text. Nothing it guards may be spoken.",
			BaseHP:      55,
			BaseAttack:  12,
			XPReward:    60,
			GoldReward:  25,
			Tier:        TierElite,
			TypingTheme: "silence",
			AttackMessages: []string{
				"swings a bar of pure erasure",
				"unwrites the ground beneath you",
			},
			BattleCry:     "The warden raises its redacted blade.",
			DefeatMessage: "The warden fades to an empty line.",
		},
		{
			ID:          "the_unspeller",
			Name:        "The Unspeller",
			Description: "The thing that eats language. Every floor feeds it.",
			BaseHP:      120,
			BaseAttack:  14,
			XPReward:    200,
			GoldReward:  100,
			Tier:        TierBoss,
			TypingTheme: "eldritch",
			AttackMessages: []string{
				"speaks your name backwards",
				"swallows the sentence you were about to finish",
				"rewrites the air into knives",
			},
			BattleCry:     "EVERY WORD YOU KNOW IS BORROWED.",
			DefeatMessage: "The Unspeller forgets itself, one letter at a time.",
		},
	}
}
