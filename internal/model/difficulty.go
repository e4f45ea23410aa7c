package model

import "strings"

// Difficulty identifies one of the seven puzzle difficulty tiers
type Difficulty string

// Recognized difficulties, easiest to hardest
const (
	DifficultyEasy       Difficulty = "easy"
	DifficultyMedium     Difficulty = "medium"
	DifficultyHard       Difficulty = "hard"
	DifficultyExpert     Difficulty = "expert"
	DifficultyMaster     Difficulty = "master"
	DifficultyExtreme    Difficulty = "extreme"
	DifficultyImpossible Difficulty = "impossible"
)

// AllDifficulties lists every recognized difficulty in ascending order
var AllDifficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
	DifficultyExpert,
	DifficultyMaster,
	DifficultyExtreme,
	DifficultyImpossible,
}

// DifficultyConfig is one immutable reward rule table entry
type DifficultyConfig struct {
	RequiredMoves     int // moves needed to clear the base pattern
	CoinsReward       int // base coin reward for clearing
	BaseIQPotential   int // maximum IQ for a perfect run
	TargetTimeSeconds int // ideal completion time
}

// difficultyConfigs is the reward rule table. Never mutated at runtime.
var difficultyConfigs = map[Difficulty]DifficultyConfig{
	DifficultyEasy:       {RequiredMoves: 7, CoinsReward: 30, BaseIQPotential: 10, TargetTimeSeconds: 60},
	DifficultyMedium:     {RequiredMoves: 12, CoinsReward: 60, BaseIQPotential: 15, TargetTimeSeconds: 90},
	DifficultyHard:       {RequiredMoves: 17, CoinsReward: 90, BaseIQPotential: 20, TargetTimeSeconds: 120},
	DifficultyExpert:     {RequiredMoves: 25, CoinsReward: 140, BaseIQPotential: 30, TargetTimeSeconds: 150},
	DifficultyMaster:     {RequiredMoves: 32, CoinsReward: 200, BaseIQPotential: 40, TargetTimeSeconds: 180},
	DifficultyExtreme:    {RequiredMoves: 40, CoinsReward: 500, BaseIQPotential: 50, TargetTimeSeconds: 210},
	DifficultyImpossible: {RequiredMoves: 50, CoinsReward: 1000, BaseIQPotential: 70, TargetTimeSeconds: 240},
}

// ParseDifficulty normalizes a raw difficulty string and validates it
// against the rule table
func ParseDifficulty(raw string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := difficultyConfigs[d]; !ok {
		return "", ErrInvalidDifficulty
	}
	return d, nil
}

// Config returns the rule table entry for this difficulty
func (d Difficulty) Config() (DifficultyConfig, bool) {
	cfg, ok := difficultyConfigs[d]
	return cfg, ok
}

// TracksCards reports whether consumable-card usage is tracked for this
// difficulty. Only the four hardest tiers track cards.
func (d Difficulty) TracksCards() bool {
	switch d {
	case DifficultyExpert, DifficultyMaster, DifficultyExtreme, DifficultyImpossible:
		return true
	default:
		return false
	}
}
