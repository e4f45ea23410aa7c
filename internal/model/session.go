package model

import "time"

// GameSession is an in-progress run, held inline on the Account. The
// rule table values it needs are copied in at creation and frozen for
// the session's lifetime, so a later config change never affects a run
// already underway.
type GameSession struct {
	Difficulty     Difficulty `json:"difficulty"`
	Incorrects     int        `json:"incorrects"`   // mistakes so far
	TimeSeconds    int        `json:"time"`         // elapsed play time
	CurrentMove    int        `json:"currentMove"`  // index into the move script
	RequiredMoves  int        `json:"requiredMoves"`
	ExtraMovesDone int        `json:"extraMovesDone"` // correct moves past the base pattern

	// Frozen reward potentials from the rule table
	CoinsReward int `json:"coinsReward"`
	IQPotential int `json:"iqPotential"`

	// Outcome flags, set as the run progresses
	HasRisked  bool `json:"hasRisked"`
	WalkedAway bool `json:"walkedAway"`
	Lost       bool `json:"lost"`

	// Consumable-card usage, tracked only for expert and harder
	SkipsUsed   *int `json:"skipsUsed,omitempty"`
	ReplaysUsed *int `json:"replaysUsed,omitempty"`
	IntysUsed   *int `json:"intysUsed,omitempty"`

	StartedAt time.Time `json:"timestamp"`
}

// NewGameSession seeds a session from the rule table entry for the
// difficulty. Card-usage counters exist only for difficulties that
// track them.
func NewGameSession(d Difficulty, cfg DifficultyConfig, now time.Time) *GameSession {
	session := &GameSession{
		Difficulty:    d,
		RequiredMoves: cfg.RequiredMoves,
		CoinsReward:   cfg.CoinsReward,
		IQPotential:   cfg.BaseIQPotential,
		StartedAt:     now,
	}

	if d.TracksCards() {
		zero := func() *int { v := 0; return &v }
		session.SkipsUsed = zero()
		session.ReplaysUsed = zero()
		session.IntysUsed = zero()
	}

	return session
}

// CardsUsed returns the session's card-usage counters, treating absent
// counters as zero
func (g *GameSession) CardsUsed() (skips, replays, intys int) {
	if g.SkipsUsed != nil {
		skips = *g.SkipsUsed
	}
	if g.ReplaysUsed != nil {
		replays = *g.ReplaysUsed
	}
	if g.IntysUsed != nil {
		intys = *g.IntysUsed
	}
	return skips, replays, intys
}
