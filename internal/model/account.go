package model

import (
	"strings"
	"time"
)

// AccountID is the stable subject identifier assigned by the identity
// provider at sign-up. Immutable for the lifetime of the account.
type AccountID string

// Account is the durable per-player economy document. One per player,
// created once by registration and mutated only by session finish (plus
// the admin legal-flag reset).
type Account struct {
	UID      AccountID `json:"uid"`
	Username string    `json:"username"` // display handle, case-preserving

	// Economy counters. All additive and non-negative; IQ only ever
	// ratchets upward.
	IQ          int `json:"iq"`
	Coins       int `json:"coins"`
	IntyCards   int `json:"intyCards"`
	SkipCards   int `json:"skipCards"`
	ReplayCards int `json:"replayCards"`

	// Profile fields, seeded with defaults at registration
	Trophies      int     `json:"trophies"`
	Rank          int     `json:"rank"`
	League        string  `json:"league"`
	Avatar        string  `json:"avatar"`
	Language      string  `json:"language"`
	ProfilePicURL *string `json:"profilePicUrl"`

	AcceptedPrivacy bool `json:"acceptedPrivacy"`
	AcceptedTerms   bool `json:"acceptedTerms"`

	// Cumulative clear counts per difficulty
	EasyLevelsPassed       int `json:"easyLevelsPassed"`
	MediumLevelsPassed     int `json:"mediumLevelsPassed"`
	HardLevelsPassed       int `json:"hardLevelsPassed"`
	ExpertLevelsPassed     int `json:"expertLevelsPassed"`
	MasterLevelsPassed     int `json:"masterLevelsPassed"`
	ExtremeLevelsPassed    int `json:"extremeLevelsPassed"`
	ImpossibleLevelsPassed int `json:"impossibleLevelsPassed"`

	// Audit fields describing the most recently finished game, for
	// client/UI consumption only
	LastGameIQGain                int     `json:"lastGameIqGain"`
	LastGameFinalIQ               int     `json:"lastGameFinalIq"`
	LastGameCoinsGain             int     `json:"lastGameCoinsGain"`
	LastGameExtraMoves            int     `json:"lastGameExtraMoves"`
	LastGameIntyCardsGain         int     `json:"lastGameIntyCardsGain"`
	LastGameSkipCardsGain         int     `json:"lastGameSkipCardsGain"`
	LastGameReplayCardsGain       int     `json:"lastGameReplayCardsGain"`
	LastGameRiskMode              bool    `json:"lastGameRiskMode"`
	LastGameWalkedAway            bool    `json:"lastGameWalkedAway"`
	LastGameLost                  bool    `json:"lastGameLost"`
	LastGameTheoreticalMultiplier float64 `json:"lastGameTheoreticalMultiplier"`
	LastGameEffectiveMultiplier   float64 `json:"lastGameEffectiveMultiplier"`

	// CurrentGame is the active session, or nil when no game is in
	// progress (a valid, common state)
	CurrentGame *GameSession `json:"currentGame,omitempty"`

	// Private contact info and placeholder collections, written once at
	// registration so later readers can assume they exist
	Private         *ContactInfo `json:"private,omitempty"`
	Achievements    Placeholder  `json:"achievements"`
	LevelProgress   Placeholder  `json:"levelProgress"`
	InGameMaterials Placeholder  `json:"inGameMaterials"`

	CreatedAt time.Time `json:"createdAt"`
}

// ContactInfo holds account data never exposed through public profile reads
type ContactInfo struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Placeholder is an empty marker document for a collection populated later
type Placeholder struct {
	Placeholder bool      `json:"placeholder"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HandleReservation maps a normalized handle to its owning account.
// Its existence is the sole uniqueness authority for handles.
type HandleReservation struct {
	UID        AccountID `json:"uid"`
	Username   string    `json:"username"` // original-case handle
	ReservedAt time.Time `json:"reservedAt"`
}

// NormalizeHandle lowercases a trimmed display handle for uniqueness checks
func NormalizeHandle(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NewAccount builds a zero-economy account with default profile fields
func NewAccount(uid AccountID, username, email string, now time.Time) *Account {
	return &Account{
		UID:      uid,
		Username: username,
		League:   "Bronze",
		Avatar:   "defaultBrain",
		Language: "english",
		Private: &ContactInfo{
			Email:     email,
			CreatedAt: now,
		},
		Achievements:    Placeholder{Placeholder: true, CreatedAt: now},
		LevelProgress:   Placeholder{Placeholder: true, CreatedAt: now},
		InGameMaterials: Placeholder{Placeholder: true, CreatedAt: now},
		CreatedAt:       now,
	}
}

// IncrementLevelsPassed bumps the cumulative clear count for a difficulty
func (a *Account) IncrementLevelsPassed(d Difficulty) {
	switch d {
	case DifficultyEasy:
		a.EasyLevelsPassed++
	case DifficultyMedium:
		a.MediumLevelsPassed++
	case DifficultyHard:
		a.HardLevelsPassed++
	case DifficultyExpert:
		a.ExpertLevelsPassed++
	case DifficultyMaster:
		a.MasterLevelsPassed++
	case DifficultyExtreme:
		a.ExtremeLevelsPassed++
	case DifficultyImpossible:
		a.ImpossibleLevelsPassed++
	}
}
