package response

import (
	"github.com/mindgrid/mindgrid-server/internal/model"
	"github.com/mindgrid/mindgrid-server/internal/services/session"
)

// RegisterAccountResponse confirms a successful registration
type RegisterAccountResponse struct {
	OK bool `json:"ok"`
}

// StartGameResponse returns the freshly created session for display
type StartGameResponse struct {
	OK          bool               `json:"ok"`
	Difficulty  model.Difficulty   `json:"difficulty"`
	CurrentGame *model.GameSession `json:"currentGame"`
}

// FinishGameResponse reports the rewards of a finished run
type FinishGameResponse struct {
	OK                    bool    `json:"ok"`
	IQReward              int     `json:"iqReward"`
	FinalIQ               int     `json:"finalIq"`
	CoinsReward           int     `json:"coinsReward"`
	ExtraMoves            int     `json:"extraMoves"`
	TheoreticalMultiplier float64 `json:"theoreticalMultiplier"`
	EffectiveMultiplier   float64 `json:"effectiveMultiplier"`
	IntyCardsReward       int     `json:"intyCardsReward"`
	SkipCardsReward       int     `json:"skipCardsReward"`
	ReplayCardsReward     int     `json:"replayCardsReward"`
}

// FinishGameResponseFromResult converts a finish result to its API shape
func FinishGameResponseFromResult(r *session.FinishResult) FinishGameResponse {
	return FinishGameResponse{
		OK:                    true,
		IQReward:              r.IQGain,
		FinalIQ:               r.FinalIQ,
		CoinsReward:           r.Coins,
		ExtraMoves:            r.ExtraMoves,
		TheoreticalMultiplier: r.TheoreticalMultiplier,
		EffectiveMultiplier:   r.EffectiveMultiplier,
		IntyCardsReward:       r.IntyCards,
		SkipCardsReward:       r.SkipCards,
		ReplayCardsReward:     r.ReplayCards,
	}
}

// AccountResponse is the public snapshot of an account. The private
// contact-info record is deliberately omitted.
type AccountResponse struct {
	UID      model.AccountID `json:"uid"`
	Username string          `json:"username"`

	IQ          int `json:"iq"`
	Coins       int `json:"coins"`
	IntyCards   int `json:"intyCards"`
	SkipCards   int `json:"skipCards"`
	ReplayCards int `json:"replayCards"`

	Trophies int    `json:"trophies"`
	Rank     int    `json:"rank"`
	League   string `json:"league"`
	Avatar   string `json:"avatar"`
	Language string `json:"language"`

	EasyLevelsPassed       int `json:"easyLevelsPassed"`
	MediumLevelsPassed     int `json:"mediumLevelsPassed"`
	HardLevelsPassed       int `json:"hardLevelsPassed"`
	ExpertLevelsPassed     int `json:"expertLevelsPassed"`
	MasterLevelsPassed     int `json:"masterLevelsPassed"`
	ExtremeLevelsPassed    int `json:"extremeLevelsPassed"`
	ImpossibleLevelsPassed int `json:"impossibleLevelsPassed"`

	CurrentGame *model.GameSession `json:"currentGame,omitempty"`
}

// AccountFromModel converts an account document to its public API shape
func AccountFromModel(a *model.Account) AccountResponse {
	return AccountResponse{
		UID:                    a.UID,
		Username:               a.Username,
		IQ:                     a.IQ,
		Coins:                  a.Coins,
		IntyCards:              a.IntyCards,
		SkipCards:              a.SkipCards,
		ReplayCards:            a.ReplayCards,
		Trophies:               a.Trophies,
		Rank:                   a.Rank,
		League:                 a.League,
		Avatar:                 a.Avatar,
		Language:               a.Language,
		EasyLevelsPassed:       a.EasyLevelsPassed,
		MediumLevelsPassed:     a.MediumLevelsPassed,
		HardLevelsPassed:       a.HardLevelsPassed,
		ExpertLevelsPassed:     a.ExpertLevelsPassed,
		MasterLevelsPassed:     a.MasterLevelsPassed,
		ExtremeLevelsPassed:    a.ExtremeLevelsPassed,
		ImpossibleLevelsPassed: a.ImpossibleLevelsPassed,
		CurrentGame:            a.CurrentGame,
	}
}

// ResetLegalFlagsResponse reports how many accounts a bulk reset touched
type ResetLegalFlagsResponse struct {
	OK           bool `json:"ok"`
	UpdatedCount int  `json:"updatedCount"`
}
