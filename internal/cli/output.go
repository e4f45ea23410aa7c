package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case StartResult:
		o.printStartResult(v)
	case FinishResult:
		o.printFinishResult(v)
	case ResetResult:
		o.printResetResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	UID      string `json:"uid"`
	Username string `json:"username"`

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

	CurrentGame *Session `json:"currentGame,omitempty"`
}

// Session response type
type Session struct {
	Difficulty    string `json:"difficulty"`
	RequiredMoves int    `json:"requiredMoves"`
	CoinsReward   int    `json:"coinsReward"`
	IQPotential   int    `json:"iqPotential"`
	CurrentMove   int    `json:"currentMove"`
	Incorrects    int    `json:"incorrects"`
	TimeSeconds   int    `json:"time"`
	StartedAt     string `json:"timestamp"`
}

// RegisterResult response type
type RegisterResult struct {
	OK bool `json:"ok"`
}

// StartResult response type
type StartResult struct {
	OK          bool     `json:"ok"`
	Difficulty  string   `json:"difficulty"`
	CurrentGame *Session `json:"currentGame"`
}

// FinishResult response type
type FinishResult struct {
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

// ResetResult response type
type ResetResult struct {
	OK           bool `json:"ok"`
	UpdatedCount int  `json:"updatedCount"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAccount(a Account) {
	fmt.Printf("Account: %s (%s)\n", a.Username, a.UID)
	fmt.Printf("IQ: %d\n", a.IQ)
	fmt.Printf("Coins: %d\n", a.Coins)
	fmt.Printf("Cards: %d inty, %d skip, %d replay\n", a.IntyCards, a.SkipCards, a.ReplayCards)
	fmt.Printf("League: %s (rank %d, %d trophies)\n", a.League, a.Rank, a.Trophies)

	cleared := a.EasyLevelsPassed + a.MediumLevelsPassed + a.HardLevelsPassed +
		a.ExpertLevelsPassed + a.MasterLevelsPassed + a.ExtremeLevelsPassed +
		a.ImpossibleLevelsPassed
	fmt.Printf("Levels cleared: %d\n", cleared)

	if a.CurrentGame != nil {
		fmt.Println("\nActive game:")
		o.printSession(a.CurrentGame)
	}
}

func (o *Output) printSession(s *Session) {
	if s == nil {
		return
	}
	fmt.Printf("  Difficulty: %s\n", s.Difficulty)
	fmt.Printf("  Required Moves: %d\n", s.RequiredMoves)
	fmt.Printf("  Coins at Stake: %d\n", s.CoinsReward)
	fmt.Printf("  IQ Potential: %d\n", s.IQPotential)
	if s.StartedAt != "" {
		fmt.Printf("  Started: %s\n", s.StartedAt)
	}
}

func (o *Output) printStartResult(r StartResult) {
	fmt.Printf("Game started (%s)\n", r.Difficulty)
	o.printSession(r.CurrentGame)
}

func (o *Output) printFinishResult(r FinishResult) {
	fmt.Printf("IQ: +%d (now %d)\n", r.IQReward, r.FinalIQ)
	fmt.Printf("Coins: +%d (x%.1f of a possible x%.1f)\n",
		r.CoinsReward, r.EffectiveMultiplier, r.TheoreticalMultiplier)
	fmt.Printf("Extra Moves: %d\n", r.ExtraMoves)

	if r.IntyCardsReward+r.SkipCardsReward+r.ReplayCardsReward > 0 {
		fmt.Printf("Cards: %d inty, %d skip, %d replay\n",
			r.IntyCardsReward, r.SkipCardsReward, r.ReplayCardsReward)
	}
}

func (o *Output) printResetResult(r ResetResult) {
	fmt.Printf("Legal flags reset on %d accounts\n", r.UpdatedCount)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
