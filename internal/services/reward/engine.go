package reward

import (
	"math"

	"github.com/mindgrid/mindgrid-server/internal/model"
)

// Telemetry is the fully resolved input for scoring one finished run.
// Resolution (client report vs. stored session state) happens in the
// session service; everything here is trusted as-is.
type Telemetry struct {
	RequiredMoves    int
	CurrentMove      int
	Incorrects       int
	TimeSeconds      int
	ExtraMoves       int // always derived server-side, never client-supplied
	HasCompletedBase bool
	RiskMode         bool
	WalkedAway       bool
	Lost             bool
	SkipsUsed        int
	ReplaysUsed      int
	IntysUsed        int
}

// Result is the computed reward for one run. Transient; the session
// service applies it to the account.
type Result struct {
	IQ                    int
	Coins                 int
	TheoreticalMultiplier float64
	EffectiveMultiplier   float64
	IntyCards             int
	SkipCards             int
	ReplayCards           int
}

// Compute scores a full run: IQ, coins and card grants. Pure and
// deterministic; identical inputs always produce identical outputs.
func Compute(difficulty model.Difficulty, cfg model.DifficultyConfig, t Telemetry) Result {
	coins, theoretical, effective := ComputeCoins(cfg.CoinsReward, t)
	inty, skip, replay := ComputeCards(difficulty, t.ExtraMoves)

	return Result{
		IQ:                    ComputeIQ(cfg, t),
		Coins:                 coins,
		TheoreticalMultiplier: theoretical,
		EffectiveMultiplier:   effective,
		IntyCards:             inty,
		SkipCards:             skip,
		ReplayCards:           replay,
	}
}

// ComputeIQ scores a run's IQ from four factors: accuracy, speed,
// streak length and card usage.
func ComputeIQ(cfg model.DifficultyConfig, t Telemetry) int {
	base := float64(cfg.BaseIQPotential)

	// Accuracy: 0 mistakes = full credit, 1 = 0.7, 2+ = 0.35
	mistakes := clamp(t.Incorrects, 0, 2)
	accuracyFactor := [3]float64{1.0, 0.7, 0.35}[mistakes]

	// Speed relative to the difficulty's target time
	elapsed := float64(max(1, t.TimeSeconds))
	speedRatio := elapsed / float64(cfg.TargetTimeSeconds)
	var speedFactor float64
	switch {
	case speedRatio <= 1:
		speedFactor = 1.0
	case speedRatio <= 2:
		speedFactor = 0.7
	default:
		speedFactor = 0.4
	}

	// Streak: +50% per full pattern length of extra moves, capped at 3x
	required := float64(max(1, t.RequiredMoves))
	extra := float64(max(0, t.ExtraMoves))
	streakFactor := math.Min(3, 1+0.5*(extra/required))

	// Card penalty: each card used costs 10%, floored at 40%
	totalCards := max(0, t.SkipsUsed) + max(0, t.ReplaysUsed) + max(0, t.IntysUsed)
	cardPenaltyFactor := math.Max(0.4, 1-0.1*float64(totalCards))

	raw := base * accuracyFactor * speedFactor * streakFactor * cardPenaltyFactor
	return max(0, int(math.Round(raw)))
}

// blockSize is the number of extra moves per risk-ladder stage
const blockSize = 5

// coinOutcome classifies how a run ended for coin purposes
type coinOutcome int

const (
	// base pattern never completed, regardless of how the run ended
	outcomeBaseIncomplete coinOutcome = iota
	// base completed, player collected immediately
	outcomeCollected
	// continued into the ladder but never finished the first block
	outcomeRiskedShort
	// walked away cleanly at a block boundary: full stage banked
	outcomeBankedClean
	// lost, or walked away mid-block: half the last stage
	outcomeForfeitHalf
)

func classify(t Telemetry) coinOutcome {
	switch {
	case !t.HasCompletedBase:
		return outcomeBaseIncomplete
	case !t.RiskMode:
		return outcomeCollected
	case t.ExtraMoves < blockSize:
		return outcomeRiskedShort
	}

	intoNextBlock := t.ExtraMoves % blockSize
	if !t.Lost && t.WalkedAway && intoNextBlock == 0 {
		return outcomeBankedClean
	}
	return outcomeForfeitHalf
}

// ComputeCoins runs the double-or-nothing risk ladder: the reward
// doubles per completed block of extra moves, but only a clean stop at
// a block boundary banks the doubled amount. Losing, or pushing into an
// incomplete block, forfeits half the last completed stage.
func ComputeCoins(baseCoins int, t Telemetry) (coins int, theoretical, effective float64) {
	outcome := classify(t)

	switch outcome {
	case outcomeBaseIncomplete:
		return 0, 0, 0

	case outcomeCollected:
		return baseCoins, 1, 1

	case outcomeRiskedShort:
		// Conceptually still at the base stage, paying for the gamble
		return int(math.Round(float64(baseCoins) * 0.5)), 1, 0.5

	default:
		fullBlocks := t.ExtraMoves / blockSize
		stageMultiplier := math.Pow(2, float64(fullBlocks))
		stageReward := float64(baseCoins) * stageMultiplier

		if outcome == outcomeBankedClean {
			return int(math.Round(stageReward)), stageMultiplier, stageMultiplier
		}
		return int(math.Round(stageReward / 2)), stageMultiplier, stageMultiplier / 2
	}
}

// cardChunkSize is the number of extra moves per consumable-card grant
const cardChunkSize = 10

// ComputeCards maps extra moves to card grants. The difficulty to
// card-type mapping is fixed: hard and expert grant inty cards, master
// grants inty and skip, extreme and impossible grant replay, and the
// two easiest tiers grant nothing.
func ComputeCards(difficulty model.Difficulty, extraMoves int) (inty, skip, replay int) {
	chunks := max(0, extraMoves) / cardChunkSize
	if chunks == 0 {
		return 0, 0, 0
	}

	switch difficulty {
	case model.DifficultyHard, model.DifficultyExpert:
		return chunks, 0, 0
	case model.DifficultyMaster:
		return chunks, chunks, 0
	case model.DifficultyExtreme, model.DifficultyImpossible:
		return 0, 0, chunks
	default:
		return 0, 0, 0
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
