package session

import (
	"context"
	"log/slog"

	"github.com/mindgrid/mindgrid-server/internal/dependencies/clock"
	"github.com/mindgrid/mindgrid-server/internal/model"
	"github.com/mindgrid/mindgrid-server/internal/services/reward"
	"github.com/mindgrid/mindgrid-server/internal/storage"
)

// Service orchestrates the game-session lifecycle: start replaces the
// account's active session, finish consumes it and converts the run
// into durable rewards.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new session service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Report carries optional client-supplied end-of-run telemetry. Nil
// fields fall back to the server-held session state, so the server
// tolerates partial reports while keeping its own record as the floor
// of truth.
type Report struct {
	CurrentMove      *int
	Incorrects       *int
	TimeSeconds      *int
	RiskMode         *bool
	WalkedAway       *bool
	Lost             *bool
	HasCompletedBase *bool
}

// FinishResult is what a finished run pays out, as reported back to the
// caller
type FinishResult struct {
	IQGain                int
	FinalIQ               int
	Coins                 int
	ExtraMoves            int
	TheoreticalMultiplier float64
	EffectiveMultiplier   float64
	IntyCards             int
	SkipCards             int
	ReplayCards           int
}

// Start replaces the caller's active session (if any) with a fresh one
// seeded from the rule table entry for the difficulty. Other account
// fields are untouched.
func (s *Service) Start(ctx context.Context, uid model.AccountID, rawDifficulty string) (*model.GameSession, error) {
	difficulty, err := model.ParseDifficulty(rawDifficulty)
	if err != nil {
		return nil, err
	}

	cfg, _ := difficulty.Config()
	session := model.NewGameSession(difficulty, cfg, s.clock.Now())

	if _, err := s.storage.UpdateAccount(ctx, uid, func(a *model.Account) error {
		a.CurrentGame = session
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("game started",
		slog.String("uid", string(uid)),
		slog.String("difficulty", string(difficulty)),
	)

	return session, nil
}

// Finish consumes the caller's active session: it resolves telemetry,
// computes the reward, applies it to the account and clears the
// session, all inside one conditional storage transaction. A duplicate
// or concurrent finish for the same account re-reads the document,
// finds no session and fails with model.ErrNoActiveGame instead of
// crediting twice.
func (s *Service) Finish(ctx context.Context, uid model.AccountID, report Report) (*FinishResult, error) {
	var result *FinishResult

	_, err := s.storage.UpdateAccount(ctx, uid, func(a *model.Account) error {
		session := a.CurrentGame
		if session == nil || session.Difficulty == "" {
			return model.ErrNoActiveGame
		}

		cfg, ok := session.Difficulty.Config()
		if !ok {
			return model.ErrSessionInvalid
		}

		telemetry := resolveTelemetry(session, cfg, report)
		computed := reward.Compute(session.Difficulty, cfg, telemetry)

		// IQ ratchet: the stored rating is replaced only when this run
		// beats it; otherwise the field is left alone entirely
		iqGain := 0
		if computed.IQ > a.IQ {
			iqGain = computed.IQ - a.IQ
			a.IQ = computed.IQ
		}

		a.Coins += computed.Coins
		a.IntyCards += computed.IntyCards
		a.SkipCards += computed.SkipCards
		a.ReplayCards += computed.ReplayCards

		if telemetry.HasCompletedBase {
			a.IncrementLevelsPassed(session.Difficulty)
		}

		a.LastGameIQGain = iqGain
		a.LastGameFinalIQ = computed.IQ
		a.LastGameCoinsGain = computed.Coins
		a.LastGameExtraMoves = telemetry.ExtraMoves
		a.LastGameIntyCardsGain = computed.IntyCards
		a.LastGameSkipCardsGain = computed.SkipCards
		a.LastGameReplayCardsGain = computed.ReplayCards
		a.LastGameRiskMode = telemetry.RiskMode
		a.LastGameWalkedAway = telemetry.WalkedAway
		a.LastGameLost = telemetry.Lost
		a.LastGameTheoreticalMultiplier = computed.TheoreticalMultiplier
		a.LastGameEffectiveMultiplier = computed.EffectiveMultiplier

		a.CurrentGame = nil

		result = &FinishResult{
			IQGain:                iqGain,
			FinalIQ:               computed.IQ,
			Coins:                 computed.Coins,
			ExtraMoves:            telemetry.ExtraMoves,
			TheoreticalMultiplier: computed.TheoreticalMultiplier,
			EffectiveMultiplier:   computed.EffectiveMultiplier,
			IntyCards:             computed.IntyCards,
			SkipCards:             computed.SkipCards,
			ReplayCards:           computed.ReplayCards,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("game finished",
		slog.String("uid", string(uid)),
		slog.Int("iq_gain", result.IQGain),
		slog.Int("final_iq", result.FinalIQ),
		slog.Int("coins", result.Coins),
		slog.Int("extra_moves", result.ExtraMoves),
		slog.Float64("effective_multiplier", result.EffectiveMultiplier),
	)

	return result, nil
}

// resolveTelemetry merges the client report over the stored session.
// ExtraMoves is always derived server-side; a client cannot claim more
// extras than its reported move index supports.
func resolveTelemetry(session *model.GameSession, cfg model.DifficultyConfig, report Report) reward.Telemetry {
	requiredMoves := session.RequiredMoves
	if requiredMoves == 0 {
		// Session documents written before the frozen copy existed
		requiredMoves = cfg.RequiredMoves
	}

	currentMove := session.CurrentMove
	if report.CurrentMove != nil {
		currentMove = *report.CurrentMove
	}

	incorrects := session.Incorrects
	if report.Incorrects != nil {
		incorrects = *report.Incorrects
	}

	timeSeconds := session.TimeSeconds
	if report.TimeSeconds != nil {
		timeSeconds = *report.TimeSeconds
	}

	riskMode := session.HasRisked
	if report.RiskMode != nil {
		riskMode = *report.RiskMode
	}

	walkedAway := session.WalkedAway
	if report.WalkedAway != nil {
		walkedAway = *report.WalkedAway
	}

	lost := session.Lost
	if report.Lost != nil {
		lost = *report.Lost
	}

	extraMoves := max(0, currentMove-requiredMoves)

	hasCompletedBase := currentMove >= requiredMoves
	if report.HasCompletedBase != nil {
		hasCompletedBase = *report.HasCompletedBase
	}

	skips, replays, intys := session.CardsUsed()

	return reward.Telemetry{
		RequiredMoves:    requiredMoves,
		CurrentMove:      currentMove,
		Incorrects:       incorrects,
		TimeSeconds:      timeSeconds,
		ExtraMoves:       extraMoves,
		HasCompletedBase: hasCompletedBase,
		RiskMode:         riskMode,
		WalkedAway:       walkedAway,
		Lost:             lost,
		SkipsUsed:        skips,
		ReplaysUsed:      replays,
		IntysUsed:        intys,
	}
}
