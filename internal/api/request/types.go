package request

// RegisterAccountRequest is the request body for registering an account
type RegisterAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// StartGameRequest is the request body for starting a game session
type StartGameRequest struct {
	Difficulty string `json:"difficulty"`
}

// FinishGameRequest is the request body for finishing a game session.
// Every field is optional; absent fields fall back to the server-held
// session state.
type FinishGameRequest struct {
	CurrentMove      *int  `json:"currentMove,omitempty"`
	Incorrects       *int  `json:"incorrects,omitempty"`
	TimeSeconds      *int  `json:"timeSeconds,omitempty"`
	RiskMode         *bool `json:"riskMode,omitempty"`
	WalkedAway       *bool `json:"walkedAway,omitempty"`
	Lost             *bool `json:"lost,omitempty"`
	HasCompletedBase *bool `json:"hasCompletedBase,omitempty"`
}
