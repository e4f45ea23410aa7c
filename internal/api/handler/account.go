package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mindgrid/mindgrid-server/internal/api/apierr"
	"github.com/mindgrid/mindgrid-server/internal/api/middleware"
	"github.com/mindgrid/mindgrid-server/internal/api/request"
	"github.com/mindgrid/mindgrid-server/internal/api/response"
	"github.com/mindgrid/mindgrid-server/internal/services/account"
)

// AccountHandler handles account-related endpoints
type AccountHandler struct {
	accountService *account.Service
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *account.Service, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Register handles POST /api/v1/accounts
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	var req request.RegisterAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, apierr.NewInvalidArgumentError("invalid request body"))
		return
	}

	if err := h.accountService.Register(r.Context(), identity.Subject, req.Username, req.Email); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RegisterAccountResponse{OK: true})
}

// GetMe handles GET /api/v1/accounts/me
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	acct, err := h.accountService.Get(r.Context(), identity.Subject)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AccountFromModel(acct))
}
