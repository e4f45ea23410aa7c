package handler

import (
	"log/slog"
	"net/http"

	"github.com/mindgrid/mindgrid-server/internal/api/response"
	"github.com/mindgrid/mindgrid-server/internal/services/admin"
)

// AdminHandler handles privileged maintenance endpoints. The router
// guards these behind the admin-claim middleware.
type AdminHandler struct {
	adminService *admin.Service
	logger       *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *admin.Service, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// ResetLegalFlags handles POST /api/v1/admin/reset-legal-flags
func (h *AdminHandler) ResetLegalFlags(w http.ResponseWriter, r *http.Request) {
	updated, err := h.adminService.ResetLegalFlags(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResetLegalFlagsResponse{
		OK:           true,
		UpdatedCount: updated,
	})
}
