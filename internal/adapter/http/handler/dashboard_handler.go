package handler

import (
	"context"
	"net/http"

	"github.com/saklain/khatabook/internal/adapter/http/dto"
	"github.com/saklain/khatabook/internal/usecase"
)

// DashboardService defines the behavior needed by DashboardHandler.
type DashboardService interface {
	Summary(ctx context.Context) (*usecase.LedgerSummary, error)
	CheckConsistency(ctx context.Context) (int64, error)
}

// DashboardHandler handles dashboard and ledger-wide HTTP requests.
type DashboardHandler struct {
	dashboardUC DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardUC DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// Summary returns receivable/payable totals, account counts and today's
// billing activity.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardUC.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summary))
}

// CheckConsistency verifies the balance identity across all accounts.
// An inconsistent ledger answers 409 so monitoring can alert on it.
func (h *DashboardHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	imbalanced, err := h.dashboardUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	response := dto.ConsistencyResponse{
		Consistent: imbalanced == 0,
		Imbalanced: imbalanced,
	}

	if !response.Consistent {
		writeJSON(w, http.StatusConflict, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
