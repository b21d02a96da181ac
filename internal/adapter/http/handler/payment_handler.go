package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saklain/khatabook/internal/adapter/http/dto"
	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Payment, error)
	ReversePayment(ctx context.Context, entryID string) error
}

// PaymentQueryService defines the read-side behavior needed by
// PaymentHandler.
type PaymentQueryService interface {
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	ListPayments(ctx context.Context, input usecase.ListPaymentsInput) ([]*domain.Payment, error)
}

// PaymentHandler handles payment entry HTTP requests.
type PaymentHandler struct {
	ledgerUC    PaymentService
	statementUC PaymentQueryService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ledgerUC PaymentService, statementUC PaymentQueryService) *PaymentHandler {
	return &PaymentHandler{
		ledgerUC:    ledgerUC,
		statementUC: statementUC,
	}
}

// Create records money received from a buyer or paid to a seller.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordPaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := h.ledgerUC.RecordPayment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// Get retrieves a payment entry by ID.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	payment, err := h.statementUC.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// List lists payment entries, scoped to an account or globally.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListPaymentsInput{
		AccountID: r.URL.Query().Get("account_id"),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	}

	if kind := r.URL.Query().Get("kind"); kind != "" {
		k := domain.PaymentKind(kind)
		if !k.Valid() {
			writeError(w, http.StatusBadRequest, "invalid payment kind", kind)
			return
		}
		input.Kind = &k
	}

	payments, err := h.statementUC.ListPayments(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPaymentsResponse{
		Payments: dto.PaymentsFromDomain(payments),
		Total:    int64(len(payments)),
	})
}

// Delete reverses a payment entry and restores the owning account's
// totals.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	if err := h.ledgerUC.ReversePayment(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to reverse payment", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
