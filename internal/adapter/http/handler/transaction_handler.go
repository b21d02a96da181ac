package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saklain/khatabook/internal/adapter/http/dto"
	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	RecordTransaction(ctx context.Context, input usecase.RecordTransactionInput) (*domain.Transaction, error)
	ReverseTransaction(ctx context.Context, entryID string) error
}

// TransactionQueryService defines the read-side behavior needed by
// TransactionHandler.
type TransactionQueryService interface {
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction entry HTTP requests.
type TransactionHandler struct {
	ledgerUC    TransactionService
	statementUC TransactionQueryService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerUC TransactionService, statementUC TransactionQueryService) *TransactionHandler {
	return &TransactionHandler{
		ledgerUC:    ledgerUC,
		statementUC: statementUC,
	}
}

// Create records a sale or purchase against an account.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordTransactionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	transaction, err := h.ledgerUC.RecordTransaction(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(transaction))
}

// Get retrieves a transaction entry by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	transaction, err := h.statementUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// List lists transaction entries, scoped to an account or globally.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListTransactionsInput{
		AccountID: r.URL.Query().Get("account_id"),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	}

	if kind := r.URL.Query().Get("kind"); kind != "" {
		k := domain.TransactionKind(kind)
		if !k.Valid() {
			writeError(w, http.StatusBadRequest, "invalid transaction kind", kind)
			return
		}
		input.Kind = &k
	}

	transactions, err := h.statementUC.ListTransactions(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        int64(len(transactions)),
	})
}

// Delete reverses a transaction entry: the entry is removed and its
// exact effect is subtracted from the owning account.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	if err := h.ledgerUC.ReverseTransaction(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to reverse transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
