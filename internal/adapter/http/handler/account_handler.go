package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saklain/khatabook/internal/adapter/http/dto"
	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// StatementService defines the read-side behavior needed by
// AccountHandler for statements.
type StatementService interface {
	Statement(ctx context.Context, accountID string) ([]usecase.StatementLine, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC   AccountService
	statementUC StatementService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, statementUC StatementService) *AccountHandler {
	return &AccountHandler{
		accountUC:   accountUC,
		statementUC: statementUC,
	}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts, optionally filtered by kind.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListAccountsInput{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	}

	if kind := r.URL.Query().Get("kind"); kind != "" {
		k := domain.AccountKind(kind)
		input.Kind = &k
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Update changes an account's display name and phone.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.UpdateAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Delete removes an account and every entry in its khata.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	if err := h.accountUC.DeleteAccount(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete account", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Statement returns the account's merged transaction and payment
// history in chronological order.
func (h *AccountHandler) Statement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	// The statement of an unknown account is an error, not an empty page.
	if _, err := h.accountUC.GetAccount(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	lines, err := h.statementUC.Statement(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementResponse{
		AccountID: id,
		Lines:     dto.StatementFromUseCase(lines),
	})
}
