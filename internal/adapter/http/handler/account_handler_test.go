package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/saklain/khatabook/internal/adapter/http/dto"
	"github.com/saklain/khatabook/internal/domain"
	"github.com/saklain/khatabook/internal/usecase"
)

type accountServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn    func(ctx context.Context, id string) (*domain.Account, error)
	listFn   func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	updateFn func(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func (s *accountServiceStub) UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, input)
}

func (s *accountServiceStub) DeleteAccount(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type statementServiceStub struct {
	statementFn func(ctx context.Context, accountID string) ([]usecase.StatementLine, error)
}

func (s *statementServiceStub) Statement(ctx context.Context, accountID string) ([]usecase.StatementLine, error) {
	return s.statementFn(ctx, accountID)
}

func TestAccountHandler_Create_Success(t *testing.T) {
	account := &domain.Account{
		ID:    "acc-1",
		Kind:  domain.AccountKindBuyer,
		Name:  "Ali",
		Phone: "01711111111",
	}

	var captured usecase.CreateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Kind:  "buyer",
		Name:  "Ali",
		Phone: "01711111111",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Kind != domain.AccountKindBuyer || captured.Name != "Ali" || captured.Phone != "01711111111" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" {
		t.Fatalf("expected account ID acc-1, got %s", resp.ID)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			t.Fatal("CreateAccount should not be called for invalid payload")
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_RejectsUnknownKind(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			t.Fatal("CreateAccount should not be called for invalid payload")
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(`{"kind":"vendor","name":"Ali"}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_DuplicateName(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, domain.ErrDuplicateName
		},
	}, nil)

	body, _ := json.Marshal(dto.CreateAccountRequest{Kind: "buyer", Name: "Ali"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_ServiceError(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, errors.New("db error")
		},
	}, nil)

	body, _ := json.Marshal(dto.CreateAccountRequest{Kind: "seller", Name: "Karim Traders"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAccountHandler_Get(t *testing.T) {
	account := &domain.Account{ID: "acc-1", Name: "Ali"}
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			if id != "acc-1" {
				t.Fatalf("expected id acc-1, got %s", id)
			}
			return account, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_List(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			if input.Limit != 5 || input.Offset != 2 {
				t.Fatalf("expected limit=5 offset=2, got %+v", input)
			}
			if input.Kind == nil || *input.Kind != domain.AccountKindBuyer {
				t.Fatalf("expected kind filter buyer, got %+v", input.Kind)
			}
			return []*domain.Account{{ID: "acc-1"}, {ID: "acc-2"}}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=5&offset=2&kind=buyer", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp.Accounts))
	}
}

func TestAccountHandler_Update(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error) {
			if input.ID != "acc-1" || input.Name != "Ali Mia" {
				t.Fatalf("unexpected update input: %+v", input)
			}
			return &domain.Account{ID: input.ID, Name: input.Name}, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.UpdateAccountRequest{Name: "Ali Mia"})
	req := httptest.NewRequest(http.MethodPut, "/accounts/acc-1", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Delete(t *testing.T) {
	var deleted string
	handler := NewAccountHandler(&accountServiceStub{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "acc-1" {
		t.Fatalf("expected acc-1 to be deleted, got %q", deleted)
	}
}

func TestAccountHandler_Statement(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return &domain.Account{ID: id}, nil
		},
	}, &statementServiceStub{
		statementFn: func(ctx context.Context, accountID string) ([]usecase.StatementLine, error) {
			return []usecase.StatementLine{
				{Type: usecase.EntryTypeTransaction, Transaction: &domain.Transaction{ID: "txn-1", AccountID: accountID}},
				{Type: usecase.EntryTypePayment, Payment: &domain.Payment{ID: "pay-1", AccountID: accountID}},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/statement", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Statement(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.StatementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccountID != "acc-1" || len(resp.Lines) != 2 {
		t.Fatalf("unexpected statement response: %+v", resp)
	}
}

func TestAccountHandler_Statement_UnknownAccount(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, &statementServiceStub{
		statementFn: func(ctx context.Context, accountID string) ([]usecase.StatementLine, error) {
			t.Fatal("Statement should not be called for an unknown account")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/missing/statement", nil)
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Statement(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
