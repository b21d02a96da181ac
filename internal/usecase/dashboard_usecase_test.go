package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/saklain/khatabook/internal/usecase"
	"github.com/saklain/khatabook/internal/usecase/mocks"
)

func TestDashboardUseCase_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)

	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
	cache := mocks.NewMockCache()

	want := &usecase.LedgerSummary{
		Receivable:       decimal.NewFromInt(500),
		Payable:          decimal.NewFromInt(120),
		BuyerCount:       3,
		SellerCount:      1,
		RecentBillCount:  2,
		RecentBillAmount: decimal.NewFromInt(90),
	}

	// One repository hit; the second call must come from the cache.
	ledgerRepo.EXPECT().
		Summary(gomock.Any(), gomock.Any()).
		Return(want, nil).
		Times(1)

	uc := usecase.NewDashboardUseCase(ledgerRepo, cache)

	for i := 0; i < 2; i++ {
		got, err := uc.Summary(context.Background())
		if err != nil {
			t.Fatalf("Summary() call %d error = %v", i+1, err)
		}
		if !got.Receivable.Equal(want.Receivable) || !got.Payable.Equal(want.Payable) {
			t.Errorf("call %d: receivable/payable = %s/%s, want %s/%s",
				i+1, got.Receivable, got.Payable, want.Receivable, want.Payable)
		}
		if got.BuyerCount != want.BuyerCount || got.SellerCount != want.SellerCount {
			t.Errorf("call %d: counts = %d/%d, want %d/%d",
				i+1, got.BuyerCount, got.SellerCount, want.BuyerCount, want.SellerCount)
		}
	}
}

func TestDashboardUseCase_Summary_NoCache(t *testing.T) {
	ctrl := gomock.NewController(t)

	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
	ledgerRepo.EXPECT().
		Summary(gomock.Any(), gomock.Any()).
		Return(&usecase.LedgerSummary{}, nil).
		Times(2)

	uc := usecase.NewDashboardUseCase(ledgerRepo, nil)

	for i := 0; i < 2; i++ {
		if _, err := uc.Summary(context.Background()); err != nil {
			t.Fatalf("Summary() call %d error = %v", i+1, err)
		}
	}
}

func TestDashboardUseCase_Summary_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)

	repoErr := errors.New("query failed")

	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
	ledgerRepo.EXPECT().
		Summary(gomock.Any(), gomock.Any()).
		Return(nil, repoErr)

	uc := usecase.NewDashboardUseCase(ledgerRepo, mocks.NewMockCache())

	if _, err := uc.Summary(context.Background()); !errors.Is(err, repoErr) {
		t.Errorf("Summary() error = %v, want %v", err, repoErr)
	}
}

func TestDashboardUseCase_CheckConsistency(t *testing.T) {
	ctrl := gomock.NewController(t)

	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
	ledgerRepo.EXPECT().
		CountImbalanced(gomock.Any()).
		Return(int64(2), nil)

	uc := usecase.NewDashboardUseCase(ledgerRepo, nil)

	got, err := uc.CheckConsistency(context.Background())
	if err != nil {
		t.Fatalf("CheckConsistency() error = %v", err)
	}
	if got != 2 {
		t.Errorf("CheckConsistency() = %d, want 2", got)
	}
}
