package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/domain"
	"github.com/stranger-market/goapi/domain/listing"
)

func amount(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad amount: " + s)
	}
	return v
}

func amountEq(want *big.Int) interface{} {
	return mock.MatchedBy(func(got *big.Int) bool {
		return got != nil && got.Cmp(want) == 0
	})
}

func TestExecuteSale(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	// price 100000000000 at 3% gives commission 3000000000
	price := amount("100000000000")
	commission := amount("3000000000")
	totalDue := new(big.Int).Add(price, commission)

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(5)).Return(mockStoredListing(5), nil)
	deps.ownership.On("IsApprovedForTransfer", mock.Anything, mockRef, mockSeller).Return(true, nil)
	deps.ownership.On("TransferOwnership", mock.Anything, mockRef, mockSeller, mockBuyer).Return(nil)
	deps.repo.On("Patch", mock.Anything, uint64(5), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Executed != nil && *p.Executed &&
			p.Active != nil && !*p.Active &&
			p.Buyer != nil && *p.Buyer == mockBuyer
	}), mock.Anything, mock.Anything).Return(nil)
	deps.vault.On("Disburse", mock.Anything, domain.ChainId(1), mockSeller, amountEq(price)).Return(nil)
	deps.vault.On("Disburse", mock.Anything, domain.ChainId(1), mockFeeRecipient, amountEq(commission)).Return(nil)

	req.NoError(u.ExecuteSale(ctx, 5, mockBuyer, totalDue))
	deps.ownership.AssertExpectations(t)
	deps.repo.AssertExpectations(t)
	deps.vault.AssertExpectations(t)
}

func TestExecuteSaleRetainsExcessPayment(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	price := amount("100000000000")
	commission := amount("3000000000")
	paid := new(big.Int).Add(new(big.Int).Add(price, commission), big.NewInt(12345))

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(5)).Return(mockStoredListing(5), nil)
	deps.ownership.On("IsApprovedForTransfer", mock.Anything, mockRef, mockSeller).Return(true, nil)
	deps.ownership.On("TransferOwnership", mock.Anything, mockRef, mockSeller, mockBuyer).Return(nil)
	deps.repo.On("Patch", mock.Anything, uint64(5), mock.Anything, mock.Anything, mock.Anything).Return(nil)
	deps.vault.On("Disburse", mock.Anything, domain.ChainId(1), mockSeller, amountEq(price)).Return(nil)
	deps.vault.On("Disburse", mock.Anything, domain.ChainId(1), mockFeeRecipient, amountEq(commission)).Return(nil)

	// seller and recipient get exactly price and commission, nothing more
	req.NoError(u.ExecuteSale(ctx, 5, mockBuyer, paid))
	deps.vault.AssertExpectations(t)
	deps.vault.AssertNumberOfCalls(t, "Disburse", 2)
}

func TestExecuteSaleInsufficientPayment(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	// short of price+commission by a single unit
	paid := amount("102999999999")

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(5)).Return(mockStoredListing(5), nil)
	deps.ownership.On("IsApprovedForTransfer", mock.Anything, mockRef, mockSeller).Return(true, nil)

	req.ErrorIs(u.ExecuteSale(ctx, 5, mockBuyer, paid), domain.ErrInsufficientPayment)
	deps.ownership.AssertNotCalled(t, "TransferOwnership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	deps.vault.AssertNotCalled(t, "Disburse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteSaleNotFound(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(42)).Return(nil, domain.ErrNotFound)

	req.ErrorIs(u.ExecuteSale(ctx, 42, mockBuyer, amount("103000000000")), domain.ErrNotFound)
}

func TestExecuteSaleInvalidStates(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	cancelled := mockStoredListing(1)
	cancelled.Active = false
	cancelled.Cancelled = true

	executed := mockStoredListing(2)
	executed.Active = false
	executed.Executed = true

	paused := mockStoredListing(3)
	paused.Active = false

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(1)).Return(cancelled, nil)
	deps.repo.On("FindOne", mock.Anything, uint64(2)).Return(executed, nil)
	deps.repo.On("FindOne", mock.Anything, uint64(3)).Return(paused, nil)

	paid := amount("103000000000")
	req.ErrorIs(u.ExecuteSale(ctx, 1, mockBuyer, paid), domain.ErrInvalidState)
	req.ErrorIs(u.ExecuteSale(ctx, 2, mockBuyer, paid), domain.ErrInvalidState)
	req.ErrorIs(u.ExecuteSale(ctx, 3, mockBuyer, paid), domain.ErrInvalidState)
	deps.ownership.AssertNotCalled(t, "TransferOwnership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteSaleApprovalRevoked(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(5)).Return(mockStoredListing(5), nil)
	deps.ownership.On("IsApprovedForTransfer", mock.Anything, mockRef, mockSeller).Return(false, nil)

	req.ErrorIs(u.ExecuteSale(ctx, 5, mockBuyer, amount("103000000000")), domain.ErrNotApproved)
	deps.ownership.AssertNotCalled(t, "TransferOwnership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteSaleTransferFailureAbortsSale(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	wantErr := errors.New("tx reverted")

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(5)).Return(mockStoredListing(5), nil)
	deps.ownership.On("IsApprovedForTransfer", mock.Anything, mockRef, mockSeller).Return(true, nil)
	deps.ownership.On("TransferOwnership", mock.Anything, mockRef, mockSeller, mockBuyer).Return(wantErr)

	req.ErrorIs(u.ExecuteSale(ctx, 5, mockBuyer, amount("103000000000")), wantErr)
	deps.repo.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	deps.vault.AssertNotCalled(t, "Disburse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteSaleLostRace(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(5)).Return(mockStoredListing(5), nil)
	deps.ownership.On("IsApprovedForTransfer", mock.Anything, mockRef, mockSeller).Return(true, nil)
	deps.ownership.On("TransferOwnership", mock.Anything, mockRef, mockSeller, mockBuyer).Return(nil)
	deps.repo.On("Patch", mock.Anything, uint64(5), mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	req.ErrorIs(u.ExecuteSale(ctx, 5, mockBuyer, amount("103000000000")), domain.ErrInvalidState)
	deps.vault.AssertNotCalled(t, "Disburse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteSaleZeroCommission(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	price := amount("100000000000")

	u, deps := newTestUsecase(0)
	deps.repo.On("FindOne", mock.Anything, uint64(5)).Return(mockStoredListing(5), nil)
	deps.ownership.On("IsApprovedForTransfer", mock.Anything, mockRef, mockSeller).Return(true, nil)
	deps.ownership.On("TransferOwnership", mock.Anything, mockRef, mockSeller, mockBuyer).Return(nil)
	deps.repo.On("Patch", mock.Anything, uint64(5), mock.Anything, mock.Anything, mock.Anything).Return(nil)
	deps.vault.On("Disburse", mock.Anything, domain.ChainId(1), mockSeller, amountEq(price)).Return(nil)

	req.NoError(u.ExecuteSale(ctx, 5, mockBuyer, price))
	deps.vault.AssertNumberOfCalls(t, "Disburse", 1)
}

func TestExecuteSaleCommissionTruncates(t *testing.T) {
	req := require.New(t)

	u, _ := newTestUsecase(3)

	// 3% of 101 truncates to 3
	req.Equal(int64(3), u.commissionFor(big.NewInt(101)).Int64())
	req.Equal(int64(0), u.commissionFor(big.NewInt(33)).Int64())
	req.Equal(int64(3000000000), u.commissionFor(amount("100000000000")).Int64())
}

func TestExecuteSaleRejectsConcurrentMutation(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	u.inflight[5] = struct{}{}

	req.ErrorIs(u.ExecuteSale(ctx, 5, mockBuyer, amount("103000000000")), domain.ErrInvalidState)
	req.ErrorIs(u.CancelListing(ctx, 5, mockSeller), domain.ErrInvalidState)
	req.ErrorIs(u.PauseListing(ctx, 5, mockSeller), domain.ErrInvalidState)
	deps.repo.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}

func TestPauseUnpauseThenSale(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	l := mockStoredListing(4)

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(4)).Return(l, nil)
	// flip the shared record the way the store would
	deps.repo.On("Patch", mock.Anything, uint64(4), mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		p := args.Get(2).(listing.Patchable)
		if p.Active != nil {
			l.Active = *p.Active
		}
		if p.Executed != nil {
			l.Executed = *p.Executed
		}
		if p.Buyer != nil {
			l.Buyer = p.Buyer
		}
	}).Return(nil)
	deps.ownership.On("IsApprovedForTransfer", mock.Anything, mockRef, mockSeller).Return(true, nil)
	deps.ownership.On("TransferOwnership", mock.Anything, mockRef, mockSeller, mockBuyer).Return(nil)
	deps.vault.On("Disburse", mock.Anything, domain.ChainId(1), mock.Anything, mock.Anything).Return(nil)

	paid := amount("103000000000")

	req.NoError(u.PauseListing(ctx, 4, mockSeller))
	req.ErrorIs(u.ExecuteSale(ctx, 4, mockBuyer, paid), domain.ErrInvalidState)

	req.NoError(u.UnpauseListing(ctx, 4, mockSeller))
	req.NoError(u.ExecuteSale(ctx, 4, mockBuyer, paid))

	req.True(l.Executed)
	req.False(l.Active)
	req.NotNil(l.Buyer)
}
