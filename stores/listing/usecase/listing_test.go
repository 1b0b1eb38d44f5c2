package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/domain"
	"github.com/stranger-market/goapi/domain/item"
	itemMocks "github.com/stranger-market/goapi/domain/item/mocks"
	"github.com/stranger-market/goapi/domain/listing"
	listingMocks "github.com/stranger-market/goapi/domain/listing/mocks"
	paymentMocks "github.com/stranger-market/goapi/domain/payment/mocks"
)

var (
	mockSeller       = domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")
	mockBuyer        = domain.Address("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d")
	mockFeeRecipient = domain.Address("0x2e1673c4b04ec3e876c1c2e0771b799421e9aedb")
	mockRef          = item.Ref{
		ChainId:         1,
		ContractAddress: "0x9a38dec0590abc8c883d72e52391090e948ddf12",
		TokenId:         domain.TokenId("1"),
	}
)

type testDeps struct {
	repo      *listingMocks.Repo
	ownership *itemMocks.Ownership
	vault     *paymentMocks.Vault
}

func newTestUsecase(commissionPercentage int) (*impl, *testDeps) {
	deps := &testDeps{
		repo:      &listingMocks.Repo{},
		ownership: &itemMocks.Ownership{},
		vault:     &paymentMocks.Vault{},
	}
	u := New(&ListingUseCaseCfg{
		ListingRepo:          deps.repo,
		Ownership:            deps.ownership,
		Vault:                deps.vault,
		CommissionPercentage: commissionPercentage,
		FeeRecipient:         mockFeeRecipient,
	})
	return u.(*impl), deps
}

func mockStoredListing(id uint64) *listing.Listing {
	return &listing.Listing{
		Id:              id,
		ChainId:         mockRef.ChainId,
		ContractAddress: mockRef.ContractAddress,
		TokenId:         mockRef.TokenId,
		Seller:          mockSeller,
		Price:           "100000000000",
		Active:          true,
	}
}

func TestCreateListing(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	deps.ownership.On("IsApprovedForTransfer", mock.Anything, mockRef, mockSeller).Return(true, nil)
	deps.repo.On("NextId", mock.Anything).Return(uint64(0), nil)
	deps.repo.On("Insert", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.Id == 0 &&
			l.ContractAddress == mockRef.ContractAddress &&
			l.TokenId == mockRef.TokenId &&
			l.Seller == mockSeller &&
			l.Price == "100000000000" &&
			l.Active && !l.Cancelled && !l.Executed
	})).Return(nil)

	id, err := u.CreateListing(ctx, mockRef, "100000000000", mockSeller)
	req.NoError(err)
	req.Equal(uint64(0), id)
	deps.repo.AssertExpectations(t)
}

func TestCreateListingRejectsBadPrice(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, _ := newTestUsecase(3)

	for _, price := range []string{"0", "-5", "1.5", "abc", ""} {
		_, err := u.CreateListing(ctx, mockRef, price, mockSeller)
		req.ErrorIs(err, domain.ErrInvalidPrice, price)
	}
}

func TestCreateListingRejectsEmptyAddresses(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, _ := newTestUsecase(3)

	_, err := u.CreateListing(ctx, mockRef, "100", "")
	req.ErrorIs(err, domain.ErrInvalidAddress)

	_, err = u.CreateListing(ctx, item.Ref{ChainId: 1}, "100", mockSeller)
	req.ErrorIs(err, domain.ErrInvalidAddress)
}

func TestCreateListingRequiresApproval(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	deps.ownership.On("IsApprovedForTransfer", mock.Anything, mockRef, mockSeller).Return(false, nil)

	_, err := u.CreateListing(ctx, mockRef, "100000000000", mockSeller)
	req.ErrorIs(err, domain.ErrNotApproved)
	deps.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestPauseListing(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(1)).Return(mockStoredListing(1), nil)
	deps.repo.On("Patch", mock.Anything, uint64(1), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Active != nil && !*p.Active && p.Cancelled == nil && p.Executed == nil
	}), mock.Anything, mock.Anything).Return(nil)

	req.NoError(u.PauseListing(ctx, 1, mockSeller))
	deps.repo.AssertExpectations(t)
}

func TestPauseListingIdempotent(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	paused := mockStoredListing(1)
	paused.Active = false
	deps.repo.On("FindOne", mock.Anything, uint64(1)).Return(paused, nil)

	req.NoError(u.PauseListing(ctx, 1, mockSeller))
	deps.repo.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUnpauseListing(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	paused := mockStoredListing(1)
	paused.Active = false
	deps.repo.On("FindOne", mock.Anything, uint64(1)).Return(paused, nil)
	deps.repo.On("Patch", mock.Anything, uint64(1), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Active != nil && *p.Active
	}), mock.Anything, mock.Anything).Return(nil)

	req.NoError(u.UnpauseListing(ctx, 1, mockSeller))
	deps.repo.AssertExpectations(t)
}

func TestPauseListingSellerOnly(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(1)).Return(mockStoredListing(1), nil)

	req.ErrorIs(u.PauseListing(ctx, 1, mockBuyer), domain.ErrUnauthorized)
}

func TestPauseListingTerminalState(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	cancelled := mockStoredListing(1)
	cancelled.Active = false
	cancelled.Cancelled = true
	deps.repo.On("FindOne", mock.Anything, uint64(1)).Return(cancelled, nil)

	req.ErrorIs(u.PauseListing(ctx, 1, mockSeller), domain.ErrInvalidState)
	req.ErrorIs(u.UnpauseListing(ctx, 1, mockSeller), domain.ErrInvalidState)
}

func TestCancelListing(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(2)).Return(mockStoredListing(2), nil)
	deps.repo.On("Patch", mock.Anything, uint64(2), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Cancelled != nil && *p.Cancelled &&
			p.Active != nil && !*p.Active &&
			p.ContractAddress != nil && *p.ContractAddress == domain.EmptyAddress &&
			p.TokenId != nil && *p.TokenId == domain.TokenId("0")
	}), mock.Anything).Return(nil)

	req.NoError(u.CancelListing(ctx, 2, mockSeller))
	deps.repo.AssertExpectations(t)
}

func TestCancelListingSellerOnly(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(2)).Return(mockStoredListing(2), nil)

	req.ErrorIs(u.CancelListing(ctx, 2, mockBuyer), domain.ErrUnauthorized)
	deps.repo.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelListingTwice(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	cancelled := mockStoredListing(2)
	cancelled.Active = false
	cancelled.Cancelled = true
	cancelled.ContractAddress = domain.EmptyAddress
	cancelled.TokenId = domain.TokenId("0")
	deps.repo.On("FindOne", mock.Anything, uint64(2)).Return(cancelled, nil)

	req.ErrorIs(u.CancelListing(ctx, 2, mockSeller), domain.ErrInvalidState)
}

func TestCancelListingNotFound(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(99)).Return(nil, domain.ErrNotFound)

	req.ErrorIs(u.CancelListing(ctx, 99, mockSeller), domain.ErrNotFound)
}

func TestCancelListingLostRace(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(2)).Return(mockStoredListing(2), nil)
	deps.repo.On("Patch", mock.Anything, uint64(2), mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	req.ErrorIs(u.CancelListing(ctx, 2, mockSeller), domain.ErrInvalidState)
}

func TestQueries(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	unsold := []*listing.Listing{mockStoredListing(0), mockStoredListing(3), mockStoredListing(6)}
	executed := []*listing.Listing{mockStoredListing(1), mockStoredListing(2)}

	u, deps := newTestUsecase(3)
	deps.repo.On("FindAll", mock.Anything, mock.Anything).Return(unsold, nil).Once()

	got, err := u.GetUnsoldListings(ctx)
	req.NoError(err)
	req.Equal(unsold, got)

	deps.repo.On("FindAll", mock.Anything, mock.Anything).Return(executed, nil).Once()
	got, err = u.GetExecutedListings(ctx)
	req.NoError(err)
	req.Equal(executed, got)

	deps.repo.On("FindAll", mock.Anything, mock.Anything).Return(unsold, nil).Once()
	got, err = u.GetUserListings(ctx, mockSeller)
	req.NoError(err)
	req.Equal(unsold, got)

	deps.repo.On("Count", mock.Anything, mock.Anything).Return(6, nil).Once()
	sold, err := u.CountSold(ctx)
	req.NoError(err)
	req.Equal(6, sold)

	deps.repo.On("Count", mock.Anything).Return(9, nil).Once()
	total, err := u.CountListings(ctx)
	req.NoError(err)
	req.Equal(9, total)

	req.Equal(3, u.GetCommissionPercentage(ctx))
}

func TestGetListingPassesThroughRepoError(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	wantErr := errors.New("mongo down")

	u, deps := newTestUsecase(3)
	deps.repo.On("FindOne", mock.Anything, uint64(0)).Return(nil, wantErr)

	_, err := u.GetListing(ctx, 0)
	req.ErrorIs(err, wantErr)
}
