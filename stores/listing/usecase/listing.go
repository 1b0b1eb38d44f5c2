package usecase

import (
	"math/big"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/base/log"
	"github.com/stranger-market/goapi/base/metrics"
	"github.com/stranger-market/goapi/base/ptr"
	"github.com/stranger-market/goapi/domain"
	"github.com/stranger-market/goapi/domain/item"
	"github.com/stranger-market/goapi/domain/listing"
	"github.com/stranger-market/goapi/domain/payment"
)

type ListingUseCaseCfg struct {
	ListingRepo listing.Repo
	Ownership   item.Ownership
	Vault       payment.Vault

	// CommissionPercentage is the flat marketplace fee rate, fixed at boot.
	CommissionPercentage int
	FeeRecipient         domain.Address
}

type impl struct {
	repo                 listing.Repo
	ownership            item.Ownership
	vault                payment.Vault
	commissionPercentage int
	feeRecipient         domain.Address
	metrics              metrics.Service

	// inflight rejects overlapping mutations of the same listing
	mu       sync.Mutex
	inflight map[uint64]struct{}
}

func New(cfg *ListingUseCaseCfg) listing.Usecase {
	return &impl{
		repo:                 cfg.ListingRepo,
		ownership:            cfg.Ownership,
		vault:                cfg.Vault,
		commissionPercentage: cfg.CommissionPercentage,
		feeRecipient:         cfg.FeeRecipient.ToLower(),
		metrics:              metrics.New("listing"),
		inflight:             map[uint64]struct{}{},
	}
}

func (im *impl) acquire(id uint64) bool {
	im.mu.Lock()
	defer im.mu.Unlock()
	if _, ok := im.inflight[id]; ok {
		return false
	}
	im.inflight[id] = struct{}{}
	return true
}

func (im *impl) release(id uint64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	delete(im.inflight, id)
}

func requireSeller(l *listing.Listing, caller domain.Address) error {
	if !l.Seller.Equals(caller) {
		return domain.ErrUnauthorized
	}
	return nil
}

func (im *impl) CreateListing(c ctx.Ctx, ref item.Ref, price string, seller domain.Address) (uint64, error) {
	if seller.IsEmpty() || ref.ContractAddress.IsEmpty() {
		return 0, domain.ErrInvalidAddress
	}

	amount, ok := new(big.Int).SetString(price, 10)
	if !ok || amount.Cmp(domain.Big0) <= 0 {
		return 0, domain.ErrInvalidPrice
	}

	if approved, err := im.ownership.IsApprovedForTransfer(c, ref, seller); err != nil {
		c.WithField("err", err).Error("ownership.IsApprovedForTransfer failed")
		return 0, err
	} else if !approved {
		return 0, domain.ErrNotApproved
	}

	id, err := im.repo.NextId(c)
	if err != nil {
		c.WithField("err", err).Error("repo.NextId failed")
		return 0, err
	}

	now := time.Now()
	l := &listing.Listing{
		Id:              id,
		ChainId:         ref.ChainId,
		ContractAddress: ref.ContractAddress.ToLower(),
		TokenId:         ref.TokenId,
		Seller:          seller.ToLower(),
		Price:           amount.String(),
		DisplayPrice:    decimal.NewFromBigInt(amount, -18).InexactFloat64(),
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := im.repo.Insert(c, l); err != nil {
		c.WithFields(log.Fields{
			"listing": l,
			"err":     err,
		}).Error("repo.Insert failed")
		return 0, err
	}

	im.metrics.BumpSum("create.count", 1)
	return id, nil
}

func (im *impl) PauseListing(c ctx.Ctx, id uint64, caller domain.Address) error {
	return im.toggleActive(c, id, caller, false)
}

func (im *impl) UnpauseListing(c ctx.Ctx, id uint64, caller domain.Address) error {
	return im.toggleActive(c, id, caller, true)
}

func (im *impl) toggleActive(c ctx.Ctx, id uint64, caller domain.Address, active bool) error {
	if !im.acquire(id) {
		return domain.ErrInvalidState
	}
	defer im.release(id)

	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return err
	}
	if err := requireSeller(l, caller); err != nil {
		return err
	}
	if l.Cancelled || l.Executed {
		return domain.ErrInvalidState
	}
	if l.Active == active {
		// already at the target value
		return nil
	}

	patch := listing.Patchable{
		Active:    &active,
		UpdatedAt: ptr.Time(time.Now()),
	}
	if err := im.repo.Patch(c, id, patch, listing.WithUnsold(), listing.WithActive(!active)); err == domain.ErrNotFound {
		return domain.ErrInvalidState
	} else if err != nil {
		c.WithField("err", err).Error("repo.Patch failed")
		return err
	}
	return nil
}

func (im *impl) CancelListing(c ctx.Ctx, id uint64, caller domain.Address) error {
	if !im.acquire(id) {
		return domain.ErrInvalidState
	}
	defer im.release(id)

	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return err
	}
	if err := requireSeller(l, caller); err != nil {
		return err
	}
	if l.Cancelled || l.Executed {
		return domain.ErrInvalidState
	}

	tomb := item.EmptyRef(l.ChainId)
	patch := listing.Patchable{
		ContractAddress: &tomb.ContractAddress,
		TokenId:         &tomb.TokenId,
		Active:          ptr.Bool(false),
		Cancelled:       ptr.Bool(true),
		UpdatedAt:       ptr.Time(time.Now()),
	}
	if err := im.repo.Patch(c, id, patch, listing.WithUnsold()); err == domain.ErrNotFound {
		return domain.ErrInvalidState
	} else if err != nil {
		c.WithField("err", err).Error("repo.Patch failed")
		return err
	}

	im.metrics.BumpSum("cancel.count", 1)
	return nil
}

func (im *impl) GetListing(c ctx.Ctx, id uint64) (*listing.Listing, error) {
	return im.repo.FindOne(c, id)
}

func (im *impl) GetUnsoldListings(c ctx.Ctx) ([]*listing.Listing, error) {
	return im.repo.FindAll(c, listing.WithUnsold())
}

func (im *impl) GetExecutedListings(c ctx.Ctx) ([]*listing.Listing, error) {
	return im.repo.FindAll(c, listing.WithExecuted(true))
}

func (im *impl) GetUserListings(c ctx.Ctx, user domain.Address) ([]*listing.Listing, error) {
	return im.repo.FindAll(c, listing.WithSeller(user))
}

func (im *impl) CountSold(c ctx.Ctx) (int, error) {
	return im.repo.Count(c, listing.WithExecuted(true))
}

func (im *impl) CountListings(c ctx.Ctx) (int, error) {
	return im.repo.Count(c)
}

func (im *impl) GetCommissionPercentage(c ctx.Ctx) int {
	return im.commissionPercentage
}
