package usecase

import (
	"math/big"
	"time"

	"golang.org/x/xerrors"

	"github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/base/log"
	"github.com/stranger-market/goapi/base/ptr"
	"github.com/stranger-market/goapi/domain"
	"github.com/stranger-market/goapi/domain/listing"
)

// ExecuteSale settles a listing for the caller. All fallible checks run
// before the token transfer; once the transfer lands the sale is committed
// and the store patch plus payouts follow. Excess payment over price plus
// commission stays with the marketplace.
func (im *impl) ExecuteSale(c ctx.Ctx, id uint64, buyer domain.Address, paid *big.Int) error {
	if !im.acquire(id) {
		return domain.ErrInvalidState
	}
	defer im.release(id)

	defer im.metrics.BumpTime("execute_sale.time").End()

	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return err
	}

	if l.Cancelled || l.Executed || !l.Active {
		return domain.ErrInvalidState
	}

	if buyer.IsEmpty() {
		return domain.ErrInvalidAddress
	}

	ref := l.ItemRef()
	if approved, err := im.ownership.IsApprovedForTransfer(c, ref, l.Seller); err != nil {
		c.WithField("err", err).Error("ownership.IsApprovedForTransfer failed")
		return err
	} else if !approved {
		return domain.ErrNotApproved
	}

	price, ok := l.PriceAmount()
	if !ok {
		c.WithField("price", l.Price).Error("stored price is not an integer")
		return domain.ErrInvalidPrice
	}
	commission := im.commissionFor(price)
	totalDue := new(big.Int).Add(price, commission)

	if paid == nil || paid.Cmp(totalDue) < 0 {
		return domain.ErrInsufficientPayment
	}

	// last fallible external action. a failure here aborts with no effect,
	// success commits the sale.
	if err := im.ownership.TransferOwnership(c, ref, l.Seller, buyer); err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("ownership.TransferOwnership failed")
		return err
	}

	patch := listing.Patchable{
		Active:    ptr.Bool(false),
		Executed:  ptr.Bool(true),
		Buyer:     buyer.ToLowerPtr(),
		UpdatedAt: ptr.Time(time.Now()),
	}
	if err := im.repo.Patch(c, id, patch, listing.WithActive(true), listing.WithUnsold()); err == domain.ErrNotFound {
		// the guarded selector no longer matched, the record moved under us
		return domain.ErrInvalidState
	} else if err != nil {
		c.WithField("err", err).Error("repo.Patch failed")
		return err
	}

	if err := im.vault.Disburse(c, l.ChainId, l.Seller, price); err != nil {
		c.WithFields(log.Fields{
			"id":     id,
			"seller": l.Seller,
			"err":    err,
		}).Error("vault.Disburse to seller failed")
		return xerrors.Errorf("disburse price to seller: %w", err)
	}
	if commission.Sign() > 0 {
		if err := im.vault.Disburse(c, l.ChainId, im.feeRecipient, commission); err != nil {
			c.WithFields(log.Fields{
				"id":  id,
				"err": err,
			}).Error("vault.Disburse commission failed")
			return xerrors.Errorf("disburse commission: %w", err)
		}
	}

	im.metrics.BumpSum("execute_sale.count", 1)
	return nil
}

// commissionFor truncates toward zero, matching integer fee math.
func (im *impl) commissionFor(price *big.Int) *big.Int {
	commission := new(big.Int).Mul(big.NewInt(int64(im.commissionPercentage)), price)
	return commission.Div(commission, domain.Big100)
}
