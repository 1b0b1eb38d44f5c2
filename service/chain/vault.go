package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	bCtx "github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/base/log"
	"github.com/stranger-market/goapi/domain"
	"github.com/stranger-market/goapi/domain/payment"
)

type vaultImpl struct {
	client Client
}

// NewVault returns a payment.Vault that pushes native value from the
// operator wallet.
func NewVault(client Client) payment.Vault {
	return &vaultImpl{client: client}
}

func (v *vaultImpl) Disburse(c bCtx.Ctx, chainId domain.ChainId, to domain.Address, amount *big.Int) error {
	hash, err := v.client.Transact(c, int32(chainId), common.HexToAddress(string(to)), amount, nil)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "to": to, "amount": amount.String()}).Error("chain.Transact failed")
		return err
	}
	c.WithFields(log.Fields{"to": to, "amount": amount.String(), "tx": hash.Hex()}).Info("disbursed")
	return nil
}
