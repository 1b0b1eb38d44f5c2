package payment

import (
	"math/big"

	"github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/domain"
)

// Vault pushes native value out of the marketplace operator wallet.
// The sale executor uses it to split a buyer's payment between the
// seller and the commission recipient; anything it is not told to
// disburse stays in the wallet.
type Vault interface {
	Disburse(c ctx.Ctx, chainId domain.ChainId, to domain.Address, amount *big.Int) error
}
