package item

import (
	"github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/domain"
)

// Ref identifies one token inside one ERC-721 contract on one chain.
type Ref struct {
	ChainId         domain.ChainId `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId" bson:"tokenID"`
}

func (r *Ref) IsEmpty() bool {
	return r.ContractAddress == domain.EmptyAddress && r.TokenId == "0"
}

// EmptyRef is the tombstone value cancelled listings carry.
func EmptyRef(chainId domain.ChainId) Ref {
	return Ref{
		ChainId:         chainId,
		ContractAddress: domain.EmptyAddress,
		TokenId:         domain.TokenId("0"),
	}
}

// Ownership is the capability surface the marketplace consumes from the
// token contract. Reads are side-effect free. TransferOwnership reassigns
// the token on chain and cannot be undone once it succeeds.
type Ownership interface {
	OwnerOf(c ctx.Ctx, ref Ref) (domain.Address, error)

	// IsApprovedForTransfer reports whether the marketplace operator holds
	// transfer delegation for ref granted by owner, either through a
	// single-token approval or an approve-all grant.
	IsApprovedForTransfer(c ctx.Ctx, ref Ref, owner domain.Address) (bool, error)

	TransferOwnership(c ctx.Ctx, ref Ref, from, to domain.Address) error
}
