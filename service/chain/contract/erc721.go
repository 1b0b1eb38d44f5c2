package contract

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/stranger-market/goapi/base/abi"
	bCtx "github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/domain"
	"github.com/stranger-market/goapi/domain/item"
	"github.com/stranger-market/goapi/service/chain"
)

// Erc721 reads and moves token ownership through the chain service.
// It implements item.Ownership for ERC-721 contracts.
type Erc721 struct {
	chainService chain.Client
}

func NewErc721(chainService chain.Client) item.Ownership {
	return &Erc721{
		chainService: chainService,
	}
}

func parseTokenId(tokenId domain.TokenId) (*big.Int, error) {
	id, ok := new(big.Int).SetString(string(tokenId), 10)
	if ok {
		return id, nil
	}
	return nil, fmt.Errorf("invalid token id %q", tokenId)
}

func (e *Erc721) OwnerOf(ctx bCtx.Ctx, ref item.Ref) (domain.Address, error) {
	tokenId, err := parseTokenId(ref.TokenId)
	if err != nil {
		return "", err
	}
	unpacked, err := e.chainService.Call(ctx, int32(ref.ChainId), common.HexToAddress(string(ref.ContractAddress)), baseabi.ERC721TokenABI, "ownerOf", tokenId)
	if err != nil {
		return "", err
	}
	return domain.Address(unpacked[0].(common.Address).Hex()).ToLower(), nil
}

func (e *Erc721) IsApprovedForTransfer(ctx bCtx.Ctx, ref item.Ref, owner domain.Address) (bool, error) {
	tokenId, err := parseTokenId(ref.TokenId)
	if err != nil {
		return false, err
	}
	contractAddr := common.HexToAddress(string(ref.ContractAddress))
	ownerAddr := common.HexToAddress(string(owner))
	operator := e.chainService.Operator()

	// an approval only counts when it was granted by the current owner
	current, err := e.OwnerOf(ctx, ref)
	if err != nil {
		return false, err
	}
	if !current.Equals(owner) {
		return false, nil
	}

	unpacked, err := e.chainService.Call(ctx, int32(ref.ChainId), contractAddr, baseabi.ERC721TokenABI, "getApproved", tokenId)
	if err != nil {
		return false, err
	}
	if unpacked[0].(common.Address) == operator {
		return true, nil
	}

	unpacked, err = e.chainService.Call(ctx, int32(ref.ChainId), contractAddr, baseabi.ERC721TokenABI, "isApprovedForAll", ownerAddr, operator)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) TransferOwnership(ctx bCtx.Ctx, ref item.Ref, from, to domain.Address) error {
	tokenId, err := parseTokenId(ref.TokenId)
	if err != nil {
		return err
	}
	data, err := baseabi.ERC721TokenABI.Pack("transferFrom", common.HexToAddress(string(from)), common.HexToAddress(string(to)), tokenId)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Pack failed")
		return err
	}
	_, err = e.chainService.Transact(ctx, int32(ref.ChainId), common.HexToAddress(string(ref.ContractAddress)), nil, data)
	return err
}
