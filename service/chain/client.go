package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	bCtx "github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/base/log"
)

var (
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrTxReverted       = errors.New("transaction reverted")
)

type ClientCfg struct {
	RpcUrls map[int32]string
	// OperatorKey is the hex encoded private key of the marketplace
	// operator wallet. It signs transfers and payouts.
	OperatorKey string
}

type Client interface {
	// Call performs a read-only contract call and unpacks the outputs.
	Call(bCtx.Ctx, int32, common.Address, abi.ABI, string, ...interface{}) ([]interface{}, error)

	// Transact signs a transaction from the operator wallet, submits it
	// and waits until it is mined. ErrTxReverted when the receipt reports
	// failure.
	Transact(c bCtx.Ctx, chainId int32, to common.Address, value *big.Int, data []byte) (common.Hash, error)

	// Operator is the address of the marketplace operator wallet.
	Operator() common.Address
}

type clientImpl struct {
	clients     map[int32]*ethclient.Client
	operatorKey *ecdsa.PrivateKey
	operator    common.Address
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	key, err := crypto.HexToECDSA(cfg.OperatorKey)
	if err != nil {
		ctx.WithField("err", err).Error("failed to parse operator key")
		return nil, err
	}

	var anyerr error
	clients := make(map[int32]*ethclient.Client)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = client
	}
	return &clientImpl{
		clients:     clients,
		operatorKey: key,
		operator:    crypto.PubkeyToAddress(key.PublicKey),
	}, anyerr
}

func (c *clientImpl) Operator() common.Address {
	return c.operator
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId int32, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, nil)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) Transact(ctx bCtx.Ctx, chainId int32, to common.Address, value *big.Int, data []byte) (common.Hash, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return common.Hash{}, ErrUnsupportedChain
	}

	nonce, err := client.PendingNonceAt(ctx, c.operator)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return common.Hash{}, err
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return common.Hash{}, err
	}
	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  c.operator,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		ctx.WithField("err", err).Error("client.EstimateGas failed")
		return common.Hash{}, err
	}

	tx := types.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
	signer := types.LatestSignerForChainID(big.NewInt(int64(chainId)))
	signed, err := types.SignTx(tx, signer, c.operatorKey)
	if err != nil {
		ctx.WithField("err", err).Error("types.SignTx failed")
		return common.Hash{}, err
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		ctx.WithField("err", err).Error("client.SendTransaction failed")
		return common.Hash{}, err
	}

	receipt, err := bind.WaitMined(ctx, client, signed)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "tx": signed.Hash().Hex()}).Error("bind.WaitMined failed")
		return common.Hash{}, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		ctx.WithField("tx", signed.Hash().Hex()).Error("transaction reverted")
		return signed.Hash(), ErrTxReverted
	}
	return signed.Hash(), nil
}
