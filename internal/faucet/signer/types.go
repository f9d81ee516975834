package signer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Service signs faucet transactions with the single in-memory key.
type Service interface {
	// Sign produces a broadcast-ready transaction. Deterministic given the
	// request, the key and the chain id the service was created with.
	Sign(ctx context.Context, req *Request) (*SignedTx, error)

	// Address returns the faucet account address derived from the key.
	Address() common.Address
}

// Request is an unsigned EIP-1559 transaction as produced by the builder.
type Request struct {
	To        common.Address // recipient for native transfers, contract for token transfers
	Value     *big.Int       // native value in wei, zero for token transfers
	GasLimit  uint64
	GasFeeCap *big.Int
	GasTipCap *big.Int
	Nonce     uint64
	Data      []byte // empty for native transfers, encoded transfer call otherwise
}

// SignedTx is an immutable signed transaction plus its wire encoding.
type SignedTx struct {
	Tx     *types.Transaction
	Raw    []byte // RLP encoding
	TxHash common.Hash
}
