package faucet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github/chapool/go-faucet/internal/token"
)

// Request is a validated funding request. Token is nil for native transfers.
type Request struct {
	To     common.Address
	Amount decimal.Decimal
	Token  *token.Token
}

type Status string

const (
	// StatusConfirmed means a receipt with a successful execution status was
	// observed.
	StatusConfirmed Status = "confirmed"
	// StatusPending means the transaction was accepted for broadcast but no
	// receipt was observed (yet). Not a failure.
	StatusPending Status = "pending"
	// StatusFailed means a receipt was observed with a failed execution
	// status.
	StatusFailed Status = "failed"
)

// Outcome is what a funding request resolves to. TxHash is always set once
// the transaction was accepted for broadcast, so callers can keep polling
// on their own when the status is pending.
type Outcome struct {
	TxHash      string
	Status      Status
	BlockNumber *big.Int
}
