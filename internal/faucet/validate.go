package faucet

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ValidateRequest normalizes and checks the caller-supplied recipient and
// amount. Every fund route runs this before anything touches the chain; all
// rejections are terminal.
func ValidateRequest(address, amount string) (*Request, error) {
	if address == "" || amount == "" {
		return nil, NewValidationError("Address and amount are required.")
	}

	if !strings.HasPrefix(address, "0x") && !strings.HasPrefix(address, "0X") {
		address = "0x" + address
	}

	if !common.IsHexAddress(address) {
		return nil, NewValidationError("Invalid Ethereum address.")
	}

	amt, err := decimal.NewFromString(amount)
	if err != nil || amt.Sign() <= 0 {
		return nil, NewValidationError("Amount must be a number greater than zero.")
	}

	return &Request{
		To:     common.HexToAddress(address),
		Amount: amt,
	}, nil
}
