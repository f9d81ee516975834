package token

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/go-faucet/internal/config"
)

// Token is one fungible token the faucet can dispense. The contract address
// and decimal precision are fixed at startup; value moves via the contract's
// transfer call, not the transaction value field.
type Token struct {
	Symbol   string
	Address  common.Address
	Decimals uint8
}

// EncodeTransferCall returns the ABI-encoded calldata for
// transfer(recipient, amount), with amount already in the token's smallest
// unit.
func (t *Token) EncodeTransferCall(recipient common.Address, amount *big.Int) ([]byte, error) {
	data, err := erc20ABI.Pack("transfer", recipient, amount)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode transfer call for %s", t.Symbol)
	}

	return data, nil
}

// Registry resolves token symbols to their on-chain definition.
type Registry struct {
	tokens map[string]*Token
	order  []string
}

// NewRegistry builds a registry from the configured token list.
func NewRegistry(cfgs []config.Token) (*Registry, error) {
	r := &Registry{
		tokens: make(map[string]*Token, len(cfgs)),
	}

	for _, cfg := range cfgs {
		if cfg.Symbol == "" {
			return nil, errors.New("token symbol must not be empty")
		}
		if !common.IsHexAddress(cfg.ContractAddress) {
			return nil, errors.Errorf("token %s has invalid contract address %q", cfg.Symbol, cfg.ContractAddress)
		}

		key := strings.ToUpper(cfg.Symbol)
		if _, exists := r.tokens[key]; exists {
			return nil, errors.Errorf("token %s is declared twice", cfg.Symbol)
		}

		r.tokens[key] = &Token{
			Symbol:   key,
			Address:  common.HexToAddress(cfg.ContractAddress),
			Decimals: cfg.Decimals,
		}
		r.order = append(r.order, key)
	}

	return r, nil
}

// Get returns the token for the given symbol (case-insensitive).
func (r *Registry) Get(symbol string) (*Token, bool) {
	t, ok := r.tokens[strings.ToUpper(symbol)]
	return t, ok
}

// All returns the registered tokens in declaration order.
func (r *Registry) All() []*Token {
	out := make([]*Token, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.tokens[key])
	}

	return out
}
