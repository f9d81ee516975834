package txbuilder

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github/chapool/go-faucet/internal/faucet/signer"
	"github/chapool/go-faucet/internal/token"
)

// baseFeeMultiplier gives the transaction headroom for base fee growth
// between fee lookup and inclusion: maxFee = baseFee*2 + tip.
const baseFeeMultiplier = 2

// ChainClient is the slice of the ledger RPC surface the builder needs. Fee
// parameters are fetched fresh on every build; a cached fee estimate risks
// under-pricing and a stuck transaction.
type ChainClient interface {
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	LatestBaseFee(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
}

// Service constructs unsigned transactions from validated funding requests.
type Service interface {
	// BuildTransfer builds a native transfer when tok is nil, otherwise a
	// transfer call against the token's contract.
	BuildTransfer(ctx context.Context, to common.Address, amount decimal.Decimal, tok *token.Token, nonce uint64) (*signer.Request, error)
}

type service struct {
	chain ChainClient
	from  common.Address
}

// NewService creates a transaction builder for the faucet account.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(chain ChainClient, from common.Address) Service {
	return &service{
		chain: chain,
		from:  from,
	}
}

func (s *service) BuildTransfer(ctx context.Context, to common.Address, amount decimal.Decimal, tok *token.Token, nonce uint64) (*signer.Request, error) {
	tipCap, err := s.chain.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch gas tip cap")
	}

	baseFee, err := s.chain.LatestBaseFee(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch base fee")
	}

	maxFee := new(big.Int).Add(new(big.Int).Mul(baseFee, big.NewInt(baseFeeMultiplier)), tipCap)

	req := &signer.Request{
		GasFeeCap: maxFee,
		GasTipCap: tipCap,
		Nonce:     nonce,
	}

	if tok == nil {
		// Native transfer: fixed intrinsic gas cost, no calldata.
		req.To = to
		req.Value = token.ToBaseUnits(amount, token.NativeDecimals)
		req.GasLimit = params.TxGas

		return req, nil
	}

	// Token transfer: value moves via the contract call, the transaction
	// value field stays zero and the destination is the contract.
	data, err := tok.EncodeTransferCall(to, token.ToBaseUnits(amount, tok.Decimals))
	if err != nil {
		return nil, err
	}

	req.To = tok.Address
	req.Value = big.NewInt(0)
	req.Data = data

	gas, err := s.chain.EstimateGas(ctx, ethereum.CallMsg{
		From: s.from,
		To:   &tok.Address,
		Data: data,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to estimate gas for %s transfer", tok.Symbol)
	}
	req.GasLimit = gas

	return req, nil
}
