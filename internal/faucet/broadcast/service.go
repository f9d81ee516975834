package broadcast

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github/chapool/go-faucet/internal/util"
)

// ErrConfirmationTimeout is returned when no receipt was observed before the
// configured timeout. The transaction is not known to have failed; it may
// still confirm later, so callers must report it as pending, never as
// failed.
var ErrConfirmationTimeout = errors.New("transaction confirmation timed out")

// ChainClient is the slice of the ledger RPC surface the broadcaster needs.
type ChainClient interface {
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Service submits signed transactions and optionally waits for their
// confirmation receipt.
type Service interface {
	// Submit hands the transaction to the network's pending pool. Acceptance
	// is not finality.
	Submit(ctx context.Context, tx *types.Transaction) (common.Hash, error)

	// AwaitReceipt polls for the receipt until it appears or the configured
	// timeout elapses (ErrConfirmationTimeout). The underlying submission is
	// never cancelled; the network has no such concept.
	AwaitReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type service struct {
	chain        ChainClient
	timeout      time.Duration
	pollInterval time.Duration
}

// NewService creates a broadcaster with the given confirmation timeout and
// receipt poll interval.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(chain ChainClient, timeout, pollInterval time.Duration) Service {
	return &service{
		chain:        chain,
		timeout:      timeout,
		pollInterval: pollInterval,
	}
}

func (s *service) Submit(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	if err := s.chain.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to broadcast transaction")
	}

	return tx.Hash(), nil
}

func (s *service) AwaitReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	log := util.LogFromContext(ctx)

	waitCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := s.chain.TransactionReceipt(waitCtx, txHash)
		switch {
		case err == nil:
			return receipt, nil
		case errors.Is(err, ethereum.NotFound):
			// still pending, keep polling
		case waitCtx.Err() != nil:
			// fall through to the select below to report the timeout
		default:
			log.Warn().Str("tx_hash", txHash.Hex()).Err(err).Msg("Receipt lookup failed, will retry")
		}

		select {
		case <-waitCtx.Done():
			return nil, errors.Wrapf(ErrConfirmationTimeout, "no receipt for %s after %s", txHash.Hex(), s.timeout)
		case <-ticker.C:
		}
	}
}
