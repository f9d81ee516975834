package faucet

import (
	"context"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github/chapool/go-faucet/internal/faucet/broadcast"
	"github/chapool/go-faucet/internal/faucet/nonce"
	"github/chapool/go-faucet/internal/faucet/signer"
	"github/chapool/go-faucet/internal/faucet/txbuilder"
	"github/chapool/go-faucet/internal/util"
)

// Service runs the dispatch pipeline for a validated funding request:
// sequence, build, sign, submit and (optionally) await confirmation.
type Service interface {
	Fund(ctx context.Context, req *Request) (*Outcome, error)
}

type service struct {
	sequencer         *nonce.Sequencer
	builder           txbuilder.Service
	signer            signer.Service
	broadcaster       broadcast.Service
	awaitConfirmation bool
}

// NewService wires the pipeline. With awaitConfirmation the response is held
// back until a receipt is observed or the broadcaster's timeout elapses;
// without it the transaction hash is returned right after submission.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(
	sequencer *nonce.Sequencer,
	builder txbuilder.Service,
	sign signer.Service,
	broadcaster broadcast.Service,
	awaitConfirmation bool,
) Service {
	return &service{
		sequencer:         sequencer,
		builder:           builder,
		signer:            sign,
		broadcaster:       broadcaster,
		awaitConfirmation: awaitConfirmation,
	}
}

func (s *service) Fund(ctx context.Context, req *Request) (*Outcome, error) {
	log := util.LogFromContext(ctx)

	// The sequence number is consumed here, before any network I/O. Every
	// failure past this point leaves a nonce gap (see SequenceGapError).
	seq := s.sequencer.Next()

	unsigned, err := s.builder.BuildTransfer(ctx, req.To, req.Amount, req.Token, seq)
	if err != nil {
		return nil, s.sequenceGap(ctx, seq, errors.Wrap(err, "failed to build transaction"))
	}

	signed, err := s.signer.Sign(ctx, unsigned)
	if err != nil {
		return nil, s.sequenceGap(ctx, seq, errors.Wrap(err, "failed to sign transaction"))
	}

	txHash, err := s.broadcaster.Submit(ctx, signed.Tx)
	if err != nil {
		return nil, s.sequenceGap(ctx, seq, err)
	}

	outcome := &Outcome{
		TxHash: txHash.Hex(),
		Status: StatusPending,
	}

	log.Info().
		Str("to", req.To.Hex()).
		Str("amount", req.Amount.String()).
		Uint64("nonce", seq).
		Str("tx_hash", outcome.TxHash).
		Msg("Transaction broadcast")

	if !s.awaitConfirmation {
		return outcome, nil
	}

	receipt, err := s.broadcaster.AwaitReceipt(ctx, signed.TxHash)
	if err != nil {
		// A missing receipt is not a failure: the transaction is in the pool
		// and may still confirm. Hand the hash back as pending.
		log.Warn().
			Str("tx_hash", outcome.TxHash).
			Err(err).
			Msg("Confirmation still pending, returning transaction hash")

		return outcome, nil
	}

	outcome.BlockNumber = receipt.BlockNumber
	if receipt.Status == types.ReceiptStatusSuccessful {
		outcome.Status = StatusConfirmed
	} else {
		outcome.Status = StatusFailed
	}

	log.Info().
		Str("tx_hash", outcome.TxHash).
		Str("status", string(outcome.Status)).
		Str("block", receipt.BlockNumber.String()).
		Msg("Transaction confirmed")

	return outcome, nil
}

// sequenceGap wraps a pipeline failure that consumed a nonce without a
// broadcast. Logged loudly so operators can fill the gap before the account
// stalls.
func (s *service) sequenceGap(ctx context.Context, seq uint64, cause error) error {
	gap := &SequenceGapError{Nonce: seq, cause: cause}

	util.LogFromContext(ctx).Error().
		Uint64("nonce", seq).
		Err(cause).
		Msg("Sequence number consumed without broadcast, account stalls until the gap is filled")

	return gap
}
