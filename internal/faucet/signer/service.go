package signer

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

type service struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
	chainID    *big.Int
}

// NewService parses the hex-encoded private key once and keeps it in memory
// for the process lifetime. The key is never logged and never re-derived per
// request; signing binds the configured chain id so a signed transaction
// cannot be replayed on another chain.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(privateKeyHex string, chainID int64) (Service, error) {
	if privateKeyHex == "" {
		return nil, errors.New("faucet private key is not configured")
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse faucet private key")
	}

	return &service{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		chainID:    big.NewInt(chainID),
	}, nil
}

func (s *service) Address() common.Address {
	return s.address
}

// Sign signs an EIP-1559 transaction.
func (s *service) Sign(_ context.Context, req *Request) (*SignedTx, error) {
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     req.Nonce,
		GasTipCap: req.GasTipCap,
		GasFeeCap: req.GasFeeCap,
		Gas:       req.GasLimit,
		To:        &req.To,
		Value:     req.Value,
		Data:      req.Data,
	})

	signedTx, err := types.SignTx(tx, types.NewLondonSigner(s.chainID), s.privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	raw, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal signed transaction")
	}

	return &SignedTx{
		Tx:     signedTx,
		Raw:    raw,
		TxHash: signedTx.Hash(),
	}, nil
}
