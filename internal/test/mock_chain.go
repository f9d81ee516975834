package test

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MockChain is an in-memory ledger collaborator. By default every submitted
// transaction immediately gets a successful receipt; set WithholdReceipts to
// simulate a transaction that never confirms.
type MockChain struct {
	mu sync.Mutex

	StartNonce       uint64
	TipCap           *big.Int
	BaseFee          *big.Int
	GasEstimate      uint64
	NetworkChainID   *big.Int
	Balance          *big.Int
	WithholdReceipts bool

	// SendErr, when set, makes SendTransaction fail (broadcast rejection).
	SendErr error
	// FeeErr, when set, makes fee lookups fail (build failure).
	FeeErr error

	sent     []*types.Transaction
	receipts map[common.Hash]*types.Receipt
}

func NewMockChain() *MockChain {
	return &MockChain{
		StartNonce:     7,
		TipCap:         big.NewInt(1_000_000_000),  // 1 gwei
		BaseFee:        big.NewInt(10_000_000_000), // 10 gwei
		GasEstimate:    60_000,
		NetworkChainID: big.NewInt(1337),
		Balance:        new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18)),
		receipts:       make(map[common.Hash]*types.Receipt),
	}
}

func (m *MockChain) SuggestGasTipCap(_ context.Context) (*big.Int, error) {
	if m.FeeErr != nil {
		return nil, m.FeeErr
	}

	return m.TipCap, nil
}

func (m *MockChain) LatestBaseFee(_ context.Context) (*big.Int, error) {
	if m.FeeErr != nil {
		return nil, m.FeeErr
	}

	return m.BaseFee, nil
}

func (m *MockChain) EstimateGas(_ context.Context, _ ethereum.CallMsg) (uint64, error) {
	return m.GasEstimate, nil
}

func (m *MockChain) SendTransaction(_ context.Context, tx *types.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendErr != nil {
		return m.SendErr
	}

	m.sent = append(m.sent, tx)

	if !m.WithholdReceipts {
		m.receipts[tx.Hash()] = &types.Receipt{
			Status:      types.ReceiptStatusSuccessful,
			TxHash:      tx.Hash(),
			BlockNumber: big.NewInt(int64(12_344 + len(m.sent))),
		}
	}

	return nil
}

func (m *MockChain) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	receipt, ok := m.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}

	return receipt, nil
}

func (m *MockChain) PendingNonceAt(_ context.Context, _ common.Address) (uint64, error) {
	return m.StartNonce, nil
}

func (m *MockChain) BalanceAt(_ context.Context, _ common.Address) (*big.Int, error) {
	return m.Balance, nil
}

func (m *MockChain) ChainID(_ context.Context) (*big.Int, error) {
	return m.NetworkChainID, nil
}

func (m *MockChain) Close() {}

// SentTransactions returns a copy of everything submitted so far.
func (m *MockChain) SentTransactions() []*types.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.Transaction, len(m.sent))
	copy(out, m.sent)

	return out
}

// SetReceipt makes a receipt for the given transaction available, e.g. after
// submitting with WithholdReceipts.
func (m *MockChain) SetReceipt(txHash common.Hash, receipt *types.Receipt) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.receipts[txHash] = receipt
}
