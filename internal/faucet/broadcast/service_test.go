package broadcast_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github/chapool/go-faucet/internal/faucet/broadcast"
	"github/chapool/go-faucet/internal/test"
)

func dummyTx() *types.Transaction {
	to := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(1337),
		Nonce:     7,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(2),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(1),
	})
}

func TestSubmitAndAwaitReceipt(t *testing.T) {
	ctx := context.Background()
	mock := test.NewMockChain()
	svc := broadcast.NewService(mock, 250*time.Millisecond, 10*time.Millisecond)

	tx := dummyTx()
	hash, err := svc.Submit(ctx, tx)
	require.NoError(t, err)
	require.Equal(t, tx.Hash(), hash)

	receipt, err := svc.AwaitReceipt(ctx, hash)
	require.NoError(t, err)
	require.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	require.Equal(t, hash, receipt.TxHash)
}

func TestSubmitRejected(t *testing.T) {
	ctx := context.Background()
	mock := test.NewMockChain()
	mock.SendErr = errors.New("replacement transaction underpriced")
	svc := broadcast.NewService(mock, 250*time.Millisecond, 10*time.Millisecond)

	_, err := svc.Submit(ctx, dummyTx())
	require.Error(t, err)
}

func TestAwaitReceiptTimesOut(t *testing.T) {
	ctx := context.Background()
	mock := test.NewMockChain()
	mock.WithholdReceipts = true
	svc := broadcast.NewService(mock, 50*time.Millisecond, 10*time.Millisecond)

	tx := dummyTx()
	hash, err := svc.Submit(ctx, tx)
	require.NoError(t, err)

	start := time.Now()
	_, err = svc.AwaitReceipt(ctx, hash)
	require.Error(t, err)
	require.ErrorIs(t, err, broadcast.ErrConfirmationTimeout)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestAwaitReceiptLateConfirmation(t *testing.T) {
	ctx := context.Background()
	mock := test.NewMockChain()
	mock.WithholdReceipts = true
	svc := broadcast.NewService(mock, time.Second, 10*time.Millisecond)

	tx := dummyTx()
	hash, err := svc.Submit(ctx, tx)
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		mock.SetReceipt(hash, &types.Receipt{
			Status:      types.ReceiptStatusSuccessful,
			TxHash:      hash,
			BlockNumber: big.NewInt(12345),
		})
	}()

	receipt, err := svc.AwaitReceipt(ctx, hash)
	require.NoError(t, err)
	require.Equal(t, "12345", receipt.BlockNumber.String())
}
