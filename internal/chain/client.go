package chain

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Client wraps one or more ethclient connections and fails over between them.
// Every method targets whichever endpoint is currently healthy; an endpoint
// that could not be dialed at startup is retried on use.
type Client struct {
	mu      sync.Mutex
	urls    []string
	clients []*ethclient.Client
	current int
}

// NewClient connects to the given RPC endpoints. At least one endpoint must
// be reachable; unreachable ones stay in the rotation and are redialed
// lazily.
func NewClient(urls []string) (*Client, error) {
	if len(urls) == 0 {
		return nil, errors.New("at least one RPC URL is required")
	}

	clients := make([]*ethclient.Client, len(urls))
	connected := 0
	for i, url := range urls {
		client, err := ethclient.Dial(url)
		if err != nil {
			log.Warn().Str("url", url).Err(err).Msg("Failed to connect to RPC endpoint, will retry on use")
			continue
		}
		clients[i] = client
		connected++
	}

	if connected == 0 {
		return nil, errors.New("failed to connect to any RPC endpoint")
	}

	return &Client{
		urls:    urls,
		clients: clients,
	}, nil
}

// Close closes all underlying connections.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, client := range c.clients {
		if client != nil {
			client.Close()
		}
	}
}

// getClient returns the current endpoint, redialing dead ones and rotating
// forward until a healthy connection is found.
func (c *Client) getClient(ctx context.Context) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := 0; i < len(c.clients); i++ {
		idx := (c.current + i) % len(c.clients)

		if c.clients[idx] == nil {
			client, err := ethclient.Dial(c.urls[idx])
			if err != nil {
				log.Warn().Str("url", c.urls[idx]).Err(err).Msg("RPC endpoint still unreachable")
				continue
			}
			c.clients[idx] = client
		}

		c.current = idx

		return c.clients[idx], nil
	}

	return nil, errors.New("all RPC endpoints are unavailable")
}

// failover drops the current connection so the next call rotates to another
// endpoint.
func (c *Client) failover() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clients[c.current] != nil {
		c.clients[c.current].Close()
		c.clients[c.current] = nil
	}
	c.current = (c.current + 1) % len(c.clients)
}

// SuggestGasTipCap returns the suggested priority fee per gas.
func (c *Client) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, err
	}

	tipCap, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		c.failover()
		return nil, errors.Wrap(err, "failed to suggest gas tip cap")
	}

	return tipCap, nil
}

// LatestBaseFee returns the base fee of the latest block. The chain must
// support EIP-1559; a nil base fee is an error.
func (c *Client) LatestBaseFee(ctx context.Context) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, err
	}

	header, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		c.failover()
		return nil, errors.Wrap(err, "failed to get latest block header")
	}

	if header.BaseFee == nil {
		return nil, errors.New("chain does not support EIP-1559 (base fee is nil)")
	}

	return header.BaseFee, nil
}

// EstimateGas estimates the gas needed to execute the given call.
func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return 0, err
	}

	gas, err := client.EstimateGas(ctx, msg)
	if err != nil {
		return 0, errors.Wrap(err, "failed to estimate gas")
	}

	return gas, nil
}

// SendTransaction submits a signed transaction to the network's pending
// pool. Acceptance is not finality.
func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	client, err := c.getClient(ctx)
	if err != nil {
		return err
	}

	if err := client.SendTransaction(ctx, tx); err != nil {
		return errors.Wrap(err, "failed to send transaction")
	}

	return nil
}

// TransactionReceipt returns the receipt for a mined transaction, or
// ethereum.NotFound while it is still pending.
func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, err
	}

	return client.TransactionReceipt(ctx, txHash)
}

// PendingNonceAt returns the account nonce including pending transactions.
// Used once at startup to seed the sequencer.
func (c *Client) PendingNonceAt(ctx context.Context, address common.Address) (uint64, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return 0, err
	}

	n, err := client.PendingNonceAt(ctx, address)
	if err != nil {
		c.failover()
		return 0, errors.Wrap(err, "failed to get pending nonce")
	}

	return n, nil
}

// BalanceAt returns the native balance of an address at the latest block.
func (c *Client) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := client.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	return balance, nil
}

// ChainID returns the chain id reported by the endpoint.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, err
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		c.failover()
		return nil, errors.Wrap(err, "failed to get chain id")
	}

	return chainID, nil
}
