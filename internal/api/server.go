package api

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/dropbox/godropbox/time2"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/chapool/go-faucet/internal/chain"
	"github/chapool/go-faucet/internal/config"
	"github/chapool/go-faucet/internal/faucet"
	"github/chapool/go-faucet/internal/faucet/broadcast"
	"github/chapool/go-faucet/internal/faucet/nonce"
	"github/chapool/go-faucet/internal/faucet/signer"
	"github/chapool/go-faucet/internal/faucet/txbuilder"
	"github/chapool/go-faucet/internal/metrics"
	"github/chapool/go-faucet/internal/ratelimit"
	"github/chapool/go-faucet/internal/token"
	"github/chapool/go-faucet/internal/util"
)

// ChainClient is the full ledger RPC surface the server wires into the
// pipeline. *chain.Client implements it; tests swap in a mock.
type ChainClient interface {
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	LatestBaseFee(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	PendingNonceAt(ctx context.Context, address common.Address) (uint64, error)
	BalanceAt(ctx context.Context, address common.Address) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// FaucetService is the dispatch pipeline entry point.
type FaucetService = faucet.Service

type Router struct {
	Routes     []*echo.Route
	Root       *echo.Group
	Management *echo.Group
	Faucet     *echo.Group
}

// Server is the central struct keeping all dependencies. Components are
// constructed in InitNewServer* in dependency order; Echo and Router are
// initialized afterwards by router.Init.
type Server struct {
	Echo   *echo.Echo
	Router *Router

	Config    config.Server
	Clock     time2.Clock
	Chain     ChainClient
	Tokens    *token.Registry
	Sequencer *nonce.Sequencer
	Signer    signer.Service
	Builder   txbuilder.Service
	Broadcast broadcast.Service
	Faucet    FaucetService
	Limiter   *ratelimit.Limiter
	Metrics   *metrics.Service
}

func NewServer(cfg config.Server) *Server {
	return &Server{
		Config: cfg,
	}
}

// InitNewServer connects to the configured RPC endpoints and initializes all
// components.
func InitNewServer(ctx context.Context, cfg config.Server) (*Server, error) {
	chainClient, err := chain.NewClient(cfg.Faucet.RPCURLs)
	if err != nil {
		return nil, err
	}

	return InitNewServerWithChain(ctx, cfg, chainClient)
}

// InitNewServerWithChain initializes all components on top of the given
// chain client. Used directly by tests with a mocked ledger.
func InitNewServerWithChain(ctx context.Context, cfg config.Server, chainClient ChainClient) (*Server, error) {
	s := NewServer(cfg)
	s.Clock = time2.DefaultClock
	s.Chain = chainClient
	s.Metrics = metrics.New()

	signerService, err := signer.NewService(cfg.Faucet.PrivateKey, cfg.Faucet.ChainID)
	if err != nil {
		return nil, err
	}
	s.Signer = signerService

	if chainID, err := chainClient.ChainID(ctx); err != nil {
		log.Warn().Err(err).Msg("Could not verify chain id against RPC endpoint")
	} else if chainID.Int64() != cfg.Faucet.ChainID {
		log.Warn().
			Int64("configured", cfg.Faucet.ChainID).
			Str("reported", chainID.String()).
			Msg("Configured chain id does not match RPC endpoint")
	}

	// Seed the sequencer once from the network. Pending transactions from a
	// previous process lifetime make this seed stale; that risk is accepted.
	startNonce, err := chainClient.PendingNonceAt(ctx, signerService.Address())
	if err != nil {
		return nil, err
	}
	s.Sequencer = nonce.NewSequencer(startNonce)

	registry, err := token.NewRegistry(cfg.Faucet.Tokens)
	if err != nil {
		return nil, err
	}
	s.Tokens = registry

	s.Builder = txbuilder.NewService(chainClient, signerService.Address())
	s.Broadcast = broadcast.NewService(chainClient, cfg.Faucet.ReceiptTimeout, cfg.Faucet.ReceiptPollInterval)
	s.Faucet = faucet.NewService(s.Sequencer, s.Builder, s.Signer, s.Broadcast, cfg.Faucet.AwaitConfirmation)
	s.Limiter = ratelimit.New(s.Clock, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	log.Info().
		Str("address", signerService.Address().Hex()).
		Uint64("nonce", startNonce).
		Int("tokens", len(registry.All())).
		Msg("Faucet account initialized")

	return s, nil
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Chain != nil {
		log.Debug().Msg("Closing chain client")
		s.Chain.Close()
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
