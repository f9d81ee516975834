package probe

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
	"github/chapool/go-faucet/internal/chain"
	"github/chapool/go-faucet/internal/config"
	"github/chapool/go-faucet/internal/faucet/signer"
)

const probeTimeout = 10 * time.Second

// New returns the probe subcommand: a preflight check that dials the
// configured RPC endpoints and reports the faucet account's state.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Checks RPC connectivity and faucet account state",
		RunE: func(_ *cobra.Command, _ []string) error {
			_ = gotenv.Load(".env.local")

			return runProbe(config.DefaultServiceConfigFromEnv())
		},
	}
}

func runProbe(cfg config.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	signerService, err := signer.NewService(cfg.Faucet.PrivateKey, cfg.Faucet.ChainID)
	if err != nil {
		return err
	}

	client, err := chain.NewClient(cfg.Faucet.RPCURLs)
	if err != nil {
		return err
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return err
	}

	address := signerService.Address()

	balance, err := client.BalanceAt(ctx, address)
	if err != nil {
		return err
	}

	pendingNonce, err := client.PendingNonceAt(ctx, address)
	if err != nil {
		return err
	}

	log.Info().
		Str("chain_id", chainID.String()).
		Str("address", address.Hex()).
		Str("balance_wei", balance.String()).
		Uint64("pending_nonce", pendingNonce).
		Msg("Faucet account probe successful")

	return nil
}
