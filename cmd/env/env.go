package env

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
	"github/chapool/go-faucet/internal/config"
)

// New returns the env subcommand: it prints the resolved service
// configuration as JSON. Secret material is excluded from marshalling.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the resolved server configuration",
		Run: func(_ *cobra.Command, _ []string) {
			_ = gotenv.Load(".env.local")

			cfg := config.DefaultServiceConfigFromEnv()

			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to marshal server config")
			}

			fmt.Println(string(out))
		},
	}
}
