package config

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github/chapool/go-faucet/internal/util"
)

const tokenSpecParts = 3

// tokensFromEnv parses a comma separated list of "SYMBOL:0xcontract:decimals"
// entries. Malformed entries are skipped with a warning instead of failing
// startup; the native transfer path never depends on this list.
func tokensFromEnv(key string) []Token {
	specs := util.GetEnvAsStringArr(key, nil)

	tokens := make([]Token, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != tokenSpecParts {
			log.Warn().Str("spec", spec).Msg("Skipping malformed token spec, want SYMBOL:0xcontract:decimals")
			continue
		}

		decimals, err := strconv.ParseUint(parts[2], 10, 8)
		if err != nil {
			log.Warn().Str("spec", spec).Err(err).Msg("Skipping token spec with invalid decimals")
			continue
		}

		tokens = append(tokens, Token{
			Symbol:          strings.ToUpper(strings.TrimSpace(parts[0])),
			ContractAddress: strings.TrimSpace(parts[1]),
			Decimals:        uint8(decimals),
		})
	}

	return tokens
}
