package config

import (
	"time"

	"github/chapool/go-faucet/internal/util"
)

// EchoServer holds the settings for the echo HTTP layer.
type EchoServer struct {
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableCORSMiddleware           bool
}

type LoggerServer struct {
	Level              string
	PrettyPrintConsole bool
}

// Token declares one fungible token the faucet can dispense.
// Parsed from FAUCET_TOKENS as "SYMBOL:0xcontract:decimals" entries.
type Token struct {
	Symbol          string
	ContractAddress string
	Decimals        uint8
}

// FaucetServer holds everything the dispatch pipeline needs to talk to the
// chain and sign transactions. PrivateKey must come from the environment;
// there is no default and no fallback key.
type FaucetServer struct {
	RPCURLs             []string
	ChainID             int64
	PrivateKey          string `json:"-"`
	NativeSymbol        string
	AwaitConfirmation   bool
	ReceiptTimeout      time.Duration
	ReceiptPollInterval time.Duration
	Tokens              []Token
}

type RateLimitServer struct {
	Requests int
	Window   time.Duration
}

type Server struct {
	Echo      EchoServer
	Logger    LoggerServer
	Faucet    FaucetServer
	RateLimit RateLimitServer
}

// DefaultServiceConfigFromEnv returns the server config as parsed from the
// environment, applying defaults for everything that is safe to default.
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Echo: EchoServer{
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              util.GetEnv("SERVER_LOGGER_LEVEL", "info"),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Faucet: FaucetServer{
			RPCURLs:             util.GetEnvAsStringArr("FAUCET_RPC_URLS", []string{"http://localhost:8545"}),
			ChainID:             util.GetEnvAsInt64("FAUCET_CHAIN_ID", 1337),
			PrivateKey:          util.GetEnv("FAUCET_PRIVATE_KEY", ""),
			NativeSymbol:        util.GetEnv("FAUCET_NATIVE_SYMBOL", "ETH"),
			AwaitConfirmation:   util.GetEnvAsBool("FAUCET_AWAIT_CONFIRMATION", true),
			ReceiptTimeout:      util.GetEnvAsDuration("FAUCET_RECEIPT_TIMEOUT", 30*time.Second),
			ReceiptPollInterval: util.GetEnvAsDuration("FAUCET_RECEIPT_POLL_INTERVAL", 2*time.Second),
			Tokens:              tokensFromEnv("FAUCET_TOKENS"),
		},
		RateLimit: RateLimitServer{
			Requests: util.GetEnvAsInt("RATE_LIMIT_REQUESTS", 3),
			Window:   util.GetEnvAsDuration("RATE_LIMIT_WINDOW", 60*time.Second),
		},
	}
}
