package config

import "fmt"

// ModuleName is the name of the go module as declared in go.mod.
const ModuleName = "github/chapool/go-faucet"

// The following vars are automatically injected via -ldflags.
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
