package config

import "fmt"

// Network identifies one of the supported Solana clusters.
type Network string

const (
	MainnetBeta Network = "mainnet-beta"
	Devnet      Network = "devnet"
	Testnet     Network = "testnet"
	Localnet    Network = "localnet"
)

var defaultRPCURLs = map[Network]string{
	MainnetBeta: "https://api.mainnet-beta.solana.com",
	Devnet:      "https://api.devnet.solana.com",
	Testnet:     "https://api.testnet.solana.com",
	Localnet:    "http://127.0.0.1:8899",
}

// Networks returns all supported networks in a fixed display order.
func Networks() []Network {
	return []Network{MainnetBeta, Devnet, Testnet, Localnet}
}

// ParseNetwork validates a user-supplied network name.
func ParseNetwork(s string) (Network, error) {
	n := Network(s)
	if _, ok := defaultRPCURLs[n]; !ok {
		return "", fmt.Errorf("unknown network %q (expected one of: mainnet-beta, devnet, testnet, localnet)", s)
	}
	return n, nil
}

// DefaultRPCURL returns the cluster's public default RPC endpoint.
func (n Network) DefaultRPCURL() string {
	return defaultRPCURLs[n]
}

func (n Network) String() string { return string(n) }
