package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/zklens/zklens/internal/config"
)

// ConfigShow prints the full current configuration.
func ConfigShow(log zerolog.Logger, path string) error {
	cfg, _, err := loadConfig(path)
	if err != nil {
		return err
	}
	fmt.Printf("network:    %s\n", cfg.Network)
	fmt.Printf("rpc_url:    %s\n", cfg.RPCURL)
	fmt.Printf("custom_rpc: %t\n", cfg.CustomRPC)
	fmt.Printf("viewer:     %s\n", cfg.WebAppURL)
	return nil
}

// ConfigGetNetwork prints the active network.
func ConfigGetNetwork(log zerolog.Logger, path string) error {
	cfg, _, err := loadConfig(path)
	if err != nil {
		return err
	}
	fmt.Println(cfg.Network)
	return nil
}

// ConfigSetNetwork switches the active network and persists immediately.
func ConfigSetNetwork(log zerolog.Logger, path, name string) error {
	cfg, root, err := loadConfig(path)
	if err != nil {
		return err
	}
	n, err := config.ParseNetwork(name)
	if err != nil {
		return err
	}
	cfg.SetNetwork(n)
	if err := cfg.Save(root); err != nil {
		return err
	}
	log.Info().
		Str("network", cfg.Network.String()).
		Str("rpc_url", cfg.RPCURL).
		Msg("network updated")
	return nil
}

// ConfigListNetworks prints all supported networks, marking the active one.
func ConfigListNetworks(log zerolog.Logger, path string) error {
	cfg, _, err := loadConfig(path)
	if err != nil {
		return err
	}
	for _, n := range config.Networks() {
		marker := " "
		if n == cfg.Network {
			marker = "*"
		}
		fmt.Printf("%s %-13s %s\n", marker, n, n.DefaultRPCURL())
	}
	return nil
}

// ConfigGetRPC prints the active RPC endpoint.
func ConfigGetRPC(log zerolog.Logger, path string) error {
	cfg, _, err := loadConfig(path)
	if err != nil {
		return err
	}
	fmt.Println(cfg.RPCURL)
	return nil
}

// ConfigSetRPC pins a custom RPC endpoint and persists immediately.
func ConfigSetRPC(log zerolog.Logger, path, url string) error {
	cfg, root, err := loadConfig(path)
	if err != nil {
		return err
	}
	if err := cfg.SetRPCURL(url); err != nil {
		return err
	}
	if err := cfg.Save(root); err != nil {
		return err
	}
	log.Info().Str("rpc_url", cfg.RPCURL).Msg("custom RPC endpoint set")
	return nil
}

// ConfigResetRPC restores the current network's default endpoint.
func ConfigResetRPC(log zerolog.Logger, path string) error {
	cfg, root, err := loadConfig(path)
	if err != nil {
		return err
	}
	url := cfg.ResetRPCURL()
	if err := cfg.Save(root); err != nil {
		return err
	}
	log.Info().Str("rpc_url", url).Msg("RPC endpoint reset to network default")
	return nil
}

func loadConfig(path string) (*config.Config, string, error) {
	root, err := resolveRoot(path)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, "", err
	}
	return cfg, root, nil
}
