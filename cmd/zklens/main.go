package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/zklens/zklens/internal/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

const usage = `zklens - build, simulate and analyze ZK circuit verification on Solana

Usage:
  zklens <command> [flags] [path]

A command operates on the project at [path], or the current directory when
omitted.

Commands:
  init       Initialize a project (.zklens directory and default config)
  run        Run the full build pipeline (execute, compile, setup, prove, verify, deploy)
  simulate   Simulate on-chain verification and write the cost report
  inspect    Check that local proving artifacts deserialize
  view       Serve the cost report to the web viewer
  config     Show or change project configuration
  version    Print the version

Run 'zklens <command> -h' for command flags.
`

const configUsage = `Usage:
  zklens config <subcommand> [args] [path]

Subcommands:
  show           Print the full configuration
  get-network    Print the active network
  set-network    Switch networks (mainnet-beta, devnet, testnet, localnet)
  list-networks  List supported networks
  get-rpc        Print the active RPC endpoint
  set-rpc        Pin a custom RPC endpoint
  reset-rpc      Restore the network default endpoint
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	log := cli.NewLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd := os.Args[1]; cmd {
	case "init":
		err = cli.Init(log, parsePath(cmd, os.Args[2:]))

	case "run":
		err = cli.Run(ctx, log, parsePath(cmd, os.Args[2:]))

	case "simulate":
		fs := flag.NewFlagSet("simulate", flag.ExitOnError)
		programID := fs.String("program-id", "", "deployed verifier program ID (base58, required)")
		fs.Parse(os.Args[2:])
		if *programID == "" {
			fmt.Fprintln(os.Stderr, "simulate: -program-id is required")
			os.Exit(2)
		}
		err = cli.Simulate(ctx, log, fs.Arg(0), *programID)

	case "inspect":
		err = cli.Inspect(log, parsePath(cmd, os.Args[2:]))

	case "view":
		err = cli.View(log, parsePath(cmd, os.Args[2:]))

	case "config":
		err = runConfig(log, os.Args[2:])

	case "version":
		fmt.Println("zklens", version)

	case "-h", "--help", "help":
		fmt.Print(usage)

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// parsePath handles the trailing optional [path] argument shared by most
// commands; an empty result means the current directory.
func parsePath(cmd string, args []string) string {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Parse(args)
	return fs.Arg(0)
}

func runConfig(log zerolog.Logger, args []string) error {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, configUsage)
		os.Exit(2)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "show":
		return cli.ConfigShow(log, argAt(rest, 0))
	case "get-network":
		return cli.ConfigGetNetwork(log, argAt(rest, 0))
	case "set-network":
		if len(rest) < 1 {
			return fmt.Errorf("config set-network: network name required")
		}
		return cli.ConfigSetNetwork(log, argAt(rest, 1), rest[0])
	case "list-networks":
		return cli.ConfigListNetworks(log, argAt(rest, 0))
	case "get-rpc":
		return cli.ConfigGetRPC(log, argAt(rest, 0))
	case "set-rpc":
		if len(rest) < 1 {
			return fmt.Errorf("config set-rpc: URL required")
		}
		return cli.ConfigSetRPC(log, argAt(rest, 1), rest[0])
	case "reset-rpc":
		return cli.ConfigResetRPC(log, argAt(rest, 0))
	default:
		fmt.Fprintf(os.Stderr, "unknown config subcommand %q\n\n%s", sub, configUsage)
		os.Exit(2)
		return nil
	}
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
