package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	hostmon "github.com/digineo/go-hostmon"
	"github.com/digineo/go-hostmon/monitor"
)

var opts = struct {
	timeout    time.Duration
	interval   time.Duration
	plain      bool
	identifier uint
}{
	timeout:  2 * time.Second,
	interval: 2 * time.Second,
}

var rootCmd = &cobra.Command{
	Use:   "hostmon [flags] [host ...]",
	Short: "Monitor reachability and latency of a set of hosts",
	Long: `hostmon sends an ICMP echo request to every tracked host on a fixed
interval and refreshes a status display until interrupted.

Hosts may be given as arguments or entered interactively, one per
line, finishing with an empty line. Hostnames are resolved once at
startup; the probe engine itself only ever sees IPv4 addresses.

Opening raw ICMP sockets requires elevated privileges on most
systems.`,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().DurationVarP(&opts.timeout, "timeout", "w", opts.timeout, "timeout for a single echo request")
	rootCmd.Flags().DurationVarP(&opts.interval, "interval", "i", opts.interval, "time between monitoring rounds")
	rootCmd.Flags().BoolVar(&opts.plain, "plain", false, "plain output (forced when stdout is not a terminal)")
	rootCmd.Flags().UintVar(&opts.identifier, "id", 0, "echo request identifier (default: process id)")
}

func run(cmd *cobra.Command, args []string) error {
	prober := hostmon.New(hostmon.Config{
		Identifier: uint16(opts.identifier),
		Timeout:    opts.timeout,
	})
	mon := monitor.New(prober, opts.interval)

	if len(args) == 0 {
		if err := collectHosts(mon, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
	} else {
		for _, arg := range args {
			addr, err := resolve(arg)
			if err != nil {
				return fmt.Errorf("host %s: %w", arg, err)
			}
			mon.AddHost(addr, displayName(arg, addr))
		}
	}

	if len(mon.Hosts()) == 0 {
		return errors.New("no hosts to monitor")
	}

	if opts.plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		return runPlain(mon, cmd.OutOrStdout())
	}
	return runUI(mon, opts.interval)
}

// displayName keeps the user-supplied name when it differs from the
// resolved address.
func displayName(arg string, addr *net.IPAddr) string {
	if arg == addr.String() {
		return ""
	}
	return arg
}
