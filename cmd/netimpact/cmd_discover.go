package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover [target]...",
	Short: "Scan the network for manageable devices",
	Long: `Scans the given targets (CIDR ranges or addresses) for hosts answering
on a management port. Without arguments, the configured collector targets
are scanned.

Examples:
  netimpact discover 10.0.0.0/24
  netimpact discover`,
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	targets := args
	if len(targets) == 0 {
		targets = cfg.Collector.Targets
	}

	devices, err := newCollector().Discover(cmd.Context(), targets)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no manageable devices found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tHOSTNAME\tOPEN PORTS")
	for _, device := range devices {
		ports := make([]string, 0, len(device.OpenPorts))
		for _, port := range device.OpenPorts {
			ports = append(ports, fmt.Sprint(port))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", device.Address, device.Hostname, strings.Join(ports, ","))
	}
	return w.Flush()
}
