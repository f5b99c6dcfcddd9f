package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices with collected snapshots",
	Args:  cobra.NoArgs,
	RunE:  runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	devices, err := repo.ListDevices(cmd.Context())
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no devices collected yet")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tLAST SNAPSHOT\tSOURCE")
	for _, device := range devices {
		snapshot, err := repo.LatestSnapshot(cmd.Context(), device)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", device, snapshot.TakenAt.Format("2006-01-02 15:04:05"), snapshot.Source)
	}
	return w.Flush()
}
