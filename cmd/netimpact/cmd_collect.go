package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"netimpact/internal/loader"
	"netimpact/internal/repository"
)

var collectFile string

var collectCmd = &cobra.Command{
	Use:   "collect <device>...",
	Short: "Collect device configurations into the snapshot database",
	Long: `Fetches the running configuration of each device over SSH and stores it
as a snapshot. With --file, a configuration file is imported as a snapshot
for a single named device instead of connecting to it.

Examples:
  netimpact collect sw-lab-01 sw-lab-02
  netimpact collect sw-lab-01 --file running.cfg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVarP(&collectFile, "file", "f", "", "import this file instead of connecting to the device")
}

func runCollect(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	if collectFile != "" {
		if len(args) != 1 {
			return fmt.Errorf("--file imports exactly one device")
		}
		tree, err := loader.Load(collectFile)
		if err != nil {
			return err
		}
		snapshot := &repository.Snapshot{Device: args[0], Source: collectFile, Config: tree}
		if err := repo.SaveSnapshot(cmd.Context(), snapshot); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s as snapshot %d of %s\n", collectFile, snapshot.ID, args[0])
		return nil
	}

	coll := newCollector()
	failed := 0
	for _, device := range args {
		tree, err := coll.Fetch(cmd.Context(), device)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "collect %s: %v\n", device, err)
			failed++
			continue
		}
		snapshot := &repository.Snapshot{Device: device, Source: "ssh", Config: tree}
		if err := repo.SaveSnapshot(cmd.Context(), snapshot); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "collected snapshot %d of %s\n", snapshot.ID, device)
	}

	if failed > 0 {
		return fmt.Errorf("failed to collect %d of %d devices", failed, len(args))
	}
	return nil
}
