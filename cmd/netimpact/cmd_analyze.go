package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"netimpact/internal/domain"
	"netimpact/internal/loader"
	"netimpact/internal/repository"
	"netimpact/internal/repository/sqlite"
)

var (
	analyzeCurrent string
	analyzeDevice  string
	analyzeJSON    bool
	analyzeSave    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <proposed-config>",
	Short: "Analyze the impact of a proposed configuration change",
	Long: `Diffs a proposed configuration against the current one and reports the
detected changes, the schema-derived dependencies, and the per-object
impact summary.

The current configuration comes from --current (a file) or --device (the
latest collected snapshot). With neither, the proposal is treated as an
entirely new configuration.

Examples:
  netimpact analyze proposed.yaml --current running.cfg
  netimpact analyze proposed.json --device sw-lab-01 --save
  netimpact analyze proposed.yaml --current running.cfg --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeCurrent, "current", "c", "", "current configuration file")
	analyzeCmd.Flags().StringVarP(&analyzeDevice, "device", "d", "", "use the latest snapshot of this device as current")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "record the run in the database (requires --device)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeSave && analyzeDevice == "" {
		return fmt.Errorf("--save requires --device")
	}

	proposed, err := loader.Load(args[0])
	if err != nil {
		return err
	}

	var repo *sqlite.Repository
	if analyzeDevice != "" {
		if repo, err = openRepo(); err != nil {
			return err
		}
		defer repo.Close()
	}

	current := domain.NewTree()
	switch {
	case analyzeCurrent != "":
		if current, err = loader.Load(analyzeCurrent); err != nil {
			return err
		}
	case analyzeDevice != "":
		snapshot, err := repo.LatestSnapshot(cmd.Context(), analyzeDevice)
		if err != nil {
			return err
		}
		current = snapshot.Config
		logger.Printf("using snapshot %d of %s taken %s",
			snapshot.ID, snapshot.Device, snapshot.TakenAt.Format("2006-01-02 15:04:05"))
	default:
		logger.Printf("no current configuration given, treating proposal as new")
	}

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}
	result, err := analyzer.Analyze(current, proposed)
	if err != nil {
		return err
	}

	if analyzeSave {
		run, err := repository.NewRun(analyzeDevice, result)
		if err != nil {
			return err
		}
		if err := repo.SaveRun(cmd.Context(), run); err != nil {
			return err
		}
		logger.Printf("recorded analysis run %d for %s", run.ID, analyzeDevice)
	}

	if analyzeJSON {
		return renderJSON(cmd.OutOrStdout(), result)
	}
	return renderResult(cmd.OutOrStdout(), result)
}
