package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldline/conduit/internal/presentation/tui"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <job.json>",
	Short: "Convert a legacy flat job into a workflow",
	Long: `Reads a legacy flat job document, lifts it into a workflow graph
(start node, chained actions, optional database write), and prints the
persisted workflow JSON to stdout. The validation report for the
migrated graph goes to stderr.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrate(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringP("output", "o", "", "Write the migrated workflow to a file instead of stdout")
}

func runMigrate(cmd *cobra.Command, path string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}

	w, report, err := eng.MigrateJob(data)
	if err != nil {
		return err
	}

	out, err := eng.Serialize(w)
	if err != nil {
		return fmt.Errorf("failed to serialize workflow: %w", err)
	}

	if target, _ := cmd.Flags().GetString("output"); target != "" {
		if err := os.WriteFile(target, out, 0644); err != nil {
			return fmt.Errorf("failed to write workflow file: %w", err)
		}
	} else {
		fmt.Println(string(out))
	}

	fmt.Fprint(os.Stderr, tui.BuildReport(w, report))
	return nil
}
