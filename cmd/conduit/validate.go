package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldline/conduit/internal/presentation/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <workflow.json>",
	Short: "Check a workflow for consistency",
	Long: `Validates a workflow document against the node-type catalog and
reports every structural, type, platform and reachability finding.
Exits non-zero when error-severity issues are present.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("plain", false, "Print plain markdown instead of styled terminal output")
}

func runValidate(cmd *cobra.Command, path string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	w, err := loadWorkflowFile(path)
	if err != nil {
		return err
	}

	report := eng.Validate(w)
	markdown := tui.BuildReport(w, report)

	plain, _ := cmd.Flags().GetBool("plain")
	if plain {
		fmt.Print(markdown)
	} else {
		render := tui.NewRenderer()
		out, err := render(markdown)
		if err != nil {
			out = markdown
		}
		fmt.Print(out)
	}

	if report.HasErrors() {
		os.Exit(1)
	}
	return nil
}
