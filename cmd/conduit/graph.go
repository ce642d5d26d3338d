package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldline/conduit/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <workflow.json>",
	Short: "Export the workflow graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the workflow, optionally overlaying validation findings.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error initializing conduit: %v\n", err)
			os.Exit(1)
		}

		w, err := loadWorkflowFile(args[0])
		if err != nil {
			fmt.Printf("Error loading workflow: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.Overlay
		if withIssues, _ := cmd.Flags().GetBool("issues"); withIssues {
			overlay = &graph.Overlay{Report: eng.Validate(w)}
		}

		fmt.Print(graph.GenerateMermaid(w, overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("issues", false, "Overlay validation findings on the diagram")
}
