package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var upstreamCmd = &cobra.Command{
	Use:   "upstream <workflow.json> <node-id>",
	Short: "List the expression candidates visible from a node",
	Long: `Resolves which data sources the given node's {{...}} expressions may
reference: the data outputs of its direct predecessors plus the $input
and $env globals.`,
	Args: cobra.ExactArgs(2),
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

		cands := eng.Upstream(args[1], w)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(cands); err != nil {
				fmt.Printf("Error encoding candidates: %v\n", err)
				os.Exit(1)
			}
			return
		}

		for _, c := range cands {
			label := c.NodeLabel
			if c.OutputLabel != "" {
				label = label + " / " + c.OutputLabel
			}
			fmt.Printf("%-40s %-12s %s\n", c.Expression, c.Type, label)
		}
	},
}

func init() {
	rootCmd.AddCommand(upstreamCmd)
	upstreamCmd.Flags().Bool("json", false, "Output candidates as JSON")
}
