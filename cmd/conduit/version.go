package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldline/conduit"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of conduit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("conduit version %s\n", strings.TrimSpace(conduit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
