package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "taxocard",
	Short: "Tool for validating taxonomic identification cards",
	Long: `Taxocard reads and validates taxonomic identification cards: HTML files
pairing an organism's identification criteria with annotated SVG schemas.`,
}

func init() {
	RootCmd.AddCommand(verifyCmd)
}
