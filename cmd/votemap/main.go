// Package main provides the votemap binary entry point.
// Votemap renders US congressional roll-call votes as choropleth maps.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "votemap: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "votemap",
		Short: "Roll-call vote choropleth maps",
		Long: `Votemap fetches a congressional roll-call vote, classifies it per state
or district, joins the result with boundary geometry, and renders a
static PNG choropleth.

Senate maps color each state by how its two senators voted; House maps
color each congressional district by its representative's vote.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(renderCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(genFixtureCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("votemap version %s\n", version)
		},
	})

	return cmd
}
