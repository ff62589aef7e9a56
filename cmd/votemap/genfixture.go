package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cartovote/vote-map/internal/adapter/senate"
)

func genFixtureCmd() *cobra.Command {
	var (
		congress int
		session  int
		roll     int
		seed     int64
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "genfixture",
		Short: "Generate a synthetic Senate roll-call XML document",
		Long: `Genfixture writes a deterministic synthetic LIS roll-call document with
100 senator votes, useful for local testing without hitting senate.gov.
Point SENATE_BASE_URL at a directory server holding the output.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := senate.Fixture(senate.FixtureSpec{
				Congress: congress,
				Session:  session,
				Roll:     roll,
				Seed:     seed,
			})

			if outPath == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write fixture: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&congress, "congress", 119, "Congress number")
	cmd.Flags().IntVar(&session, "session", 1, "Session within the congress")
	cmd.Flags().IntVar(&roll, "roll", 1, "Roll call vote number")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file path (default stdout)")

	return cmd
}
