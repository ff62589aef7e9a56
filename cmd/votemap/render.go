package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartovote/vote-map/internal/pipeline"
)

func renderCmd() *cobra.Command {
	var (
		chamber     string
		congress    int
		session     int
		roll        int
		outPath     string
		palettePath string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one roll call to a PNG file",
		Long: `Render fetches the given roll call, builds the choropleth, and writes
the PNG artifact. The artifact path is printed to stdout; everything
else goes to stderr.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if chamber != "senate" && chamber != "house" {
				return fmt.Errorf("chamber must be senate or house, got %q", chamber)
			}

			a, err := buildApp(palettePath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var m pipeline.Map
			if chamber == "senate" {
				m, err = a.pipeline.SenateMap(ctx, congress, session, roll)
			} else {
				m, err = a.pipeline.HouseMap(ctx, congress, session, roll)
			}
			if err != nil {
				return err
			}

			path := outPath
			if path == "" {
				path = pipeline.ArtifactPath(a.cfg.OutputDir, chamber, congress, session, roll)
			}
			if err := pipeline.WriteArtifact(path, m.PNG); err != nil {
				return &pipeline.StepError{Step: "write", Err: err}
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&chamber, "chamber", "senate", "Chamber to map (senate or house)")
	cmd.Flags().IntVar(&congress, "congress", 0, "Congress number, e.g. 119")
	cmd.Flags().IntVar(&session, "session", 0, "Session within the congress (1 or 2)")
	cmd.Flags().IntVar(&roll, "roll", 0, "Roll call vote number")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file path (default OUTPUT_DIR/vote_<chamber>_<congress>_<session>_<roll>.png)")
	cmd.Flags().StringVar(&palettePath, "palette", "", "YAML palette override file")
	_ = cmd.MarkFlagRequired("congress")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("roll")

	return cmd
}
