package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/hierarchy"
)

// arrangeCommand creates the arrange command for hierarchy save and replay.
func (c *CLI) arrangeCommand() *cobra.Command {
	var (
		output  string
		capture bool
	)

	cmd := &cobra.Command{
		Use:   "arrange [chart.json]",
		Short: "Save or replay a row hierarchy",
		Long: `Save or replay a row hierarchy.

By default, arrange replays the chart's saved hierarchy: cards return to
their saved rows, centered and evenly spaced, with ids of deleted cards
dropped and new cards appended in trailing rows. Without a saved hierarchy
the rows are derived from current positions, and without positions from
card categories.

With --capture, the current positions are clustered into rows by vertical
proximity and stored in the chart as its saved hierarchy, without moving
anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runArrange(args[0], output, capture)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	cmd.Flags().BoolVar(&capture, "capture", false, "save the current row structure instead of arranging")

	return cmd
}

// runArrange loads the chart and either captures or replays its hierarchy.
func (c *CLI) runArrange(input, output string, capture bool) error {
	s, err := chart.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load chart %s: %w", input, err)
	}

	p := newProgress(c.Logger)
	if capture {
		h := hierarchy.Capture(s.PositionMap())
		s.Hierarchy = h
		p.done(fmt.Sprintf("Captured %d rows", len(h.Rows)))
	} else {
		visible := chart.VisibleNodes(&s)
		result := hierarchy.AutoArrange(&s, visible, hierarchy.Options{
			HasConnections: len(s.Connections) > 0,
		})
		for _, id := range result.Dropped {
			c.Logger.Warnf("dropping saved hierarchy entry %q: card no longer exists", id)
		}
		s.SetPositions(result.Positions)
		p.done(fmt.Sprintf("Arranged %d cards", len(result.Positions)))
	}

	outputPath := output
	if outputPath == "" {
		outputPath = input
	}
	if err := chart.WriteFile(s, outputPath); err != nil {
		return fmt.Errorf("write chart %s: %w", outputPath, err)
	}

	if capture {
		printSuccess("Hierarchy saved")
	} else {
		printSuccess("Auto-arrange complete")
	}
	printFile(outputPath)
	printChartStats(len(s.Nodes), len(s.Connections))

	return nil
}
