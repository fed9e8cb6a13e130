package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/layout"
	"github.com/matzehuels/orgcanvas/pkg/observability"
)

// layoutCommand creates the layout command for computing tree positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "layout [chart.json]",
		Short: "Compute tree layout positions for a chart",
		Long: `Compute tree layout positions for a chart.

The layout command reads a chart file, builds the reporting forest from
parent references, and computes fresh positions: subtrees are sized
bottom-up, parents centered over their children, and sibling trees placed
side by side. Cards unreachable from any root (cyclic manager references)
are placed on a grid below the forest so no card is lost.

Existing positions in the file are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")

	return cmd
}

// runLayout loads the chart, computes the layout, and writes positions back.
func (c *CLI) runLayout(ctx context.Context, input, output string) error {
	s, err := chart.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load chart %s: %w", input, err)
	}

	p := newProgress(c.Logger)
	visible := chart.VisibleNodes(&s)
	observability.Engine().OnLayoutStart(ctx, len(visible))
	result := layout.Compute(visible, nil)
	observability.Engine().OnLayoutComplete(ctx, len(visible), time.Since(p.start))
	s.SetPositions(result.Positions)
	p.done(fmt.Sprintf("Laid out %d cards", len(result.Positions)))

	outputPath := output
	if outputPath == "" {
		outputPath = input
	}
	if err := chart.WriteFile(s, outputPath); err != nil {
		return fmt.Errorf("write chart %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printChartStats(len(s.Nodes), len(s.Connections))
	printNewline()
	printNextStep("Render", "orgcanvas render "+outputPath)

	return nil
}
