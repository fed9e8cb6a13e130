package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgcanvas/pkg/chart"
)

// chartsCommand creates the charts command group for store management.
func (c *CLI) chartsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Manage the chart store",
		Long: `Manage the chart store.

Charts are stored under names in the configured backend (file by default,
see the [store] section of the config). Subcommands move charts between
the store and local files.`,
	}

	cmd.AddCommand(c.chartsListCommand())
	cmd.AddCommand(c.chartsSaveCommand())
	cmd.AddCommand(c.chartsLoadCommand())
	cmd.AddCommand(c.chartsDeleteCommand())

	return cmd
}

func (c *CLI) chartsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := newStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list charts: %w", err)
			}
			if len(names) == 0 {
				fmt.Println(StyleDim.Render("no charts stored"))
				return nil
			}
			for _, name := range names {
				s, err := st.Load(cmd.Context(), name)
				if err != nil {
					printKeyValue(name, "unreadable")
					continue
				}
				printKeyValue(name, fmt.Sprintf("%d cards, %d connections", len(s.Nodes), len(s.Connections)))
			}
			return nil
		},
	}
}

func (c *CLI) chartsSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [chart.json]",
		Short: "Save a chart file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := chart.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load chart %s: %w", args[0], err)
			}
			storeName := name
			if storeName == "" {
				storeName = s.Name
			}
			if storeName == "" {
				return fmt.Errorf("chart has no name; pass --name")
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := newStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Save(cmd.Context(), storeName, s); err != nil {
				return fmt.Errorf("save chart %q: %w", storeName, err)
			}
			printSuccess("Saved %q", storeName)
			printChartStats(len(s.Nodes), len(s.Connections))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "store name (default: the chart's own name)")
	return cmd
}

func (c *CLI) chartsLoadCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load [name]",
		Short: "Load a stored chart into a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := newStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			s, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load chart %q: %w", args[0], err)
			}

			outputPath := output
			if outputPath == "" {
				outputPath = args[0] + ".json"
			}
			if err := chart.WriteFile(s, outputPath); err != nil {
				return fmt.Errorf("write chart %s: %w", outputPath, err)
			}
			printSuccess("Loaded %q", args[0])
			printFile(outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json)")
	return cmd
}

func (c *CLI) chartsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := newStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete chart %q: %w", args[0], err)
			}
			printSuccess("Deleted %q", args[0])
			return nil
		},
	}
}
