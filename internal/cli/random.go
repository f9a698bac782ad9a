package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathplay/pkg/graph"
)

// randomCommand creates the random command, which writes a random graph
// file.
func (c *CLI) randomCommand() *cobra.Command {
	var (
		nodes  int
		output string
		format string
		opts   graph.RandomOptions
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate a random graph file",
		Long: `Generate a random graph. Every pair of nodes is joined with probability
--density and weights are drawn from 1..--max-weight. A fixed --seed always
produces the same graph.

Without --output the graph is printed to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("nodes") {
				nodes = c.Config.Nodes
			}
			defaults := c.Config.RandomOptions()
			if !flags.Changed("density") {
				opts.Density = defaults.Density
			}
			if !flags.Changed("max-weight") {
				opts.MaxWeight = defaults.MaxWeight
			}
			if !flags.Changed("seed") {
				opts.Seed = defaults.Seed
			}
			return c.runRandom(cmd.OutOrStdout(), nodes, opts, output, format)
		},
	}

	cmd.Flags().IntVarP(&nodes, "nodes", "n", 0, "number of nodes (2-15)")
	cmd.Flags().Float64Var(&opts.Density, "density", graph.DefaultDensity, "edge probability per node pair")
	cmd.Flags().IntVar(&opts.MaxWeight, "max-weight", graph.DefaultMaxWeight, "largest edge weight (1-99)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; the extension picks the format")
	cmd.Flags().StringVarP(&format, "format", "f", graph.FormatTOML, "stdout format: toml, json, yaml")

	return cmd
}

func (c *CLI) runRandom(w io.Writer, nodes int, opts graph.RandomOptions, output, format string) error {
	g, err := graph.Random(nodes, opts)
	if err != nil {
		return err
	}
	doc := graph.Document{Graph: g}

	if output == "" {
		return graph.Encode(w, doc, format)
	}
	if err := graph.WriteFile(output, doc); err != nil {
		return err
	}
	printSuccess(w, "Generated graph")
	printDetail(w, "%d nodes · %d edges", g.NodeCount(), g.EdgeCount())
	printFile(w, output)
	printNextStep(w, "Play it", fmt.Sprintf("%s play %s", appName, output))
	return nil
}
