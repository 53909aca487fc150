package main

import (
	"fmt"

	"github.com/aretw0/tessera/internal/cli"
	"github.com/aretw0/tessera/internal/presentation/graph"
	"github.com/aretw0/tessera/internal/scenario"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <script>",
	Short: "Export a scenario as a Mermaid flowchart",
	Long: `Replays a scenario script and prints the resulting diagram as a
Mermaid flowchart (graph TD). With --highlight the nodes touched by the last
step are marked.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		highlight, _ := cmd.Flags().GetBool("highlight")

		script, err := scenario.Load(args[0])
		if err != nil {
			return err
		}
		engine := cli.NewEngine(cfg, logger, debug)
		results, err := script.Run(engine, cfg.Descriptor)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if highlight && len(results) > 0 {
			overlay = &graph.GraphOverlay{Highlight: touched(results[len(results)-1].Changes)}
		}

		// Generate and print Mermaid graph
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(engine.Snapshot(), overlay))
		return nil
	},
}

func touched(cs domain.ChangeSet) []domain.Coord {
	var coords []domain.Coord
	for _, group := range [][]domain.Node{cs.Created, cs.Engaged} {
		for _, n := range group {
			coords = append(coords, n.Coord)
		}
	}
	return coords
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("highlight", false, "Mark the nodes created or engaged by the last step")
}
