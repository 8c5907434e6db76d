package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// layoutCommand computes a layout and writes it as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [map.json|map.yaml|map.toml]",
		Short: "Compute a mind-map layout",
		Long: `Compute a mind-map layout.

The layout command reads a mind-map document and writes a layout.json file
holding every visible node's box, its side of the root, the heights its
subtrees occupy, the connector paths and the summary placements. Render it
with 'mindmap visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{DocumentPath: args[0]}
			flags.apply(&opts)
			return c.runLayout(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)
	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	doc, err := pipeline.Load(opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.DocumentPath, err)
	}

	runner := c.newRunner(noCache)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.VizType))
	spinner.Start()
	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", opts.DocumentPath) + ".layout.json"
	}
	if err := mapfile.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Nodes), len(l.Lines), cacheHit)
	printNextStep("Render", appName+" visualize "+outputPath)
	return nil
}
