package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// renderCommand runs the whole pipeline from document to artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf layoutFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [map.json|map.yaml|map.toml]",
		Short: "Lay out and render a mind map in one step",
		Long: `Lay out and render a mind map in one step.

Equivalent to 'layout' followed by 'visualize'. Both stages are cached, so
re-rendering an unchanged map with a different format only runs the
renderer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{DocumentPath: args[0]}
			lf.apply(&opts)
			if err := rf.apply(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, rf.output, lf.noCache)
		},
	}

	lf.register(cmd)
	rf.register(cmd)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner := c.newRunner(noCache)
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.DocumentPath))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.Formats)))

	params := artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.DocumentPath,
		output:    output,
		nodes:     len(result.Layout.Nodes),
		lines:     len(result.Layout.Lines),
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	}
	paths, err := writeArtifacts(params)
	if err != nil {
		return err
	}
	if output != "-" {
		printArtifacts("Render complete", paths, params)
	}
	return nil
}
