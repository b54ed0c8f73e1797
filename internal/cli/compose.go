package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckgrid/deckgrid/pkg/pipeline"
)

// composeCommand creates the compose command for turning deck manifests into
// layout documents.
func (c *CLI) composeCommand() *cobra.Command {
	var (
		output    string
		compact   bool
		refresh   bool
		noCache   bool
		labelsURL string
	)

	cmd := &cobra.Command{
		Use:   "compose [manifest.toml]",
		Short: "Compose a deck manifest into a layout document",
		Long: `Compose a deck manifest into a layout document.

The compose command takes a TOML deck manifest and runs the full layout pass:
pattern selection, typography resolution, color story assignment, chart
geometry, and annotation placement. The output is a layout.json descriptor
document with every element's final frame, text, and color.

Composing is deterministic, so results are cached locally and reused for
identical manifests. Use --refresh to recompute and --no-cache to disable
caching entirely.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompose(cmd.Context(), args[0], composeOptions{
				Output:    output,
				Compact:   compact,
				Refresh:   refresh,
				NoCache:   noCache,
				LabelsURL: labelsURL,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&compact, "compact", false, "emit the document without indentation")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached document exists")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&labelsURL, "labels-url", "", "annotation label service URL (default: local formatting)")

	return cmd
}

type composeOptions struct {
	Output    string
	Compact   bool
	Refresh   bool
	NoCache   bool
	LabelsURL string
}

// runCompose reads the manifest, composes the document, and writes output.
func (c *CLI) runCompose(ctx context.Context, input string, opts composeOptions) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read manifest %s: %w", input, err)
	}

	runner := c.newRunner(opts.NoCache, opts.LabelsURL)
	track := newProgress(loggerFromContext(ctx))

	spinner := newSpinner(ctx, "Composing slides...")
	spinner.Start()

	doc, cacheHit, err := runner.ComposeDocument(ctx, raw, pipeline.DocumentOptions{
		Compact: opts.Compact,
		Refresh: opts.Refresh,
	})
	if err != nil {
		spinner.StopWithError("Compose failed")
		return fmt.Errorf("compose %s: %w", input, err)
	}
	spinner.Stop()
	track.done(fmt.Sprintf("Composed %s", input))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := opts.Output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := os.WriteFile(outputPath, doc, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Compose complete")
	printFile(outputPath)
	printStats(len(doc), cacheHit)

	return nil
}
