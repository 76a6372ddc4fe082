// Package commands wires the gitowners CLI surface onto the ownership
// pipeline.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitowners/pkg/config"
	"github.com/Sumatoshi-tech/gitowners/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitowners/pkg/observability"
	"github.com/Sumatoshi-tech/gitowners/pkg/ownership"
	"github.com/Sumatoshi-tech/gitowners/pkg/render"
	"github.com/Sumatoshi-tech/gitowners/pkg/version"
)

// OwnersCommand holds the flags for the owners command.
type OwnersCommand struct {
	configPath string
	output     string
	format     string
	top        int
	threshold  float64
	workers    int
	noColor    bool
	byLanguage bool
	verbose    bool
	quiet      bool
}

// NewOwnersCommand creates and configures the owners command.
func NewOwnersCommand() *cobra.Command {
	cmd := &OwnersCommand{}

	cobraCmd := &cobra.Command{
		Use:   "owners [path]",
		Short: "Score and rank owners for a file or directory tree",
		Long: `Score and rank line ownership for a file or a whole directory tree.

Ownership is computed from a single blame snapshot at HEAD and aggregated
bottom-up, so directory scores are exact sums of their file scores.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.output, "output", "o", "", "Output file (default: stdout)")
	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "", "Output format: tree, table, csv, json, yaml, or html")
	cobraCmd.Flags().IntVarP(&cmd.top, "top", "n", 0, "Show only the top N owners per path")
	cobraCmd.Flags().Float64VarP(&cmd.threshold, "threshold", "t", 0, "Show the smallest owner prefix covering this fraction [0,1]")
	cobraCmd.Flags().IntVar(&cmd.workers, "workers", 0, "Blame worker pool size (default: one per CPU)")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")
	cobraCmd.Flags().BoolVar(&cmd.byLanguage, "by-language", false, "Group the report by detected language instead of by path")
	cobraCmd.Flags().StringVar(&cmd.configPath, "config", "", "Config file (default: .gitowners.yaml)")
	cobraCmd.Flags().BoolVarP(&cmd.verbose, "verbose", "v", false, "Log at debug level")
	cobraCmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false, "Log errors only")

	return cobraCmd
}

// Run executes the owners command.
func (c *OwnersCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	opts, err := queryOptions(
		cmd.Flags().Changed("top"), c.top,
		cmd.Flags().Changed("threshold"), c.threshold,
	)
	if err != nil {
		return err
	}

	logLevel, err := cfg.SlogLevel()
	if err != nil {
		return err
	}

	providers, err := observability.Init(observability.Config{
		ServiceName:    "gitowners",
		ServiceVersion: version.Version,
		Environment:    cfg.Telemetry.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure:   cfg.Telemetry.OTLPInsecure,
		LogLevel:       logLevel,
		LogJSON:        cfg.LogJSON(),
		SampleRatio:    cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		_ = providers.Shutdown(context.Background())
	}()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	idx, rel, err := c.buildIndex(ctx, cfg, providers, root)
	if err != nil {
		return err
	}

	out, closeOut, err := c.outputWriter()
	if err != nil {
		return err
	}

	if !idx.Tracked() {
		// A benign outcome, not a failure: the root exists but has no
		// tracked content, so there is nothing to attribute.
		fmt.Fprintf(out, "no owners: %s is not tracked\n", render.DisplayPath(rel))

		return closeOut()
	}

	entries, err := buildEntries(idx, opts, c.byLanguage)
	if err != nil {
		_ = closeOut()

		return err
	}

	renderer, err := render.New(render.Format(cfg.Format), c.noColor)
	if err != nil {
		_ = closeOut()

		return err
	}

	err = renderer.Render(out, entries)
	if err != nil {
		_ = closeOut()

		return err
	}

	// A close failure can truncate the report, so it is a real error for
	// file output.
	return closeOut()
}

// loadConfig reads the config and layers changed flags over it.
func (c *OwnersCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("format") {
		_, err = render.ParseFormat(c.format)
		if err != nil {
			return nil, err
		}

		cfg.Format = c.format
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workers = c.workers
	}

	switch {
	case c.verbose:
		cfg.Logging.Level = "debug"
	case c.quiet:
		cfg.Logging.Level = "error"
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// buildIndex resolves the root path, opens the repository, and runs the
// bottom-up build.
func (c *OwnersCommand) buildIndex(
	ctx context.Context, cfg *config.Config, providers observability.Providers, root string,
) (*ownership.Index, string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", root, err)
	}

	_, statErr := os.Stat(abs)
	if statErr != nil {
		return nil, "", fmt.Errorf("%w: %s", ownership.ErrInvalidPath, root)
	}

	source, err := gitlib.NewSource(abs, cfg.Workers)
	if err != nil {
		return nil, "", err
	}
	defer source.Close()

	rel, err := source.RelPath(abs)
	if err != nil {
		return nil, "", err
	}

	metrics, err := observability.NewBuildMetrics(providers.Meter)
	if err != nil {
		return nil, "", err
	}

	idx, err := ownership.BuildIndex(ctx, source, rel, ownership.BuildConfig{
		Workers: cfg.Workers,
		Logger:  providers.Logger,
		Tracer:  providers.Tracer,
		Metrics: metrics,
	})
	if err != nil {
		return nil, "", err
	}

	return idx, rel, nil
}

// queryOptions converts the two limit flags into query options, rejecting
// conflicting or out-of-range values before any repository work starts.
func queryOptions(topSet bool, top int, thresholdSet bool, threshold float64) (ownership.QueryOptions, error) {
	var opts ownership.QueryOptions

	if topSet {
		opts.Count = &top
	}

	if thresholdSet {
		opts.Percent = &threshold
	}

	// Dry-run the selection on an empty set so option validation fires
	// exactly once, up front.
	_, err := ownership.Select(ownership.OwnershipSet{}, opts)
	if err != nil {
		return ownership.QueryOptions{}, err
	}

	return opts, nil
}

// buildEntries applies the query to every indexed path (or to the language
// partition) in traversal order.
func buildEntries(idx *ownership.Index, opts ownership.QueryOptions, byLanguage bool) ([]render.Entry, error) {
	if byLanguage {
		return languageEntries(idx, opts)
	}

	infos := idx.Paths()
	entries := make([]render.Entry, 0, len(infos))

	for _, info := range infos {
		set, ok := idx.Get(info.Path)
		if !ok {
			continue
		}

		owners, err := ownership.Select(set, opts)
		if err != nil {
			return nil, err
		}

		entries = append(entries, render.Entry{
			Path:   info.Path,
			Depth:  info.Depth,
			IsDir:  !info.IsFile,
			Total:  set.Total,
			Owners: owners,
		})
	}

	return entries, nil
}

// languageEntries renders the root summary followed by one entry per
// detected language.
func languageEntries(idx *ownership.Index, opts ownership.QueryOptions) ([]render.Entry, error) {
	summary := idx.Summarize()

	owners, err := ownership.Select(summary, opts)
	if err != nil {
		return nil, err
	}

	entries := []render.Entry{{
		Path:   summary.Path,
		Depth:  0,
		IsDir:  true,
		Total:  summary.Total,
		Owners: owners,
	}}

	for _, set := range ownership.LanguageBreakdown(idx) {
		owners, err = ownership.Select(set, opts)
		if err != nil {
			return nil, err
		}

		entries = append(entries, render.Entry{
			Path:   set.Path,
			Depth:  1,
			IsDir:  true,
			Total:  set.Total,
			Owners: owners,
		})
	}

	return entries, nil
}

func (c *OwnersCommand) outputWriter() (io.Writer, func() error, error) {
	if c.output == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	file, err := os.Create(c.output)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}

	closeOut := func() error {
		err := file.Close()
		if err != nil {
			return fmt.Errorf("close output file: %w", err)
		}

		return nil
	}

	return file, closeOut, nil
}
