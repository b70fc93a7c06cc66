package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msgwebdev-git/goqode-sub000/pkg/browser"
	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
	"github.com/msgwebdev-git/goqode-sub000/pkg/observability"
	"github.com/msgwebdev-git/goqode-sub000/pkg/pipeline"
)

// captureOpts holds the command-line flags of the capture command.
type captureOpts struct {
	pages       []string // explicit page paths (--pages)
	depth       int      // discovery depth
	noVideo     bool     // skip scroll videos
	noMockups   bool     // skip device mockups
	output      string   // output root override
	configFile  string   // TOML or YAML config file
	interactive bool     // pick discovered pages in a TUI
	chrome      string   // browser binary override
	headful     bool     // show the browser window
}

// captureCommand creates the single case-capture command.
func (c *CLI) captureCommand() *cobra.Command {
	opts := captureOpts{depth: pipeline.DefaultDepth}

	cmd := &cobra.Command{
		Use:   appName + " <url> <slug>",
		Short: "Capture screenshots, videos and mockups of a website",
		Long: `Capture a website for a portfolio case study.

The home page is loaded and its internal links up to --depth path segments
deep are captured, unless --pages lists the pages explicitly. For every page
the tool writes per-section and viewport screenshots for each viewport, a
scroll video per viewport and device mockups, then a meta.json manifest.

Output goes to <output-root>/<slug>/ (public/cases by default).

Examples:
  case-capture https://acme.com acme
  case-capture https://acme.com acme --pages / /about /pricing
  case-capture https://acme.com acme --depth 2 --no-video
  case-capture https://acme.com acme -i --config capture.toml`,
		Args: func(cmd *cobra.Command, args []string) error {
			if _, _, _, err := splitArgs(args, cmd.Flags().Changed("pages")); err != nil {
				_ = cmd.Usage()
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			url, slug, extra, _ := splitArgs(args, cmd.Flags().Changed("pages"))
			opts.pages = append(opts.pages, extra...)
			ctx := withLogger(cmd.Context(), c.Logger)
			return runCapture(ctx, cmd.OutOrStdout(), url, slug, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.pages, "pages", nil, "page paths to capture instead of discovering them (e.g. / /about)")
	cmd.Flags().IntVar(&opts.depth, "depth", opts.depth, "maximum path depth of discovered pages")
	cmd.Flags().BoolVar(&opts.noVideo, "no-video", false, "skip scroll videos")
	cmd.Flags().BoolVar(&opts.noMockups, "no-mockups", false, "skip device mockups")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output root (default public/cases)")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file (.toml, .yaml or .yml)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose discovered pages interactively")
	cmd.Flags().StringVar(&opts.chrome, "chrome", "", "Chrome/Chromium binary (downloaded when empty)")
	cmd.Flags().BoolVar(&opts.headful, "headful", false, "show the browser window")

	return cmd
}

// splitArgs separates the positional arguments into the URL, the slug and
// any extra page paths. "--pages / /about" leaves "/about" as a positional
// argument, so paths are accepted there only when --pages was given.
func splitArgs(args []string, pagesSet bool) (url, slug string, extra []string, err error) {
	var rest []string
	for _, a := range args {
		if strings.HasPrefix(a, "/") {
			extra = append(extra, a)
			continue
		}
		rest = append(rest, a)
	}
	if len(extra) > 0 && !pagesSet {
		return "", "", nil, errors.New(errors.ErrCodeInvalidInput, "unexpected page path %q (use --pages)", extra[0])
	}
	if len(rest) != 2 {
		return "", "", nil, errors.New(errors.ErrCodeInvalidInput, "expected <url> <slug>, got %d arguments", len(rest))
	}
	return rest[0], rest[1], extra, nil
}

// loadConfig builds the run configuration: file or defaults, then the
// environment, then command-line flags.
func loadConfig(opts captureOpts) (config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return cfg, err
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if opts.output != "" {
		cfg.Output.Root = opts.output
	}
	if opts.chrome != "" {
		cfg.Browser.Bin = opts.chrome
	}
	if opts.headful {
		cfg.Browser.Headless = false
	}
	return cfg, cfg.Validate()
}

// runCapture launches the browser and executes one capture run.
func runCapture(ctx context.Context, out io.Writer, url, slug string, opts captureOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger.Debug("config", "viewports", cfg.String(), "root", cfg.Output.Root)

	observability.SetCaptureHooks(newStatusHooks(out))
	observability.SetBrowserHooks(navigationLog{logger: logger})
	defer observability.Reset()

	fmt.Fprintln(out, StyleTitle.Render(appName)+" "+StyleLink.Render(url)+" "+StyleDim.Render(iconArrow+" "+slug))

	spin := newSpinner(ctx, os.Stderr, statusLine(iconBrowser, "Launching browser..."))
	spin.Start()
	b, err := browser.Launch(ctx, cfg.Browser, logger)
	if err != nil {
		spin.StopWithError(out, "Browser launch failed")
		return err
	}
	if spin.Cancelled() {
		b.Close()
		return ctx.Err()
	}
	spin.StopWithSuccess(out, "Browser ready")
	defer b.Close()

	run := pipeline.Options{
		URL:       url,
		Slug:      slug,
		Pages:     opts.pages,
		Depth:     opts.depth,
		NoVideo:   opts.noVideo,
		NoMockups: opts.noMockups,
		Config:    cfg,
		Logger:    logger,
	}
	if opts.interactive {
		run.Select = selectPages
	}

	res, err := pipeline.NewRunner(b, nil, logger).Execute(ctx, run)
	if err != nil {
		return err
	}

	printSummary(out, res)
	prog.done(fmt.Sprintf("Captured %s", pluralize(res.Stats.Captured(), "page")))
	return nil
}
