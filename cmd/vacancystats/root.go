package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/vacancystats/internal/client"
	"github.com/fr4nk3nst1ner/vacancystats/internal/config"
	"github.com/fr4nk3nst1ner/vacancystats/internal/metrics"
	"github.com/fr4nk3nst1ner/vacancystats/internal/models"
	"github.com/fr4nk3nst1ner/vacancystats/internal/report"
	"github.com/fr4nk3nst1ner/vacancystats/internal/scraper"
	"github.com/fr4nk3nst1ner/vacancystats/internal/stats"
	"github.com/fr4nk3nst1ner/vacancystats/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const progressTemplate = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }}`

type rootOptions struct {
	configPath  string
	languages   []string
	sources     []string
	format      string
	logLevel    string
	metricsFile string
	debug       bool
	silence     bool
	noColor     bool
}

// NewRootCmd creates the vacancystats command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "vacancystats <area-id>",
		Short: "Average salaries per programming language on HeadHunter and SuperJob",
		Long: `vacancystats searches HeadHunter and SuperJob for every configured
programming language, estimates a rouble salary for each vacancy and prints
how many vacancies were found, how many had a usable salary and their average.

<area-id> is the HeadHunter area to search (1 is Moscow, 2 is Saint Petersburg).
The SuperJob application key is read from SJ_ID_KEY (a .env file is honored).`,
		Example: `  vacancystats 1
  vacancystats 2 --sources hh --language Go --language Rust
  vacancystats 1 --format markdown --silence > salaries.md`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/vacancystats/config.yaml)")
	flags.StringArrayVarP(&opts.languages, "language", "l", nil, "language keyword to search, repeatable (overrides the config)")
	flags.StringSliceVarP(&opts.sources, "sources", "s", nil, "sources to query in order: sj, hh")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: table or markdown")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write prometheus metrics of the run to this file")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	flags.BoolVar(&opts.silence, "silence", false, "hide the banner and progress bars")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, pterm.Error.Sprint(err))
		stop()
		os.Exit(1)
	}
}

func (o *rootOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("language") {
		cfg.Languages = o.languages
	}
	if flags.Changed("sources") {
		cfg.Sources = o.sources
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if o.debug && !flags.Changed("log-level") {
		cfg.LogLevel = "debug"
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = o.metricsFile
	}
	if o.silence {
		cfg.Silence = true
	}
	if o.noColor {
		cfg.Colorize = false
	}
}

func run(cmd *cobra.Command, area string, opts *rootOptions) (err error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(cmd, cfg)
	cfg.HeadHunter.Area = strings.TrimSpace(area)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !cfg.Colorize {
		pterm.DisableColor()
	}

	stderr := cmd.ErrOrStderr()
	level, _ := ui.ParseLogLevel(cfg.LogLevel)
	logger := ui.NewLogger(stderr, level)

	ui.PrintBanner(stderr, cfg.Silence)

	httpClient, err := client.CreateProxyHTTPClient(cfg.ProxyURL, cfg.Timeout)
	if err != nil {
		return err
	}

	m := metrics.NewMetrics()
	if cfg.MetricsFile != "" {
		defer func() {
			if werr := m.WriteTextfile(cfg.MetricsFile); werr != nil {
				logger.Error("failed to write metrics", logger.Args("file", cfg.MetricsFile, "error", werr))
				if err == nil {
					err = werr
				}
			}
		}()
	}

	for _, src := range buildSources(cfg, httpClient, logger, m) {
		logger.Debug("querying source", logger.Args("source", src.Name(), "languages", len(cfg.Languages)))

		r, err := collect(cmd.Context(), src, cfg, logger, m, stderr)
		if err != nil {
			return err
		}

		if err := report.Write(cmd.OutOrStdout(), cfg.Format, report.TableOptions{Colorize: cfg.Colorize}, r); err != nil {
			return err
		}
	}

	return nil
}

func collect(ctx context.Context, src scraper.Source, cfg *config.Config, logger *pterm.Logger, m *metrics.Metrics, progress io.Writer) (models.SourceReport, error) {
	agg := stats.NewAggregator(src, logger, m)

	if !cfg.Silence {
		bar := pb.New(len(cfg.Languages)).
			SetTemplateString(progressTemplate).
			SetWriter(progress).
			Set("prefix", src.Name()).
			Start()
		defer bar.Finish()
		agg.OnLanguage = func(models.LanguageStatistics) { bar.Increment() }
	}

	return agg.Collect(ctx, cfg.Languages)
}

func buildSources(cfg *config.Config, httpClient *http.Client, logger *pterm.Logger, m *metrics.Metrics) []scraper.Source {
	var sources []scraper.Source
	for _, key := range cfg.Sources {
		switch strings.ToLower(strings.TrimSpace(key)) {
		case config.SourceHeadHunter:
			hh := scraper.NewHeadHunter(httpClient, cfg.HeadHunter.Area, cfg.HeadHunter.UserAgent)
			hh.BaseURL = cfg.HeadHunter.BaseURL
			hh.MaxPages = cfg.HeadHunter.MaxPages
			hh.Logger = logger
			hh.Metrics = m
			sources = append(sources, hh)
		case config.SourceSuperJob:
			sj := scraper.NewSuperJob(httpClient, cfg.SuperJob.Town, cfg.SuperJob.APIKey)
			sj.BaseURL = cfg.SuperJob.BaseURL
			sj.Logger = logger
			sj.Metrics = m
			sources = append(sources, sj)
		}
	}
	return sources
}
