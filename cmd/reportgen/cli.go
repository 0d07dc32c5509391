package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mroizo75/hmsnova-reportgen/internal/config"
	"github.com/mroizo75/hmsnova-reportgen/internal/logging"
	"github.com/mroizo75/hmsnova-reportgen/internal/report"
	"github.com/mroizo75/hmsnova-reportgen/pkg/api"
)

// CLI is the reportgen command line
type CLI struct {
	out     io.Writer
	rootCmd *cobra.Command

	configPath string
	logLevel   string
	language   string
	debug      bool
}

// Options configure the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	cli := &CLI{out: opts.Output}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reportgen",
		Short:         "Generate HMS reports as PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&cli.language, "lang", "", "Label language (en, no)")
	cmd.PersistentFlags().BoolVar(&cli.debug, "debug", false, "Debug logging and content outlines")

	cmd.AddCommand(cli.newReportCmd("safety-round", "Generate a safety round report from YAML", composeSafetyRound))
	cmd.AddCommand(cli.newReportCmd("sja", "Generate a job safety analysis from YAML", composeSJA))
	cmd.AddCommand(cli.newReportCmd("render", "Render a YAML block document", composeDocument))

	return cmd
}

type composeFunc func(ctx context.Context, g *api.Generator, in io.Reader) (*api.Document, error)

func composeSafetyRound(ctx context.Context, g *api.Generator, in io.Reader) (*api.Document, error) {
	var r report.SafetyRound
	if err := report.DecodeYAML(in, &r); err != nil {
		return nil, fmt.Errorf("failed to decode safety round: %w", err)
	}
	return g.GenerateSafetyRound(ctx, &r)
}

func composeSJA(ctx context.Context, g *api.Generator, in io.Reader) (*api.Document, error) {
	var s report.JobSafetyAnalysis
	if err := report.DecodeYAML(in, &s); err != nil {
		return nil, fmt.Errorf("failed to decode job safety analysis: %w", err)
	}
	return g.GenerateJobSafetyAnalysis(ctx, &s)
}

func composeDocument(ctx context.Context, g *api.Generator, in io.Reader) (*api.Document, error) {
	var d report.Document
	if err := report.DecodeYAML(in, &d); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	req, err := d.Request()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", api.ErrInputIncomplete, err)
	}
	return g.Generate(ctx, req)
}

type reportCmd struct {
	cli     *CLI
	input   string
	output  string
	compose composeFunc
}

func (cli *CLI) newReportCmd(use, short string, compose composeFunc) *cobra.Command {
	rc := &reportCmd{cli: cli, compose: compose}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.input, "input", "i", "", "Input YAML file")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "", "Output PDF path (default: generated name next to the input)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (rc *reportCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := rc.cli.loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	baseDir := filepath.Dir(rc.input)
	opts, err := cfg.Options(baseDir)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	g := api.New(opts...)

	f, err := os.Open(rc.input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	doc, err := rc.compose(ctx, g, f)
	if err != nil {
		return err
	}

	out := rc.output
	if out == "" {
		out = filepath.Join(baseDir, doc.Filename)
	}
	if err := doc.WriteFile(out); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Str("output", out).Int("pages", doc.Pages).Msg("report written")
	fmt.Fprintln(rc.cli.out, out)
	return nil
}

// loadConfig reads the config file and lets flags override it
func (cli *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cli.logLevel != "" {
		cfg.Log.Level = cli.logLevel
	}
	if cli.language != "" {
		cfg.Language = cli.language
	}
	if cli.debug {
		cfg.Debug = true
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}
