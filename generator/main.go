// Package generator writes the TypeScript files shared by the data-access
// layer of a web application: query options, the paged find result and the
// response envelope.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/goaux/contextvalue"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/takumakei/gen-common/execpipe"
)

// Main is the entry point of the gen-common command.
func Main(ctx context.Context, config Config) {
	cmd := NewCommand(config)
	ctx = contextvalue.With(ctx, &config)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err.Error())
		os.Exit(1)
	}
}

// NewCommand builds the command. It expects the *Config to be stored in the
// context given to ExecuteContext.
func NewCommand(config Config) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:     config.Use,
		Short:   config.Short,
		Long:    render(config.Long),
		Version: config.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	defaultDir := config.DefaultDir
	if defaultDir == "" {
		defaultDir = DefaultDir
	}
	defaultLevel := config.DefaultLogLevel
	if defaultLevel == "" {
		defaultLevel = zerolog.LevelWarnValue
	}

	fl := cmd.Flags()
	fl.SortFlags = false
	fl.StringVarP(&opts.Dir, "dir", "d", defaultDir, "Common `directory`, artifacts go to its models/")
	fl.StringSliceVarP(&opts.Only, "only", "O", nil, "Generate only the named `artifact`s")
	fl.BoolVar(&opts.Check, "check", false, "Report stale files instead of writing them")
	fl.BoolVarP(&opts.Format, "format", "F", false, "Pipe each file through the formatter")
	fl.StringVarP(&opts.Config, "config", "c", "", "Settings `filename.yaml`")
	fl.StringVar(&opts.LogLevel, "log-level", defaultLevel, "Log `level` (debug, info, warn, error)")

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.MarkFlagDirname("dir")
	cmd.MarkFlagFilename("config", "yaml", "yml")
	cmd.RegisterFlagCompletionFunc("only", func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return Names(), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.RegisterFlagCompletionFunc("log-level", func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func render(usage string) string {
	if isTTY(os.Stdout) {
		r, err := glamour.NewTermRenderer(
			glamour.WithEnvironmentConfig(),
			glamour.WithWordWrap(100),
		)
		if err == nil { // if NO error
			if s, err := r.Render(usage); err == nil { // if NO error
				return s
			}
		}
	}
	return usage
}

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}

type options struct {
	Dir      string
	Only     []string
	Check    bool
	Format   bool
	Config   string
	LogLevel string

	formatter *execpipe.Formatter
}

// apply fills the options the user did not set on the command line.
func (o *options) apply(fl *pflag.FlagSet, s *Settings) {
	if s.Dir != "" && !fl.Changed("dir") {
		o.Dir = s.Dir
	}
	if len(s.Only) > 0 && !fl.Changed("only") {
		o.Only = s.Only
	}
	if s.Format && !fl.Changed("format") {
		o.Format = true
	}
	o.formatter = s.Formatter
}

var (
	ErrStale          = errors.New("generated files are out of date")
	errCheckAndFormat = errors.New("--check cannot be combined with --format")
)

func run(cmd *cobra.Command, opts *options) error {
	config, ok := contextvalue.From[*Config](cmd.Context())
	if !ok {
		panic("never")
	}

	level, err := zerolog.ParseLevel(opts.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().Timestamp().Logger()

	if opts.Config != "" {
		s, err := LoadSettings(opts.Config)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		opts.apply(cmd.Flags(), s)
		logger.Debug().Str("config", opts.Config).Msg("settings loaded")
	}

	if opts.Check {
		if opts.Format {
			return errCheckAndFormat
		}
		return check(cmd, opts)
	}

	g := &Generator{
		Dir:    opts.Dir,
		Only:   opts.Only,
		Out:    cmd.OutOrStdout(),
		Logger: logger,
	}
	if opts.Format {
		f := config.DefaultFormatter
		if opts.formatter != nil {
			f = *opts.formatter
		}
		if f.Name == "" {
			f = execpipe.Prettier
		}
		if err := f.Check(); err != nil {
			return fmt.Errorf("%s was not found, consider using `--format=false`", f.Name)
		}
		g.Formatter = &f
	}

	_, err = g.Run(cmd.Context())
	return err
}

func check(cmd *cobra.Command, opts *options) error {
	drifts, err := Check(opts.Dir, opts.Only...)
	if err != nil {
		return err
	}
	for _, d := range drifts {
		fmt.Fprintln(cmd.OutOrStdout(), d)
	}
	if len(drifts) > 0 {
		return ErrStale
	}
	return nil
}
