package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"todo/internal/config"
	"todo/internal/core"
	"todo/internal/logging"
	"todo/internal/prompt"
	"todo/internal/store"
)

// app carries the state of one invocation: the streams, the global flag
// values and whatever was loaded from them.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	dbPath     string
	configPath string
	logLevel   string
	noColor    bool
	version    bool

	cfg *config.Config
	log *log.Logger
}

// newRootCmd builds the command tree for one invocation.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "todo <command>",
		Short:         "todo helps you manage your todo tasks",
		SilenceErrors: true,
		SilenceUsage:  true,
		// Any token that is not a subcommand lands here.
		Args: func(cmd *cobra.Command, args []string) error {
			if a.version {
				return noArgs(cmd, args)
			}
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return &core.UnknownCommandError{Name: name}
		},
		// Only reached for a bare --version; Args rejects everything else.
		RunE: func(cmd *cobra.Command, args []string) error {
			core.PrintVersion(cmd.OutOrStdout())
			return nil
		},
	}
	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().BoolVarP(&a.version, "version", "v", false, "print the app version")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.dbPath, "db", "", "todo store file (default "+config.DefaultDBPath+")")
	flags.StringVar(&a.configPath, "config", "", "config file (.toml, .yaml or .yml)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &core.InputError{Reason: "invalid flag", Err: err}
	})
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		core.PrintUsage(cmd.OutOrStdout())
	})
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:   "help",
		Short: "Print the usage guide",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, args []string) {
			core.PrintUsage(cmd.OutOrStdout())
		},
	})

	rootCmd.AddCommand(
		newNewCmd(a),
		newGetCmd(a),
		newCompleteCmd(a),
		newDeleteCmd(a),
		newClearCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newTUICmd(a),
	)
	return rootCmd
}

// noArgs rejects any positional argument with the generic arity error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &core.ArgumentCountError{Got: len(args)}
	}
	return nil
}

// setup resolves the configuration and the logger. Precedence is flags,
// then environment, then config file, then defaults.
func (a *app) setup(cmd *cobra.Command) error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = a.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("no-color") {
		cfg.NoColor = a.noColor
	}

	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.Format = cfg.LogFormat
	logger, err := logging.New(a.errOut, opts)
	if err != nil {
		return err
	}
	if cfg.File != "" {
		logger.Debug("config loaded", "file", cfg.File)
	}
	a.cfg = cfg
	a.log = logger
	return nil
}

// openStore loads the configuration and opens the store it names.
func (a *app) openStore(cmd *cobra.Command) (*store.Store, error) {
	if err := a.setup(cmd); err != nil {
		return nil, err
	}
	return store.Open(store.NewFileBackend(a.cfg.DBPath), a.log)
}

// env builds the handler environment over an open store.
func (a *app) env(cmd *cobra.Command) (*core.Env, error) {
	s, err := a.openStore(cmd)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	return &core.Env{
		Store:  s,
		Prompt: prompt.New(cmd.InOrStdin(), out),
		Out:    out,
		Styles: a.styles(),
		Log:    a.log,
	}, nil
}

func (a *app) styles() core.Styles {
	noColor := a.noColor || os.Getenv(config.EnvNoColor) != ""
	if a.cfg != nil {
		noColor = a.cfg.NoColor
	}
	return core.NewStyles(a.out, noColor)
}

// run executes one invocation and returns the process exit code. User
// errors are reported on out and still exit 0; anything else is fatal.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case core.IsUserError(err):
		core.Report(out, a.styles(), err)
		return 0
	default:
		if a.log != nil {
			a.log.Debug("command failed", "err", err)
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
}

// Execute runs the command line of the current process.
// This is called by main.main().
func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}
