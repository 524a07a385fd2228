// Package commands implements the command line of rangebar.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"src.elv.sh/rangebar/pkg/buildinfo"
	"src.elv.sh/rangebar/pkg/cli"
	"src.elv.sh/rangebar/pkg/config"
	"src.elv.sh/rangebar/pkg/logutil"
	"src.elv.sh/rangebar/pkg/pprof"
	"src.elv.sh/rangebar/pkg/sys"
)

var logger = logutil.GetLogger("[rangebar] ")

// Returned by commands that have already told the user what went wrong.
var errReported = errors.New("error reported")

var errNotTerminal = errors.New("stdin and stderr must be terminals")

// Env contains the standard files and the terminal used by the commands.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	// Opens the terminal the selector runs on.
	OpenTTY func() (cli.TTY, error)
}

// DefaultEnv returns the Env of the process.
func DefaultEnv() Env {
	return Env{Stdout: os.Stdout, Stderr: os.Stderr, OpenTTY: openTTY}
}

func openTTY() (cli.TTY, error) {
	if !sys.IsATTY(os.Stdin.Fd()) || !sys.IsATTY(os.Stderr.Fd()) {
		return nil, errNotTerminal
	}
	return cli.NewTTY(os.Stdin, os.Stderr), nil
}

// Values of the persistent flags, and the configuration they resolve to.
type options struct {
	configPath string
	logPath    string
	logLevel   string
	cachePath  string
	profiles   pprof.Profiles

	cfg *config.Config
}

// Execute runs the root command with the arguments and the Env of the
// process. Errors other than aborting are printed to stderr.
func Execute() error {
	env := DefaultEnv()
	err := NewRootCmd(env).Execute()
	if err != nil && !errors.Is(err, cli.ErrAborted) && !errors.Is(err, errReported) {
		fmt.Fprintln(env.Stderr, "rangebar:", err)
	}
	return err
}

// NewRootCmd builds the root command.
func NewRootCmd(env Env) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "rangebar",
		Short:         "Select a range with a two-handle slider in the terminal",
		Version:       buildinfo.Value.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	pf.StringVar(&opts.logPath, "log", "", "file to write logs to")
	pf.StringVar(&opts.logLevel, "log-level", "", "minimum level of logs (default info)")
	pf.StringVar(&opts.cachePath, "cache", "", "file caching the last fetched payloads")
	pf.StringVar(&opts.profiles.CPU, "cpuprofile", "", "write CPU profile to file")
	pf.StringVar(&opts.profiles.Allocs, "allocsprofile", "", "write memory allocation profile to file")

	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)
	root.AddCommand(normalCmd(env, opts), fixedCmd(env, opts))
	return root
}

// Loads the config file and applies the persistent flags over it.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log") {
		cfg.Log = o.logPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("cache") {
		cfg.CachePath = o.cachePath
	}

	if err := logutil.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("bad log level: %w", err)
	}
	if err := logutil.SetOutputFile(cfg.Log); err != nil {
		return err
	}
	logger.Debugf("rangebar %s, config %q", buildinfo.Value.Version, o.configPath)
	o.cfg = cfg
	return nil
}
