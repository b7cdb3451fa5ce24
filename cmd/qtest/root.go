package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tychoish/strq/internal/logging"
	"github.com/tychoish/strq/internal/shell"
)

var errFailedCommands = errors.New("some commands failed")

type rootOptions struct {
	shell    shell.Options
	file     string
	logLevel string
	noColor  bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{logLevel: "warn"}
	opts.shell.Length = shell.DefaultLength

	cmd := &cobra.Command{
		Use:           "qtest",
		Short:         "Interactive driver for strq queues",
		Long:          "qtest reads queue commands from a script or standard input, applies them to one or more queues, and prints each queue as it changes.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindViper(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}
	opts.bindFlags(cmd.Flags())
	cmd.Example = `  # Run a trace file
  qtest -f traces/trace-01-ops.cmd

  # Interactive session, sorting in descending order
  qtest --descend`
	return cmd
}

func (o *rootOptions) bindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.file, "file", "f", "", "Read commands from this file instead of standard input")
	fs.StringVar(&o.logLevel, "log-level", o.logLevel, "Log level (debug, info, warn, error)")
	fs.IntVar(&o.shell.Length, "length", o.shell.Length, "Size of the buffer used to receive removed values")
	fs.BoolVar(&o.shell.Descend, "descend", false, "Sort and merge in descending order")
	fs.BoolVarP(&o.shell.Echo, "echo", "e", false, "Echo each command before running it")
	fs.BoolVar(&o.shell.Strict, "strict", false, "Stop at the first failing command")
	fs.IntVar(&o.shell.Width, "width", 0, "Truncate displayed values wider than this many columns (0 disables)")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	logger, err := logging.New(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if opts.noColor {
		color.NoColor = true
	}

	sh := shell.New(cmd.OutOrStdout(), logger, opts.shell)
	defer sh.Close()

	var in io.Reader = cmd.InOrStdin()
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return errors.Wrap(err, "open script")
		}
		defer f.Close()
		in = f
	}

	logger.Debug("starting", zap.String("file", opts.file), zap.Int("length", opts.shell.Length))
	if err := sh.Run(cmd.Context(), in); err != nil {
		return err
	}
	if n := sh.Failed(); n > 0 {
		return errors.Wrapf(errFailedCommands, "%d command(s)", n)
	}
	return nil
}

// bindViper lets every flag be set from QTEST_* environment variables
// or a config file; explicit flags win.
func bindViper(fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("QTEST")
	v.AutomaticEnv()
	configFile := os.Getenv("QTEST_CONFIG")
	configureConfigFile(v, configFile)

	if err := v.BindPFlags(fs); err != nil {
		return errors.Wrap(err, "bind flags")
	}
	if err := readConfigFile(v, configFile != ""); err != nil {
		return errors.Wrap(err, "read config")
	}
	applyConfig(v, fs)
	return nil
}

func applyConfig(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if val := fmt.Sprintf("%v", v.Get(f.Name)); val != "" {
			_ = f.Value.Set(val)
		}
	})
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("qtest")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "qtest"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "qtest"))
	}
	return append(dirs, ".")
}
