package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/sqledit/internal/config"
	"github.com/dshills/sqledit/internal/editor"
	"github.com/dshills/sqledit/internal/log"
)

// cli holds the state shared by every subcommand.
type cli struct {
	configPath  string
	dialect     string
	dialectFile string
	logFile     string
	logLevel    string

	cfg      *config.Config
	logger   *log.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "sqledit",
		Short: "Incremental SQL highlighting editor core",
		Long: `sqledit exercises the SQL editing core from the command line.

It tokenizes SQL with a configurable dialect, matches brackets while
skipping comments and literals, and replays key sequences through the
same dispatcher an interactive editor would use.`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (TOML)")
	flags.StringVar(&c.dialect, "dialect", "", "built-in dialect: ansi, mysql or oracle")
	flags.StringVar(&c.dialectFile, "dialect-file", "", "YAML dialect definition")
	flags.StringVar(&c.logFile, "log-file", "", "append logs to this file")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newTokensCmd(c),
		newMatchCmd(c),
		newKeysCmd(c),
		newReplayCmd(c),
	)
	return root
}

// setup loads the configuration, applies flag overrides and opens the
// log.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	if c.dialect != "" {
		cfg.Dialect.Name = c.dialect
		cfg.Dialect.File = ""
	}
	if c.dialectFile != "" {
		cfg.Dialect.File = c.dialectFile
		cfg.SetDir("")
	}
	if c.logFile != "" {
		cfg.Log.File = c.logFile
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	c.logger, c.closeLog = log.Discard(), func() error { return nil }
	if path := cfg.Resolve(cfg.Log.File); path != "" {
		if c.logger, c.closeLog, err = log.Open(path, cfg.LogLevel()); err != nil {
			return err
		}
	}
	c.logger.Info(log.CatConfig, "configuration loaded",
		"command", cmd.Name(), "config", c.configPath, "dialect", cfg.Dialect.Name)
	return nil
}

func (c *cli) teardown() error {
	if c.closeLog == nil {
		return nil
	}
	return c.closeLog()
}

// session creates an editor session over text.
func (c *cli) session(text string, opts ...editor.Option) (*editor.Session, func() error, error) {
	return editor.FromConfig(c.cfg, c.logger, append([]editor.Option{editor.WithContent(text)}, opts...)...)
}

// readInput reads the named file, or stdin for "" and "-".
func readInput(cmd *cobra.Command, name string) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
