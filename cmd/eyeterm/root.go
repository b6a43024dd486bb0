package main

import (
	"io"

	"eyeterm/internal/config"
	"eyeterm/internal/content"
	"eyeterm/internal/errors"
	"eyeterm/internal/log"
	"eyeterm/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// globals holds the persistent flags and the configuration they resolve to.
type globals struct {
	configPath string
	debug      bool
	logFile    string
	logJSON    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	var (
		altScreen   bool
		watchConfig bool
	)

	rootCmd := &cobra.Command{
		Use:     "eyeterm",
		Short:   "THE EYE terminal",
		Long:    `eyeterm is the simulated terminal of THE EYE cybersecurity club.`,
		Version: version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd, cmd.Root() == cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("alt-screen") {
				g.cfg.Terminal.AltScreen = altScreen
			}
			if cmd.Flags().Changed("watch-config") {
				g.cfg.Terminal.Watch = watchConfig
			}
			return runTUI(g)
		},
	}

	// Prepend banner to help message
	helpTemplate := content.Default().Banner() + "\n\n" + rootCmd.UsageTemplate()
	rootCmd.SetUsageTemplate(helpTemplate)
	rootCmd.SetHelpTemplate(helpTemplate)
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default is $HOME/.config/eyeterm/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "append log records to this file")
	rootCmd.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "write log records as JSON")
	rootCmd.Flags().BoolVar(&altScreen, "alt-screen", false, "use the alternate screen buffer")
	rootCmd.Flags().BoolVar(&watchConfig, "watch-config", false, "re-apply the theme when the config file changes")

	rootCmd.AddCommand(execCmd())
	rootCmd.AddCommand(treeCmd())
	rootCmd.AddCommand(mountCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// setup loads the configuration and points the logger at the right sink:
// the TUI owns the terminal, so interactive runs log to a file or nowhere.
func (g *globals) setup(cmd *cobra.Command, interactive bool) error {
	if err := g.loadConfig(); err != nil {
		return err
	}

	debug := g.debug || g.cfg.Logging.Debug
	file := g.cfg.Logging.File
	if g.logFile != "" {
		file = g.logFile
	}

	var opts []log.Option
	if interactive {
		opts = append(opts, log.WithOutput(io.Discard))
	} else {
		opts = append(opts, log.WithOutput(cmd.ErrOrStderr()))
	}
	if file != "" {
		opts = append(opts, log.WithFile(file))
	}
	if g.logJSON || g.cfg.Logging.JSON {
		opts = append(opts, log.WithJSON())
	}
	if debug {
		opts = append(opts, log.WithLevel("debug"))
	} else {
		opts = append(opts, log.WithLevel("info"))
	}
	log.Configure(opts...)
	log.SetDebug(debug)
	return nil
}

func (g *globals) loadConfig() error {
	if g.configPath != "" {
		cfg, err := config.LoadConfigFile(g.configPath)
		if err != nil {
			return err
		}
		g.cfg = cfg
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.LogWithError(err).Warn("could not load config, using defaults")
		cfg = config.New()
	}
	g.cfg = cfg
	return nil
}

func (g *globals) resolvedConfigPath() (string, error) {
	if g.configPath != "" {
		return g.configPath, nil
	}
	return config.DefaultPath()
}

func runTUI(g *globals) error {
	defer log.Default().Close()

	opts := []tui.Option{tui.WithConfig(g.cfg)}
	if g.cfg.Terminal.Watch {
		path, err := g.resolvedConfigPath()
		if err != nil {
			return err
		}
		w, err := config.NewWatcher(path)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
		opts = append(opts, tui.WithWatcher(w))
	}

	m := tui.New(opts...)
	defer m.Dispose()

	var programOpts []tea.ProgramOption
	if g.cfg.Terminal.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, programOpts...)
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "error running terminal")
	}
	log.Info("terminal closed after %d commands", len(m.Session().History()))
	return nil
}
