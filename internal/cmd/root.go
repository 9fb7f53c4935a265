// Package cmd wires the command-line interface around the navigator.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"quickswitch/internal/config"
	"quickswitch/internal/history"
	"quickswitch/internal/log"
	"quickswitch/internal/shell"
	"quickswitch/internal/tui"
	"quickswitch/internal/watch"
)

var (
	cfgFile string
	cfg     *config.Config

	verbosity   int
	logFile     string
	outputPath  string
	startDir    string
	historyMode bool
	themeName   string
)

// NewRootCmd creates the root command. Running it with no subcommand
// starts the navigator.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qs [directory]",
		Short: "An interactive directory switcher",
		Long: `qs is an interactive terminal navigator: browse the filesystem,
filter entries as you type, preview files, and press enter to hand the
chosen directory back to your shell.

Add the shell integration with:  eval "$(qs init bash)"`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
				cfg = config.New()
			}
			if themeName != "" {
				cfg.ApplyTheme(themeName)
			}

			dataDir, err := config.DataDir()
			if err != nil {
				dataDir = os.TempDir()
			}
			if err := log.Setup(verbosity, logFile, dataDir); err != nil {
				fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				startDir = args[0]
			}
			return runNavigator()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/quickswitch/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "V", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the selected path to this file")
	rootCmd.Flags().StringVar(&startDir, "start", "", "starting directory (default is the working directory)")
	rootCmd.Flags().BoolVar(&historyMode, "history", false, "open in history mode")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "color theme ("+strings.Join(config.ListThemes(), ", ")+")")

	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewThemesCmd())
	rootCmd.AddCommand(NewVersionCmd(version))

	return rootCmd
}

func runNavigator() error {
	start := startDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
		start = wd
	}

	// Without a terminal there is nothing to navigate; behave like pwd
	// so scripted callers still get a usable path.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return shell.WriteSelection(outputPath, start)
	}

	store := openHistory()
	if store != nil {
		defer store.Close()
	}

	watcher, err := watch.New()
	if err != nil {
		log.Warnf("live refresh disabled: %v", err)
		watcher = nil
	} else {
		if err := watcher.Start(); err != nil {
			log.Warnf("live refresh disabled: %v", err)
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	m, err := tui.New(tui.Options{
		Config:       cfg,
		Store:        store,
		Watcher:      watcher,
		StartDir:     start,
		StartHistory: historyMode,
	})
	if err != nil {
		return fmt.Errorf("cannot start in %s: %w", start, err)
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("terminal session failed: %w", err)
	}

	result, ok := final.(*tui.Model)
	if !ok || !result.Confirmed() {
		log.Info("session cancelled")
		return nil
	}

	log.Info("selected %s", result.Selected())
	if err := shell.WriteSelection(outputPath, result.Selected()); err != nil {
		return fmt.Errorf("cannot hand off selection: %w", err)
	}
	return nil
}

// openHistory opens the persisted visit list. Any failure means the
// session simply runs without history.
func openHistory() *history.Store {
	path, err := config.HistoryPath()
	if err != nil {
		log.Warnf("history disabled: %v", err)
		return nil
	}
	store, err := history.Open(context.Background(), path, cfg.History.MaxEntries)
	if err != nil {
		log.Warnf("history disabled: %v", err)
		return nil
	}
	return store
}
