package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/chatflow/internal/config"
	"github.com/saravenpi/chatflow/internal/logging"
	"github.com/saravenpi/chatflow/internal/mock"
	"github.com/saravenpi/chatflow/internal/roster"
	"github.com/saravenpi/chatflow/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "1.0.0"
	commit  = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "chatflow",
	Short: "ChatFlow - terminal team chat",
	Long: `ChatFlow is a terminal chat client with channels, direct messages,
scripted replies, self-destructing messages and a drawing canvas.

Keys:
  tab / shift+tab   Cycle focus (sidebar, messages, composer)
  enter             Open channel / send message
  d                 Delete selected message
  ctrl+o            Toggle info panel
  ctrl+f            Search
  ctrl+g            Open canvas
  ctrl+t            Toggle dark mode
  ctrl+r            Toggle retro mode
  f1                Show onboarding
  ctrl+c            Quit`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		dir, err := mock.Open()
		if err != nil {
			return err
		}
		defer dir.Close()

		r, err := loadRoster(cfg)
		if err != nil {
			return err
		}

		m, err := ui.NewAppModel(ui.Options{
			Config:    cfg,
			Directory: dir,
			Roster:    r,
			Logger:    log,
		})
		if err != nil {
			return err
		}

		log.Info("starting chatflow", zap.String("user", cfg.User.ID), zap.String("channel", cfg.User.DefaultChannel))
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("ui stopped: %w", err)
		}
		return nil
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default is $HOME/.chatflow/config.yml)")
}

// setup loads the configuration named by --config and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func loadRoster(cfg *config.Config) (*roster.Roster, error) {
	if cfg.Roster.Path != "" {
		return roster.Load(cfg.Roster.Path)
	}
	return roster.Default()
}
