package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arcanaland/turkokards/internal/config"
	"github.com/arcanaland/turkokards/internal/logger"
	"github.com/arcanaland/turkokards/internal/session"
)

var verbose bool

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "turkokards",
	Short: "Thirteen card tarot readings from your deck library",
	Long: `TurkoKards draws thirteen card tarot readings from image decks in your deck library.
Every reading is appended to a log so it can be redisplayed, saved and reopened later.

Run without a command to open the interactive reader.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
	RootCmd.AddCommand(validateCmd)
}

// openSession loads the config and builds a session logging to stderr
func openSession() (*config.Config, *session.Session, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}
	log := logger.Console(verbose)
	return cfg, session.FromConfig(cfg, log), nil
}

// consoleLogger is used by commands that do not need a session
func consoleLogger(component string) zerolog.Logger {
	return logger.Component(logger.Console(verbose), component)
}
