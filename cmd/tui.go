package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/turkokards/internal/config"
	"github.com/arcanaland/turkokards/internal/logger"
	"github.com/arcanaland/turkokards/internal/session"
	"github.com/arcanaland/turkokards/internal/ui"
)

// Version is set at build time with -ldflags
var Version = "dev"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive reader",
	Long: `Open the interactive reader. Draw readings, browse card definitions and art,
switch decks, save and open readings, and change card size or theme.

Press ? inside the reader for the key bindings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func init() {
	RootCmd.AddCommand(tuiCmd)
}

// runTUI owns the terminal, so diagnostics go to a log file instead of stderr
func runTUI(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logPath := filepath.Join(config.GetDataDir(), "logs", "turkokards.log")
	log, closer, err := logger.File(logPath, verbose)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info().Str("deck", cfg.DefaultDeck).Msg("starting reader")
	s := session.FromConfig(cfg, log)
	return ui.Run(cmd.Context(), s, ui.Options{
		Version:  Version,
		SavePath: cfg.SavePath,
		Logger:   log,
	})
}
