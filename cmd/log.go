package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/turkokards/internal/logbook"
	"github.com/arcanaland/turkokards/internal/reading"
)

// logCmd represents the log command group
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect or clear the reading log",
}

var logShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the latest reading from the log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		lines, err := logbook.New(cfg.LogFile).LastReading()
		var short *logbook.ShortLogError
		if errors.As(err, &short) {
			fmt.Println("The log holds no complete reading.")
			return nil
		}
		if err != nil {
			return err
		}

		r, err := reading.Replay(s.DeckID(), lines)
		if err != nil {
			return err
		}
		printReading(r)
		return nil
	},
}

var logClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the reading log",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		existed, err := s.ClearLog()
		if err != nil {
			return fmt.Errorf("error clearing log: %w", err)
		}
		if existed {
			fmt.Println("Log file cleared successfully.")
		} else {
			fmt.Println("Log file is already clear.")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logShowCmd)
	logCmd.AddCommand(logClearCmd)
}
