package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/logtail"
)

var (
	logLines    int
	logLevel    string
	logNoColors bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the tail of the pokedex log file",
	Args:  cobra.NoArgs,
	RunE:  runLogs,
}

func init() {
	logsCmd.Flags().IntVarP(&logLines, "lines", "n", 100, "number of lines to show (0 for all)")
	logsCmd.Flags().StringVar(&logLevel, "level", "debug", "minimum level to show")
	logsCmd.Flags().BoolVar(&logNoColors, "no-color", false, "disable highlighting")
}

func runLogs(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	var minLevel slog.Level
	if err := minLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid --level %q: %w", logLevel, err)
	}

	lines, err := logtail.Read(cfg.LogFile, logLines)
	if err != nil {
		return err
	}
	lines = logtail.FilterLevel(lines, minLevel)
	if len(lines) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "no log lines in %s\n", cfg.LogFile)
		return nil
	}
	if !logNoColors {
		lines = logtail.ColorizeLines(lines, logtail.DefaultPalette())
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
	return nil
}
