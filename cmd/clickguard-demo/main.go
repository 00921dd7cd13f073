package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	if err := fang.Execute(context.Background(), rootCmd()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		period      time.Duration
		groupPeriod time.Duration
		logFile     string
	)

	cmd := &cobra.Command{
		Use:   "clickguard-demo",
		Short: "Interactive tour of click guarding",
		Long: heredoc.Doc(`
			Mash some buttons and watch the guards swallow every click
			after the first until the watch window runs out.

			Save has a guard of its own. Submit and Retry share one, so
			clicking either silences both. Validate declines to arm its
			guard on every third click, letting the next one straight
			through.
		`),
		Example: heredoc.Doc(`
			clickguard-demo
			clickguard-demo --period 2s --group-period 300ms
			clickguard-demo --log demo.log
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(logFile); err != nil {
				return err
			}

			app, err := newApp(period, groupPeriod)
			if err != nil {
				return err
			}

			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
			app.send = p.Send
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run program: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&period, "period", time.Second, "watch period for the Save and Validate guards")
	cmd.Flags().DurationVar(&groupPeriod, "group-period", 600*time.Millisecond, "watch period shared by Submit and Retry")
	cmd.Flags().StringVar(&logFile, "log", "", "write debug logs to this file")

	return cmd
}

// setupLogging routes slog through charm's logger. The TUI owns the
// terminal, so logs go to a file or nowhere.
func setupLogging(path string) error {
	out := io.Writer(io.Discard)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	slog.SetDefault(slog.New(logger))
	return nil
}
