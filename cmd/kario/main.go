package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/kario/internal/output"
)

var (
	configPath string
	jsonOutput bool
	yamlOutput bool
	formatter  output.Formatter

	stdout io.Writer = os.Stdout
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if formatter == nil {
			formatter = output.NewHumanFormatter()
		}
		os.Stderr.WriteString(formatter.FormatError(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kario",
		Short: "A personal task manager for the terminal",
		Long:  "kario - tasks with due dates, reminders, repeats, labels and a chat assistant.",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			format := output.FormatHuman
			switch {
			case jsonOutput && yamlOutput:
				return fmt.Errorf("--json and --yaml are mutually exclusive")
			case jsonOutput:
				format = output.FormatJSON
			case yamlOutput:
				format = output.FormatYAML
			}
			f, err := output.New(format)
			if err != nil {
				return err
			}
			formatter = f
			return nil
		},
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&yamlOutput, "yaml", false, "Output in YAML format")

	rootCmd.AddCommand(
		tuiCmd(),
		addCmd(),
		listCmd(),
		doneCmd(),
		rmCmd(),
		restoreCmd(),
		moveCmd(),
		purgeCmd(),
		chatCmd(),
	)
	return rootCmd
}

func printOutput(s string) {
	_, _ = io.WriteString(stdout, s)
}
