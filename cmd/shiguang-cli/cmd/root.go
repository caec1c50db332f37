package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shiguang/internal/adapters/password"
	"shiguang/internal/application/commands"
	"shiguang/internal/bootstrap"
	"shiguang/internal/config"
)

var (
	configPath string
	dbPath     string
	rt         *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "shiguang-cli",
	Short: "CLI for countdowns and anniversaries",
	Long: `shiguang-cli records countdowns and anniversaries on the solar or
lunar calendar and reports how far away they are.

Dates are written 2024-08-15 (solar), L2024-08-15 (lunar) or
L2023-闰02-10 (a lunar leap month).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		closeRuntime()
		var err error
		rt, err = bootstrap.Open(configPath, dbPath)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRuntime()
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	// post-run hooks are skipped when RunE fails
	closeRuntime()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the database (overrides the config)")
}

func closeRuntime() error {
	if rt == nil {
		return nil
	}
	err := rt.Close()
	rt = nil
	return err
}

func authDeps() commands.AuthDeps {
	return commands.AuthDeps{
		Users:    rt.Store,
		Settings: rt.Store,
		Hasher:   password.NewBcrypt(0),
		Clock:    rt.Env.Clock,
	}
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
