package cmd

import (
	"DiscordBuddy/boot"
	"DiscordBuddy/domain"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:          "discordbuddy [flags]",
	Short:        "Runs the Discord bot: /ping and member welcomes",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			slog.Warn("error loading .env file", tint.Err(err))
		}
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return boot.Run(cmd.Context(), configFile)
	},
}

func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits
func init() {
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		domain.ConfigFileName,
		"config file to use (JSON, or YAML by extension)",
	)
}
