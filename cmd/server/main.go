package main

import (
	"fmt"
	"os"

	"rms_backend/internal/config"
	"rms_backend/pkg/utils"

	"github.com/spf13/cobra"
)

var cfg *config.Config

// rootCmd runs the server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "rms",
	Short: "RMS Pro restaurant front-of-house backend.",
	Long: `rms serves the RMS Pro front-of-house API: tables, orders, menu stock,
billing, customers, staff, expenses and reports, with live state updates
over a websocket.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load().Get()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		cfg = loaded
		utils.InitLogger(cfg.LogLevel, cfg.LogPretty)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(specialsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
