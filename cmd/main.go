package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/algojj/ci-dashboard/config"
	"github.com/algojj/ci-dashboard/logger"
	"github.com/algojj/ci-dashboard/service"
)

var rootCmd = &cobra.Command{
	Use:          "ci-dashboard",
	Short:        "Generates a static CI status board for a GitHub organization",
	Long:         `ci-dashboard polls every repository of a GitHub organization for its latest workflow run and writes a static HTML status board plus a JSON snapshot.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringP("org", "o", "", "GitHub organization (overrides ORG_NAME)")
	rootCmd.Flags().String("output", "", "Output directory (overrides OUTPUT_DIR)")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	if err := cfg.Load(); err != nil {
		return err
	}

	if org, _ := cmd.Flags().GetString("org"); org != "" {
		cfg.Org = org
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()

	svc, err := service.NewService(cfg)
	if err != nil {
		return err
	}
	return svc.Run(cmd.Context())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
