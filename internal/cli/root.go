package cli

import (
	"github.com/sitemaint/internal/config"
	"github.com/spf13/cobra"
)

// Global flags
var configPath string

// rootCmd is the root command for sitemaint.
var rootCmd = &cobra.Command{
	Use:     "sitemaint",
	Version: "dev",
	Short:   "Site with a switchable maintenance mode",
	Long: `sitemaint serves a small page site and can put it in maintenance mode.

While maintenance is on, visitors are redirected to the maintenance page and
administrators keep browsing the live site. "activate" provisions that page
and its display template.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file (environment variables take precedence)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(userCmd)
}

func loadConfig() (config.AppConfig, error) {
	return config.LoadFile(configPath)
}
