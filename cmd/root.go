package cmd

import (
	"github.com/spf13/cobra"

	"dashsite/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dashsite",
	Short: "Static site assembler and dev server for the ES/MES trading dashboard",
	Long: `Dashsite assembles hand-written dashboard pages into a complete static
site. Shared navigation, breadcrumbs, stylesheet, and status script are
injected into every page, with link prefixes computed from each page's
depth below the site root. A built-in dev server previews the result
with live reload and exposes the trading gateway status API.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.FileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
