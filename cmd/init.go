package cmd

import (
	"github.com/spf13/cobra"

	"dashsite/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize dashsite configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that detects the page tree and writes a ` + config.FileName + ` file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
