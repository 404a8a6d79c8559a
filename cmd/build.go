package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dashsite/internal/assemble"
	"dashsite/internal/progress"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble the static site",
	Long: `Walks the source tree, injects navigation, breadcrumbs, and shared assets
into every page, converts markdown pages to HTML, copies assets through,
and writes the finished site plus its page index to the output directory.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().Bool("quiet", false, "suppress the progress bar")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log := newLogger()
	defer log.Sync()

	asm, err := assemble.New(cfg, log)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	stats, err := asm.Build(progress.NewReporter(quiet))
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	fmt.Printf("Site assembled: %s (%d pages, %d assets, %d warnings, %s)\n",
		cfg.OutputDir, stats.Pages, stats.Assets, stats.Warnings,
		stats.Duration.Round(time.Millisecond))
	return nil
}
