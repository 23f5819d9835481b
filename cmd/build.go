package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site into the output directory",
	Long: `Renders every page shell with its JSON content, copies static assets,
writes the reveal script and records the result in build.json. A page whose
content fails to load is written with a failure notice; pass --strict to
fail the build instead.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().Bool("strict", false, "fail if any page falls back to the failure notice")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	runner, err := newRunner(cfg, log)
	if err != nil {
		return err
	}

	generator := site.NewSiteGenerator(cfg.SiteDir, outputDir, site.Pages(cfg), runner)
	generator.Static = cfg.Static
	generator.Exclude = cfg.Exclude
	generator.Reporter = progress.NewReporter()

	manifest, err := generator.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	failed := manifest.Failed()
	for _, p := range failed {
		log.Warn().Str("page", p.Name).Str("error", p.Error).Msg("page written with failure notice")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Site built: %s (%d pages, %d assets, build %s)\n",
		outputDir, len(manifest.Pages), len(manifest.Assets), manifest.BuildID)

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && len(failed) > 0 {
		return fmt.Errorf("%d of %d pages failed to load their content", len(failed), len(manifest.Pages))
	}
	return nil
}
