package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Render a data-driven personal and academic site",
	Long: `Folio fills the HTML shells of a personal site (home, notes and research
pages) from JSON content files, prepares scroll-reveal animations and writes
a static site. It can also serve the site locally, re-rendering on every
request and reloading the browser when content changes.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".folio.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
