package cmd

import (
	"github.com/spf13/cobra"
)

// Execute runs the kensa CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kensa",
		Short: "Public-signals suppression screen",
		Long:  "kensa screens a website's public signals (homepage, robots.txt, sitemap.xml and a few linked pages) for conditions that suppress it in search engines.",
	}
	cmd.AddCommand(newServeCmd(), newScanCmd())
	cmd.SilenceUsage = true
	return cmd
}
