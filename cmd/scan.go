package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raysh454/kensa/internal/analyzer"
	"github.com/raysh454/kensa/internal/app"
	"github.com/raysh454/kensa/internal/fetcher"
	"github.com/raysh454/kensa/internal/interfaces"
	"github.com/raysh454/kensa/internal/model"
	"github.com/raysh454/kensa/internal/scan"
	"github.com/raysh454/kensa/internal/webclient"
)

func newScanCmd() *cobra.Command {
	var baselineFile string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "scan <url>",
		Short: "Run one scan and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.DefaultConfig()

			var baseline *model.Baseline
			if baselineFile != "" {
				data, err := os.ReadFile(baselineFile)
				if err != nil {
					return fmt.Errorf("read baseline file: %w", err)
				}
				baseline = &model.Baseline{}
				if err := json.Unmarshal(data, baseline); err != nil {
					return fmt.Errorf("parse baseline file: %w", err)
				}
			}

			// Without --verbose only warnings and errors are logged; they go to
			// stdout ahead of the report.
			logger := interfaces.NewTestLogger(verbose)
			webclient.RegisterDefaultBackends()

			wc, err := webclient.NewWebClient(cfg.WebClientCfg, logger)
			if err != nil {
				return fmt.Errorf("create webclient: %w", err)
			}
			defer wc.Close()

			f := fetcher.New(cfg.FetcherCfg, wc, logger)
			an := analyzer.New(logger)
			orch := scan.NewOrchestrator(cfg.ScanCfg, f, an, logger)

			outcome := orch.Scan(cmd.Context(), args[0], baseline)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(outcome.Document()); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}

			if outcome.Err != nil {
				return fmt.Errorf("scan failed: %s", outcome.Err.ErrorType)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&baselineFile, "baseline-file", "b", "", "JSON file with the prior scan's baseline")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress to stdout")
	return cmd
}
