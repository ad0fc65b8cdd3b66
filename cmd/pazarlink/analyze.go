package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pazarlink/pazarlink/internal/cli"
	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/pattern"
	"github.com/pazarlink/pazarlink/internal/report"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Detect base-pattern/variant families across catalog SKUs",
		Long: `Analyze the catalog's SKUs (or a code file) for latent base-pattern/variant
family structure. Groups are scored and filtered by confidence; results feed
catalog-curation tooling and can be exported to xlsx.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var codes []string
			if file, _ := cmd.Flags().GetString("file"); file != "" {
				var err error
				codes, err = readLines(file)
				if err != nil {
					return err
				}
			} else {
				store, err := initCatalog(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()

				codes, err = store.ListSKUs(ctx)
				if err != nil {
					return fmt.Errorf("failed to list SKUs: %w", err)
				}
				if len(codes) == 0 {
					return fmt.Errorf("%w: import products before analyzing", common.ErrEmptyCatalog)
				}
			}

			opts := detectorOptions()
			detector, err := pattern.New(opts)
			if err != nil {
				return err
			}

			ruleRecords, err := configuredRules()
			if err != nil {
				return err
			}
			if len(ruleRecords) > 0 {
				rules, err := pattern.NewRuleSet(ruleRecords)
				if err != nil {
					return err
				}
				detector = detector.WithRules(rules)
			}

			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("Analyzing catalog"),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionSetWriter(os.Stderr),
			)
			result, err := detector.Analyze(ctx, codes)
			_ = bar.Finish()
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			common.LogDebug("Analysis complete", common.Fields{
				"codes":    result.Stats.TotalCodes,
				"patterns": result.Stats.PatternsFound,
			})

			printPatterns(result)

			if out, _ := cmd.Flags().GetString("xlsx"); out != "" {
				if err := report.WriteExcel(result, out); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess("Report written to " + out))
			}
			return nil
		},
	}
	cmd.Flags().String("file", "", "analyze codes from file instead of the catalog")
	cmd.Flags().String("xlsx", "", "write an xlsx report to this path")
	return cmd
}

func printPatterns(result pattern.Result) {
	fmt.Println(cli.FormatTitle(fmt.Sprintf("Detected %d patterns across %d codes",
		result.Stats.PatternsFound, result.Stats.TotalCodes)))

	if len(result.Patterns) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No variant families found."))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "BASE PATTERN\tSEP\tVARIANT TYPE\tMEMBERS\tSUFFIXES\tCONFIDENCE")
	for _, p := range result.Patterns {
		sep := p.Separator
		if sep == " " {
			sep = "␣"
		}
		if sep == "" {
			sep = "rule"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\n",
			p.BasePattern, sep, p.VariantType, p.MemberCount(),
			cli.Truncate(strings.Join(p.VariantSuffixes, ","), 40), p.Confidence)
	}
	_ = w.Flush()

	fmt.Printf("\nAverage confidence: %.1f\n", result.Stats.AverageConfidence)
}
