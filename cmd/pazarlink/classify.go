package main

import (
	"bufio"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pazarlink/pazarlink/internal/classifier"
	"github.com/pazarlink/pazarlink/internal/cli"
	"github.com/pazarlink/pazarlink/internal/common"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [codes...]",
		Short: "Classify product codes as SKU or barcode",
		Long: `Classify opaque product codes as SKUs or barcodes using catalog-wide
statistics. Codes come from arguments or, with --file, one per line from a file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			codes := args
			if file, _ := cmd.Flags().GetString("file"); file != "" {
				fileCodes, err := readLines(file)
				if err != nil {
					return err
				}
				codes = append(codes, fileCodes...)
			}
			if len(codes) == 0 {
				return common.NewUserError("no codes given; pass codes as arguments or use --file", nil)
			}

			store, err := initCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := store.ComputeStatistics(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute catalog statistics: %w", err)
			}

			verbose, _ := cmd.Flags().GetBool("verbose")
			c := classifier.New()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "CODE\tTYPE\tCONFIDENCE")
			for _, code := range codes {
				result, err := c.Classify(code, *stats)
				if err != nil {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("skipping %q: %v", code, err)))
					continue
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%.2f\n", result.Code, result.Type, result.Confidence)
				if verbose {
					for _, sig := range result.Signals {
						_, _ = fmt.Fprintf(w, "  %s\t%s\t%.2f ×%.1f\n", sig.Scorer, sig.Type, sig.Confidence, sig.Weight)
					}
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("file", "", "read codes from file, one per line")
	cmd.Flags().Bool("verbose", false, "show per-scorer signals")
	return cmd
}

// readLines reads non-empty lines from a file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}
