package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pazarlink/pazarlink/internal/cli"
	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/model"
	"github.com/pazarlink/pazarlink/internal/resolver"
	"github.com/pazarlink/pazarlink/internal/service"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <order-items.json>",
		Short: "Link order line items to catalog products",
		Long: `Resolve normalized order line items against the catalog through the
strategy chain (exact SKU, exact barcode, platform product id, fuzzy title,
partial SKU, barcode variations). Unlinked items are reported, never guessed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			items, err := readLineItems(args[0])
			if err != nil {
				return err
			}

			store, err := initCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			r, err := resolver.New(store)
			if err != nil {
				return err
			}

			summary, err := r.ResolveBatch(ctx, items, viper.GetInt("resolver.concurrency"))
			if err != nil {
				return fmt.Errorf("resolution aborted: %w", err)
			}

			retryFailedItems(ctx, r, summary)

			printSummary(summary)

			if showUnlinked, _ := cmd.Flags().GetBool("unlinked"); showUnlinked {
				printUnlinked(summary)
			}
			return nil
		},
	}
	cmd.Flags().Bool("unlinked", false, "list unlinked items")
	return cmd
}

// readLineItems loads normalized line items produced by the platform-mapping
// layer. Accepts either a bare array or an object with an "items" field.
func readLineItems(path string) ([]model.LineItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var items []model.LineItem
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var wrapper struct {
		Items []model.LineItem `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return wrapper.Items, nil
}

// retryFailedItems re-resolves items that failed on transient catalog I/O
// errors, with backoff, and folds their final outcomes into the summary.
func retryFailedItems(ctx context.Context, r *resolver.Resolver, summary *resolver.BatchSummary) {
	opts := service.RetryOptions{MaxAttempts: viper.GetInt("resolver.retry_attempts")}

	for i, res := range summary.Results {
		if res.Err == nil || !common.IsRetryable(res.Err) {
			continue
		}

		var result model.MatchResult
		err := common.WithRetry(ctx, func() error {
			var resolveErr error
			result, resolveErr = r.Resolve(ctx, res.Item)
			return resolveErr
		}, opts)
		if err != nil {
			common.LogError(err, "Item resolution failed after retries", common.Fields{
				"sku":     res.Item.SKU,
				"barcode": res.Item.Barcode,
			})
			continue
		}

		summary.Results[i] = resolver.ItemResult{Item: res.Item, Result: result}
		summary.Failed--
		if result.Matched {
			summary.Linked[result.Strategy]++
		} else {
			summary.Unlinked++
		}
	}
}

func printSummary(summary *resolver.BatchSummary) {
	fmt.Println(cli.FormatTitle("Resolution summary"))

	strategies := make([]string, 0, len(summary.Linked))
	for s := range summary.Linked {
		strategies = append(strategies, string(s))
	}
	sort.Strings(strategies)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range strategies {
		_, _ = fmt.Fprintf(w, "linked via %s\t%d\n", s, summary.Linked[model.MatchStrategy(s)])
	}
	_, _ = fmt.Fprintf(w, "unlinked\t%d\n", summary.Unlinked)
	if summary.Failed > 0 {
		_, _ = fmt.Fprintf(w, "failed (retryable)\t%d\n", summary.Failed)
	}
	_ = w.Flush()

	total := summary.TotalLinked()
	if total > 0 {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d of %d items linked", total, len(summary.Results))))
	} else {
		fmt.Println(cli.FormatWarning("no items could be linked"))
	}
}

func printUnlinked(summary *resolver.BatchSummary) {
	fmt.Println(cli.FormatTitle("Unlinked items"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SKU\tBARCODE\tPLATFORM ID\tTITLE")
	for _, res := range summary.Results {
		if res.Err != nil || res.Result.Matched {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			res.Item.SKU, res.Item.Barcode, res.Item.PlatformProductID, cli.Truncate(res.Item.Title, 50))
	}
	_ = w.Flush()
}
