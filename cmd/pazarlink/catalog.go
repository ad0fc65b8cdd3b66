package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"

	"github.com/pazarlink/pazarlink/internal/cli"
	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/importer"
	"github.com/pazarlink/pazarlink/internal/model"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the product catalog",
		Long:  `Import, inspect, and seed the local product catalog used for classification and order linking.`,
	}

	cmd.AddCommand(catalogImportCmd())
	cmd.AddCommand(catalogStatsCmd())
	cmd.AddCommand(catalogSeedCmd())

	return cmd
}

func catalogImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Import products from a catalog export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			products, err := importer.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read catalog file: %w", err)
			}

			store, err := initCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveProducts(ctx, products); err != nil {
				return fmt.Errorf("failed to save products: %w", err)
			}

			common.LogInfo("Catalog imported", common.Fields{"products": len(products), "file": args[0]})
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d products", len(products))))
			return nil
		},
	}
}

func catalogStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog shape statistics",
		Long:  `Show the aggregate code-shape statistics that feed the classifier: length histograms, composition ratios, and common SKU prefixes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := store.ComputeStatistics(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute statistics: %w", err)
			}

			fmt.Println(cli.FormatTitle("Catalog statistics"))
			fmt.Printf("Products with SKU: %d, with barcode: %d\n", stats.TotalSKUs, stats.TotalBarcodes)
			fmt.Printf("SKU composition: %.0f%% letters, %.0f%% digits\n\n",
				stats.SKUAlphaRatio*100, stats.SKUNumericRatio*100)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "SKU LENGTH\tCOUNT")
			for _, length := range sortedKeys(stats.SKULengths) {
				_, _ = fmt.Fprintf(w, "%d\t%d\n", length, stats.SKULengths[length])
			}
			_, _ = fmt.Fprintln(w, "\nPREFIX\tCOUNT")
			prefixes := make([]string, 0, len(stats.CommonSKUPrefixes))
			for p := range stats.CommonSKUPrefixes {
				prefixes = append(prefixes, p)
			}
			sort.Strings(prefixes)
			for _, p := range prefixes {
				_, _ = fmt.Fprintf(w, "%s\t%d\n", p, stats.CommonSKUPrefixes[p])
			}
			return w.Flush()
		},
	}
}

func catalogSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with generated demo products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			count, _ := cmd.Flags().GetInt("count")
			seed, _ := cmd.Flags().GetInt64("seed")

			store, err := initCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			products := generateDemoProducts(count, seed)
			if err := store.SaveProducts(ctx, products); err != nil {
				return fmt.Errorf("failed to save products: %w", err)
			}

			slog.Info("Seeded catalog", "count", len(products))
			return nil
		},
	}
	cmd.Flags().Int("count", 100, "number of products to generate")
	cmd.Flags().Int64("seed", 0, "random seed (0 for non-deterministic)")
	return cmd
}

// generateDemoProducts builds a plausible catalog: SKU families sharing a
// base pattern with color/size/numeric variants, EAN-13 style barcodes.
func generateDemoProducts(count int, seed int64) []model.Product {
	faker := gofakeit.New(seed)

	variants := [][]string{
		{"SIYAH", "BEYAZ", "MAVI", "KIRMIZI"},
		{"S", "M", "L", "XL"},
		{"001", "002", "003", "004"},
	}

	products := make([]model.Product, 0, count)
	for len(products) < count {
		brand := strings.ToUpper(faker.LetterN(3))
		family := strings.ToUpper(faker.LetterN(2)) + fmt.Sprintf("%03d", faker.Number(1, 999))
		name := faker.ProductName()
		variantSet := variants[faker.Number(0, len(variants)-1)]

		for _, v := range variantSet {
			if len(products) == count {
				break
			}
			products = append(products, model.Product{
				SKU:               fmt.Sprintf("%s-%s-%s", brand, family, v),
				Barcode:           fmt.Sprintf("86%011d", faker.Number(0, 99999999999)),
				PlatformProductID: fmt.Sprintf("%d", faker.Number(100000, 999999)),
				Name:              fmt.Sprintf("%s %s", name, v),
				Category:          faker.ProductCategory(),
			})
		}
	}
	return products
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
