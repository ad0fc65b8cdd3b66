package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/model"
	"github.com/pazarlink/pazarlink/internal/service"
)

func createTestCatalog(t *testing.T) (*SQLiteCatalog, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	catalog, err := NewSQLiteCatalog(dbPath)
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}

	ctx := context.Background()
	if err := catalog.Migrate(ctx); err != nil {
		_ = catalog.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return catalog, func() { _ = catalog.Close() }
}

func seedTestProducts(t *testing.T, catalog *SQLiteCatalog) {
	t.Helper()
	err := catalog.SaveProducts(context.Background(), []model.Product{
		{SKU: "NWK-AS001", Barcode: "8690123456789", PlatformProductID: "100001", Name: "Ankara Desk Lamp Black", Category: "lighting"},
		{SKU: "NWK-AS002", Barcode: "8690123456796", PlatformProductID: "100002", Name: "Ankara Desk Lamp White", Category: "lighting"},
		{SKU: "TSHIRT-SIYAH-M", Barcode: "8691234567894", PlatformProductID: "100003", Name: "Cotton T-Shirt Black Medium", Category: "apparel"},
	})
	require.NoError(t, err)
}

func TestNewSQLiteCatalog(t *testing.T) {
	t.Run("creates database and directories", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "dir", "catalog.db")
		catalog, err := NewSQLiteCatalog(dbPath)
		require.NoError(t, err)
		defer func() { _ = catalog.Close() }()

		require.NoError(t, catalog.Migrate(context.Background()))
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewSQLiteCatalog("  ")
		assert.ErrorIs(t, err, ErrEmptyString)
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	catalog, cleanup := createTestCatalog(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, catalog.Migrate(ctx))
	require.NoError(t, catalog.Migrate(ctx))

	var version int
	err := catalog.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSaveProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("saves and retrieves products", func(t *testing.T) {
		catalog, cleanup := createTestCatalog(t)
		defer cleanup()
		seedTestProducts(t, catalog)

		count, err := catalog.CountProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		product, err := catalog.GetProductBySKU(ctx, "NWK-AS001")
		require.NoError(t, err)
		assert.Equal(t, "8690123456789", product.Barcode)
		assert.Equal(t, "Ankara Desk Lamp Black", product.Name)
	})

	t.Run("upserts by sku", func(t *testing.T) {
		catalog, cleanup := createTestCatalog(t)
		defer cleanup()
		seedTestProducts(t, catalog)

		err := catalog.SaveProducts(ctx, []model.Product{
			{SKU: "NWK-AS001", Barcode: "8699999999999", Name: "Ankara Desk Lamp Black v2"},
		})
		require.NoError(t, err)

		count, err := catalog.CountProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count, "upsert must not duplicate")

		product, err := catalog.GetProductBySKU(ctx, "NWK-AS001")
		require.NoError(t, err)
		assert.Equal(t, "8699999999999", product.Barcode)
		assert.Equal(t, "Ankara Desk Lamp Black v2", product.Name)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		catalog, cleanup := createTestCatalog(t)
		defer cleanup()

		assert.ErrorIs(t, catalog.SaveProducts(ctx, nil), ErrNilParameter)
		assert.ErrorIs(t, catalog.SaveProducts(ctx, []model.Product{}), ErrEmptySlice)
		assert.ErrorIs(t, catalog.SaveProducts(ctx, []model.Product{{Name: "no sku"}}), ErrInvalidProduct)
		assert.ErrorIs(t, catalog.SaveProducts(ctx, []model.Product{{SKU: "no name"}}), ErrInvalidProduct)
	})
}

func TestGetProducts(t *testing.T) {
	ctx := context.Background()
	catalog, cleanup := createTestCatalog(t)
	defer cleanup()
	seedTestProducts(t, catalog)

	t.Run("filters by category", func(t *testing.T) {
		products, err := catalog.GetProducts(ctx, service.ProductFilter{Category: "lighting"})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "NWK-AS001", products[0].SKU)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		products, err := catalog.GetProducts(ctx, service.ProductFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "NWK-AS002", products[0].SKU)
	})
}

func TestListSKUs(t *testing.T) {
	catalog, cleanup := createTestCatalog(t)
	defer cleanup()
	seedTestProducts(t, catalog)

	skus, err := catalog.ListSKUs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"NWK-AS001", "NWK-AS002", "TSHIRT-SIYAH-M"}, skus)
}

func TestCatalogIndexLookups(t *testing.T) {
	ctx := context.Background()
	catalog, cleanup := createTestCatalog(t)
	defer cleanup()
	seedTestProducts(t, catalog)

	t.Run("lookup by sku", func(t *testing.T) {
		product, err := catalog.LookupBySKU(ctx, "TSHIRT-SIYAH-M")
		require.NoError(t, err)
		assert.Equal(t, "8691234567894", product.Barcode)
	})

	t.Run("lookup by barcode", func(t *testing.T) {
		product, err := catalog.LookupByBarcode(ctx, "8690123456796")
		require.NoError(t, err)
		assert.Equal(t, "NWK-AS002", product.SKU)
	})

	t.Run("lookup by platform id", func(t *testing.T) {
		product, err := catalog.LookupByPlatformID(ctx, "100003")
		require.NoError(t, err)
		assert.Equal(t, "TSHIRT-SIYAH-M", product.SKU)
	})

	t.Run("miss is ErrNotFound", func(t *testing.T) {
		_, err := catalog.LookupBySKU(ctx, "MISSING-SKU")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("empty argument is ErrNotFound", func(t *testing.T) {
		_, err := catalog.LookupByBarcode(ctx, "  ")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestSearchByTitleTokens(t *testing.T) {
	ctx := context.Background()
	catalog, cleanup := createTestCatalog(t)
	defer cleanup()
	seedTestProducts(t, catalog)

	t.Run("all tokens must match", func(t *testing.T) {
		products, err := catalog.SearchByTitleTokens(ctx, []string{"desk", "lamp", "white"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "NWK-AS002", products[0].SKU)
	})

	t.Run("case insensitive", func(t *testing.T) {
		products, err := catalog.SearchByTitleTokens(ctx, []string{"COTTON", "t-shirt"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "TSHIRT-SIYAH-M", products[0].SKU)
	})

	t.Run("ambiguous prefix returns all candidates", func(t *testing.T) {
		products, err := catalog.SearchByTitleTokens(ctx, []string{"Ankara", "Desk", "Lamp"})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("like wildcards are literals", func(t *testing.T) {
		products, err := catalog.SearchByTitleTokens(ctx, []string{"%"})
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("no tokens means no results", func(t *testing.T) {
		products, err := catalog.SearchByTitleTokens(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestSearchBySKUPattern(t *testing.T) {
	ctx := context.Background()
	catalog, cleanup := createTestCatalog(t)
	defer cleanup()
	seedTestProducts(t, catalog)

	t.Run("prefix matches come first", func(t *testing.T) {
		products, err := catalog.SearchBySKUPattern(ctx, "NWK-AS")
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "NWK-AS001", products[0].SKU)
	})

	t.Run("substring matches", func(t *testing.T) {
		products, err := catalog.SearchBySKUPattern(ctx, "SIYAH")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "TSHIRT-SIYAH-M", products[0].SKU)
	})

	t.Run("blank fragment yields nothing", func(t *testing.T) {
		products, err := catalog.SearchBySKUPattern(ctx, "   ")
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestComputeStatistics(t *testing.T) {
	ctx := context.Background()
	catalog, cleanup := createTestCatalog(t)
	defer cleanup()
	seedTestProducts(t, catalog)

	stats, err := catalog.ComputeStatistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalSKUs)
	assert.Equal(t, 3, stats.TotalBarcodes)
	assert.Equal(t, 2, stats.SKULengths[len("NWK-AS001")])
	assert.Equal(t, 1, stats.SKULengths[len("TSHIRT-SIYAH-M")])
	assert.Equal(t, 3, stats.BarcodeLengths[13])

	// "NWK" appears twice; singleton prefixes are dropped as noise.
	assert.Equal(t, 2, stats.CommonSKUPrefixes["NWK"])
	assert.NotContains(t, stats.CommonSKUPrefixes, "TSH")

	assert.Greater(t, stats.SKUAlphaRatio, 0.0)
	assert.Greater(t, stats.SKUNumericRatio, 0.0)
	assert.Less(t, stats.SKUAlphaRatio+stats.SKUNumericRatio, 1.0, "separators count toward neither")
}

func TestComputeStatisticsEmptyCatalog(t *testing.T) {
	catalog, cleanup := createTestCatalog(t)
	defer cleanup()

	stats, err := catalog.ComputeStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalSKUs)
	assert.Equal(t, 0.0, stats.SKUAlphaRatio)
	assert.Empty(t, stats.CommonSKUPrefixes)
}
