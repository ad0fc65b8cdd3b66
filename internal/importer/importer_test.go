package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pazarlink/pazarlink/internal/common"
)

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func writeTestWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.xlsx")

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadFile_CSV(t *testing.T) {
	t.Run("full header", func(t *testing.T) {
		path := writeTestCSV(t, "SKU,Barcode,Platform_Product_ID,Name,Category\n"+
			"NWK-AS001,8690123456789,100001,Ankara Desk Lamp Black,lighting\n"+
			"NWK-AS002,,,Ankara Desk Lamp White,\n")

		products, err := ReadFile(path)
		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, "NWK-AS001", products[0].SKU)
		assert.Equal(t, "8690123456789", products[0].Barcode)
		assert.Equal(t, "100001", products[0].PlatformProductID)
		assert.Equal(t, "Ankara Desk Lamp Black", products[0].Name)
		assert.Equal(t, "lighting", products[0].Category)

		assert.Equal(t, "NWK-AS002", products[1].SKU)
		assert.Empty(t, products[1].Barcode)
	})

	t.Run("minimal header and blank sku rows skipped", func(t *testing.T) {
		path := writeTestCSV(t, "sku,name\n"+
			"TSHIRT-SIYAH-M,Cotton T-Shirt\n"+
			",No SKU Here\n")

		products, err := ReadFile(path)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "TSHIRT-SIYAH-M", products[0].SKU)
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeTestCSV(t, "barcode,name\n123,Widget\n")

		_, err := ReadFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	t.Run("header only", func(t *testing.T) {
		path := writeTestCSV(t, "sku,name\n")

		_, err := ReadFile(path)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})
}

func TestReadFile_Excel(t *testing.T) {
	path := writeTestWorkbook(t, [][]string{
		{"sku", "barcode", "name"},
		{"NWK-AS001", "8690123456789", "Ankara Desk Lamp Black"},
		{"NWK-AS002", "8690123456796", "Ankara Desk Lamp White"},
	})

	products, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "NWK-AS002", products[1].SKU)
	assert.Equal(t, "8690123456796", products[1].Barcode)
}

func TestReadFile_UnsupportedFormat(t *testing.T) {
	_, err := ReadFile("catalog.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
