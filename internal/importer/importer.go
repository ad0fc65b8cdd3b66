// Package importer reads merchant catalog files (xlsx or csv) into products.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/model"
)

// Expected header columns, matched case-insensitively. Barcode, platform id
// and category are optional.
const (
	columnSKU        = "sku"
	columnBarcode    = "barcode"
	columnPlatformID = "platform_product_id"
	columnName       = "name"
	columnCategory   = "category"
)

// ReadFile loads products from a catalog export. The format is picked by
// file extension.
func ReadFile(path string) ([]model.Product, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readExcel(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("%w: unsupported catalog format %q", common.ErrInvalidInput, filepath.Ext(path))
	}
}

func readExcel(path string) ([]model.Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", common.ErrInvalidInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return rowsToProducts(rows)
}

func readCSV(path string) ([]model.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, record)
	}

	return rowsToProducts(rows)
}

func rowsToProducts(rows [][]string) ([]model.Product, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: catalog file needs a header row and at least one product", common.ErrInvalidInput)
	}

	columns := make(map[string]int)
	for i, h := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	skuCol, ok := columns[columnSKU]
	if !ok {
		return nil, fmt.Errorf("%w: missing required column %q", common.ErrInvalidInput, columnSKU)
	}
	nameCol, ok := columns[columnName]
	if !ok {
		return nil, fmt.Errorf("%w: missing required column %q", common.ErrInvalidInput, columnName)
	}

	cell := func(row []string, col int, ok bool) string {
		if !ok || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	barcodeCol, hasBarcode := columns[columnBarcode]
	platformCol, hasPlatform := columns[columnPlatformID]
	categoryCol, hasCategory := columns[columnCategory]

	products := make([]model.Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		sku := cell(row, skuCol, true)
		if sku == "" {
			continue
		}
		products = append(products, model.Product{
			SKU:               sku,
			Name:              cell(row, nameCol, true),
			Barcode:           cell(row, barcodeCol, hasBarcode),
			PlatformProductID: cell(row, platformCol, hasPlatform),
			Category:          cell(row, categoryCol, hasCategory),
		})
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no products found in catalog file", common.ErrInvalidInput)
	}
	return products, nil
}
