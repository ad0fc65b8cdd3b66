// Package report renders pattern-analysis results for catalog-curation
// tooling.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pazarlink/pazarlink/internal/model"
	"github.com/pazarlink/pazarlink/internal/pattern"
)

const (
	patternsSheet = "Patterns"
	summarySheet  = "Summary"
)

// WriteExcel writes an analysis result to an xlsx workbook with one row per
// detected pattern plus a summary sheet.
func WriteExcel(result pattern.Result, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", patternsSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headers := []string{"Base Pattern", "Separator", "Variant Type", "Members", "Distinct Suffixes", "Confidence", "Member Codes"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetCellValue(patternsSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, p := range result.Patterns {
		values := []any{
			p.BasePattern,
			displaySeparator(p.Separator),
			string(p.VariantType),
			p.MemberCount(),
			len(p.VariantSuffixes),
			p.Confidence,
			strings.Join(p.MemberCodes, ", "),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(patternsSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write pattern row: %w", err)
			}
		}
	}

	summary := [][]any{
		{"Total input codes", result.Stats.TotalCodes},
		{"Patterns found", result.Stats.PatternsFound},
		{"Average confidence", result.Stats.AverageConfidence},
	}
	variantTypes := make([]string, 0, len(result.Stats.CountsByVariantType))
	for vt := range result.Stats.CountsByVariantType {
		variantTypes = append(variantTypes, string(vt))
	}
	sort.Strings(variantTypes)
	for _, vt := range variantTypes {
		summary = append(summary, []any{fmt.Sprintf("Variant type: %s", vt), result.Stats.CountsByVariantType[model.VariantType(vt)]})
	}
	for row, pair := range summary {
		for col, v := range pair {
			cell, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return fmt.Errorf("failed to write summary row: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func displaySeparator(sep string) string {
	switch sep {
	case "":
		return "(rule)"
	case " ":
		return "(space)"
	default:
		return sep
	}
}
