// Package export writes report data as CSV.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/smartspend/smartspend/internal/engine"
	"github.com/smartspend/smartspend/internal/ledger"
)

// SummaryRow is one category line of an exported summary.
type SummaryRow struct {
	Category string `csv:"category"`
	Total    string `csv:"total"`
	Count    int    `csv:"count"`
}

// TrendRow is one month of an exported trend.
type TrendRow struct {
	Month   string `csv:"month"`
	Income  string `csv:"income"`
	Expense string `csv:"expense"`
}

// WriteSummary writes a summary's per-category breakdown as CSV.
func WriteSummary(w io.Writer, summary engine.Summary) error {
	rows := make([]SummaryRow, 0, len(summary.Categories))
	for _, cat := range summary.Categories {
		rows = append(rows, SummaryRow{
			Category: cat.Name,
			Total:    cat.Total.String(),
			Count:    cat.Count,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write summary CSV: %w", err)
	}
	return nil
}

// WriteTrend writes monthly trend points as CSV, oldest first.
func WriteTrend(w io.Writer, points []ledger.TrendPoint) error {
	rows := make([]TrendRow, 0, len(points))
	for _, p := range points {
		rows = append(rows, TrendRow{
			Month:   p.Month,
			Income:  p.Income.String(),
			Expense: p.Expense.String(),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write trend CSV: %w", err)
	}
	return nil
}

// SummaryToFile writes a summary CSV to path, creating or truncating it.
func SummaryToFile(path string, summary engine.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return WriteSummary(f, summary)
}

// TrendToFile writes a trend CSV to path, creating or truncating it.
func TrendToFile(path string, points []ledger.TrendPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return WriteTrend(f, points)
}
