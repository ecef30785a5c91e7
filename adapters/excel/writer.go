// Package excel exports stored analyses to an .xlsx workbook: one sheet of
// analyses, one overview sheet summarizing the confidence distribution.
package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/stat"

	"pregame/models"
)

const (
	analysesSheet = "Analyses"
	overviewSheet = "Overview"
)

// Writer builds analysis export workbooks
type Writer struct{}

// NewWriter creates a workbook writer
func NewWriter() *Writer {
	return &Writer{}
}

// BuildWorkbook assembles the export workbook in memory. Records without a
// view model are skipped rather than failing the export.
func (w *Writer) BuildWorkbook(records []*models.AnalysisRecord) (*excelize.File, error) {
	file := excelize.NewFile()

	if err := file.SetSheetName("Sheet1", analysesSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []interface{}{
		"ID", "Sport", "Matchup", "Favored", "Win %", "Confidence", "Risk",
		"Recommendation", "Bet Options", "Limited Data", "Created",
	}
	if err := file.SetSheetRow(analysesSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	confidences := []float64{}
	rowIndex := 2
	for _, record := range records {
		vm := record.ViewModel
		if vm == nil {
			continue
		}

		leans := make([]string, 0, len(vm.BetOptions))
		for _, option := range vm.BetOptions {
			leans = append(leans, option.Lean)
		}

		row := []interface{}{
			record.ID.String(),
			record.Sport,
			record.Matchup,
			vm.QuickTake.FavoredTeam,
			vm.QuickTake.ConfidencePercent,
			vm.QuickTake.ConfidenceLevel,
			vm.QuickTake.RiskLevel,
			vm.QuickTake.Recommendation,
			strings.Join(leans, "; "),
			vm.LimitedDataNote != "",
			record.CreatedAt.Format("2006-01-02 15:04"),
		}
		cell := fmt.Sprintf("A%d", rowIndex)
		if err := file.SetSheetRow(analysesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowIndex, err)
		}

		confidences = append(confidences, float64(vm.QuickTake.ConfidencePercent))
		rowIndex++
	}

	if err := w.writeOverview(file, confidences); err != nil {
		return nil, err
	}

	return file, nil
}

// writeOverview summarizes the confidence-percent distribution across the
// exported rows
func (w *Writer) writeOverview(file *excelize.File, confidences []float64) error {
	if _, err := file.NewSheet(overviewSheet); err != nil {
		return fmt.Errorf("failed to create overview sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Analyses exported", len(confidences)},
	}

	if len(confidences) > 0 {
		rows = append(rows, []interface{}{"Mean confidence %", stat.Mean(confidences, nil)})
	}
	if len(confidences) > 1 {
		rows = append(rows, []interface{}{"StdDev confidence %", stat.StdDev(confidences, nil)})
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := file.SetSheetRow(overviewSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write overview row %d: %w", i+1, err)
		}
	}
	return nil
}
