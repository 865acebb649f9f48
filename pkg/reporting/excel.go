package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nmhoang92/capital-governor/internal/ledger"
)

// ExcelReporter exports the fill history and aggregate stats to a workbook
type ExcelReporter struct{}

// NewExcelReporter creates a new Excel reporter
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// WriteReport writes the ledger to an xlsx file with Fills and Summary
// sheets
func (r *ExcelReporter) WriteReport(l *ledger.Ledger, path string) error {
	fx := excelize.NewFile()
	defer fx.Close()

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	const fillsSheet = "Fills"
	idx, err := fx.NewSheet(fillsSheet)
	if err != nil {
		return fmt.Errorf("failed to create fills sheet: %w", err)
	}
	fx.SetActiveSheet(idx)
	fx.DeleteSheet("Sheet1")

	headers := []string{"ID", "Strategy", "Symbol", "Side", "Size", "Fill Price", "PnL", "Win", "Timestamp"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(fillsSheet, cell, h)
		fx.SetCellStyle(fillsSheet, cell, cell, headerStyle)
	}

	for row, f := range l.Fills() {
		values := []interface{}{
			f.ID, f.StrategyID, f.Symbol, f.Side, f.Size, f.FillPrice,
			f.PnL, f.Win, f.Timestamp.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			fx.SetCellValue(fillsSheet, cell, v)
		}
	}

	const summarySheet = "Summary"
	if _, err := fx.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	stats := l.Stats()
	rows := [][]interface{}{
		{"Total Fills", stats.TotalFills},
		{"Wins", stats.Wins},
		{"Losses", stats.Losses},
		{"Win Rate %", stats.WinRate},
		{"Gross Profit", stats.GrossProfit},
		{"Gross Loss", stats.GrossLoss},
		{"Profit Factor", stats.ProfitFactor},
		{"Net PnL", stats.NetPnL},
	}
	for i, row := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		fx.SetCellValue(summarySheet, labelCell, row[0])
		fx.SetCellValue(summarySheet, valueCell, row[1])
		fx.SetCellStyle(summarySheet, labelCell, labelCell, headerStyle)
	}

	if err := fx.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
