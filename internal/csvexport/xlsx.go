package csvexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"billkit/internal/domain"
)

// SheetName is the worksheet that holds exported verifications.
const SheetName = "Verifications"

// WriteXLSX writes records as a single-sheet workbook to w.
func WriteXLSX(w io.Writer, records []domain.Verification) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("csvexport.WriteXLSX: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("csvexport.WriteXLSX header: %w", err)
	}

	for i := range records {
		row := verificationToRow(&records[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		// Money and count columns are written as numbers so they sum in Excel.
		cells[6] = records[i].ClaimedTotal.Round(2).InexactFloat64()
		cells[7] = records[i].RecomputedTotal.Round(2).InexactFloat64()
		cells[8] = records[i].ClaimedTotal.Sub(records[i].RecomputedTotal).Round(2).InexactFloat64()
		cells[9] = records[i].ErrorCount
		cells[10] = records[i].WarningCount

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("csvexport.WriteXLSX: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("csvexport.WriteXLSX row %d: %w", i, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("csvexport.WriteXLSX panes: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("csvexport.WriteXLSX write: %w", err)
	}
	return nil
}
