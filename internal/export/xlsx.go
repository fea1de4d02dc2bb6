// Package export writes client listings to spreadsheets.
package export

import (
	"fmt"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the client rows
const SheetName = "Clients"

// WriteClientsXLSX writes clients to an .xlsx file, one row per client,
// with the columns of domain.ClientColumns.
func WriteClientsXLSX(filename string, clients []*domain.Client) error {
	f := excelize.NewFile()
	defer f.Close()

	// Reuse the default sheet so the workbook only holds clients
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range domain.ClientColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, col.Title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, float64(col.Width+4)); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, c := range clients {
		for i, col := range domain.ClientColumns {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(SheetName, cell, col.Value(c)); err != nil {
				return fmt.Errorf("failed to write client %d: %w", c.ID, err)
			}
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}
