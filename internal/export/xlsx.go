// Package export writes the located point set as downloadable artifacts.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sassil1/petmap/internal/models"
)

// SheetName is the sheet holding the located points.
const SheetName = "Pets"

var headers = []interface{}{
	"Name", "Species", "Breed", "Sex", "Age", "Address", "Latitude", "Longitude", "Photo",
}

// WriteXLSX streams the located points into a spreadsheet: one header row,
// one row per point, input order preserved.
func WriteXLSX(w io.Writer, points []models.LocatedPoint) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("export: stream writer: %w", err)
	}

	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for i, p := range points {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			p.Name, p.Species, p.Breed, p.Sex, p.Age,
			p.Address, p.Latitude, p.Longitude, p.PhotoURL,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("export: write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}

	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}
