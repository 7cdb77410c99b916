package csvexport

import (
	"fmt"
	"io"
	"strings"

	"RieperLogistics_ScanLedger/internal/models"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Eintraege"

// CSV와 같은 컬럼 순서로 XLSX를 쓴다. 바코드는 문자열 셀이라 수식 트릭이 필요 없다.
func WriteXLSX(w io.Writer, records []models.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("WriteXLSX(): rename sheet: %w", err)
	}

	header := strings.Split(Header, Delimiter)
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("WriteXLSX(): header: %w", err)
	}

	for i, r := range records {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(SheetName, cell, r.Barcode); err != nil {
			return fmt.Errorf("WriteXLSX(): barcode row %d: %w", row, err)
		}

		cell, _ = excelize.CoordinatesToCellName(2, row)
		values := []any{
			r.Spedition,
			r.Artikel,
			r.Bemerkung,
			r.Hundert,
			r.Fuenfzig,
			r.Info,
			r.Mitarbeiter,
			r.Date,
			r.Timestamp,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("WriteXLSX(): row %d: %w", row, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("WriteXLSX(): write: %w", err)
	}
	return nil
}
