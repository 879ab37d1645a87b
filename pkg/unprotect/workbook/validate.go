package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Validate opens the package at path as a workbook and returns its sheet
// names in workbook order.
func Validate(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open workbook %s: no sheets listed", path)
	}
	return sheets, nil
}
