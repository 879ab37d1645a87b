package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestValidate(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatal(err)
	}
	f.SetCellValue("Sheet1", "A1", "Header")
	f.SetCellValue("Sheet1", "A2", 100)
	f.SetCellValue("Data", "B3", "x")

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	sheets, err := Validate(path)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(sheets) != 2 || sheets[0] != "Sheet1" || sheets[1] != "Data" {
		t.Errorf("Expected [Sheet1 Data], got %v", sheets)
	}
}

func TestValidateRejectsNonWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Validate(path); err == nil {
		t.Error("Expected an error for a non-workbook file")
	}
}
