package unprotect

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"report.xlsx", "report_unprotected.xlsx"},
		{"/data/Macros.XLSM", "/data/Macros_unprotected.xlsm"},
		{"dir.v2/book.name.xlsx", "dir.v2/book.name_unprotected.xlsx"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.input); got != tt.expected {
			t.Errorf("OutputPath(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestValidateInput(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.xlsx", "b.XLSM", "c.xls", "d.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"a.xlsx", false},
		{"b.XLSM", false},
		{"c.xls", true},
		{"d.csv", true},
		{"missing.xlsx", true},
	}
	for _, tt := range tests {
		err := ValidateInput(filepath.Join(dir, tt.name))
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateInput(%s) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ValidateInput(%s) = %v, expected ErrInvalidInput", tt.name, err)
		}
	}
}

func TestCreateBackup(t *testing.T) {
	src := filepath.Join(t.TempDir(), "book.xlsx")
	if err := os.WriteFile(src, []byte("PK\x03\x04content"), 0o600); err != nil {
		t.Fatal(err)
	}

	dst, err := CreateBackup(src)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if dst != src+".backup" {
		t.Errorf("backup path = %q", dst)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "PK\x03\x04content" {
		t.Errorf("backup content = %q", data)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("backup mode = %v, expected 0600", info.Mode().Perm())
	}
}

func TestErrorClassification(t *testing.T) {
	err := newError(ErrIO, "xl/worksheets/sheet1.xml", fs.ErrPermission)
	if !errors.Is(err, ErrIO) {
		t.Error("expected errors.Is(err, ErrIO)")
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected the cause to be preserved")
	}
	if errors.Is(err, ErrBackup) {
		t.Error("unexpected match on ErrBackup")
	}
	if !strings.HasPrefix(err.Error(), "xl/worksheets/sheet1.xml: ") {
		t.Errorf("message %q does not lead with the part", err.Error())
	}

	bare := newError(ErrIntegrity, "out.xlsx", nil)
	if bare.Error() != "out.xlsx: integrity check failed" {
		t.Errorf("message = %q", bare.Error())
	}
}
