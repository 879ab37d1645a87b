package unprotect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BackupSuffix is appended to the input path to name the backup copy.
const BackupSuffix = ".backup"

// OutputSuffix is inserted before the extension to name the output.
const OutputSuffix = "_unprotected"

// ValidateInput checks that path names an existing regular .xlsx or .xlsm file.
func ValidateInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newError(ErrInvalidInput, path, fmt.Errorf("file not found"))
		}
		return newError(ErrInvalidInput, path, err)
	}
	if !info.Mode().IsRegular() {
		return newError(ErrInvalidInput, path, fmt.Errorf("not a regular file"))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return nil
	default:
		return newError(ErrInvalidInput, path, fmt.Errorf("file must be .xlsx or .xlsm"))
	}
}

// OutputPath returns the sibling output path for input, e.g.
// "Book.XLSM" -> "Book_unprotected.xlsm".
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return base + OutputSuffix + strings.ToLower(ext)
}

// BackupPath returns the backup path for input.
func BackupPath(input string) string {
	return input + BackupSuffix
}

// CreateBackup copies input to its backup path, preserving the file mode.
func CreateBackup(input string) (string, error) {
	dst := BackupPath(input)
	if err := copyFile(input, dst); err != nil {
		return "", newError(ErrBackup, dst, err)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
