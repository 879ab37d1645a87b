package unprotect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ukaji3/xlunlock-go/pkg/unprotect/archive"
	"github.com/ukaji3/xlunlock-go/pkg/unprotect/models"
	"github.com/ukaji3/xlunlock-go/pkg/unprotect/protection"
	"github.com/ukaji3/xlunlock-go/pkg/unprotect/workbook"
)

// Run removes worksheet protection from the package at inputPath and
// writes the result next to it. A backup of the input is created first.
//
// The returned error is non-nil only for failures that prevent an output
// from being produced. Per-sheet failures and integrity problems are
// reported on the Result.
func Run(inputPath string, opts Options) (*models.Result, error) {
	logger := opts.logger()

	if err := ValidateInput(inputPath); err != nil {
		return nil, err
	}

	output := opts.OutputPath
	if output == "" {
		output = OutputPath(inputPath)
	}
	if err := checkOutputPath(inputPath, output); err != nil {
		return nil, err
	}

	backup, err := CreateBackup(inputPath)
	if err != nil {
		return nil, err
	}
	logger.Info("backup created", "path", backup)

	result := &models.Result{Input: inputPath, Backup: backup}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	tempDir, err := os.MkdirTemp("", base+"_temp_")
	if err != nil {
		return result, newError(ErrIO, inputPath, err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			logger.Warn("could not remove temporary directory", "path", tempDir, "err", err)
		}
	}()

	logger.Info("extracting package", "file", inputPath)
	if err := archive.Extract(inputPath, tempDir); err != nil {
		if errors.Is(err, archive.ErrFormat) {
			return result, newError(ErrArchiveFormat, inputPath, err)
		}
		return result, newError(ErrIO, inputPath, err)
	}

	names := workbook.SheetNames(tempDir)
	logger.Debug("mapped sheet names", "count", len(names))

	files, err := workbook.WorksheetFiles(tempDir)
	if err != nil {
		return result, newError(ErrIO, inputPath, err)
	}
	result.Scanned = len(files)
	logger.Info("found worksheet files", "count", len(files))

	sheetsDir := filepath.Join(tempDir, filepath.FromSlash(workbook.WorksheetsDir))
	stripper := opts.stripper()

	if opts.InspectFirst {
		result.Inspections = inspectAll(sheetsDir, files, names, stripper, logger)
		if !opts.confirm(result.Inspections) {
			result.Cancelled = true
			logger.Info("operation cancelled")
			return result, nil
		}
	}

	for _, file := range files {
		result.Sheets = append(result.Sheets, stripSheet(sheetsDir, file, names, stripper, logger))
	}

	logger.Info("creating unprotected package", "path", output)
	if err := archive.Repack(tempDir, output); err != nil {
		return result, newError(ErrIO, output, err)
	}
	result.Output = output

	verify(result, logger)
	return result, nil
}

func inspectAll(dir string, files []string, names map[string]string, s protection.Stripper, logger *log.Logger) []models.Inspection {
	inspections := make([]models.Inspection, 0, len(files))
	for _, file := range files {
		in := models.Inspection{File: file, DisplayName: workbook.DisplayName(names, file)}
		findings, err := protection.InspectFile(filepath.Join(dir, file), s)
		if err != nil {
			in.Err = err.Error()
			logger.Error("inspection failed", "file", file, "err", err)
		}
		in.Findings = findings
		for _, f := range findings {
			logger.Debug("protection found", "file", file, "kind", f.Kind, "count", f.Count)
		}
		inspections = append(inspections, in)
	}
	return inspections
}

func stripSheet(dir, file string, names map[string]string, s protection.Stripper, logger *log.Logger) models.SheetResult {
	res := models.SheetResult{File: file, DisplayName: workbook.DisplayName(names, file)}
	path := filepath.Join(dir, file)

	removed, err := protection.StripFile(path, s)
	if err != nil {
		res.Err = newError(ErrIO, filepath.ToSlash(filepath.Join(workbook.WorksheetsDir, file)), err)
		logger.Error("could not process worksheet", "file", file, "err", err)
		return res
	}
	res.Removed = len(removed)
	for _, m := range removed {
		logger.Info("removing", "file", file, "element", protection.Preview(m, protection.RemovalPreviewLength))
	}
	if res.Removed > 0 {
		logger.Info("removed protection", "file", file, "sheet", res.DisplayName, "removed", res.Removed)
	}
	return res
}

// verify checks the stored checksums of the produced archive. A failure
// there is recorded as an integrity warning. The output is then read back
// as a workbook; that only produces a note, since a package that was never
// a complete workbook still repacks correctly.
func verify(result *models.Result, logger *log.Logger) {
	if err := archive.Verify(result.Output); err != nil {
		result.Integrity = newError(ErrIntegrity, result.Output, err)
		logger.Error("file integrity check failed", "path", result.Output, "err", err)
		return
	}
	logger.Info("file integrity verified", "path", result.Output)

	sheets, err := workbook.Validate(result.Output)
	if err != nil {
		result.Validation = err
		logger.Warn("output could not be read back as a workbook", "path", result.Output, "err", err)
		return
	}
	result.ValidatedSheets = sheets
	logger.Debug("workbook read back", "sheets", len(sheets))
}

// checkOutputPath rejects outputs that would overwrite the input or its backup.
func checkOutputPath(input, output string) error {
	for _, protected := range []string{input, BackupPath(input)} {
		if samePath(output, protected) {
			return newError(ErrInvalidInput, output, fmt.Errorf("output would overwrite %s", protected))
		}
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	if absA == absB {
		return true
	}
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
