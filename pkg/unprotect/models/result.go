// Package models holds the data types reported by an unprotect run.
package models

// SheetResult is the outcome of stripping one worksheet part.
type SheetResult struct {
	// File is the worksheet part file name, e.g. "sheet1.xml".
	File string `json:"file"`
	// DisplayName is the workbook sheet name, or File without extension.
	DisplayName string `json:"display_name"`
	// Removed is the number of protection elements deleted.
	Removed int `json:"removed"`
	// Err is set when the part could not be processed. Its original
	// content was restored.
	Err error `json:"-"`
}

// Result describes a complete run over one package.
type Result struct {
	Input  string `json:"input"`
	Backup string `json:"backup"`
	// Output is empty when the run was cancelled before repacking.
	Output string `json:"output,omitempty"`
	// Scanned is the number of worksheet parts enumerated.
	Scanned     int           `json:"scanned"`
	Sheets      []SheetResult `json:"sheets"`
	Inspections []Inspection  `json:"inspections,omitempty"`
	Cancelled   bool          `json:"cancelled,omitempty"`
	// Integrity is set when the produced archive failed its checksum check.
	Integrity error `json:"-"`
	// Validation is set when the output could not be read back as a
	// workbook. It is informational: packages that were never complete
	// workbooks still repack correctly.
	Validation error `json:"-"`
	// ValidatedSheets lists the sheet names read back from the output.
	ValidatedSheets []string `json:"validated_sheets,omitempty"`
}

// Modified returns the sheets that had at least one element removed.
func (r *Result) Modified() []SheetResult {
	var out []SheetResult
	for _, s := range r.Sheets {
		if s.Err == nil && s.Removed > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Failed returns the sheets whose processing failed.
func (r *Result) Failed() []SheetResult {
	var out []SheetResult
	for _, s := range r.Sheets {
		if s.Err != nil {
			out = append(out, s)
		}
	}
	return out
}

// TotalRemoved sums removals across all sheets.
func (r *Result) TotalRemoved() int {
	total := 0
	for _, s := range r.Sheets {
		total += s.Removed
	}
	return total
}

// NoProtectionFound reports a completed run that removed nothing.
func (r *Result) NoProtectionFound() bool {
	return !r.Cancelled && r.TotalRemoved() == 0
}

// HasWarnings reports partial failures, a failed integrity check, or a
// completed run that found nothing to remove.
func (r *Result) HasWarnings() bool {
	return r.Integrity != nil || len(r.Failed()) > 0 || r.NoProtectionFound()
}
