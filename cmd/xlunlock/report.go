package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/ukaji3/xlunlock-go/pkg/unprotect/models"
)

func renderTable(w io.Writer, headers []string, rows [][]string, rightAligned ...int) string {
	tw := table.NewWriter()
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, col := range rightAligned {
		configs = append(configs, table.ColumnConfig{
			Number:      col,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func printInspections(w io.Writer, inspections []models.Inspection) {
	var rows [][]string
	for _, in := range inspections {
		if in.Err != "" {
			rows = append(rows, []string{in.DisplayName, in.File, "error", "", in.Err})
			continue
		}
		if !in.Protected() {
			rows = append(rows, []string{in.DisplayName, in.File, "none", "0", ""})
			continue
		}
		for _, f := range in.Findings {
			preview := ""
			if len(f.Previews) > 0 {
				preview = f.Previews[0]
				if more := f.Count - 1; more > 0 {
					preview += fmt.Sprintf(" (+%d more)", more)
				}
			}
			rows = append(rows, []string{in.DisplayName, in.File, f.Kind, strconv.Itoa(f.Count), preview})
		}
	}
	fmt.Fprintln(w, "Protection elements:")
	fmt.Fprintln(w, renderTable(w, []string{"Sheet", "File", "Kind", "Count", "Preview"}, rows, 4))
}

func printSummary(w io.Writer, result *models.Result) {
	if result.Cancelled {
		fmt.Fprintln(w, "Operation cancelled. No output was written.")
		return
	}

	fmt.Fprintf(w, "Scanned %d worksheet file(s).\n", result.Scanned)

	modified := result.Modified()
	if len(modified) == 0 {
		fmt.Fprintln(w, "No sheet protection found - file may already be unprotected.")
	} else {
		rows := make([][]string, 0, len(modified))
		for _, s := range modified {
			rows = append(rows, []string{s.DisplayName, s.File, strconv.Itoa(s.Removed)})
		}
		fmt.Fprintf(w, "Unprotected %d sheet(s):\n", len(modified))
		fmt.Fprintln(w, renderTable(w, []string{"Sheet", "File", "Removed"}, rows, 3))
	}

	for _, s := range result.Failed() {
		fmt.Fprintf(w, "Failed to process %s (%s): %v\n", s.DisplayName, s.File, s.Err)
	}

	fmt.Fprintf(w, "Backup: %s\n", result.Backup)
	fmt.Fprintf(w, "Output: %s\n", result.Output)
	if result.Integrity != nil {
		fmt.Fprintf(w, "WARNING: %v\nThe unprotected file may be corrupted.\n", result.Integrity)
	} else if result.Validation != nil {
		fmt.Fprintf(w, "Note: output could not be read back as a workbook: %v\n", result.Validation)
	}
}

type sheetView struct {
	models.SheetResult
	Error string `json:"error,omitempty"`
}

type resultView struct {
	*models.Result
	Sheets    []sheetView `json:"sheets"`
	Integrity  string      `json:"integrity_error,omitempty"`
	Validation string      `json:"validation_error,omitempty"`
	Removed    int         `json:"removed"`
}

func newResultView(r *models.Result) resultView {
	v := resultView{Result: r, Removed: r.TotalRemoved()}
	for _, s := range r.Sheets {
		sv := sheetView{SheetResult: s}
		if s.Err != nil {
			sv.Error = s.Err.Error()
		}
		v.Sheets = append(v.Sheets, sv)
	}
	if r.Integrity != nil {
		v.Integrity = r.Integrity.Error()
	}
	if r.Validation != nil {
		v.Validation = r.Validation.Error()
	}
	return v
}

func jsonPrint(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
