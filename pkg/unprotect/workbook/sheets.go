// Package workbook reads the package parts that describe worksheets: the
// worksheet directory, the sheet table and its relationships.
package workbook

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Package locations fixed by the OOXML package convention.
const (
	WorksheetsDir = "xl/worksheets"
	WorkbookPart  = "xl/workbook.xml"
	RelsPart      = "xl/_rels/workbook.xml.rels"
)

// ErrNoWorksheets indicates the package has no worksheet directory.
var ErrNoWorksheets = errors.New("worksheets directory not found")

// WorksheetFiles returns the sorted .xml file names directly under the
// worksheet directory of an extracted package.
func WorksheetFiles(packageDir string) ([]string, error) {
	dir := filepath.Join(packageDir, filepath.FromSlash(WorksheetsDir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoWorksheets
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".xml") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// SheetNames maps worksheet file names (e.g. "sheet1.xml") to display names.
// It returns an empty map when either part is missing or malformed.
func SheetNames(packageDir string) map[string]string {
	result := make(map[string]string)

	workbookXML, err := os.ReadFile(filepath.Join(packageDir, filepath.FromSlash(WorkbookPart)))
	if err != nil {
		return result
	}
	names, err := parseWorkbookSheets(workbookXML)
	if err != nil || len(names) == 0 {
		return result
	}

	relsXML, err := os.ReadFile(filepath.Join(packageDir, filepath.FromSlash(RelsPart)))
	if err != nil {
		return result
	}
	targets, err := parseWorkbookRels(relsXML)
	if err != nil {
		return result
	}

	for rID, target := range targets {
		name, ok := names[rID]
		if !ok {
			continue
		}
		resolved := resolveTarget(target)
		if path.Dir(resolved) != WorksheetsDir {
			continue
		}
		result[path.Base(resolved)] = name
	}
	return result
}

// DisplayName returns the mapped name for file, or file without ".xml".
func DisplayName(names map[string]string, file string) string {
	if name, ok := names[file]; ok {
		return name
	}
	return strings.TrimSuffix(file, ".xml")
}

// parseWorkbookSheets returns rId -> sheet name from workbook.xml.
func parseWorkbookSheets(data []byte) (map[string]string, error) {
	result := make(map[string]string)
	err := eachElement(data, "sheet", func(se xml.StartElement) {
		var name, rID string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "name":
				name = attr.Value
			case "id":
				rID = attr.Value
			}
		}
		if name != "" && rID != "" {
			result[rID] = name
		}
	})
	return result, err
}

// parseWorkbookRels returns rId -> target from workbook.xml.rels.
func parseWorkbookRels(data []byte) (map[string]string, error) {
	result := make(map[string]string)
	err := eachElement(data, "Relationship", func(se xml.StartElement) {
		var rID, target string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Id":
				rID = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if rID != "" && target != "" {
			result[rID] = target
		}
	})
	return result, err
}

func eachElement(data []byte, local string, fn func(xml.StartElement)) error {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == local {
			fn(se)
		}
	}
}

// resolveTarget turns a workbook relationship target into a package path.
// Targets are relative to xl/ unless they start with "/".
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	return path.Join("xl", target)
}
