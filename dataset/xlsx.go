// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of an annotator's workbook with the same
// layout rules as ReadCSV: the first row is a header and reading stops at
// the first row whose first cell is empty.
func ReadXLSX(r io.Reader, annotator, fileName string) ([]Record, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(wb.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	var out []Record
	for row, cells := range rows {
		if row == 0 {
			continue
		}
		if len(cells) == 0 || strings.TrimSpace(cells[0]) == "" {
			break
		}
		rec, err := parseRow(cells, annotator, fileName)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", fileName, row+1, err)
		}
		out = append(out, rec)
	}

	return out, nil
}

// ReadXLSXFile opens path and calls ReadXLSX with the base file name.
func ReadXLSXFile(path, annotator string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadXLSX(f, annotator, filepath.Base(path))
}

// sheetReaders maps a lower-case file extension to its reader.
var sheetReaders = map[string]func(path, annotator string) ([]Record, error){
	".csv":  ReadCSVFile,
	".xlsx": ReadXLSXFile,
}

// sheetReader returns the reader for path, or nil when it is not a sheet.
// Office lock files ("~$name.xlsx") are not sheets.
func sheetReader(path string) func(path, annotator string) ([]Record, error) {
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return nil
	}

	return sheetReaders[strings.ToLower(filepath.Ext(path))]
}
