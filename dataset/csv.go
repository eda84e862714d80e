// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Sheet column order.
const (
	colDialogue = iota
	colGroup
	colSpeakerID
	colSpeaker
	colTime
	colTurn
	colUtterance
	colNumAnnotation
	colNumO
	colNumT
	colNumX
	colBreakdown
	colRemark
	numColumns
)

// ReadCSV reads one annotator's sheet. The first row is a header; reading
// stops at the first row whose first cell is empty. Short rows are padded
// with empty cells.
func ReadCSV(r io.Reader, annotator, fileName string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var out []Record
	for row := 0; ; row++ {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
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

// ReadCSVFile opens path and calls ReadCSV with the base file name.
func ReadCSVFile(path, annotator string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f, annotator, filepath.Base(path))
}

func parseRow(cells []string, annotator, fileName string) (Record, error) {
	for len(cells) < numColumns {
		cells = append(cells, "")
	}
	cell := func(i int) string { return strings.TrimSpace(cells[i]) }
	id := func(i int) string { return strings.ReplaceAll(cell(i), ",", "") }

	rec := Record{
		Annotator: annotator,
		FileName:  fileName,
		Dialogue:  id(colDialogue),
		Group:     id(colGroup),
		SpeakerID: cell(colSpeakerID),
		Speaker:   cell(colSpeaker),
		Time:      cell(colTime),
		Utterance: cells[colUtterance],
		Breakdown: cell(colBreakdown),
		Remark:    cells[colRemark],
	}

	ints := []struct {
		col int
		dst *int
		raw string
	}{
		{colTurn, &rec.Turn, id(colTurn)},
		{colNumAnnotation, &rec.NumAnnotation, cell(colNumAnnotation)},
		{colNumO, &rec.NumO, cell(colNumO)},
		{colNumT, &rec.NumT, cell(colNumT)},
		{colNumX, &rec.NumX, cell(colNumX)},
	}
	for _, f := range ints {
		v, err := parseCount(f.raw)
		if err != nil {
			return Record{}, fmt.Errorf("column %d %q: %w", f.col+1, f.raw, ErrBadRecord)
		}
		*f.dst = v
	}

	return rec, nil
}

// parseCount accepts integers and spreadsheet-style "3.0". An empty cell is 0.
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, strconv.ErrSyntax
	}

	return int(f), nil
}
