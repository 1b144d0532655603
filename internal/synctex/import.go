package synctex

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
)

// TSV column order of an import file.
const (
	fieldFile = iota
	fieldLine
	fieldColumn
	fieldPage
	fieldX
	fieldY
	fieldW
	fieldH
	numFields
)

// ImportStats summarizes an Import run.
type ImportStats struct {
	TotalRows    int
	ImportedRows int
	SkippedRows  int
	Warnings     []string
}

// Import reads tab-separated records (file, line, column, page, x, y, w, h)
// from path and adds them. Blank lines and lines starting with # are
// ignored; malformed rows are skipped with a warning. With replace set, the
// records of every imported file are removed first.
func (s *Store) Import(ctx context.Context, path string, replace bool) (ImportStats, error) {
	stats := ImportStats{}
	if strings.TrimSpace(path) == "" {
		return stats, fmt.Errorf("synctex import: path cannot be empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("synctex import: open: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		stats.TotalRows++
		rec, err := parseTSVLine(line)
		if err != nil {
			stats.SkippedRows++
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("line %d: %v", lineNumber, err))
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("synctex import: read: %w", err)
	}

	if replace {
		seen := make(map[string]bool)
		for _, r := range records {
			if seen[r.File] {
				continue
			}
			seen[r.File] = true
			if err := s.Clear(ctx, r.File); err != nil {
				return stats, err
			}
		}
	}
	if err := s.Add(ctx, records...); err != nil {
		return stats, err
	}
	stats.ImportedRows = len(records)
	return stats, nil
}

func parseTSVLine(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != numFields {
		return Record{}, fmt.Errorf("invalid field count: got %d, need %d", len(fields), numFields)
	}
	file := strings.TrimSpace(fields[fieldFile])
	if file == "" {
		return Record{}, fmt.Errorf("empty file")
	}

	var nums [numFields]int
	for i := fieldLine; i < numFields; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil {
			return Record{}, fmt.Errorf("field %d: invalid number %q", i+1, fields[i])
		}
		nums[i] = n
	}
	rec := Record{
		File:   file,
		Line:   nums[fieldLine],
		Column: nums[fieldColumn],
		Page:   nums[fieldPage],
		Rect:   image.Rect(nums[fieldX], nums[fieldY], nums[fieldX]+nums[fieldW], nums[fieldY]+nums[fieldH]),
	}
	if err := validateRecord(rec); err != nil {
		return Record{}, err
	}
	if nums[fieldW] < 0 || nums[fieldH] < 0 {
		return Record{}, fmt.Errorf("negative size")
	}
	return rec, nil
}
