// Package symvers parses kernel Module.symvers records: export name, CRC
// signature, owning module, license class, and optional namespace
// (spec.md's SPEC_FULL §3/§4.O supplementary feature).
package symvers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/standardbeagle/symtypes/internal/symerr"
)

// Record is one symvers line.
type Record struct {
	CRC       uint32
	Export    string
	Module    string
	License   string
	Namespace string
}

// Parse reads one record per non-empty line from r. A line with fewer than
// four whitespace-separated fields is a parse error naming the line number.
// Blank lines are skipped (unlike a single symtypes file, a symvers file
// tolerates cosmetic blank lines in kernel practice). A duplicate export
// name is not an error — the last occurrence wins, matching the behavior of
// the kernel's own symvers-generating scripts during partial rebuilds.
func Parse(path string, r io.Reader) ([]Record, error) {
	byExport := make(map[string]int)
	var records []Record

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			return nil, symerr.NewParseError(path, lineNum, err)
		}
		if idx, ok := byExport[rec.Export]; ok {
			records[idx] = rec
			continue
		}
		byExport[rec.Export] = len(records)
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, symerr.NewIOError("read", path, err)
	}
	return records, nil
}

func parseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Record{}, fmt.Errorf("expected at least 4 fields (crc export module license), got %d", len(fields))
	}

	crc, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 32)
	if err != nil {
		return Record{}, fmt.Errorf("invalid CRC %q: %w", fields[0], err)
	}

	rec := Record{
		CRC:     uint32(crc),
		Export:  fields[1],
		Module:  fields[2],
		License: fields[3],
	}
	if len(fields) >= 5 {
		rec.Namespace = fields[4]
	}
	return rec, nil
}
