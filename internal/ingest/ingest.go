// Package ingest reads delimited loan exports into raw records.
//
// It handles the container details the ETL core does not care about:
//   - UTF-8 byte order marks and Windows-1252 encoded legacy files
//   - Comma, tab or pipe delimiters, sniffed from the first lines
//   - Title rows above the header (the header is searched for)
//   - Spreadsheet artifacts such as ="00123" cells
package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/core"
)

// Defaults.
const (
	DefaultMaxHeaderSearchRows = 20
	DefaultMaxBytes            = 100 * 1024 * 1024
)

// minHeaderMatches is how many recognised columns a header row needs.
const minHeaderMatches = 2

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options controls how a file is read.
type Options struct {
	// Source tags every record (primary, secondary, legacy, supplemental).
	Source string
	// Delimiter forces a delimiter; zero sniffs it.
	Delimiter rune
	// MaxHeaderSearchRows bounds the header search; zero uses the default.
	MaxHeaderSearchRows int
	// MaxBytes bounds the file size; zero uses the default.
	MaxBytes int64
}

// File is a parsed export.
type File struct {
	Name        string
	Source      string
	Delimiter   rune
	HeaderRow   int // zero-based row of the header
	Header      []string
	Records     []core.RawRecord
	SkippedRows int // blank rows after the header
	Transcoded  bool
}

// Summary describes the file for run metadata.
func (f *File) Summary() core.SourceFile {
	return core.SourceFile{Name: f.Name, Source: f.Source, Rows: len(f.Records)}
}

// ReadFile opens and parses path.
func ReadFile(path string, opts Options) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()
	return Read(fh, filepath.Base(path), opts)
}

// Read parses a delimited export from r.
func Read(r io.Reader, name string, opts Options) (*File, error) {
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(bufio.NewReader(r), maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%s: %w: exceeds %d bytes", name, core.ErrFileTooLarge, maxBytes)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", name, core.ErrEmptyFile)
	}

	f := &File{Name: name, Source: opts.Source}
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("%s: encoding error: %w", name, err)
		}
		data = decoded
		f.Transcoded = true
	}

	f.Delimiter = opts.Delimiter
	if f.Delimiter == 0 {
		f.Delimiter = SniffDelimiter(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = f.Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	maxRows := opts.MaxHeaderSearchRows
	if maxRows <= 0 {
		maxRows = DefaultMaxHeaderSearchRows
	}
	f.HeaderRow = FindHeader(rows, maxRows)
	if f.HeaderRow < 0 {
		return nil, fmt.Errorf("%s: %w in the first %d rows", name, core.ErrNoHeader, maxRows)
	}

	f.Header = make([]string, len(rows[f.HeaderRow]))
	for i, h := range rows[f.HeaderRow] {
		f.Header[i] = CleanCell(h)
	}

	for _, row := range rows[f.HeaderRow+1:] {
		if isEmptyRow(row) {
			f.SkippedRows++
			continue
		}
		f.Records = append(f.Records, buildRecord(f.Header, row, opts.Source))
	}
	return f, nil
}

// buildRecord maps a data row onto the header. Short rows are padded with
// empty cells; cells past the header are dropped. For repeated header names
// the first non-blank cell wins.
func buildRecord(header, row []string, source string) core.RawRecord {
	cells := make(map[string]string, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		var v string
		if i < len(row) {
			v = CleanCell(row[i])
		}
		if prev, ok := cells[name]; ok && prev != "" {
			continue
		}
		cells[name] = v
	}
	return core.FromStrings(cells, source)
}

// FindHeader returns the row, within the first maxRows, with the most
// recognised column names, or -1 when no row has at least two.
func FindHeader(rows [][]string, maxRows int) int {
	best, bestHits := -1, minHeaderMatches-1
	for i := 0; i < len(rows) && i < maxRows; i++ {
		hits := 0
		for _, cell := range rows[i] {
			if core.KnownColumn(CleanCell(cell)) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = i, hits
		}
	}
	return best
}

// candidateDelimiters in tie-break order.
var candidateDelimiters = []rune{',', '\t', '|'}

// sniffLines is how many non-blank lines SniffDelimiter inspects.
const sniffLines = 20

// SniffDelimiter picks the delimiter that occurs most often, outside quotes,
// in the first lines of data. Comma wins ties and empty input.
func SniffDelimiter(data []byte) rune {
	counts := make(map[rune]int, len(candidateDelimiters))
	lines := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() && lines < sniffLines {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines++
		inQuotes := false
		for _, r := range line {
			switch {
			case r == '"':
				inQuotes = !inQuotes
			case !inQuotes:
				counts[r]++
			}
		}
	}

	best := ','
	for _, d := range candidateDelimiters {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

// CleanCell removes spreadsheet artifacts from a cell value:
// surrounding whitespace, formula-quoted text (="00123"), and stray quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}
	return strings.TrimSpace(strings.Trim(s, `"`))
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if CleanCell(v) != "" {
			return false
		}
	}
	return true
}
