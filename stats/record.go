package stats

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

// NumRuns is the number of traces the simulator replays per configuration.
const NumRuns = 4

var (
	// ErrRunCount is returned when a stats file does not hold exactly NumRuns data lines.
	ErrRunCount = errors.New("unexpected run count")
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing column")
	// ErrMalformedField is returned when a field is not a number.
	ErrMalformedField = errors.New("malformed field")
)

// Column names as written in the simulator's header line.
const (
	ColTraceID       = "trace id"
	ColCacheSpace    = "cache space"
	ColReplaceSpace  = "replace space"
	ColAccessCount   = "access count"
	ColMissRate      = "miss rate"
	ColWriteMemCount = "write mem count"
	ColReadMemCount  = "read mem count"
	ColReadMiss      = "read miss"
)

// Run holds the statistics of one trace replayed on one cache configuration.
type Run struct {
	TraceID       float64
	CacheSpace    float64 // bytes of tag/data storage
	ReplaceSpace  float64 // bytes of replacement-policy state
	AccessCount   float64
	MissRate      float64 // percent
	WriteMemCount float64
	ReadMemCount  float64
	ReadMiss      float64
}

// runColumn binds a header name to the Run field it fills.
type runColumn struct {
	required bool
	field    func(r *Run) *float64
}

var runColumns = map[string]runColumn{
	ColTraceID:       {field: func(r *Run) *float64 { return &r.TraceID }},
	ColCacheSpace:    {required: true, field: func(r *Run) *float64 { return &r.CacheSpace }},
	ColReplaceSpace:  {required: true, field: func(r *Run) *float64 { return &r.ReplaceSpace }},
	ColAccessCount:   {field: func(r *Run) *float64 { return &r.AccessCount }},
	ColMissRate:      {required: true, field: func(r *Run) *float64 { return &r.MissRate }},
	ColWriteMemCount: {field: func(r *Run) *float64 { return &r.WriteMemCount }},
	ColReadMemCount:  {field: func(r *Run) *float64 { return &r.ReadMemCount }},
	ColReadMiss:      {field: func(r *Run) *float64 { return &r.ReadMiss }},
}

// requiredColumns lists required columns in a stable order for error messages.
var requiredColumns = []string{ColMissRate, ColCacheSpace, ColReplaceSpace}

// ParseRuns reads a tab-separated stats table: one header line followed by one
// line per run. Every field must be numeric and every line must have as many
// fields as the header. Exactly NumRuns data lines are required.
func ParseRuns(r io.Reader) ([]Run, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: expected %d runs, found 0 (empty file)", ErrRunCount, NumRuns)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	for _, name := range requiredColumns {
		if !present[name] {
			return nil, fmt.Errorf("%w: %q (header: %s)", ErrMissingColumn, name, strings.Join(header, ", "))
		}
	}

	var runs []Run
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		var run Run
		for i, raw := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d, column %q: %q is not a number", ErrMalformedField, line, header[i], raw)
			}
			if col, ok := runColumns[header[i]]; ok {
				*col.field(&run) = v
			}
		}
		runs = append(runs, run)
	}

	if len(runs) != NumRuns {
		return nil, fmt.Errorf("%w: expected %d runs, found %d", ErrRunCount, NumRuns, len(runs))
	}
	return runs, nil
}

// Loader returns the runs recorded for one cache configuration.
type Loader interface {
	Load(p Params) ([]Run, error)
}

// DirLoader reads stats files from a directory laid out the way the simulator writes them.
type DirLoader struct {
	Dir string
}

// Path returns the location of the stats file for p.
func (l DirLoader) Path(p Params) string {
	return filepath.Join(l.Dir, p.Filename())
}

// Load opens and parses the stats file for p. A missing file yields an error
// wrapping fs.ErrNotExist.
func (l DirLoader) Load(p Params) ([]Run, error) {
	path := l.Path(p)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stats file: %w", err)
	}
	defer func() { _ = file.Close() }()

	runs, err := ParseRuns(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return runs, nil
}
