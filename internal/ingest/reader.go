package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wolfman30/doctor-finder/internal/doctors"
)

// Source file column headers.
const (
	colName            = "doc_names"
	colSpecializations = "specializations"
	colQualifications  = "qualifications"
	colExperience      = "experiences"
	colReviews         = "reviews"
	colFees            = "fees"
)

// ReadDoctors parses one delimited listing. Rows without a name are dropped;
// missing cells read as empty strings and malformed counts as 0.
func ReadDoctors(r io.Reader, comma rune, specialty, city string) ([]doctors.Doctor, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}
	columns := indexColumns(header)
	if _, ok := columns[colName]; !ok {
		return nil, ErrMissingNameColumn
	}

	var out []doctors.Doctor
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row: %w", err)
		}
		cell := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		name := cell(colName)
		if name == "" {
			continue
		}
		out = append(out, doctors.Doctor{
			Name:            name,
			Specialty:       specialty,
			City:            city,
			Specializations: cell(colSpecializations),
			Qualifications:  cell(colQualifications),
			Experience:      cell(colExperience),
			Reviews:         parseCount(cell(colReviews)),
			Fee:             parseCount(cell(colFees)),
		})
	}
	return out, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := columns[h]; !seen {
			columns[h] = i
		}
	}
	return columns
}

// parseCount reads a non-negative integer that fits the INTEGER columns.
// Decimals truncate ("12.0" -> 12); anything unparseable, negative,
// non-finite or above MaxInt32 is 0.
func parseCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 || n > math.MaxInt32 {
			return 0
		}
		return n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}
