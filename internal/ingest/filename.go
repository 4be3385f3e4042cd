package ingest

import (
	"path"
	"strings"

	"github.com/wolfman30/doctor-finder/internal/doctors"
)

const (
	islamabadTag = "_isl"
	lahoreTag    = "_lhr"
)

// IsCandidate reports whether a file name looks like a doctor listing:
// a .csv or .tsv file whose name carries a city tag.
func IsCandidate(name string) bool {
	base := strings.ToLower(path.Base(name))
	switch path.Ext(base) {
	case ".csv", ".tsv":
	default:
		return false
	}
	return strings.Contains(base, islamabadTag) || strings.Contains(base, lahoreTag)
}

// SpecialtyFromFilename takes the part of the base name before the first
// underscore and strips one trailing "s" ("Psychiatrists_isl.csv" ->
// "Psychiatrist").
func SpecialtyFromFilename(name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	if i := strings.Index(base, "_"); i >= 0 {
		base = base[:i]
	}
	return strings.TrimSuffix(base, "s")
}

// CityFromFilename maps the city tag to a city name.
func CityFromFilename(name string) string {
	base := strings.ToLower(path.Base(name))
	switch {
	case strings.Contains(base, islamabadTag):
		return doctors.CityIslamabad
	case strings.Contains(base, lahoreTag):
		return doctors.CityLahore
	default:
		return doctors.CityUnknown
	}
}

func delimiterFor(name string) rune {
	if strings.EqualFold(path.Ext(name), ".tsv") {
		return '\t'
	}
	return ','
}
