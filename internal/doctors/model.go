package doctors

import "strings"

// Canonical specialty values produced by ingestion.
const (
	SpecialtyPsychiatrist  = "Psychiatrist"
	SpecialtyDermatologist = "Dermatologist"
	SpecialtyNeurologist   = "Neurologist"
	SpecialtyGynecologist  = "Gynecologist"
	SpecialtyUrologist     = "Urologist"
)

// Supported cities.
const (
	CityIslamabad = "Islamabad"
	CityLahore    = "Lahore"
	CityUnknown   = "Unknown"
)

// GenderFemale is the only gender preference the search engine acts on.
const GenderFemale = "female"

// DefaultLimit caps search results when the caller does not.
const DefaultLimit = 5

// SupportedCities lists the cities the store is populated for.
var SupportedCities = []string{CityIslamabad, CityLahore}

// Doctor is one row of the doctor store.
type Doctor struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Specialty       string  `json:"specialty"`
	City            string  `json:"city"`
	Specializations string  `json:"specializations"`
	Qualifications  string  `json:"qualifications"`
	Experience      string  `json:"experience"`
	Reviews         int     `json:"reviews"`
	Fee             int     `json:"fee"`
	Area            *string `json:"area"`
	HospitalClinic  *string `json:"hospital_clinic"`
	Phone           *string `json:"phone"`
	Timings         *string `json:"timings"`
	ProfileLink     *string `json:"profile_link"`
}

// Validate checks the fields every stored row must have.
func (d Doctor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(d.Specialty) == "" {
		return ErrMissingSpecialty
	}
	if strings.TrimSpace(d.City) == "" {
		return ErrMissingCity
	}
	if d.Reviews < 0 || d.Fee < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Filter is the predicate pushed down to the store. Empty strings and a nil
// MaxFee mean "don't care".
type Filter struct {
	Specialty string
	City      string
	MaxFee    *int
}

// SearchParams are the inputs of a ranked search.
type SearchParams struct {
	Specialty string `json:"specialty,omitempty"`
	City      string `json:"city,omitempty"`
	Gender    string `json:"gender,omitempty"`
	MaxFee    *int   `json:"max_fee,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// Filter returns the store-level part of the params.
func (p SearchParams) Filter() Filter {
	return Filter{Specialty: p.Specialty, City: p.City, MaxFee: p.MaxFee}
}

// Stat is the number of doctors for one specialty in one city.
type Stat struct {
	Specialty string `json:"specialty"`
	City      string `json:"city"`
	Count     int    `json:"count"`
}
