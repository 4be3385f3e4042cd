package assistant

import (
	"strings"

	"github.com/wolfman30/doctor-finder/internal/doctors"
)

// Intent is the category of a user utterance.
type Intent string

const (
	IntentDoctorSearch    Intent = "doctor_search"
	IntentSymptomSearch   Intent = "symptom_search"
	IntentGeneralQuery    Intent = "general_query"
	IntentUnsupportedCity Intent = "unsupported_city"

	// IntentEmergency labels replies produced by the emergency short-circuit.
	// The classifier never returns it.
	IntentEmergency Intent = "emergency"
)

const genderMale = "male"

// Filters are optional search preferences extracted from an utterance.
type Filters struct {
	Gender          string `json:"gender,omitempty"`
	BudgetConscious bool   `json:"budget_conscious,omitempty"`
}

// IntentResult is the classification of a single utterance.
type IntentResult struct {
	Intent    Intent  `json:"intent"`
	Specialty string  `json:"specialty,omitempty"`
	City      string  `json:"city,omitempty"`
	Filters   Filters `json:"filters"`
}

// IsSearch reports whether the intent needs a doctor lookup.
func (r IntentResult) IsSearch() bool {
	return r.Intent == IntentDoctorSearch || r.Intent == IntentSymptomSearch
}

// Classifier maps utterances to intents by keyword matching.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify never fails; unmatched input is a general query.
func (c *Classifier) Classify(utterance string) IntentResult {
	text := normalize(utterance)
	result := IntentResult{Intent: IntentGeneralQuery}
	if strings.TrimSpace(text) == "" {
		return result
	}

	if containsAny(text, unsupportedCities) {
		return IntentResult{Intent: IntentUnsupportedCity}
	}

	result.City = detectCity(text)

	if specialty := mentionedSpecialty(text); specialty != "" {
		result.Intent = IntentDoctorSearch
		result.Specialty = specialty
	} else if specialty := symptomSpecialty(text); specialty != "" {
		result.Intent = IntentSymptomSearch
		result.Specialty = specialty
	}

	switch {
	case containsAny(text, femaleWords):
		result.Filters.Gender = doctors.GenderFemale
	case containsAny(text, maleWords):
		result.Filters.Gender = genderMale
	}
	result.Filters.BudgetConscious = containsAny(text, budgetWords)
	return result
}

func detectCity(text string) string {
	for _, c := range supportedCityAliases {
		if containsAny(text, c.aliases) {
			return c.city
		}
	}
	return ""
}

func mentionedSpecialty(text string) string {
	for _, entry := range symptomTable {
		if strings.Contains(text, strings.ToLower(entry.specialty)) {
			return entry.specialty
		}
	}
	return ""
}

// symptomSpecialty picks the specialty with the most keyword hits.
func symptomSpecialty(text string) string {
	best, bestHits := "", 0
	for _, entry := range symptomTable {
		hits := 0
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = entry.specialty, hits
		}
	}
	return best
}
