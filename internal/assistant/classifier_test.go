package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wolfman30/doctor-finder/internal/doctors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		intent    Intent
		specialty string
		city      string
		filters   Filters
	}{
		{
			name:      "direct mention beats symptoms",
			input:     "I need a Dermatologist, I also have insomnia",
			intent:    IntentDoctorSearch,
			specialty: doctors.SpecialtyDermatologist,
		},
		{
			name:   "unsupported city short-circuits",
			input:  "Find me a doctor in Karachi",
			intent: IntentUnsupportedCity,
		},
		{
			name:   "unsupported city drops everything else",
			input:  "female psychiatrist in Rawalpindi or Lahore, cheap please",
			intent: IntentUnsupportedCity,
		},
		{
			name:      "specialty and city",
			input:     "Best psychiatrists in Lahore",
			intent:    IntentDoctorSearch,
			specialty: doctors.SpecialtyPsychiatrist,
			city:      doctors.CityLahore,
		},
		{
			name:      "symptoms with city alias",
			input:     "anxiety and panic attacks, I live in ISB",
			intent:    IntentSymptomSearch,
			specialty: doctors.SpecialtyPsychiatrist,
			city:      doctors.CityIslamabad,
		},
		{
			name:      "most symptom hits wins",
			input:     "headache, dizziness and a rash",
			intent:    IntentSymptomSearch,
			specialty: doctors.SpecialtyNeurologist,
		},
		{
			name:      "ties go to the earlier specialty",
			input:     "rash and migraine",
			intent:    IntentSymptomSearch,
			specialty: doctors.SpecialtyDermatologist,
		},
		{
			name:      "female preference",
			input:     "lady doctor for pcos in lahore",
			intent:    IntentSymptomSearch,
			specialty: doctors.SpecialtyGynecologist,
			city:      doctors.CityLahore,
			filters:   Filters{Gender: doctors.GenderFemale},
		},
		{
			name:      "male preference is recorded",
			input:     "male urologist",
			intent:    IntentDoctorSearch,
			specialty: doctors.SpecialtyUrologist,
			filters:   Filters{Gender: "male"},
		},
		{
			name:      "budget",
			input:     "affordable skin doctor",
			intent:    IntentSymptomSearch,
			specialty: doctors.SpecialtyDermatologist,
			filters:   Filters{BudgetConscious: true},
		},
		{
			name:      "compatibility forms are folded",
			input:     "ＰＳＹＣＨＩＡＴＲＩＳＴ ｉｎ ＬＡＨＯＲＥ",
			intent:    IntentDoctorSearch,
			specialty: doctors.SpecialtyPsychiatrist,
			city:      doctors.CityLahore,
		},
		{
			name:   "greeting",
			input:  "hello there",
			intent: IntentGeneralQuery,
		},
		{
			name:   "empty",
			input:  "   ",
			intent: IntentGeneralQuery,
		},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.input)
			assert.Equal(t, tt.intent, got.Intent)
			assert.Equal(t, tt.specialty, got.Specialty)
			assert.Equal(t, tt.city, got.City)
			assert.Equal(t, tt.filters, got.Filters)
		})
	}
}

func TestIntentResultIsSearch(t *testing.T) {
	assert.True(t, IntentResult{Intent: IntentDoctorSearch}.IsSearch())
	assert.True(t, IntentResult{Intent: IntentSymptomSearch}.IsSearch())
	assert.False(t, IntentResult{Intent: IntentGeneralQuery}.IsSearch())
	assert.False(t, IntentResult{Intent: IntentUnsupportedCity}.IsSearch())
}

func TestSymptomTableCoversEverySpecialty(t *testing.T) {
	want := []string{
		doctors.SpecialtyPsychiatrist,
		doctors.SpecialtyDermatologist,
		doctors.SpecialtyNeurologist,
		doctors.SpecialtyGynecologist,
		doctors.SpecialtyUrologist,
	}
	var got []string
	for _, entry := range symptomTable {
		got = append(got, entry.specialty)
		assert.NotEmpty(t, entry.keywords, entry.specialty)
	}
	assert.Equal(t, want, got)
}
