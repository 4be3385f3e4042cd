package assistant

import (
	"strings"

	"github.com/wolfman30/doctor-finder/internal/doctors"
	"golang.org/x/text/unicode/norm"
)

type specialtyKeywords struct {
	specialty string
	keywords  []string
}

// symptomTable is ordered; earlier specialties win ties.
var symptomTable = []specialtyKeywords{
	{doctors.SpecialtyPsychiatrist, []string{
		"anxiety", "depression", "panic", "insomnia", "mental health", "stress",
		"bipolar", "ocd", "obsessive", "compulsive", "ptsd", "trauma", "suicide",
		"suicidal", "self harm", "mood swings", "schizophrenia", "psychosis",
		"hallucination", "delusion", "sleep disorder", "eating disorder",
		"anorexia", "bulimia", "adhd", "attention deficit", "anger management",
	}},
	{doctors.SpecialtyDermatologist, []string{
		"rash", "acne", "eczema", "skin", "itching", "psoriasis",
		"allergic reaction", "hives", "dermatitis", "pigmentation", "melasma",
		"vitiligo", "warts", "moles", "skin tag", "fungal infection", "ringworm",
		"hair loss", "alopecia", "dandruff", "scalp", "nail", "pimples",
		"blackheads", "wrinkles", "aging skin", "dry skin", "oily skin", "sunburn",
	}},
	{doctors.SpecialtyNeurologist, []string{
		"headache", "migraine", "seizure", "numbness", "tingling", "paralysis",
		"stroke", "epilepsy", "tremor", "parkinsons", "multiple sclerosis",
		"neuropathy", "vertigo", "dizziness", "memory loss", "dementia",
		"alzheimers", "confusion", "weakness", "facial pain", "trigeminal",
		"bells palsy", "sciatica", "nerve pain", "coordination problems",
	}},
	{doctors.SpecialtyGynecologist, []string{
		"pregnancy", "menstrual", "period", "pcos", "infertility", "pelvic pain",
		"ovarian", "uterine", "vaginal", "cervical", "breast", "menopause",
		"contraception", "miscarriage", "abortion", "prenatal", "postnatal",
		"labor", "delivery", "cesarean", "fibroids", "endometriosis",
		"irregular periods", "painful periods", "heavy bleeding", "discharge",
	}},
	{doctors.SpecialtyUrologist, []string{
		"urinary", "kidney", "bladder", "prostate", "uti", "stones",
		"incontinence", "frequent urination", "painful urination",
		"blood in urine", "hematuria", "erectile dysfunction", "impotence",
		"kidney stone", "bladder infection", "prostate enlargement", "bph",
		"urethral", "testicular", "scrotal", "male infertility", "penis", "urology",
	}},
}

var emergencyPhrases = []string{
	// cardiac
	"chest pain", "heart attack", "cardiac arrest", "heart failure",
	// mental health crisis
	"suicidal", "suicide", "kill myself", "end my life", "self harm",
	"want to die", "better off dead",
	// bleeding
	"severe bleeding", "heavy bleeding", "bleeding profusely", "hemorrhage",
	// respiratory
	"difficulty breathing", "cant breathe", "choking", "suffocating",
	"shortness of breath", "gasping",
	// neurological
	"stroke", "face drooping", "slurred speech", "sudden weakness",
	"sudden numbness", "severe headache", "worst headache",
	// allergic
	"severe allergic reaction", "anaphylaxis", "throat closing", "swelling throat",
	// consciousness
	"loss of consciousness", "passed out", "unconscious", "unresponsive",
	// trauma
	"severe injury", "major accident", "broken bone", "head injury",
}

type cityAliases struct {
	city    string
	aliases []string
}

var supportedCityAliases = []cityAliases{
	{doctors.CityIslamabad, []string{"islamabad", "isb", "isl"}},
	{doctors.CityLahore, []string{"lahore", "lhr"}},
}

var unsupportedCities = []string{"karachi", "peshawar", "quetta", "multan", "faisalabad", "rawalpindi"}

var (
	femaleWords = []string{"female", "lady", "woman"}
	maleWords   = []string{"male", "man doctor"}
	budgetWords = []string{"cheap", "affordable", "low fee"}
)

// normalize folds compatibility forms and case so matching is substring-only.
func normalize(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
