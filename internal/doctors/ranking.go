package doctors

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var digitsPattern = regexp.MustCompile(`\d+`)

// Name fragments used by the female soft filter. Names carrying an honorific
// and none of the common male prefixes are treated as likely female.
var (
	honorificMarkers = []string{"Dr. ", "Prof. Dr. ", "Assist. Prof. Dr.", "Assoc. Prof. Dr."}
	malePrefixes     = []string{"Dr. Muhammad", "Dr. M.", "Dr. Ahmed", "Dr. Ali", "Dr. Usman", "Dr. Hassan", "Dr. Hamza"}
)

// ExperienceYears extracts the first run of digits from free-text experience
// ("Exp: 7 yrs" -> 7). Text without digits yields 0.
func ExperienceYears(experience string) int {
	m := digitsPattern.FindString(experience)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// Score ranks a doctor: reviews weigh most, then years of experience, with a
// small penalty for higher fees.
func Score(d Doctor) float64 {
	return float64(d.Reviews)*10 + float64(ExperienceYears(d.Experience))*5 - float64(d.Fee)*0.01
}

// Rank sorts doctors by descending score. Ties keep their input order.
func Rank(doctors []Doctor) {
	sort.SliceStable(doctors, func(i, j int) bool {
		return Score(doctors[i]) > Score(doctors[j])
	})
}

func likelyFemale(name string) bool {
	marked := false
	for _, marker := range honorificMarkers {
		if strings.Contains(name, marker) {
			marked = true
			break
		}
	}
	if !marked {
		return false
	}
	for _, prefix := range malePrefixes {
		if strings.Contains(name, prefix) {
			return false
		}
	}
	return true
}

// applyGender narrows to likely-female names when asked. The filter is soft:
// if nothing survives, the input set is returned unchanged.
func applyGender(doctors []Doctor, gender string) []Doctor {
	if !strings.EqualFold(strings.TrimSpace(gender), GenderFemale) {
		return doctors
	}
	var kept []Doctor
	for _, d := range doctors {
		if likelyFemale(d.Name) {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return doctors
	}
	return kept
}
