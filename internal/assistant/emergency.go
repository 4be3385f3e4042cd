package assistant

import "strings"

// EmergencyDetector flags utterances that mention a medical emergency.
type EmergencyDetector struct {
	phrases []string
}

// NewEmergencyDetector returns a detector over the built-in phrase list.
func NewEmergencyDetector() *EmergencyDetector {
	return &EmergencyDetector{phrases: emergencyPhrases}
}

// IsEmergency reports whether any emergency phrase occurs in the utterance.
func (d *EmergencyDetector) IsEmergency(utterance string) bool {
	_, ok := d.Match(utterance)
	return ok
}

// Match returns the first emergency phrase found in the utterance.
func (d *EmergencyDetector) Match(utterance string) (string, bool) {
	text := normalize(utterance)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	for _, phrase := range d.phrases {
		if strings.Contains(text, phrase) {
			return phrase, true
		}
	}
	return "", false
}
