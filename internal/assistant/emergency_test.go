package assistant

import "testing"

func TestEmergencyDetector(t *testing.T) {
	d := NewEmergencyDetector()

	tests := []struct {
		input string
		want  bool
	}{
		{"I have chest pain and need a dermatologist in Lahore", true},
		{"MY FATHER PASSED OUT", true},
		{"sometimes I want to die", true},
		{"she has difficulty breathing", true},
		{"I have acne on my face", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := d.IsEmergency(tt.input); got != tt.want {
			t.Fatalf("IsEmergency(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	phrase, ok := d.Match("Worst headache of my life")
	if !ok || phrase != "worst headache" {
		t.Fatalf("unexpected match %q %v", phrase, ok)
	}
}
