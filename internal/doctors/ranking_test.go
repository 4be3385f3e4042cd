package doctors

import "testing"

func TestExperienceYears(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Year 12", 12},
		{"", 0},
		{"Exp: 7 yrs", 7},
		{"15 Years 3 Months", 15},
		{"no digits here", 0},
	}
	for _, tt := range tests {
		if got := ExperienceYears(tt.in); got != tt.want {
			t.Fatalf("ExperienceYears(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestScore(t *testing.T) {
	d := Doctor{Reviews: 20, Experience: "10 Years", Fee: 2000}
	if got := Score(d); got != 230 {
		t.Fatalf("expected score 230, got %v", got)
	}
}

func TestScoreMonotonicInReviewsAndExperience(t *testing.T) {
	base := Doctor{Reviews: 5, Experience: "3 years", Fee: 1500}
	moreReviews := base
	moreReviews.Reviews++
	moreYears := base
	moreYears.Experience = "4 years"
	higherFee := base
	higherFee.Fee = 2500

	if Score(moreReviews) <= Score(base) {
		t.Fatal("more reviews must not lower the score")
	}
	if Score(moreYears) <= Score(base) {
		t.Fatal("more experience must not lower the score")
	}
	if Score(higherFee) >= Score(base) {
		t.Fatal("higher fee must lower the score")
	}
}

func TestRankSwapsOnReviewChange(t *testing.T) {
	a := Doctor{ID: 1, Name: "A", Reviews: 10, Experience: "5", Fee: 1000}
	b := Doctor{ID: 2, Name: "B", Reviews: 4, Experience: "5", Fee: 1000}

	rows := []Doctor{a, b}
	Rank(rows)
	if rows[0].ID != 1 {
		t.Fatalf("expected A first, got %s", rows[0].Name)
	}

	b.Reviews = 30
	rows = []Doctor{a, b}
	Rank(rows)
	if rows[0].ID != 2 {
		t.Fatalf("expected B first after review bump, got %s", rows[0].Name)
	}
}

func TestRankIsStableOnTies(t *testing.T) {
	rows := []Doctor{
		{ID: 3, Reviews: 1},
		{ID: 1, Reviews: 1},
		{ID: 2, Reviews: 1},
	}
	Rank(rows)
	if rows[0].ID != 3 || rows[1].ID != 1 || rows[2].ID != 2 {
		t.Fatalf("ties reordered: %+v", rows)
	}
}

func TestApplyGender(t *testing.T) {
	rows := []Doctor{
		{ID: 1, Name: "Dr. Muhammad Aslam"},
		{ID: 2, Name: "Dr. Ayesha Khan"},
		{ID: 3, Name: "Assoc. Prof. Dr. Sana Malik"},
		{ID: 4, Name: "Nadia Rehman"},
	}

	got := applyGender(rows, "Female")
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("unexpected female filter result: %+v", got)
	}

	if got := applyGender(rows, "male"); len(got) != len(rows) {
		t.Fatalf("male preference should not filter, got %d rows", len(got))
	}
	if got := applyGender(rows, ""); len(got) != len(rows) {
		t.Fatalf("empty preference should not filter, got %d rows", len(got))
	}
}

func TestApplyGenderNeverEmpties(t *testing.T) {
	rows := []Doctor{
		{ID: 1, Name: "Dr. Ali Raza"},
		{ID: 2, Name: "Dr. Hassan Shah"},
	}
	got := applyGender(rows, GenderFemale)
	if len(got) != 2 {
		t.Fatalf("expected unfiltered fallback, got %+v", got)
	}
}
