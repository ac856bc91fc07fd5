package catalog

import "testing"

// TestImageForBodyPart verifies the icon mapping, case-insensitivity, and
// the default fallback.
func TestImageForBodyPart(t *testing.T) {
	cases := []struct {
		bodyPart string
		want     string
	}{
		{"chest", "figure.strengthtraining.traditional"},
		{"Chest", "figure.strengthtraining.traditional"},
		{"UPPER ARMS", "figure.strengthtraining.traditional"},
		{"waist", "figure.core.training"},
		{"upper legs", "figure.walk"},
		{"lower legs", "figure.walk"},
		{"cardio", "heart.fill"},
		{"unknown part", "dumbbell.fill"},
		{"", "dumbbell.fill"},
	}
	for _, tc := range cases {
		if got := ImageForBodyPart(tc.bodyPart); got != tc.want {
			t.Errorf("ImageForBodyPart(%q) = %q, want %q", tc.bodyPart, got, tc.want)
		}
	}
}

// TestRecordToExercise verifies category title-casing and the generated
// description.
func TestRecordToExercise(t *testing.T) {
	r := Record{
		ID:        "0025",
		Name:      "barbell bench press",
		BodyPart:  "upper legs",
		Equipment: "Barbell",
		Target:    "Quads",
	}

	ex := r.ToExercise()
	if ex.ID != "0025" || ex.Title != "barbell bench press" {
		t.Errorf("identity fields = %q/%q", ex.ID, ex.Title)
	}
	if ex.Category != "Upper Legs" {
		t.Errorf("category = %q, want %q", ex.Category, "Upper Legs")
	}
	if ex.Description != "Targets quads using barbell." {
		t.Errorf("description = %q", ex.Description)
	}
	if ex.ImageName != "figure.walk" {
		t.Errorf("imageName = %q, want figure.walk", ex.ImageName)
	}
}

// TestToExercises verifies batch mapping preserves order.
func TestToExercises(t *testing.T) {
	records := []Record{
		{ID: "1", Name: "A", BodyPart: "chest", Equipment: "barbell", Target: "pecs"},
		{ID: "2", Name: "B", BodyPart: "back", Equipment: "cable", Target: "lats"},
	}
	out := ToExercises(records)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ID != "1" || out[1].ID != "2" {
		t.Errorf("order = %q, %q", out[0].ID, out[1].ID)
	}
}
