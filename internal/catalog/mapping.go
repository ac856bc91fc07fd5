package catalog

import (
	"fmt"
	"strings"

	"github.com/claude/gymbro/internal/models"
)

// bodyPartImages maps ExerciseDB body parts to category icon names. Lookup is
// case-insensitive with a default fallback.
var bodyPartImages = map[string]string{
	"chest":      "figure.strengthtraining.traditional",
	"back":       "figure.strengthtraining.traditional",
	"shoulders":  "figure.strengthtraining.traditional",
	"upper arms": "figure.strengthtraining.traditional",
	"lower arms": "figure.strengthtraining.traditional",
	"waist":      "figure.core.training",
	"upper legs": "figure.walk",
	"lower legs": "figure.walk",
	"neck":       "figure.strengthtraining.traditional",
	"cardio":     "heart.fill",
}

const defaultImage = "dumbbell.fill"

// ImageForBodyPart returns the icon name for a body part.
func ImageForBodyPart(bodyPart string) string {
	if img, ok := bodyPartImages[strings.ToLower(bodyPart)]; ok {
		return img
	}
	return defaultImage
}

// ToExercise maps an API record onto the domain Exercise type. The category
// is the body part normalized to title case; the description is generated
// from the target muscle and equipment.
func (r Record) ToExercise() models.Exercise {
	return models.Exercise{
		ID:          r.ID,
		Title:       r.Name,
		Category:    titleCase(r.BodyPart),
		Description: fmt.Sprintf("Targets %s using %s.", strings.ToLower(r.Target), strings.ToLower(r.Equipment)),
		ImageName:   ImageForBodyPart(r.BodyPart),
	}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ToExercises maps a batch of records.
func ToExercises(records []Record) []models.Exercise {
	out := make([]models.Exercise, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToExercise())
	}
	return out
}
