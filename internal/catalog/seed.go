package catalog

import "strings"

// seedRecords back the offline mode used in development and tests.
var seedRecords = []Record{
	{ID: "1", Name: "Bench Press", BodyPart: "chest", Equipment: "barbell", Target: "pectorals"},
	{ID: "2", Name: "Squats", BodyPart: "upper legs", Equipment: "barbell", Target: "quads"},
	{ID: "3", Name: "Pull-ups", BodyPart: "back", Equipment: "body weight", Target: "lats"},
	{ID: "4", Name: "Deadlift", BodyPart: "back", Equipment: "barbell", Target: "spinal erectors"},
	{ID: "5", Name: "Overhead Press", BodyPart: "shoulders", Equipment: "barbell", Target: "delts"},
}

func seedBodyParts() []string {
	seen := make(map[string]struct{})
	var parts []string
	for _, r := range seedRecords {
		if _, ok := seen[r.BodyPart]; ok {
			continue
		}
		seen[r.BodyPart] = struct{}{}
		parts = append(parts, r.BodyPart)
	}
	return parts
}

func seedByBodyPart(bodyPart string) []Record {
	var out []Record
	for _, r := range seedRecords {
		if strings.EqualFold(r.BodyPart, bodyPart) {
			out = append(out, r)
		}
	}
	return out
}

func seedByName(query string) []Record {
	var out []Record
	for _, r := range seedRecords {
		if strings.Contains(strings.ToLower(r.Name), strings.ToLower(query)) {
			out = append(out, r)
		}
	}
	return out
}
