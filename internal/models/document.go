package models

import (
	"fmt"
	"time"
)

// Document is the flat field-map form that sessions and templates take in the
// document store. Optional fields (endTime, totalDuration, weight,
// targetRepRange) are omitted when absent. Decoding tolerates missing
// optionals and defaults isFailure to false, but fails on missing required
// fields so batch loads can drop the malformed record and keep the rest.
type Document = map[string]any

// ToDocument serializes the session to its stored field-map form.
func (s WorkoutSession) ToDocument() Document {
	exercises := make([]any, 0, len(s.Exercises))
	for _, ex := range s.Exercises {
		exercises = append(exercises, ex.ToDocument())
	}

	doc := Document{
		"id":        s.ID,
		"userId":    s.UserID,
		"startTime": s.StartTime.Format(time.RFC3339Nano),
		"isActive":  s.IsActive,
		"exercises": exercises,
	}
	if s.EndTime != nil {
		doc["endTime"] = s.EndTime.Format(time.RFC3339Nano)
	}
	if s.TotalDuration != nil {
		doc["totalDuration"] = *s.TotalDuration
	}
	return doc
}

// SessionFromDocument decodes a stored session document. Malformed exercise
// entries are dropped; missing required top-level fields are an error.
func SessionFromDocument(doc Document) (WorkoutSession, error) {
	var s WorkoutSession
	var err error

	if s.ID, err = docString(doc, "id"); err != nil {
		return WorkoutSession{}, err
	}
	if s.UserID, err = docString(doc, "userId"); err != nil {
		return WorkoutSession{}, err
	}
	if s.StartTime, err = docTime(doc, "startTime"); err != nil {
		return WorkoutSession{}, err
	}
	isActive, ok := doc["isActive"].(bool)
	if !ok {
		return WorkoutSession{}, fmt.Errorf("session document: missing field %q", "isActive")
	}
	s.IsActive = isActive

	rawExercises, ok := doc["exercises"].([]any)
	if !ok {
		return WorkoutSession{}, fmt.Errorf("session document: missing field %q", "exercises")
	}
	s.Exercises = make([]WorkoutExercise, 0, len(rawExercises))
	for _, raw := range rawExercises {
		exDoc, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		ex, err := workoutExerciseFromDocument(exDoc)
		if err != nil {
			continue
		}
		s.Exercises = append(s.Exercises, ex)
	}

	if t, err := docTime(doc, "endTime"); err == nil {
		s.EndTime = &t
	}
	if d, ok := docFloat(doc["totalDuration"]); ok {
		s.TotalDuration = &d
	}
	return s, nil
}

// ToDocument serializes the workout exercise to its stored field-map form.
func (e WorkoutExercise) ToDocument() Document {
	sets := make([]any, 0, len(e.Sets))
	for _, set := range e.Sets {
		sets = append(sets, set.ToDocument())
	}
	return Document{
		"id":         e.ID,
		"exerciseId": e.ExerciseID,
		"name":       e.Name,
		"category":   e.Category,
		"imageName":  e.ImageName,
		"sets":       sets,
	}
}

func workoutExerciseFromDocument(doc Document) (WorkoutExercise, error) {
	var e WorkoutExercise
	var err error

	if e.ID, err = docString(doc, "id"); err != nil {
		return WorkoutExercise{}, err
	}
	if e.ExerciseID, err = docString(doc, "exerciseId"); err != nil {
		return WorkoutExercise{}, err
	}
	if e.Name, err = docString(doc, "name"); err != nil {
		return WorkoutExercise{}, err
	}
	if e.Category, err = docString(doc, "category"); err != nil {
		return WorkoutExercise{}, err
	}
	if e.ImageName, err = docString(doc, "imageName"); err != nil {
		return WorkoutExercise{}, err
	}

	rawSets, ok := doc["sets"].([]any)
	if !ok {
		return WorkoutExercise{}, fmt.Errorf("exercise document: missing field %q", "sets")
	}
	e.Sets = make([]ExerciseSet, 0, len(rawSets))
	for _, raw := range rawSets {
		setDoc, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		set, err := exerciseSetFromDocument(setDoc)
		if err != nil {
			continue
		}
		e.Sets = append(e.Sets, set)
	}
	return e, nil
}

// ToDocument serializes the set to its stored field-map form.
func (s ExerciseSet) ToDocument() Document {
	doc := Document{
		"id":        s.ID,
		"reps":      s.Reps,
		"isFailure": s.IsFailure,
		"timestamp": s.Timestamp.Format(time.RFC3339Nano),
	}
	if s.Weight != nil {
		doc["weight"] = *s.Weight
	}
	if s.TargetRepRange != nil {
		doc["targetRepRange"] = Document{
			"min": s.TargetRepRange.Min,
			"max": s.TargetRepRange.Max,
		}
	}
	return doc
}

func exerciseSetFromDocument(doc Document) (ExerciseSet, error) {
	var s ExerciseSet
	var err error

	if s.ID, err = docString(doc, "id"); err != nil {
		return ExerciseSet{}, err
	}
	reps, ok := docInt(doc["reps"])
	if !ok {
		return ExerciseSet{}, fmt.Errorf("set document: missing field %q", "reps")
	}
	s.Reps = reps
	if s.Timestamp, err = docTime(doc, "timestamp"); err != nil {
		return ExerciseSet{}, err
	}

	// isFailure defaults to false when absent.
	if v, ok := doc["isFailure"].(bool); ok {
		s.IsFailure = v
	}
	if w, ok := docFloat(doc["weight"]); ok {
		s.Weight = &w
	}
	if rangeDoc, ok := doc["targetRepRange"].(map[string]any); ok {
		minVal, okMin := docInt(rangeDoc["min"])
		maxVal, okMax := docInt(rangeDoc["max"])
		if okMin && okMax {
			s.TargetRepRange = &RepRange{Min: minVal, Max: maxVal}
		}
	}
	return s, nil
}

// ToDocument serializes the template to its stored field-map form.
func (t WorkoutTemplate) ToDocument() Document {
	exercises := make([]any, 0, len(t.Exercises))
	for _, ex := range t.Exercises {
		exercises = append(exercises, ex.ToDocument())
	}
	return Document{
		"id":          t.ID,
		"name":        t.Name,
		"description": t.Description,
		"exercises":   exercises,
		"isFavorite":  t.IsFavorite,
		"createdAt":   t.CreatedAt.Format(time.RFC3339Nano),
	}
}

// TemplateFromDocument decodes a stored template document.
func TemplateFromDocument(doc Document) (WorkoutTemplate, error) {
	var t WorkoutTemplate
	var err error

	if t.ID, err = docString(doc, "id"); err != nil {
		return WorkoutTemplate{}, err
	}
	if t.Name, err = docString(doc, "name"); err != nil {
		return WorkoutTemplate{}, err
	}
	if t.Description, err = docString(doc, "description"); err != nil {
		return WorkoutTemplate{}, err
	}
	if t.CreatedAt, err = docTime(doc, "createdAt"); err != nil {
		return WorkoutTemplate{}, err
	}
	if v, ok := doc["isFavorite"].(bool); ok {
		t.IsFavorite = v
	}

	rawExercises, ok := doc["exercises"].([]any)
	if !ok {
		return WorkoutTemplate{}, fmt.Errorf("template document: missing field %q", "exercises")
	}
	t.Exercises = make([]TemplateExercise, 0, len(rawExercises))
	for _, raw := range rawExercises {
		exDoc, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		ex, err := templateExerciseFromDocument(exDoc)
		if err != nil {
			continue
		}
		t.Exercises = append(t.Exercises, ex)
	}
	return t, nil
}

// ToDocument serializes the template exercise to its stored field-map form.
func (e TemplateExercise) ToDocument() Document {
	return Document{
		"id":         e.ID,
		"exerciseId": e.ExerciseID,
		"name":       e.Name,
		"category":   e.Category,
		"imageName":  e.ImageName,
		"targetSets": e.TargetSets,
		"targetRepRange": Document{
			"min": e.TargetRepRange.Min,
			"max": e.TargetRepRange.Max,
		},
	}
}

func templateExerciseFromDocument(doc Document) (TemplateExercise, error) {
	var e TemplateExercise
	var err error

	if e.ID, err = docString(doc, "id"); err != nil {
		return TemplateExercise{}, err
	}
	if e.ExerciseID, err = docString(doc, "exerciseId"); err != nil {
		return TemplateExercise{}, err
	}
	if e.Name, err = docString(doc, "name"); err != nil {
		return TemplateExercise{}, err
	}
	if e.Category, err = docString(doc, "category"); err != nil {
		return TemplateExercise{}, err
	}
	if e.ImageName, err = docString(doc, "imageName"); err != nil {
		return TemplateExercise{}, err
	}
	targetSets, ok := docInt(doc["targetSets"])
	if !ok {
		return TemplateExercise{}, fmt.Errorf("template exercise document: missing field %q", "targetSets")
	}
	e.TargetSets = targetSets

	rangeDoc, ok := doc["targetRepRange"].(map[string]any)
	if !ok {
		return TemplateExercise{}, fmt.Errorf("template exercise document: missing field %q", "targetRepRange")
	}
	minVal, okMin := docInt(rangeDoc["min"])
	maxVal, okMax := docInt(rangeDoc["max"])
	if !okMin || !okMax {
		return TemplateExercise{}, fmt.Errorf("template exercise document: malformed targetRepRange")
	}
	e.TargetRepRange = RepRange{Min: minVal, Max: maxVal}
	return e, nil
}

// --- field helpers ---
//
// Values arrive either as native Go types (in-process round trips) or as the
// types encoding/json produces when a JSONB column is decoded (string dates,
// float64 numbers). Helpers accept both.

func docString(doc Document, key string) (string, error) {
	v, ok := doc[key].(string)
	if !ok {
		return "", fmt.Errorf("document: missing field %q", key)
	}
	return v, nil
}

func docTime(doc Document, key string) (time.Time, error) {
	switch v := doc[key].(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("document: field %q: %w", key, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("document: missing field %q", key)
	}
}

func docInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func docFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
