package domain

import "time"

// Collection keys for each event type.
const (
	GlucoseKey    = "glucolog:glucose"
	FoodKey       = "glucolog:food"
	MedicationKey = "glucolog:medications"
)

// GlucoseEntry is a single blood-glucose reading.
type GlucoseEntry struct {
	GlucoseMgDL float64   `json:"glucose_mg_dl"`
	Timestamp   time.Time `json:"timestamp"`
	Context     []string  `json:"context"`
}

// Stamp sets the write-time timestamp. Caller-supplied values are overwritten.
func (e *GlucoseEntry) Stamp(t time.Time) {
	e.Timestamp = t
}

// MealType tags a food log entry.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Valid reports whether m is one of the known meal types.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Nutrition holds the macro facts of a logged meal, in grams and kcal.
type Nutrition struct {
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Calories *float64 `json:"calories,omitempty"`
}

// FoodLogEntry is a logged meal. RecipeID optionally refers to an external
// recipe catalog.
type FoodLogEntry struct {
	ID         string    `json:"id"`
	RecipeID   string    `json:"recipeId,omitempty"`
	RecipeName string    `json:"recipeName"`
	Timestamp  time.Time `json:"timestamp"`
	MealType   MealType  `json:"mealType"`
	Nutrition  Nutrition `json:"nutrition"`
	ImageURL   string    `json:"imageUrl,omitempty"`
}

// Stamp fills in the timestamp only when the caller did not supply one.
func (e *FoodLogEntry) Stamp(t time.Time) {
	if e.Timestamp.IsZero() {
		e.Timestamp = t
	}
}

// MedicationRow is a medication administration record.
type MedicationRow struct {
	ID             string          `json:"id"`
	MedicationName string          `json:"medication_name"`
	MedClass       MedicationClass `json:"med_class,omitempty"`
	Dosage         string          `json:"dosage"`
	RecordedAt     time.Time       `json:"recorded_at"`
}

// Stamp sets the write-time timestamp.
func (r *MedicationRow) Stamp(t time.Time) {
	r.RecordedAt = t
}
