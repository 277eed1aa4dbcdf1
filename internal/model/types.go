package model

import (
	"fmt"
	"strings"
)

// DateLayout is the calendar-date format stored in every table.
const DateLayout = "2006-01-02"

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists meal types in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

var legacyMealTypes = map[string]MealType{
	"desayuno": MealBreakfast,
	"almuerzo": MealLunch,
	"cena":     MealDinner,
	"snacks":   MealSnack,
}

// ParseMealType accepts the canonical names case-insensitively, plus the
// Spanish values stored by the mobile app.
func ParseMealType(value string) (MealType, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, m := range MealTypes {
		if v == string(m) {
			return m, nil
		}
	}
	if m, ok := legacyMealTypes[v]; ok {
		return m, nil
	}
	return "", fmt.Errorf("invalid meal type %q (use breakfast, lunch, dinner or snack)", value)
}

func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

type WeightEntry struct {
	ID     int64   `json:"id" yaml:"id"`
	Date   string  `json:"date" yaml:"date"`
	Weight float64 `json:"weight" yaml:"weight"`
	Notes  string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type FoodEntry struct {
	ID       int64    `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Calories int      `json:"calories" yaml:"calories"`
	Protein  float64  `json:"protein" yaml:"protein"`
	Carbs    float64  `json:"carbs" yaml:"carbs"`
	Fat      float64  `json:"fat" yaml:"fat"`
	Date     string   `json:"date" yaml:"date"`
	MealType MealType `json:"meal_type" yaml:"meal_type"`
	Quantity int      `json:"quantity" yaml:"quantity"`
}

// TotalCalories is the per-unit calories multiplied by quantity.
func (f FoodEntry) TotalCalories() int {
	return f.Calories * f.Quantity
}

func (f FoodEntry) TotalProtein() float64 {
	return f.Protein * float64(f.Quantity)
}

func (f FoodEntry) TotalCarbs() float64 {
	return f.Carbs * float64(f.Quantity)
}

func (f FoodEntry) TotalFat() float64 {
	return f.Fat * float64(f.Quantity)
}

type ExerciseEntry struct {
	ID             int64  `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Duration       int    `json:"duration" yaml:"duration"`
	CaloriesBurned int    `json:"calories_burned" yaml:"calories_burned"`
	Date           string `json:"date" yaml:"date"`
	Notes          string `json:"notes,omitempty" yaml:"notes,omitempty"`
}
