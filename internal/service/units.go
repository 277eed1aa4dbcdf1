package service

import (
	"fmt"
	"strings"
)

// kilograms per unit
var massUnits = map[string]float64{
	"kg":  1,
	"g":   0.001,
	"lb":  0.45359237,
	"lbs": 0.45359237,
	"st":  6.35029318,
}

func resolveMassUnit(unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		return 1, nil
	}
	factor, ok := massUnits[u]
	if !ok {
		return 0, invalidf("unsupported weight unit %q (use kg, lb or st)", unit)
	}
	return factor, nil
}

// ToKg converts a body weight reading to kilograms, the unit profiles stores.
func ToKg(value float64, unit string) (float64, error) {
	factor, err := resolveMassUnit(unit)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, invalidf("weight must be > 0")
	}
	return value * factor, nil
}

func FromKg(kg float64, unit string) (float64, error) {
	factor, err := resolveMassUnit(unit)
	if err != nil {
		return 0, err
	}
	return kg / factor, nil
}

// FormatWeight renders kg in unit with two decimals.
func FormatWeight(kg float64, unit string) (string, error) {
	v, err := FromKg(kg, unit)
	if err != nil {
		return "", err
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	return fmt.Sprintf("%.2f %s", v, u), nil
}
