package service

import (
	"errors"
	"math"
	"testing"
)

func TestToKgConvertsPounds(t *testing.T) {
	t.Parallel()

	kg, err := ToKg(160, "LB")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if math.Abs(kg-72.5748) > 0.001 {
		t.Fatalf("expected ~72.575 kg, got %.4f", kg)
	}

	back, err := FromKg(kg, "lbs")
	if err != nil {
		t.Fatalf("convert back: %v", err)
	}
	if math.Abs(back-160) > 1e-9 {
		t.Fatalf("round trip drifted: %.6f", back)
	}
}

func TestToKgDefaultsToKilograms(t *testing.T) {
	t.Parallel()

	kg, err := ToKg(70, "")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if kg != 70 {
		t.Fatalf("expected 70, got %.2f", kg)
	}
}

func TestToKgRejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := ToKg(70, "furlong"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid unit error, got %v", err)
	}
	if _, err := ToKg(0, "kg"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected non-positive weight error, got %v", err)
	}
}

func TestFormatWeight(t *testing.T) {
	t.Parallel()

	got, err := FormatWeight(63.5029318, "st")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got != "10.00 st" {
		t.Fatalf("unexpected format %q", got)
	}
}
