package casekey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_Deterministic(t *testing.T) {
	a := Compute("I25.10", "33533", "day-7", "cardiology")
	b := Compute("I25.10", "33533", "day-7", "cardiology")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestCompute_CaseInsensitive(t *testing.T) {
	lower := Compute("i25.10", "33533", "day-7", "cardiology")
	upper := Compute("I25.10", "33533", "DAY-7", "Cardiology")

	assert.Equal(t, lower, upper)
}

func TestCompute_FieldSensitivity(t *testing.T) {
	base := Compute("I25.10", "33533", "day-7", "cardiology")

	tests := []struct {
		name string
		key  string
	}{
		{"diagnosis changed", Compute("E11.9", "33533", "day-7", "cardiology")},
		{"procedure changed", Compute("I25.10", "27447", "day-7", "cardiology")},
		{"milestone changed", Compute("I25.10", "33533", "day-14", "cardiology")},
		{"specialty changed", Compute("I25.10", "33533", "day-7", "orthopedics")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, tt.key)
		})
	}
}

func TestCompute_SentinelsForMissingFields(t *testing.T) {
	empty := Compute("", "", "", "")
	whitespace := Compute("  ", "\t", "", " ")

	// Missing fields normalize to fixed sentinels, so both tuples collapse
	// onto the same key.
	assert.Equal(t, empty, whitespace)
	assert.NotEqual(t, empty, Compute("I25.10", "", "", ""))
}
