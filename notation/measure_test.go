package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elementsOf(t *testing.T, line string, opts Options) []Element {
	t.Helper()
	elems, err := ParseElements(line, opts)
	require.NoError(t, err)
	return elems
}

func TestValidateCompleteMeasuresPass(t *testing.T) {
	elems := elementsOf(t, "| C4 D4 E4 F4 | G4 A4 B4 C5 |", Options{})
	r := ValidateSignature(elems, 4, "scale run")
	assert.Len(t, r.Measures, 2)
	assert.Empty(t, r.Violations)
	assert.False(t, r.PartialStart)
	assert.False(t, r.PartialEnd)
}

func TestValidateReportsShortMeasure(t *testing.T) {
	elems := elementsOf(t, "| C4 D4 E4 |", Options{})
	r := ValidateSignature(elems, 4, "short")
	require.Len(t, r.Violations, 1)
	v := r.Violations[0]
	assert.Equal(t, 1, v.MeasureNum)
	assert.Equal(t, 3.0, v.Found)
	assert.Equal(t, 4, v.Expected)
	assert.Contains(t, v.String(), "3")
	assert.Contains(t, v.String(), "4")
	assert.Contains(t, v.String(), "short")
}

func TestValidateUnbarredLineIsOneCheckedMeasure(t *testing.T) {
	r := ValidateSignature(elementsOf(t, "C4 D4 E4 F4", Options{}), 4, "plain")
	assert.Empty(t, r.Violations)

	r = ValidateSignature(elementsOf(t, "C4 D4 E4", Options{}), 4, "plain")
	require.Len(t, r.Violations, 1)
	assert.Equal(t, 3.0, r.Violations[0].Found)
	assert.Equal(t, 4, r.Violations[0].Expected)
}

func TestValidatePartialStartIsExempt(t *testing.T) {
	elems := elementsOf(t, "C4 D4 | E4 F4 G4 A4 |", Options{})
	r := ValidateSignature(elems, 4, "anacrusis")
	assert.Empty(t, r.Violations)
	assert.True(t, r.PartialStart)
	assert.False(t, r.PartialEnd)
}

func TestValidatePickupClosedByTrailingBarIsExempt(t *testing.T) {
	elems := elementsOf(t, "C4 D4 |", Options{})
	r := ValidateSignature(elems, 4, "pickup")
	assert.Empty(t, r.Violations)
	assert.True(t, r.PartialStart)
	require.Len(t, r.Measures, 1)
	assert.True(t, r.Measures[0].PartialStart)
}

func TestValidatePartialEndIsExempt(t *testing.T) {
	elems := elementsOf(t, "| C4 D4 E4 F4 | G4 A4", Options{})
	r := ValidateSignature(elems, 4, "tail")
	assert.Empty(t, r.Violations)
	assert.False(t, r.PartialStart)
	assert.True(t, r.PartialEnd)
}

func TestValidateInlineOverrideAppliesToOneMeasure(t *testing.T) {
	elems := elementsOf(t, "| C4 D4 E4 F4 |3 G4 A4 B4 | C5 D5 E5 F5 |", Options{})
	r := ValidateSignature(elems, 4, "mixed meter")
	assert.Empty(t, r.Violations)
	require.Len(t, r.Measures, 3)
	assert.Equal(t, 4, r.Measures[0].DeclaredBeats)
	assert.Equal(t, 3, r.Measures[1].DeclaredBeats)
	assert.Equal(t, 4, r.Measures[2].DeclaredBeats)
}

func TestValidateOverriddenMeasureStillChecked(t *testing.T) {
	elems := elementsOf(t, "| C4 D4 E4 F4 |3 G4 A4 |", Options{})
	r := ValidateSignature(elems, 4, "mixed meter")
	require.Len(t, r.Violations, 1)
	assert.Equal(t, 2, r.Violations[0].MeasureNum)
	assert.Equal(t, 2.0, r.Violations[0].Found)
	assert.Equal(t, 3, r.Violations[0].Expected)
}

func TestValidateFractionalDurationsWithinEpsilon(t *testing.T) {
	// thirds do not sum to an exact beat in floating point
	elems := elementsOf(t, "| C4/3 C4/3 C4/3 D4 E4 F4 |", Options{})
	r := ValidateSignature(elems, 4, "triplets")
	assert.Empty(t, r.Violations)
}

func TestValidateRestsAndTiesCountTowardBeats(t *testing.T) {
	elems := elementsOf(t, "| C4 z C4- C4 |", Options{})
	r := ValidateSignature(elems, 4, "sustained")
	assert.Empty(t, r.Violations)

	elems = elementsOf(t, "| C42 z2 |", Options{})
	r = ValidateSignature(elems, 4, "held")
	assert.Empty(t, r.Violations)
}

func TestValidateConcatenatedStreams(t *testing.T) {
	first := elementsOf(t, "| C4 D4 E4 F4 |", Options{})
	second := elementsOf(t, "| G4 A4 B4 |", Options{})
	combined := append(append([]Element{}, first...), second...)
	r := ValidateSignature(combined, 4, "combined")
	require.Len(t, r.Violations, 1)
	assert.Equal(t, 2, r.Violations[0].MeasureNum)
}
