package trainer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intonado/intonado/config"
	"github.com/intonado/intonado/model"
	"github.com/intonado/intonado/note"
)

func testRng() *rand.Rand { return rand.New(rand.NewSource(1)) }

func TestFromConfigIntervalsOverRange(t *testing.T) {
	cfg, err := config.Parse([]byte(`
vocal_range:
  lowest: C3
  highest: C4
scale:
  root: C3
  kind: major
content:
  intervals:
    ascending: true
    max_interval: 4
`))
	require.NoError(t, err)
	res, err := FromConfig(cfg, testRng())
	require.NoError(t, err)
	require.NotEmpty(t, res.Exercises)
	low := note.MustNameToMIDI("C3")
	high := note.MustNameToMIDI("C4")
	for _, ex := range res.Exercises {
		iv, ok := ex.(model.Interval)
		require.True(t, ok)
		assert.GreaterOrEqual(t, iv.A, low)
		assert.LessOrEqual(t, iv.B, high)
		assert.LessOrEqual(t, int(iv.B)-int(iv.A), 4)
	}
}

func TestFromConfigSequencesParsedWithKeyAndTranspose(t *testing.T) {
	cfg, err := config.Parse([]byte(`
sequences:
  scale: Gmajor
  transpose: -2
  validate_time_signature: false
  notes:
    - "F4 G4"
`))
	require.NoError(t, err)
	res, err := FromConfig(cfg, testRng())
	require.NoError(t, err)
	require.Len(t, res.Exercises, 1)
	seq := res.Exercises[0].(model.Sequence)
	require.Len(t, seq.Events, 2)
	// F# from the key signature, then down a whole step
	assert.Equal(t, note.MustNameToMIDI("E4"), seq.Events[0].Key)
	assert.Equal(t, note.MustNameToMIDI("F4"), seq.Events[1].Key)
}

func TestFromConfigSkipsBadSequenceWithWarning(t *testing.T) {
	cfg, err := config.Parse([]byte(`
sequences:
  validate_time_signature: false
  notes:
    - "C4 X9 E4"
    - "C4 D4"
`))
	require.NoError(t, err)
	res, err := FromConfig(cfg, testRng())
	require.NoError(t, err)
	assert.Len(t, res.Exercises, 1)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "X9")
}

func TestFromConfigValidationWarnsOnShortMeasure(t *testing.T) {
	cfg, err := config.Parse([]byte(`
sequences:
  signature: 4/4
  notes:
    - "| C4 D4 E4 |"
`))
	require.NoError(t, err)
	res, err := FromConfig(cfg, testRng())
	require.NoError(t, err)
	assert.Len(t, res.Exercises, 1)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "expected 4")
}

func TestFromConfigRejectsEmptyVocalRange(t *testing.T) {
	cfg, err := config.Parse([]byte(`
vocal_range:
  lowest: C4
  highest: C4
`))
	require.NoError(t, err)
	_, err = FromConfig(cfg, testRng())
	assert.Error(t, err)
}

func TestPlanUsesConfigPolicy(t *testing.T) {
	cfg, err := config.Parse([]byte(`
repetitions_per_exercise: 2
sequences:
  validate_time_signature: false
  combine_sequences_to_one: true
  notes:
    - "C4 D4"
    - "E4 F4"
`))
	require.NoError(t, err)
	res, err := FromConfig(cfg, testRng())
	require.NoError(t, err)
	plan := Plan(cfg, res.Exercises)
	// two sequences twice each plus the combined block twice
	require.Len(t, plan, 6)
	combined := plan[4].Exercise.(model.Sequence)
	assert.Len(t, combined.Events, 4)
}

func TestParamsFromConfig(t *testing.T) {
	cfg, err := config.Parse([]byte(`
timing:
  bpm: 90
  note_duration: 2.5
sound:
  velocity: 70
sequences:
  signature: 3/4
`))
	require.NoError(t, err)
	p := Params(cfg)
	assert.Equal(t, 90.0, p.BPM)
	assert.Equal(t, 2.5, p.NoteDuration)
	assert.Equal(t, uint8(70), p.Velocity)
	assert.Equal(t, 3, p.BeatsPerMeasure)
}

func TestRngIsSeededFromConfig(t *testing.T) {
	seed := int64(42)
	cfg := &config.Config{RandomSeed: &seed}
	a, b := Rng(cfg), Rng(cfg)
	assert.Equal(t, a.Int63(), b.Int63())
}
