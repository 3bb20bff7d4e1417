package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intonado/intonado/model"
)

func TestNameToMIDI(t *testing.T) {
	cases := map[string]uint8{
		"C4":  60,
		"A4":  69,
		"A2":  45,
		"C#3": 49,
		"Db3": 49,
		"B3":  59,
		"G9":  127,
	}
	for name, want := range cases {
		got, err := NameToMIDI(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestNameToMIDIRejectsGarbage(t *testing.T) {
	for _, name := range []string{"", "H4", "C", "C#x", "C99"} {
		_, err := NameToMIDI(name)
		assert.Error(t, err, name)
	}
}

func TestMIDIToNameRoundTrip(t *testing.T) {
	assert.Equal(t, "C4", MIDIToName(60))
	assert.Equal(t, "A#2", MIDIToName(46))
	assert.Equal(t, "C-1", MIDIToName(0))

	for _, m := range []uint8{0, 21, 46, 60, 69, 127} {
		back, err := NameToMIDI(MIDIToName(m))
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}

func TestMIDIToFreq(t *testing.T) {
	assert.InDelta(t, 440.0, MIDIToFreq(69), 1e-9)
	assert.InDelta(t, 261.63, MIDIToFreq(60), 0.01)
	assert.InDelta(t, 880.0, MIDIToFreq(81), 1e-9)
}

func TestTransposeShiftsPitchesOnly(t *testing.T) {
	in := []model.Event{
		model.PitchEvent(60, 1.0),
		model.RestEvent(0.5),
		model.TieEvent(60, 2.0),
	}
	out := Transpose(in, -2)
	assert.Equal(t, uint8(58), out[0].Key)
	assert.True(t, out[1].Rest)
	assert.Equal(t, 0.5, out[1].Beats)
	assert.Equal(t, uint8(58), out[2].Key)
	assert.True(t, out[2].Tie)
	// input untouched
	assert.Equal(t, uint8(60), in[0].Key)
}

func TestTransposeClampsToMIDIRange(t *testing.T) {
	out := Transpose([]model.Event{model.PitchEvent(120, 1.0)}, 20)
	assert.Equal(t, uint8(127), out[0].Key)
	out = Transpose([]model.Event{model.PitchEvent(5, 1.0)}, -20)
	assert.Equal(t, uint8(0), out[0].Key)
}
