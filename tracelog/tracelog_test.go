package tracelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intonado/intonado/model"
	"github.com/intonado/intonado/notation"
)

func writePlan(t *testing.T, plan []model.Scheduled, meta Meta) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, plan, meta))
	return buf.String()
}

func TestWriteHeaderAndNumbering(t *testing.T) {
	plan := []model.Scheduled{
		{Exercise: model.Interval{A: 49, B: 46}},
		{Exercise: model.Triad{Notes: [3]uint8{57, 61, 64}}},
	}
	out := writePlan(t, plan, Meta{SessionID: "abc-123", ScaleName: "C major", TimeSignature: "4/4"})

	assert.Contains(t, out, "Session: abc-123")
	assert.Contains(t, out, "Scale: C major")
	assert.Contains(t, out, "Time Signature: 4/4")
	assert.Contains(t, out, "Generated: 2 exercises")
	assert.Contains(t, out, "0001: INTERVAL  C#3 (49) -> A#2 (46)")
	assert.Contains(t, out, "0002: TRIAD     A3(57) C#4(61) E4(64)")
}

func TestWriteSequenceMeasureMarkers(t *testing.T) {
	events, err := notation.ParseSequence("C4 D4 E4 F4 G4 A4", notation.Options{})
	require.NoError(t, err)
	plan := []model.Scheduled{{Exercise: model.Sequence{Events: events}}}

	out := writePlan(t, plan, Meta{SessionID: "x", BeatsPerMeasure: 3})
	line := out[strings.Index(out, "0001"):]
	assert.Contains(t, line, "E4(64) |M1|")
	assert.Contains(t, line, "A4(69) |M2|")
}

func TestRoundTripIntervalTriadChord(t *testing.T) {
	plan := []model.Scheduled{
		{Exercise: model.Interval{A: 49, B: 46}},
		{Exercise: model.Triad{Notes: [3]uint8{57, 61, 64}}},
		{Exercise: model.Chord{Notes: []uint8{60, 64, 67, 72}}},
	}
	out := writePlan(t, plan, Meta{SessionID: "rt"})

	back, err := Read(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, back, 3)
	assert.Equal(t, plan[0].Exercise, back[0])
	assert.Equal(t, plan[1].Exercise, back[1])
	assert.Equal(t, plan[2].Exercise, back[2])
}

func TestRoundTripSequenceKeepsDurationsAndRests(t *testing.T) {
	events, err := notation.ParseSequence("C42 z/2 D4/2 E4", notation.Options{})
	require.NoError(t, err)
	plan := []model.Scheduled{{Exercise: model.Sequence{Events: events}}}
	out := writePlan(t, plan, Meta{SessionID: "rt"})

	back, err := Read(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, back, 1)
	seq := back[0].(model.Sequence)
	require.Len(t, seq.Events, 4)
	assert.Equal(t, 2.0, seq.Events[0].Beats)
	assert.True(t, seq.Events[1].Rest)
	assert.Equal(t, 0.5, seq.Events[1].Beats)
	assert.Equal(t, 0.5, seq.Events[2].Beats)
	assert.Equal(t, uint8(64), seq.Events[3].Key)
}

func TestReadSkipsRhythmAndJunkLines(t *testing.T) {
	out := strings.Join([]string{
		"Intonado Session Log",
		"Session: z",
		"",
		"0001: RHYTHM    C4 x2 [1 0.5]",
		"0002: INTERVAL  C4 (60) -> E4 (64)",
		"some stray line",
	}, "\n")
	back, err := Read(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, model.Interval{A: 60, B: 64}, back[0])
}

func TestReadRejectsMalformedEntries(t *testing.T) {
	_, err := Read(strings.NewReader("0001: INTERVAL  C4 (60)"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}
