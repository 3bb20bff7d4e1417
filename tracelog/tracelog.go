// Package tracelog writes a human-readable transcript of a scheduled
// session and reads a subset of it back for replay.
package tracelog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/intonado/intonado/constants"
	"github.com/intonado/intonado/model"
	"github.com/intonado/intonado/note"
)

// Meta is the session header block.
type Meta struct {
	SessionID       string
	ScaleName       string
	TimeSignature   string
	BeatsPerMeasure int
}

// Write renders the plan as a numbered text transcript. Sequence
// entries get |M<n>| markers where cumulative beats cross measure
// boundaries, so the log can be eyeballed against the notation.
func Write(w io.Writer, plan []model.Scheduled, meta Meta) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Intonado Session Log")
	fmt.Fprintf(bw, "Session: %s\n", meta.SessionID)
	if meta.ScaleName != "" {
		fmt.Fprintf(bw, "Scale: %s\n", meta.ScaleName)
	}
	if meta.TimeSignature != "" {
		fmt.Fprintf(bw, "Time Signature: %s\n", meta.TimeSignature)
	}
	fmt.Fprintf(bw, "Generated: %d exercises (with repetitions)\n\n", len(plan))

	beats := meta.BeatsPerMeasure
	if beats <= 0 {
		beats = constants.DefaultBeatsPerMeasure
	}
	for i, sch := range plan {
		fmt.Fprintf(bw, "%04d: %s\n", i+1, formatExercise(sch.Exercise, beats))
	}
	return errors.Wrap(bw.Flush(), "cannot write session log")
}

func formatExercise(ex model.Exercise, beatsPerMeasure int) string {
	switch e := ex.(type) {
	case model.Interval:
		return fmt.Sprintf("INTERVAL  %s (%d) -> %s (%d)",
			note.MIDIToName(e.A), e.A, note.MIDIToName(e.B), e.B)
	case model.Triad:
		parts := make([]string, len(e.Notes))
		for i, n := range e.Notes {
			parts[i] = pitchToken(n, 1.0)
		}
		return "TRIAD     " + strings.Join(parts, " ")
	case model.Chord:
		parts := make([]string, len(e.Notes))
		for i, n := range e.Notes {
			parts[i] = pitchToken(n, 1.0)
		}
		return "CHORD     " + strings.Join(parts, " ")
	case model.Sequence:
		var parts []string
		var pos float64
		measure := 0
		for _, ev := range e.Events {
			if ev.Rest {
				parts = append(parts, fmt.Sprintf("z:%g", ev.Beats))
			} else {
				parts = append(parts, pitchToken(ev.Key, ev.Beats))
			}
			pos += ev.Beats
			for pos >= float64((measure+1)*beatsPerMeasure)-constants.MeasureEpsilon {
				measure++
				parts = append(parts, fmt.Sprintf("|M%d|", measure))
			}
		}
		return "SEQUENCE  " + strings.Join(parts, " ")
	case model.RhythmVocal:
		parts := make([]string, len(e.Durations))
		for i, d := range e.Durations {
			parts[i] = strconv.FormatFloat(d, 'g', -1, 64)
		}
		return fmt.Sprintf("RHYTHM    %s x%d [%s]",
			note.MIDIToName(e.Key), len(e.Durations), strings.Join(parts, " "))
	}
	return ""
}

// pitchToken renders "C4(60)" with a ":beats" suffix when the duration
// is not one beat.
func pitchToken(key uint8, beats float64) string {
	tok := fmt.Sprintf("%s(%d)", note.MIDIToName(key), key)
	if beats != 1.0 {
		tok += fmt.Sprintf(":%g", beats)
	}
	return tok
}

var (
	entryRe = regexp.MustCompile(`^(\d+):\s+(\w+)\s+(.*)$`)
	pitchRe = regexp.MustCompile(`\((\d+)\)(?::([\d.]+))?`)
	restRe  = regexp.MustCompile(`^z:([\d.]+)$`)
)

// Read reconstructs exercises from a transcript previously produced by
// Write. Interval, triad, chord and sequence entries round-trip;
// rhythm entries are skipped since they carry no replayable pitches
// beyond the base note.
func Read(r io.Reader) ([]model.Exercise, error) {
	var out []model.Exercise
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		m := entryRe.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil {
			continue
		}
		kind, body := m[2], m[3]
		ex, err := parseEntry(kind, body)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		if ex != nil {
			out = append(out, ex)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "cannot read session log")
	}
	return out, nil
}

func parseEntry(kind, body string) (model.Exercise, error) {
	switch kind {
	case "INTERVAL":
		keys, _ := pitches(body)
		if len(keys) != 2 {
			return nil, errors.Errorf("interval entry needs 2 notes, got %d", len(keys))
		}
		return model.Interval{A: keys[0], B: keys[1]}, nil
	case "TRIAD":
		keys, _ := pitches(body)
		if len(keys) != 3 {
			return nil, errors.Errorf("triad entry needs 3 notes, got %d", len(keys))
		}
		return model.Triad{Notes: [3]uint8{keys[0], keys[1], keys[2]}}, nil
	case "CHORD":
		keys, _ := pitches(body)
		if len(keys) == 0 {
			return nil, errors.New("chord entry has no notes")
		}
		return model.Chord{Notes: keys}, nil
	case "SEQUENCE":
		events, err := sequenceEvents(body)
		if err != nil {
			return nil, err
		}
		return model.Sequence{Events: events}, nil
	default:
		return nil, nil
	}
}

func pitches(body string) ([]uint8, []float64) {
	ms := pitchRe.FindAllStringSubmatch(body, -1)
	keys := make([]uint8, 0, len(ms))
	beats := make([]float64, 0, len(ms))
	for _, m := range ms {
		k, err := strconv.Atoi(m[1])
		if err != nil || k > 127 {
			continue
		}
		b := 1.0
		if m[2] != "" {
			if v, err := strconv.ParseFloat(m[2], 64); err == nil {
				b = v
			}
		}
		keys = append(keys, uint8(k))
		beats = append(beats, b)
	}
	return keys, beats
}

func sequenceEvents(body string) ([]model.Event, error) {
	var events []model.Event
	for _, tok := range strings.Fields(body) {
		if strings.HasPrefix(tok, "|M") {
			continue
		}
		if m := restRe.FindStringSubmatch(tok); m != nil {
			b, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return nil, errors.Errorf("bad rest token '%s'", tok)
			}
			events = append(events, model.RestEvent(b))
			continue
		}
		keys, beats := pitches(tok)
		if len(keys) != 1 {
			return nil, errors.Errorf("bad sequence token '%s'", tok)
		}
		events = append(events, model.PitchEvent(keys[0], beats[0]))
	}
	if len(events) == 0 {
		return nil, errors.New("sequence entry has no events")
	}
	return events, nil
}
