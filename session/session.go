// Package session renders a scheduled exercise plan into a standard
// MIDI file.
package session

import (
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/intonado/intonado/constants"
	"github.com/intonado/intonado/model"
	"github.com/intonado/intonado/notation"
	"github.com/intonado/intonado/util"
)

// Params control tempo and spacing of the rendered session.
type Params struct {
	BPM                float64
	Velocity           uint8
	BeatsPerMeasure    int
	NoteDuration       float64 // seconds each plain exercise note sounds
	IntraGap           float64 // seconds between the notes of an interval
	PauseBetweenReps   float64 // seconds after each repetition
	PauseBetweenBlocks float64 // seconds between exercise blocks
}

func DefaultParams() Params {
	return Params{
		BPM:                constants.DefaultTempoBPM,
		Velocity:           constants.DefaultVelocity,
		BeatsPerMeasure:    constants.DefaultBeatsPerMeasure,
		NoteDuration:       1.8,
		IntraGap:           constants.IntraIntervalGap,
		PauseBetweenReps:   1.0,
		PauseBetweenBlocks: 4.0,
	}
}

type builder struct {
	track   smf.Track
	p       Params
	pending uint32
}

// ticks converts a duration to MIDI ticks at the session tempo.
func (b *builder) ticks(dur float64) uint32 {
	return uint32(dur * constants.TicksPerBeat * b.p.BPM / 60.0)
}

// add emits a message, folding any accumulated silence into its delta.
func (b *builder) add(delta uint32, msg midi.Message) {
	b.track.Add(b.pending+delta, msg)
	b.pending = 0
}

// pause accumulates silence to be carried by the next message. A zero
// pause emits nothing at all.
func (b *builder) pause(seconds float64) {
	b.pending += b.ticks(seconds)
}

func (b *builder) note(key uint8, durTicks uint32) {
	b.add(0, midi.NoteOn(0, key, b.p.Velocity))
	b.add(durTicks, midi.NoteOff(0, key))
}

func (b *builder) exercise(ex model.Exercise) {
	switch e := ex.(type) {
	case model.Interval:
		b.note(e.A, b.ticks(b.p.NoteDuration))
		b.pause(b.p.IntraGap)
		b.note(e.B, b.ticks(b.p.NoteDuration))
	case model.Triad:
		for _, key := range e.Notes {
			b.note(key, b.ticks(b.p.NoteDuration))
		}
	case model.Chord:
		if len(e.Notes) == 0 {
			return
		}
		for _, key := range e.Notes {
			b.add(0, midi.NoteOn(0, key, b.p.Velocity))
		}
		for i, key := range e.Notes {
			delta := uint32(0)
			if i == 0 {
				delta = b.ticks(b.p.NoteDuration)
			}
			b.add(delta, midi.NoteOff(0, key))
		}
	case model.Sequence:
		for _, ev := range notation.MergeTies(e.Events) {
			if ev.Rest {
				b.pending += b.ticks(ev.Beats)
				continue
			}
			b.note(ev.Key, b.ticks(ev.Beats))
		}
	case model.RhythmVocal:
		for _, d := range e.Durations {
			b.note(e.Key, b.ticks(d))
		}
	}
}

// Build renders the plan into a single-track SMF. Repetitions within a
// block are separated by the repetition pause, block transitions by
// the longer block pause.
func Build(plan []model.Scheduled, p Params, name string) *smf.SMF {
	var s smf.SMF
	s.TimeFormat = smf.MetricTicks(constants.TicksPerBeat)
	s.Tracks = append(s.Tracks, buildTrack(plan, p, name))
	return &s
}

func buildTrack(plan []model.Scheduled, p Params, name string) smf.Track {
	b := &builder{p: p}
	b.track.Add(0, smf.MetaTrackSequenceName(name))
	b.track.Add(0, smf.MetaTempo(p.BPM))
	if p.BeatsPerMeasure > 0 {
		b.track.Add(0, smf.MetaMeter(uint8(p.BeatsPerMeasure), 4))
	}
	for i, sch := range plan {
		b.exercise(sch.Exercise)
		if i < len(plan)-1 {
			if plan[i+1].Block != sch.Block {
				b.pause(p.PauseBetweenBlocks)
			} else {
				b.pause(p.PauseBetweenReps)
			}
		}
	}
	b.track.Close(b.pending)
	return b.track
}

// WriteFile renders the plan and writes it to path.
func WriteFile(path string, plan []model.Scheduled, p Params, name string) error {
	return Build(plan, p, name).WriteFile(path)
}

// Write renders the plan to a writer.
func Write(w io.Writer, plan []model.Scheduled, p Params, name string) error {
	_, err := Build(plan, p, name).WriteTo(w)
	return err
}

// EstimateSeconds approximates how long the rendered plan will play,
// pauses included.
func EstimateSeconds(plan []model.Scheduled, p Params) float64 {
	var total float64
	for i, sch := range plan {
		total += exerciseSeconds(sch.Exercise, p)
		if i < len(plan)-1 {
			if plan[i+1].Block != sch.Block {
				total += p.PauseBetweenBlocks
			} else {
				total += p.PauseBetweenReps
			}
		}
	}
	return total
}

func exerciseSeconds(ex model.Exercise, p Params) float64 {
	switch e := ex.(type) {
	case model.Interval:
		return 2*p.NoteDuration + p.IntraGap
	case model.Triad:
		return 3 * p.NoteDuration
	case model.Chord:
		return p.NoteDuration
	case model.Sequence:
		var beats float64
		for _, ev := range e.Events {
			beats += ev.Beats
		}
		return beats
	case model.RhythmVocal:
		return util.Sum(e.Durations)
	}
	return 0
}
