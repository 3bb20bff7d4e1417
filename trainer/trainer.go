// Package trainer assembles the exercise list a config describes:
// generated interval, triad and rhythm material over the singer's
// range plus hand-written notation sequences.
package trainer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/intonado/intonado/config"
	"github.com/intonado/intonado/model"
	"github.com/intonado/intonado/notation"
	"github.com/intonado/intonado/note"
	"github.com/intonado/intonado/scale"
	"github.com/intonado/intonado/schedule"
	"github.com/intonado/intonado/session"
)

// Result is the assembled material plus anything worth telling the
// user about (skipped lines, measure violations).
type Result struct {
	Exercises []model.Exercise
	Warnings  []string
}

// Rng builds the session's random source, seeded from config for
// reproducible sessions.
func Rng(cfg *config.Config) *rand.Rand {
	seed := time.Now().UnixNano()
	if cfg.RandomSeed != nil {
		seed = *cfg.RandomSeed
	}
	return rand.New(rand.NewSource(seed))
}

// FromConfig builds the full exercise list in config order: generated
// content first, then notation sequences. Sequence lines that fail to
// parse are skipped with a warning rather than aborting the session.
func FromConfig(cfg *config.Config, rng *rand.Rand) (*Result, error) {
	res := &Result{}

	low, err := note.NameToMIDI(cfg.VocalRange.Lowest)
	if err != nil {
		return nil, errors.Wrap(err, "vocal_range.lowest")
	}
	high, err := note.NameToMIDI(cfg.VocalRange.Highest)
	if err != nil {
		return nil, errors.Wrap(err, "vocal_range.highest")
	}
	if low >= high {
		return nil, errors.Errorf("vocal range %s..%s is empty",
			cfg.VocalRange.Lowest, cfg.VocalRange.Highest)
	}

	if err := res.addGenerated(cfg, low, high, rng); err != nil {
		return nil, err
	}
	if err := res.addSequences(cfg.Sequences); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Result) addGenerated(cfg *config.Config, low, high uint8, rng *rand.Rand) error {
	content := cfg.Content
	needsPool := content.Intervals != nil || content.Triads != nil || content.NoteChains != nil
	var pool []uint8
	if needsPool {
		root, err := note.NameToMIDI(cfg.Scale.Root)
		if err != nil {
			return errors.Wrap(err, "scale.root")
		}
		pool, err = scale.ExpandOverRange(root, cfg.Scale.Kind, low, high)
		if err != nil {
			return err
		}
	}

	if iv := content.Intervals; iv != nil {
		r.Exercises = append(r.Exercises,
			scale.Intervals(pool, iv.Ascending, iv.Descending, iv.MaxInterval)...)
	}
	if tr := content.Triads; tr != nil {
		r.Exercises = append(r.Exercises,
			scale.Triads(pool, tr.Qualities, tr.IncludeInversions, low, high)...)
	}
	if nc := content.NoteChains; nc != nil {
		r.Exercises = append(r.Exercises,
			scale.NoteChains(pool, nc.Num, nc.MaxLength, nc.MaxInterval, rng)...)
	}
	if st := content.StepTriads; st != nil {
		if st.Style == "1-3-5-3-1" {
			r.Exercises = append(r.Exercises, scale.StepTriads13531(low, high, st.RepetitionsPerStep)...)
		} else {
			r.Exercises = append(r.Exercises, scale.StepTriads(low, high, st.RepetitionsPerStep)...)
		}
	}
	if rv := content.RhythmVocal; rv != nil {
		base := low
		if rv.BaseNote != "" {
			var err error
			base, err = note.NameToMIDI(rv.BaseNote)
			if err != nil {
				return errors.Wrap(err, "rhythm_vocal.base_note")
			}
		}
		r.Exercises = append(r.Exercises,
			scale.RhythmVocal(base, rv.Num, rv.MaxPatternLength, rng)...)
	}
	return nil
}

func (r *Result) addSequences(seqs *config.Sequences) error {
	if seqs == nil || len(seqs.Notes) == 0 {
		return nil
	}
	unit, err := seqs.Unit()
	if err != nil {
		return err
	}
	beats, err := seqs.BeatsPerMeasure()
	if err != nil {
		return err
	}
	var key *notation.Key
	if seqs.Scale != "" {
		key, err = notation.ParseKey(seqs.Scale)
		if err != nil {
			return err
		}
	}
	// validation defaults on only when a signature was declared
	validate := seqs.Signature != ""
	if seqs.ValidateTimeSignature != nil {
		validate = *seqs.ValidateTimeSignature
	}
	opts := notation.Options{UnitLength: unit, Key: key}

	var combined []notation.Element
	for i, line := range seqs.Notes {
		label := Label(i, line)
		elems, err := notation.ParseElements(line, opts)
		if err != nil {
			r.Warnings = append(r.Warnings,
				errors.Wrapf(err, "skipping sequence '%s'", label).Error())
			continue
		}
		if validate {
			if seqs.CombineToOne {
				combined = append(combined, elems...)
			} else {
				report := notation.ValidateSignature(elems, beats, label)
				for _, v := range report.Violations {
					r.Warnings = append(r.Warnings, v.String())
				}
			}
		}
		events := make([]model.Event, 0, len(elems))
		for _, el := range elems {
			if !el.MeasureStart && !el.MeasureEnd {
				events = append(events, el.Event)
			}
		}
		if seqs.Transpose != 0 {
			events = note.Transpose(events, seqs.Transpose)
		}
		r.Exercises = append(r.Exercises, model.Sequence{Events: events})
	}
	if validate && seqs.CombineToOne && len(combined) > 0 {
		report := notation.ValidateSignature(combined, beats, "combined sequences")
		for _, v := range report.Violations {
			r.Warnings = append(r.Warnings, v.String())
		}
	}
	return nil
}

// Label names a sequence line in messages: its index plus a short
// prefix of the notation.
func Label(i int, line string) string {
	const max = 24
	if len(line) > max {
		line = line[:max] + "..."
	}
	return fmt.Sprintf("#%d %s", i+1, line)
}

// Plan schedules the assembled exercises per the config's repetition
// and duration policy.
func Plan(cfg *config.Config, exercises []model.Exercise) []model.Scheduled {
	combine := cfg.Sequences != nil && cfg.Sequences.CombineToOne
	return schedule.Plan(exercises, schedule.Policy{
		Repetitions:     cfg.RepetitionsPerExercise,
		MaxEntries:      cfg.ExercisesCount,
		MaxDuration:     cfg.MaxDuration,
		TimePerExercise: cfg.Timing.NoteDuration + cfg.Timing.PauseBetweenReps,
		CombineToOne:    combine,
	})
}

// Params derives the MIDI rendering parameters from config.
func Params(cfg *config.Config) session.Params {
	p := session.DefaultParams()
	p.BPM = cfg.Timing.BPM
	p.Velocity = cfg.Sound.Velocity
	p.NoteDuration = cfg.Timing.NoteDuration
	p.PauseBetweenReps = cfg.Timing.PauseBetweenReps
	p.PauseBetweenBlocks = cfg.Timing.PauseBetweenBlocks
	if cfg.Sequences != nil {
		if n, err := cfg.Sequences.BeatsPerMeasure(); err == nil {
			p.BeatsPerMeasure = n
		}
	}
	return p
}
