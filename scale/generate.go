package scale

import (
	"math/rand"

	"github.com/intonado/intonado/model"
)

// Triad qualities as stacked thirds in semitones.
var triadQualities = map[string][2]int{
	"major":      {4, 3},
	"minor":      {3, 4},
	"diminished": {3, 3},
}

// Intervals enumerates two-note exercises over a note pool. Ascending
// pairs, descending pairs or both, limited to a maximum span in
// semitones. Duplicate unordered pairs are kept only when both
// directions are requested.
func Intervals(pool []uint8, ascending, descending bool, maxInterval int) []model.Exercise {
	var out []model.Exercise
	for i, a := range pool {
		for _, b := range pool[i+1:] {
			span := int(b) - int(a)
			if span == 0 || (maxInterval > 0 && span > maxInterval) {
				continue
			}
			if ascending {
				out = append(out, model.Interval{A: a, B: b})
			}
			if descending {
				out = append(out, model.Interval{A: b, B: a})
			}
		}
	}
	return out
}

// Triads enumerates triads of the requested qualities rooted on each
// pool note, optionally adding first and second inversions. Triads
// with any note outside [low, high] are skipped.
func Triads(pool []uint8, qualities []string, includeInversions bool, low, high uint8) []model.Exercise {
	if len(qualities) == 0 {
		qualities = []string{"major", "minor"}
	}
	var out []model.Exercise
	for _, root := range pool {
		for _, q := range qualities {
			ivs, ok := triadQualities[q]
			if !ok {
				continue
			}
			r := int(root)
			base := [3]int{r, r + ivs[0], r + ivs[0] + ivs[1]}
			voicings := [][3]int{base}
			if includeInversions {
				voicings = append(voicings,
					[3]int{base[1], base[2], base[0] + 12},
					[3]int{base[2], base[0] + 12, base[1] + 12},
				)
			}
		voicing:
			for _, v := range voicings {
				var notes [3]uint8
				for i, n := range v {
					if n < int(low) || n > int(high) {
						continue voicing
					}
					notes[i] = uint8(n)
				}
				out = append(out, model.Triad{Notes: notes})
			}
		}
	}
	return out
}

// NoteChains builds short melodic random walks over the pool. Each
// chain starts on a random pool note and steps to a different pool
// note at most maxInterval semitones away.
func NoteChains(pool []uint8, numChains, maxLen, maxInterval int, rng *rand.Rand) []model.Exercise {
	if len(pool) == 0 || numChains <= 0 {
		return nil
	}
	if maxLen < 2 {
		maxLen = 2
	}
	out := make([]model.Exercise, 0, numChains)
	for c := 0; c < numChains; c++ {
		length := 2 + rng.Intn(maxLen-1)
		cur := pool[rng.Intn(len(pool))]
		events := []model.Event{model.PitchEvent(cur, 1.0)}
		for len(events) < length {
			var candidates []uint8
			for _, n := range pool {
				d := int(n) - int(cur)
				if d < 0 {
					d = -d
				}
				if n != cur && d <= maxInterval {
					candidates = append(candidates, n)
				}
			}
			if len(candidates) == 0 {
				break
			}
			cur = candidates[rng.Intn(len(candidates))]
			events = append(events, model.PitchEvent(cur, 1.0))
		}
		out = append(out, model.Sequence{Events: events})
	}
	return out
}

// StepTriads walks major-triad steps up the vocal range. Each step
// contributes a block chord on the degree and a sung 1-2-1 answer,
// repeated repetitionsPerStep times. Steps whose fifth would exceed
// the top of the range are dropped.
func StepTriads(lowest, highest uint8, repetitionsPerStep int) []model.Exercise {
	return stepTriads(lowest, highest, repetitionsPerStep, []int{0, 2, 0})
}

// StepTriads13531 is StepTriads with a sung 1-3-5-3-1 arpeggio answer.
func StepTriads13531(lowest, highest uint8, repetitionsPerStep int) []model.Exercise {
	return stepTriads(lowest, highest, repetitionsPerStep, []int{0, 4, 7, 4, 0})
}

func stepTriads(lowest, highest uint8, repetitionsPerStep int, answer []int) []model.Exercise {
	if repetitionsPerStep < 1 {
		repetitionsPerStep = 1
	}
	var out []model.Exercise
	for root := int(lowest); root+7 <= int(highest); root += 2 {
		chord := model.Chord{Notes: []uint8{uint8(root), uint8(root + 4), uint8(root + 7)}}
		events := make([]model.Event, len(answer))
		for i, off := range answer {
			events[i] = model.PitchEvent(uint8(root+off), 1.0)
		}
		seq := model.Sequence{Events: events}
		for r := 0; r < repetitionsPerStep; r++ {
			out = append(out, chord, seq)
		}
	}
	return out
}

var rhythmDurations = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0}

// RhythmVocal builds single-pitch rhythm patterns on a base note with
// random durations, for clapping or singing along.
func RhythmVocal(base uint8, numExercises, maxPatternLen int, rng *rand.Rand) []model.Exercise {
	if numExercises <= 0 {
		return nil
	}
	if maxPatternLen < 1 {
		maxPatternLen = 1
	}
	out := make([]model.Exercise, 0, numExercises)
	for i := 0; i < numExercises; i++ {
		length := 1 + rng.Intn(maxPatternLen)
		durs := make([]float64, length)
		for j := range durs {
			durs[j] = rhythmDurations[rng.Intn(len(rhythmDurations))]
		}
		out = append(out, model.RhythmVocal{Key: base, Durations: durs})
	}
	return out
}
