// Package schedule turns a list of exercises into the ordered,
// repeated playlist a practice session actually plays.
package schedule

import (
	"github.com/intonado/intonado/constants"
	"github.com/intonado/intonado/model"
	"github.com/intonado/intonado/util"
)

// Policy controls repetition and truncation. An explicit Repetitions
// count wins; otherwise repetitions are derived from the duration
// budget. MaxEntries caps the total scheduled entries when positive.
type Policy struct {
	Repetitions     int
	MaxEntries      int
	MaxDuration     float64
	TimePerExercise float64
	CombineToOne    bool
}

// Plan expands exercises into scheduled entries grouped in blocks: all
// repetitions of one exercise play back to back before the next
// exercise starts, in the original order. With CombineToOne set, the
// concatenation of all sequence exercises is appended as one extra
// block with the same repetition count. An empty exercise list yields
// an empty plan.
func Plan(exercises []model.Exercise, p Policy) []model.Scheduled {
	if len(exercises) == 0 {
		return nil
	}

	budget := 0
	if p.MaxDuration > 0 && p.TimePerExercise > 0 {
		budget = util.Max(1, int(p.MaxDuration/p.TimePerExercise))
	}
	reps := p.Repetitions
	if reps <= 0 {
		if budget > 0 {
			reps = util.Max(1, budget/len(exercises))
		} else {
			reps = constants.DefaultRepetitions
		}
	}
	capEntries := p.MaxEntries
	if capEntries <= 0 {
		capEntries = budget
	}

	var plan []model.Scheduled
	full := func() bool { return capEntries > 0 && len(plan) >= capEntries }
	block := 0
	for _, ex := range exercises {
		for r := 0; r < reps && !full(); r++ {
			plan = append(plan, model.Scheduled{Exercise: ex, Block: block})
		}
		if full() {
			break
		}
		block++
	}

	if p.CombineToOne {
		if combined := combineSequences(exercises); combined != nil {
			for r := 0; r < reps && !full(); r++ {
				plan = append(plan, model.Scheduled{Exercise: *combined, Block: block})
			}
		}
	}
	return plan
}

// combineSequences concatenates the events of every sequence exercise
// into a single long sequence, nil when there are none.
func combineSequences(exercises []model.Exercise) *model.Sequence {
	var events []model.Event
	found := false
	for _, ex := range exercises {
		if seq, ok := ex.(model.Sequence); ok {
			found = true
			events = append(events, seq.Events...)
		}
	}
	if !found {
		return nil
	}
	return &model.Sequence{Events: events}
}
