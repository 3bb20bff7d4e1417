package notation

import "github.com/intonado/intonado/model"

// MergeTies folds tie continuations into their onset so each sustained
// group becomes a single event carrying the summed duration. Rests end
// any open sustain and pass through. A continuation with no open
// sustain is degraded to a fresh onset rather than dropped.
func MergeTies(events []model.Event) []model.Event {
	out := make([]model.Event, 0, len(events))
	var open *model.Event
	flush := func() {
		if open != nil {
			out = append(out, *open)
			open = nil
		}
	}
	for _, ev := range events {
		switch {
		case ev.Rest:
			flush()
			out = append(out, ev)
		case ev.Tie && open != nil && open.Key == ev.Key:
			open.Beats += ev.Beats
		default:
			flush()
			ev.Tie = false
			cp := ev
			open = &cp
		}
	}
	flush()
	return out
}
