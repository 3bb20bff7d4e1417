package model

// Event is one parsed element of a notation line: either a pitch with
// a duration in beats, or a rest occupying the same. Tie marks the
// event as a sustained continuation of the previous onset rather than
// a new articulation.
type Event struct {
	Rest  bool
	Key   uint8
	Beats float64
	Tie   bool
}

func PitchEvent(key uint8, beats float64) Event {
	return Event{Key: key, Beats: beats}
}

func TieEvent(key uint8, beats float64) Event {
	return Event{Key: key, Beats: beats, Tie: true}
}

func RestEvent(beats float64) Event {
	return Event{Rest: true, Beats: beats}
}
