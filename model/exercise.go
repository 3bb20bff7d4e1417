package model

// Exercise is a closed variant: the concrete types below are the only
// implementations, so consumers can switch exhaustively and adding a
// kind is a compile-visible change.
type Exercise interface {
	exercise()
}

// Interval is two pitches sounded one after the other.
type Interval struct {
	A uint8
	B uint8
}

// Triad is three pitches sounded sequentially.
type Triad struct {
	Notes [3]uint8
}

// Chord is any number of pitches sounded simultaneously.
type Chord struct {
	Notes []uint8
}

// Sequence is a parsed notation line: ordered events with durations,
// ties already checked at assembly time.
type Sequence struct {
	Events []Event
}

// RhythmVocal is a single pitch repeated with a rhythm pattern.
type RhythmVocal struct {
	Key       uint8
	Durations []float64
}

func (Interval) exercise()    {}
func (Triad) exercise()       {}
func (Chord) exercise()       {}
func (Sequence) exercise()    {}
func (RhythmVocal) exercise() {}

// Scheduled is an exercise placed in the session plan. Block groups
// all repetitions of the same underlying exercise; the emitter uses
// block boundaries to pick the longer between-blocks pause.
type Scheduled struct {
	Exercise Exercise
	Block    int
}
