package scale

import (
	"github.com/pkg/errors"

	"github.com/intonado/intonado/util"
)

// Patterns maps a scale name to its ascending interval steps in
// semitones. Each pattern spans exactly one octave.
var Patterns = map[string][]int{
	"major":          {2, 2, 1, 2, 2, 2, 1},
	"natural_minor":  {2, 1, 2, 2, 1, 2, 2},
	"harmonic_minor": {2, 1, 2, 2, 1, 3, 1},
	"melodic_minor":  {2, 1, 2, 2, 2, 2, 1},
	"dorian":         {2, 1, 2, 2, 2, 1, 2},
	"phrygian":       {1, 2, 2, 2, 1, 2, 2},
	"lydian":         {2, 2, 2, 1, 2, 2, 1},
	"mixolydian":     {2, 2, 1, 2, 2, 1, 2},
}

// Names lists the supported scale kinds in stable order.
func Names() []string {
	return util.GetKeysSorted(Patterns)
}

// Build returns one octave of the named scale starting at root,
// including the root itself (7 notes, the octave is not repeated).
func Build(root uint8, kind string) ([]uint8, error) {
	steps, ok := Patterns[kind]
	if !ok {
		return nil, errors.Errorf("unknown scale '%s' (supported: %v)", kind, Names())
	}
	notes := make([]uint8, 0, len(steps))
	cur := int(root)
	notes = append(notes, root)
	for _, s := range steps[:len(steps)-1] {
		cur += s
		if cur > 127 {
			break
		}
		notes = append(notes, uint8(cur))
	}
	return notes, nil
}

// ExpandOverRange repeats the scale across octaves and keeps only the
// notes inside [low, high].
func ExpandOverRange(root uint8, kind string, low, high uint8) ([]uint8, error) {
	steps, ok := Patterns[kind]
	if !ok {
		return nil, errors.Errorf("unknown scale '%s' (supported: %v)", kind, Names())
	}
	// walk down to the first root at or below the low bound
	start := int(root)
	for start > int(low) {
		start -= 12
	}
	var pool []uint8
	cur := start
	for cur <= int(high) {
		octaveStart := cur
		if cur >= int(low) {
			pool = append(pool, uint8(cur))
		}
		for _, s := range steps[:len(steps)-1] {
			cur += s
			if cur > int(high) {
				break
			}
			if cur >= int(low) {
				pool = append(pool, uint8(cur))
			}
		}
		cur = octaveStart + 12
	}
	if len(pool) == 0 {
		return nil, errors.Errorf("scale '%s' has no notes between %d and %d", kind, low, high)
	}
	return pool, nil
}
