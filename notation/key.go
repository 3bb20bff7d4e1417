package notation

import (
	"strings"

	"github.com/pkg/errors"
)

// Key is a resolved key signature: a per-letter accidental adjustment
// (+1 sharp, -1 flat, 0 natural) applied to notes without an explicit
// accidental of their own.
type Key struct {
	Name        string
	accidentals map[byte]int
}

var sharpOrder = []byte{'F', 'C', 'G', 'D', 'A', 'E', 'B'}
var flatOrder = []byte{'B', 'E', 'A', 'D', 'G', 'C', 'F'}

// Signed signature sizes: positive = sharps, negative = flats.
var majorSignatures = map[string]int{
	"C": 0, "G": 1, "D": 2, "A": 3, "E": 4, "B": 5, "F#": 6, "C#": 7,
	"F": -1, "Bb": -2, "Eb": -3, "Ab": -4, "Db": -5, "Gb": -6, "Cb": -7,
}

var minorSignatures = map[string]int{
	"A": 0, "E": 1, "B": 2, "F#": 3, "C#": 4, "G#": 5, "D#": 6, "A#": 7,
	"D": -1, "G": -2, "C": -3, "F": -4, "Bb": -5, "Eb": -6, "Ab": -7,
}

// ParseKey resolves a name like "Gmajor", "Fminor" or "f#minor" into
// its accidental table.
func ParseKey(name string) (*Key, error) {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	var table map[string]int
	var root string
	switch {
	case strings.HasSuffix(lower, "major"):
		table = majorSignatures
		root = trimmed[:len(trimmed)-5]
	case strings.HasSuffix(lower, "minor"):
		table = minorSignatures
		root = trimmed[:len(trimmed)-5]
	default:
		return nil, errors.Errorf("unknown key '%s': expected a name like 'Gmajor' or 'Fminor'", name)
	}
	root = normalizeRoot(root)
	size, ok := table[root]
	if !ok {
		return nil, errors.Errorf("unknown key '%s'", name)
	}
	k := &Key{Name: trimmed, accidentals: make(map[byte]int, 7)}
	if size > 0 {
		for _, l := range sharpOrder[:size] {
			k.accidentals[l] = 1
		}
	} else if size < 0 {
		for _, l := range flatOrder[:-size] {
			k.accidentals[l] = -1
		}
	}
	return k, nil
}

// Accidental returns the signature adjustment for a natural letter
// name (A-G). A nil key means no adjustment anywhere.
func (k *Key) Accidental(letter byte) int {
	if k == nil {
		return 0
	}
	return k.accidentals[letter]
}

func normalizeRoot(root string) string {
	if root == "" {
		return root
	}
	out := strings.ToUpper(root[:1])
	if len(root) > 1 {
		switch root[1] {
		case '#':
			out += "#"
		case 'b', 'B':
			out += "b"
		}
	}
	return out
}
