package note

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/intonado/intonado/model"
	"github.com/intonado/intonado/util"
)

var letterSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// LetterSemitone returns the pitch class of a natural letter name.
func LetterSemitone(letter byte) (int, bool) {
	s, ok := letterSemitones[letter]
	return s, ok
}

var pitchClassNames = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// NameToMIDI converts a note name like "C4", "D#3" or "Db3" to its
// MIDI number (C4 = 60).
func NameToMIDI(name string) (uint8, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return 0, fmt.Errorf("invalid note name: %q", name)
	}
	letter := byte(strings.ToUpper(name[:1])[0])
	semitone, ok := letterSemitones[letter]
	if !ok {
		return 0, fmt.Errorf("invalid note name: %q", name)
	}
	rest := name[1:]
	switch rest[0] {
	case '#':
		semitone++
		rest = rest[1:]
	case 'b':
		semitone--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note name %q", name)
	}
	midi := 12 + octave*12 + semitone
	if midi < 0 || midi > 127 {
		return 0, fmt.Errorf("note %q is outside the MIDI range", name)
	}
	return uint8(midi), nil
}

// MustNameToMIDI is NameToMIDI for literals known to be valid.
func MustNameToMIDI(name string) uint8 {
	m, err := NameToMIDI(name)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// MIDIToName renders a MIDI number as a name like "C4" or "Db3",
// preferring sharps.
func MIDIToName(midi uint8) string {
	octave := int(midi)/12 - 1
	return fmt.Sprintf("%s%d", pitchClassNames[midi%12], octave)
}

// MIDIToFreq returns the equal-tempered frequency in Hz (A4 = 440).
func MIDIToFreq(midi uint8) float64 {
	return 440.0 * math.Pow(2, (float64(midi)-69)/12.0)
}

// Transpose shifts every non-rest event by the given number of
// semitones, clamped to the MIDI range. Rests and durations pass
// through untouched. The input slice is not modified.
func Transpose(events []model.Event, semitones int) []model.Event {
	if semitones == 0 {
		return events
	}
	out := make([]model.Event, len(events))
	for i, ev := range events {
		if !ev.Rest {
			ev.Key = uint8(util.Clamp(int(ev.Key)+semitones, 0, 127))
		}
		out[i] = ev
	}
	return out
}
