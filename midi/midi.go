package midi

import (
	"bytes"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadFile parses a standard MIDI file. The smf reader panics on some
// malformed inputs, so recover and surface that as an error.
func ReadFile(path string) (s *smf.SMF, e error) {
	var blank smf.SMF
	s = &blank
	defer func() {
		if r := recover(); r != nil {
			s = &blank
			e = fmt.Errorf("panic while parsing '%s': %v", path, r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return &blank, fmt.Errorf("cannot read '%s': %w", path, err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("cannot parse '%s': %w", path, err)
	}
	return res, nil
}

// Stats summarizes the playable content of a parsed file.
type Stats struct {
	Tracks     int
	NoteOns    int
	NoteOffs   int
	LowestKey  uint8
	HighestKey uint8
	TotalTicks uint64
}

// Summarize walks every track and counts note events and the pitch
// range they cover.
func Summarize(s *smf.SMF) Stats {
	st := Stats{Tracks: len(s.Tracks), LowestKey: 127}
	var maxTicks uint64
	for _, track := range s.Tracks {
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)
			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteStart(&ch, &key, &vel):
				st.NoteOns++
				if key < st.LowestKey {
					st.LowestKey = key
				}
				if key > st.HighestKey {
					st.HighestKey = key
				}
			case ev.Message.GetNoteEnd(&ch, &key):
				st.NoteOffs++
			}
		}
		if abs > maxTicks {
			maxTicks = abs
		}
	}
	if st.NoteOns == 0 {
		st.LowestKey = 0
	}
	st.TotalTicks = maxTicks
	return st
}
