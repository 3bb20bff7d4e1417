package notation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/intonado/intonado/constants"
	"github.com/intonado/intonado/model"
	"github.com/intonado/intonado/note"
	"github.com/intonado/intonado/util"
)

// ParseError reports a bad token together with where it sat in the
// sequence and a window of surrounding tokens.
type ParseError struct {
	Msg     string
	Token   string
	Pos     int
	Context string
}

func (e *ParseError) Error() string {
	if e.Pos > 0 {
		return fmt.Sprintf("%s at position %d. Context: '%s'", e.Msg, e.Pos, e.Context)
	}
	return e.Msg
}

// Element is one item of an assembled sequence: either a playable
// event or a measure boundary marker. A measure-start marker may carry
// an inline beats-per-measure override.
type Element struct {
	MeasureStart  bool
	MeasureEnd    bool
	BeatsOverride int
	Event         model.Event
}

// Options control how a notation line is interpreted.
type Options struct {
	UnitLength float64
	Key        *Key
}

// letter, optional natural override, optional accidental, octave
// digit, optional accidental, duration suffix. Ties are stripped
// before matching.
var noteRe = regexp.MustCompile(`^([A-Ga-g])(!?)([#b]?)([0-9])([#b]?)(.*)$`)

// ParseSequence assembles a notation line into playable events,
// dropping the measure markers.
func ParseSequence(line string, opts Options) ([]model.Event, error) {
	elems, err := ParseElements(line, opts)
	if err != nil {
		return nil, err
	}
	events := make([]model.Event, 0, len(elems))
	for _, el := range elems {
		if !el.MeasureStart && !el.MeasureEnd {
			events = append(events, el.Event)
		}
	}
	return events, nil
}

// ParseElements assembles a notation line into events interleaved with
// measure boundary markers, enforcing tie semantics as it goes.
func ParseElements(line string, opts Options) ([]Element, error) {
	if opts.UnitLength <= 0 {
		opts.UnitLength = constants.DefaultUnitLength
	}
	toks := Tokenize(line)
	atoms := 0
	for _, t := range toks {
		if t.Kind == TokenAtom {
			atoms++
		}
	}
	if atoms == 0 {
		return nil, &ParseError{Msg: "No notes found in sequence"}
	}

	var elems []Element
	inMeasure := false
	openEvents := false
	var pending *uint8
	pendingIdx := -1
	for i, tok := range toks {
		if tok.Kind == TokenBar {
			// a bar also closes leading pickup material, so the
			// validator sees it as a partial measure
			if inMeasure || openEvents {
				elems = append(elems, Element{MeasureEnd: true})
				inMeasure = false
				openEvents = false
			}
			if atomFollows(toks, i) {
				elems = append(elems, Element{MeasureStart: true, BeatsOverride: tok.Beats})
				inMeasure = true
			}
			continue
		}
		ev, tie, perr := parseAtom(tok.Text, opts)
		if perr != nil {
			return nil, at(perr, toks, i)
		}
		if pending != nil {
			if ev.Rest {
				return nil, at(&ParseError{Msg: "Cannot tie a rest", Token: tok.Text}, toks, i)
			}
			if ev.Key != *pending {
				msg := fmt.Sprintf("Tie continuation must repeat the same pitch: got '%s' after %s",
					tok.Text, note.MIDIToName(*pending))
				return nil, at(&ParseError{Msg: msg, Token: tok.Text}, toks, i)
			}
			ev.Tie = true
			pending = nil
		}
		if tie {
			if ev.Rest {
				return nil, at(&ParseError{Msg: "Cannot tie a rest", Token: tok.Text}, toks, i)
			}
			k := ev.Key
			pending = &k
			pendingIdx = i
		}
		elems = append(elems, Element{Event: ev})
		if !inMeasure {
			openEvents = true
		}
	}
	if pending != nil {
		return nil, at(&ParseError{Msg: "Tie marker '-' at end of sequence", Token: toks[pendingIdx].Text}, toks, pendingIdx)
	}
	return elems, nil
}

func parseAtom(text string, opts Options) (model.Event, bool, *ParseError) {
	body := text
	tie := false
	if strings.HasSuffix(body, "-") {
		tie = true
		body = body[:len(body)-1]
	}
	if body == "" {
		return model.Event{}, false, &ParseError{Msg: fmt.Sprintf("Invalid note format: '%s'", text), Token: text}
	}

	switch body[0] {
	case 'z', 'Z', 'x':
		dur, err := ResolveDuration(body[1:], opts.UnitLength)
		if err != nil {
			return model.Event{}, false, &ParseError{Msg: fmt.Sprintf("%v in rest '%s'", err, text), Token: text}
		}
		return model.RestEvent(dur), tie, nil
	}

	m := noteRe.FindStringSubmatch(body)
	if m == nil {
		return model.Event{}, false, &ParseError{Msg: fmt.Sprintf("Invalid note format: '%s'", text), Token: text}
	}
	letter := byte(strings.ToUpper(m[1])[0])
	natural := m[2] == "!"
	accPre, accPost := m[3], m[5]
	if accPre != "" && accPost != "" && accPre != accPost {
		msg := fmt.Sprintf("Conflicting accidentals in '%s': '%s' vs '%s'", text, accPre, accPost)
		return model.Event{}, false, &ParseError{Msg: msg, Token: text}
	}

	semitone, _ := note.LetterSemitone(letter)
	switch {
	case natural:
		// explicit natural, ignore the key signature
	case accPre == "#" || accPost == "#":
		semitone++
	case accPre == "b" || accPost == "b":
		semitone--
	default:
		semitone += opts.Key.Accidental(letter)
	}

	octave, _ := strconv.Atoi(m[4])
	dur, err := ResolveDuration(m[6], opts.UnitLength)
	if err != nil {
		return model.Event{}, false, &ParseError{Msg: fmt.Sprintf("%v in note '%s'", err, text), Token: text}
	}
	midi := 12 + octave*12 + semitone
	if midi < 0 || midi > 127 {
		return model.Event{}, false, &ParseError{Msg: fmt.Sprintf("Note '%s' is outside the MIDI range", text), Token: text}
	}
	return model.PitchEvent(uint8(midi), dur), tie, nil
}

// at fills in position and context for an error raised at token i.
func at(perr *ParseError, toks []Token, i int) *ParseError {
	perr.Pos = toks[i].Pos
	if perr.Token == "" {
		perr.Token = toks[i].Text
	}
	lo := util.Max(0, i-2)
	hi := util.Min(len(toks)-1, i+2)
	parts := make([]string, 0, hi-lo+1)
	for j := lo; j <= hi; j++ {
		if j == i {
			parts = append(parts, ">>"+toks[j].Text+"<<")
		} else {
			parts = append(parts, toks[j].Text)
		}
	}
	perr.Context = strings.Join(parts, " ")
	return perr
}

func atomFollows(toks []Token, i int) bool {
	for _, t := range toks[i+1:] {
		if t.Kind == TokenAtom {
			return true
		}
	}
	return false
}
