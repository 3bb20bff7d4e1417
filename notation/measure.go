package notation

import (
	"fmt"
	"math"

	"github.com/intonado/intonado/constants"
	"github.com/intonado/intonado/model"
)

// Measure is one grouped span of events with the beat count it was
// expected to fill.
type Measure struct {
	Events        []model.Event
	DeclaredBeats int
	PartialStart  bool
	PartialEnd    bool
}

func (m Measure) totalBeats() float64 {
	var sum float64
	for _, ev := range m.Events {
		sum += ev.Beats
	}
	return sum
}

// Violation is a complete measure whose beat total does not match its
// declared signature.
type Violation struct {
	MeasureNum int
	Found      float64
	Expected   int
	Label      string
}

func (v Violation) String() string {
	return fmt.Sprintf("measure %d of '%s' has %g beats, expected %d", v.MeasureNum, v.Label, v.Found, v.Expected)
}

// Report is the outcome of time-signature validation over one stream.
type Report struct {
	Measures     []Measure
	Violations   []Violation
	PartialStart bool
	PartialEnd   bool
}

// ValidateSignature groups an element stream into measures and checks
// each complete measure against its declared beat count. Leading
// events before the first bar and trailing events after the last bar
// are partial measures and exempt from the check, except when the
// stream has no bars at all, in which case the whole stream is checked
// as a single measure. An inline override on a measure start applies
// to that measure only.
func ValidateSignature(elems []Element, defaultBeats int, label string) Report {
	var r Report
	barred := false
	for _, el := range elems {
		if el.MeasureStart || el.MeasureEnd {
			barred = true
			break
		}
	}

	cur := Measure{DeclaredBeats: defaultBeats}
	opened := false
	for _, el := range elems {
		switch {
		case el.MeasureStart:
			if len(cur.Events) > 0 {
				cur.PartialStart = !opened && len(r.Measures) == 0
				r.Measures = append(r.Measures, cur)
			}
			beats := defaultBeats
			if el.BeatsOverride > 0 {
				beats = el.BeatsOverride
			}
			cur = Measure{DeclaredBeats: beats}
			opened = true
		case el.MeasureEnd:
			cur.PartialStart = !opened && len(r.Measures) == 0 && len(cur.Events) > 0
			r.Measures = append(r.Measures, cur)
			cur = Measure{DeclaredBeats: defaultBeats}
			opened = false
		default:
			cur.Events = append(cur.Events, el.Event)
		}
	}
	if len(cur.Events) > 0 {
		cur.PartialEnd = barred
		cur.PartialStart = barred && !opened && len(r.Measures) == 0
		r.Measures = append(r.Measures, cur)
	}

	for i, m := range r.Measures {
		if m.PartialStart {
			r.PartialStart = true
		}
		if m.PartialEnd {
			r.PartialEnd = true
		}
		if m.PartialStart || m.PartialEnd {
			continue
		}
		found := m.totalBeats()
		if math.Abs(found-float64(m.DeclaredBeats)) > constants.MeasureEpsilon {
			r.Violations = append(r.Violations, Violation{
				MeasureNum: i + 1,
				Found:      found,
				Expected:   m.DeclaredBeats,
				Label:      label,
			})
		}
	}
	return r
}
