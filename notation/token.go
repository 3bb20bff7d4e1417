package notation

import (
	"strconv"
	"strings"
)

type TokenKind uint8

const (
	TokenBar TokenKind = iota
	TokenAtom
)

// Token is one lexical piece of a notation line. Bar tokens may carry
// an inline beats-per-measure override (|3 opens a 3-beat measure).
// Pos is the 1-based position among atom tokens; bars do not count.
type Token struct {
	Kind  TokenKind
	Text  string
	Beats int
	Pos   int
}

// Tokenize splits a notation line on bar characters, keeping the bars
// as tokens, and splits the remaining text on whitespace into atoms.
// A bare positive integer atom directly after a bar is consumed as
// that bar's inline beats-per-measure override.
func Tokenize(line string) []Token {
	var toks []Token
	pos := 0
	segs := strings.Split(line, "|")
	for i, seg := range segs {
		if i > 0 {
			toks = append(toks, Token{Kind: TokenBar, Text: "|"})
		}
		for j, f := range strings.Fields(seg) {
			if j == 0 && i > 0 && isAllDigits(f) {
				// a zero override is left as an atom so it fails
				// note parsing instead of vanishing from the stream
				if n, _ := strconv.Atoi(f); n > 0 {
					bar := &toks[len(toks)-1]
					bar.Beats = n
					bar.Text = "|" + f
					continue
				}
			}
			pos++
			toks = append(toks, Token{Kind: TokenAtom, Text: f, Pos: pos})
		}
	}
	return toks
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
