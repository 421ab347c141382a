// SPDX-License-Identifier: Unlicense OR MIT

// Package word assembles per-glyph positions into whitespace-delimited
// Words, using an adaptive inter-character gap threshold (§4.5).
package word

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/span"
)

// Char is a glyph's placement within its owning Word's text, in
// device space.
type Char struct {
	Offset int
	Pos    float32
	Width  float32
}

// Word is one whitespace-delimited cluster of glyphs (§3). Rect is the
// union of the contributing glyphs' device-space boxes.
type Word struct {
	Text  string
	Rect  geom.Rect
	Chars []Char
}

// Concat appends the text of spans, in order, to out and returns the
// Words it assembled. out grows monotonically; each returned Word is
// an independent copy of its slice of out, so out may continue to be
// reused by the caller (§5).
func Concat(out *[]byte, spans []span.TextSpan) []Word {
	gap := wordGap(spans)
	var words []Word
	b := newBuilder(len(*out))

	trailingSpace := true
	if n := len(*out); n > 0 {
		r, _ := utf8.DecodeLastRune(*out)
		trailingSpace = unicode.IsSpace(r)
	}

	for _, s := range spans {
		var offset int
		for i, c := range s.Chars {
			var text string
			if i+1 < len(s.Chars) {
				text = s.Text[offset:s.Chars[i+1].Offset]
				offset = s.Chars[i+1].Offset
			} else {
				text = s.Text[offset:]
			}

			start := s.Transform.Apply(c.Pos, 0).X
			end := s.Transform.Apply(c.Pos+c.Width, 0).X
			isSpace := isAllSpace(text)

			switch {
			case trailingSpace && !isSpace:
				// previous was whitespace (or this is the first glyph):
				// open a new word.
				b.startNew(len(*out), start)
				b.addChar(len(*out), start, end)
				appendNFKC(out, text)
			case trailingSpace && isSpace:
				// run of whitespace: the single separating space was
				// already emitted when the prior word closed (or none
				// has opened yet). Drop this glyph entirely.
			case isSpace: // && !trailingSpace
				// current glyph is whitespace, previous wasn't: close
				// the word at the space.
				words = append(words, b.build(*out, b.endPos))
				b = newBuilder(len(*out))
				*out = append(*out, ' ')
			case start > b.endPos+gap:
				// both non-whitespace but separated by more than the
				// adaptive threshold: close, insert one space, reopen.
				words = append(words, b.build(*out, b.endPos))
				*out = append(*out, ' ')
				b = newBuilder(len(*out))
				b.startNew(len(*out), start)
				b.addChar(len(*out), start, end)
				appendNFKC(out, text)
			default:
				// extend the current word.
				b.addChar(len(*out), start, end)
				appendNFKC(out, text)
			}

			trailingSpace = isSpace
			b.updateBounds(s.Rect.MinY(), s.Rect.MaxY())
		}
	}

	if !b.empty() {
		words = append(words, b.build(*out, b.endPos))
	}
	return words
}

func isAllSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func appendNFKC(out *[]byte, s string) {
	*out = norm.NFKC.AppendString(*out, s)
}

type builder struct {
	startIdx int
	startPos float32
	endPos   float32
	yMin     float32
	yMax     float32
	nChars   int
	started  bool
	chars    []Char
}

func newBuilder(startIdx int) *builder {
	return &builder{startIdx: startIdx}
}

func (b *builder) startNew(idx int, pos float32) {
	b.startIdx = idx
	b.startPos = pos
}

func (b *builder) addChar(byteIdx int, start, end float32) {
	b.chars = append(b.chars, Char{
		Offset: byteIdx - b.startIdx,
		Pos:    start,
		Width:  end - start,
	})
	b.endPos = end
	b.nChars++
}

func (b *builder) updateBounds(minY, maxY float32) {
	if !b.started {
		b.yMin, b.yMax = minY, maxY
		b.started = true
	} else {
		if minY < b.yMin {
			b.yMin = minY
		}
		if maxY > b.yMax {
			b.yMax = maxY
		}
	}
}

func (b *builder) empty() bool { return b.nChars == 0 }

func (b *builder) build(out []byte, endPos float32) Word {
	return Word{
		Text: string(out[b.startIdx:]),
		Rect: geom.Rect{
			Min: geom.Point{X: b.startPos, Y: b.yMin},
			Max: geom.Point{X: endPos, Y: b.yMax},
		},
		Chars: b.chars,
	}
}

// wordGap computes the adaptive space threshold (§4.5 step 1): twice
// the mean of clamped inter-glyph gaps, capped at half the average
// font size so a handful of huge outlier gaps can't blow out the
// threshold. Degenerate input with no gaps yields 0.
func wordGap(spans []span.TextSpan) float32 {
	type placed struct {
		start, end, fontSize float32
	}
	var placedChars []placed
	var fontSizeSum float32
	var fontSizeCount int

	for _, s := range spans {
		fontSizeSum += s.FontSize
		fontSizeCount++
		var offset int
		for i, c := range s.Chars {
			var text string
			if i+1 < len(s.Chars) {
				text = s.Text[offset:s.Chars[i+1].Offset]
				offset = s.Chars[i+1].Offset
			} else {
				text = s.Text[offset:]
			}
			if isAllSpace(text) {
				continue
			}
			start := s.Transform.Apply(c.Pos, 0).X
			end := s.Transform.Apply(c.Pos+c.Width, 0).X
			placedChars = append(placedChars, placed{start, end, s.FontSize})
		}
	}

	var sum float32
	var n int
	for i := 1; i < len(placedChars); i++ {
		a, b := placedChars[i-1], placedChars[i]
		if b.start <= a.start {
			continue
		}
		g := b.start - a.end
		max := 0.25 * (a.fontSize + b.fontSize)
		if g < 0.01 {
			g = 0.01
		}
		if g > max {
			g = max
		}
		sum += g
		n++
	}

	var avgGap float32
	if n > 0 {
		avgGap = sum / float32(n)
	}
	if fontSizeCount == 0 {
		return 0
	}
	avgFontSize := fontSizeSum / float32(fontSizeCount)
	threshold := 0.5 * avgFontSize
	if 2*avgGap < threshold {
		threshold = 2 * avgGap
	}
	return threshold
}
