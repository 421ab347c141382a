// SPDX-License-Identifier: Unlicense OR MIT

package word

import (
	"testing"

	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/span"
)

// charSpan builds a TextSpan for text whose glyphs are laid out
// left-to-right starting at x, each glyphWidth wide with no gap
// between consecutive glyphs.
func charSpan(text string, x, y, glyphWidth, fontSize float32) span.TextSpan {
	chars := make([]span.TextChar, len(text))
	pos := x
	for i := range text {
		chars[i] = span.TextChar{Offset: i, Pos: pos, Width: glyphWidth}
		pos += glyphWidth
	}
	return span.TextSpan{
		Rect:      geom.RectXYWH(x, y, pos-x, fontSize),
		Transform: span.Identity,
		FontSize:  fontSize,
		Text:      text,
		Chars:     chars,
	}
}

// S1 — single line, two words separated by a wide gap.
func TestConcatTwoWords(t *testing.T) {
	spans := []span.TextSpan{
		charSpan("hello", 0, 0, 10, 12),
		charSpan("world", 100, 0, 10, 12),
	}
	var buf []byte
	words := Concat(&buf, spans)
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2: %+v", len(words), words)
	}
	if words[0].Text != "hello" || words[1].Text != "world" {
		t.Errorf("got texts %q, %q", words[0].Text, words[1].Text)
	}
}

// Adjacent glyphs within the adaptive gap stay one word.
func TestConcatOneWord(t *testing.T) {
	spans := []span.TextSpan{charSpan("hello", 0, 0, 10, 12)}
	var buf []byte
	words := Concat(&buf, spans)
	if len(words) != 1 || words[0].Text != "hello" {
		t.Fatalf("got %+v, want one word \"hello\"", words)
	}
}

// An explicit space glyph between runs produces two words and a
// single separating space in the output buffer, not two.
func TestConcatExplicitSpace(t *testing.T) {
	hello := charSpan("hello", 0, 0, 10, 12)
	space := charSpan(" ", 50, 0, 10, 12)
	world := charSpan("world", 60, 0, 10, 12)
	spans := []span.TextSpan{hello, space, world}

	var buf []byte
	words := Concat(&buf, spans)
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2: %+v", len(words), words)
	}
	if got := string(buf); got != "hello world" {
		t.Errorf("buf = %q, want %q", got, "hello world")
	}
}

// Word.Text never carries an inner newline or leading/trailing
// whitespace (§8 invariant 6).
func TestWordTextHasNoWhitespace(t *testing.T) {
	spans := []span.TextSpan{
		charSpan("hello", 0, 0, 10, 12),
		charSpan("world", 100, 0, 10, 12),
	}
	var buf []byte
	for _, w := range Concat(&buf, spans) {
		if w.Text == "" {
			continue
		}
		if w.Text[0] == ' ' || w.Text[len(w.Text)-1] == ' ' {
			t.Errorf("word %q has leading/trailing whitespace", w.Text)
		}
		for _, r := range w.Text {
			if r == '\n' {
				t.Errorf("word %q contains a newline", w.Text)
			}
		}
	}
}

func TestIsAllSpace(t *testing.T) {
	cases := []struct {
		s    string
		want bool
	}{
		{"", false},
		{" ", true},
		{"\t", true},
		{"a", false},
		{" a", false},
	}
	for _, c := range cases {
		if got := isAllSpace(c.s); got != c.want {
			t.Errorf("isAllSpace(%q) = %v, want %v", c.s, got, c.want)
		}
	}
}
