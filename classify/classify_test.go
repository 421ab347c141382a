// SPDX-License-Identifier: Unlicense OR MIT

package classify

import (
	"testing"

	"github.com/pdf-rs/pdf-text/font"
	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/span"
)

func textSpan(text string, f *font.Font) span.TextSpan {
	return span.TextSpan{Rect: geom.RectXYWH(0, 0, 10, 10), Text: text, Font: f, FontSize: 10}
}

func TestOfEmpty(t *testing.T) {
	if got := Of(nil); got != font.Mixed {
		t.Errorf("Of(nil) = %v, want Mixed", got)
	}
}

func TestOfNumber(t *testing.T) {
	f := &font.Font{Name: "Arial"}
	spans := []span.TextSpan{textSpan("12", f)}
	if got := Of(spans); got != font.Number {
		t.Errorf("Of(numeric single span) = %v, want Number", got)
	}
}

func TestOfHeader(t *testing.T) {
	f := &font.Font{Name: "Arial-Bold"}
	spans := []span.TextSpan{textSpan("Chapter", f)}
	if got := Of(spans); got != font.Header {
		t.Errorf("Of(bold single span) = %v, want Header", got)
	}
}

func TestOfParagraph(t *testing.T) {
	bold := &font.Font{Name: "Arial-Bold"}
	plain := &font.Font{Name: "Arial"}
	spans := []span.TextSpan{
		textSpan("some", plain),
		textSpan("text", plain),
		textSpan("here", bold),
	}
	if got := Of(spans); got != font.Paragraph {
		t.Errorf("Of(mostly-plain multi-font) = %v, want Paragraph", got)
	}
}

// Classifier monotonicity (§8 invariant 5): adding a bold span to a
// Header-classified set never demotes the result to Paragraph.
func TestMonotonicityUnderAddingBold(t *testing.T) {
	bold := &font.Font{Name: "Arial-Bold"}
	base := []span.TextSpan{textSpan("Title", bold)}
	if got := Of(base); got != font.Header {
		t.Fatalf("base classification = %v, want Header", got)
	}
	extended := append(append([]span.TextSpan{}, base...), textSpan("Extra", bold))
	got := Of(extended)
	if got != font.Header && got != font.Mixed {
		t.Errorf("Of(extended) = %v, want Header or Mixed", got)
	}
}
