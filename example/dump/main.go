// SPDX-License-Identifier: Unlicense OR MIT

// Command dump analyzes a JSON-encoded Trace (geom.Rect, span.TextSpan
// list, lines.Stroke list) and prints each resulting run's lines as
// plain text, one line per output line and a blank line between runs
// (a stand-in for the reference's page-dump example, which reads an
// actual PDF — the PDF parsing and tracing this module excludes).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	pdftext "github.com/pdf-rs/pdf-text"
	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/lines"
	"github.com/pdf-rs/pdf-text/span"
)

type traceFile struct {
	BBox    geom.Rect       `json:"bbox"`
	Spans   []span.TextSpan `json:"spans"`
	Strokes []lines.Stroke  `json:"strokes"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: dump <trace.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "dump:", err)
		os.Exit(1)
	}

	var tr traceFile
	if err := json.Unmarshal(data, &tr); err != nil {
		fmt.Fprintln(os.Stderr, "dump:", err)
		os.Exit(1)
	}

	f, err := pdftext.Analyze(tr.BBox, tr.Spans, tr.Strokes, pdftext.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "dump:", err)
		os.Exit(1)
	}

	for _, run := range f.Runs {
		for _, line := range run.Lines {
			words := make([]string, len(line.Words))
			for i, w := range line.Words {
				words[i] = w.Text
			}
			fmt.Println(strings.Join(words, " "))
		}
		fmt.Println()
	}
}
