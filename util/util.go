// SPDX-License-Identifier: Unlicense OR MIT

// Package util holds small numeric helpers shared across the layout
// pipeline.
package util

// Avg returns the mean of xs, and false if xs is empty.
func Avg(xs []float32) (float32, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	var sum float32
	for _, x := range xs {
		sum += x
	}
	return sum / float32(len(xs)), true
}
