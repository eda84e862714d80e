// SPDX-License-Identifier: MIT

// Package matrix: in-place row/column scaling micro-kernels on *Dense.
//
// Both kernels divide by a per-row (per-column) divisor vector and skip
// entries whose divisor is exactly zero, leaving those cells untouched.
// Callers own allocation; the kernels never allocate.

package matrix

// ewDivRows divides row i of d by div[i] for every i with div[i] != 0.
// Assumes len(div) == d.r.
func ewDivRows(d *Dense, div []float64) {
	var i, j, base int
	var s float64
	for i = 0; i < d.r; i++ {
		s = div[i]
		if s == 0 {
			continue
		}
		base = i * d.c
		for j = 0; j < d.c; j++ {
			d.data[base+j] /= s
		}
	}
}

// ewDivCols divides column j of d by div[j]. guard(i, j) reports whether
// cell (i,j) may be rescaled; a nil guard means div[j] != 0.
// Assumes len(div) == d.c.
func ewDivCols(d *Dense, div []float64, guard func(i, j int) bool) {
	var i, j int
	for j = 0; j < d.c; j++ {
		for i = 0; i < d.r; i++ {
			if guard == nil {
				if div[j] == 0 {
					continue
				}
			} else if !guard(i, j) {
				continue
			}
			d.data[i*d.c+j] /= div[j]
		}
	}
}
