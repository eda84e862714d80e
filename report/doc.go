// SPDX-License-Identifier: MIT

// Package report turns agreement results into serialisable documents and
// renders them as terminal tables, YAML, JSON or heat maps.
//
// A report is built once from a calculator (NewPairReport, NewAllPairsReport,
// NewMultiReport) and then written in any format. Every report carries a
// random RunID so that text, data and chart outputs of one run can be matched.
//
// Values that have no finite result (a kappa whose chance agreement is 1)
// are written as null in JSON, .nan in YAML and NaN in text.
package report
