// SPDX-License-Identifier: MIT

// Package dataset turns annotated dialogue sheets into per-annotator
// annotation matrices.
//
// A run reads a label dictionary (Category), loads every annotator's sheets
// from <root>/<annotator>/<trial>/*.{xlsx,csv} (LoadDir), keeps the turns most
// annotators judged as breakdowns (Record.IsBreakdown) and splits each turn's
// pipe-separated labels into weights (AnnotationDataset), equally or by
// label position.
//
// Label strings are converted with an explicit ParseFunc, so a dictionary or
// sheet entry that does not parse is reported instead of coerced.
package dataset
