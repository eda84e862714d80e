// SPDX-License-Identifier: MIT

// Package iaa computes inter-annotator agreement for multi-label categorical
// annotations with soft (weighted) labels.
//
// Input is one AnnotationMatrix per annotator, all sharing an item list and a
// category list. On top of that:
//
//   - WeightedKappa: agreement and Cohen's kappa for exactly two annotators.
//   - WeightedFleissKappa: agreement and Fleiss' kappa for two or more
//     annotators, plus frequency tables and label cardinality/density.
//   - AllPairs: a WeightedKappa for every pair of a set of annotators.
//   - ConfusionMatrix: the category×category co-occurrence produced by both
//     calculators, with Sinkhorn and Variation views from package matrix.
//
// Wrong annotator counts are constructor errors. Numeric anomalies (weights
// not summing to one, mismatched item counts, the Fleiss normalisation check)
// are warnings on the *slog.Logger given by WithLogger and never change a
// result.
package iaa
