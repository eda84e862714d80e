// SPDX-License-Identifier: MIT

// Package iaa measures how well several annotators agree when each item may
// carry a weighted mix of labels instead of a single one.
//
// 🚀 What is inside?
//
//	• Weighted Cohen kappa for two annotators, with a confusion matrix
//	• Weighted Fleiss kappa for three or more annotators
//	• All-pairs kappa tables summarised as mean ± deviation
//	• Matrix views: Sinkhorn doubly stochastic and diagonal-scaled variation
//	• Dataset ingestion for dialogue breakdown sheets and a CLI (cmd/iaa)
//
// Everything is organized under these subpackages:
//
//	matrix/    dense and labelled matrices, DoublyStochastic, Variation
//	estimator/ lazy mean and variance estimators
//	iaa/       AnnotationMatrix, ConfusionMatrix, WeightedKappa, WeightedFleissKappa, AllPairs
//	dataset/   category dictionaries, XLSX and CSV sheets, AnnotationDataset
//	config/    TOML run configuration
//	report/    text, YAML, JSON and heat map rendering
//
// Quick start:
//
//	k, err := iaa.NewWeightedKappa(map[string]*iaa.AnnotationMatrix[string, string]{
//		"alice": alice, "bob": bob,
//	})
//	if err != nil { ... }
//	fmt.Printf("agreement=%.3f kappa=%.3f\n", k.Agreement(), k.Kappa())
//	fmt.Print(k.ConfusionMatrix())
package iaa
