// SPDX-License-Identifier: MIT
// Package iaa: sentinel error set.
// Constructors fail fast with these sentinels; numeric anomalies found while
// computing are never errors, they are logged as warnings instead.

package iaa

import "errors"

var (
	// ErrNotPair is returned when a pairwise calculator is given anything but
	// exactly two annotators.
	ErrNotPair = errors.New("iaa: weighted kappa needs exactly two annotators")

	// ErrTooFewAnnotators is returned when a multi-annotator calculator is
	// given fewer than two annotators.
	ErrTooFewAnnotators = errors.New("iaa: weighted Fleiss' kappa needs at least two annotators")

	// ErrNilMatrix indicates a nil *AnnotationMatrix in the input map.
	ErrNilMatrix = errors.New("iaa: nil annotation matrix")

	// ErrNoCategories indicates an empty category list.
	ErrNoCategories = errors.New("iaa: empty category list")

	// ErrDuplicateCategory indicates a category listed twice.
	ErrDuplicateCategory = errors.New("iaa: duplicate category")

	// ErrDuplicateItem indicates an item listed twice.
	ErrDuplicateItem = errors.New("iaa: duplicate item")

	// ErrUnknownItem indicates an item outside the matrix's fixed item list.
	ErrUnknownItem = errors.New("iaa: unknown item")

	// ErrUnknownCategory indicates a category outside the fixed category list.
	ErrUnknownCategory = errors.New("iaa: unknown category")

	// ErrInvalidWeight indicates a negative, NaN or infinite label weight.
	ErrInvalidWeight = errors.New("iaa: invalid label weight")

	// ErrCategoryMismatch indicates two annotation matrices with different
	// category lists in a pairwise computation.
	ErrCategoryMismatch = errors.New("iaa: annotators use different category lists")

	// ErrUnknownAnnotator indicates an annotator id absent from the input.
	ErrUnknownAnnotator = errors.New("iaa: unknown annotator")
)
