// SPDX-License-Identifier: MIT

package dataset

import "errors"

var (
	// ErrParse wraps a label that the ParseFunc rejected.
	ErrParse = errors.New("dataset: label parse failed")

	// ErrDuplicateLabel reports a dictionary listing a label twice.
	ErrDuplicateLabel = errors.New("dataset: duplicate label")

	// ErrEmptyCategory reports a dictionary without any label.
	ErrEmptyCategory = errors.New("dataset: empty category dictionary")

	// ErrBadRecord reports a sheet row whose numeric columns do not parse.
	ErrBadRecord = errors.New("dataset: malformed record")

	// ErrNilParseFunc reports a dataset constructed without a label parser.
	ErrNilParseFunc = errors.New("dataset: nil ParseFunc")

	// ErrNoAnnotators reports a dataset queried for annotators it has not seen.
	ErrNoAnnotators = errors.New("dataset: no matching annotators")

	errNoLabels = errors.New("no breakdown labels")
)
