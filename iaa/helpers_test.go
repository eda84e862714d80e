// SPDX-License-Identifier: MIT

package iaa_test

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/katalvlaran/iaa/iaa"
	"github.com/stretchr/testify/require"
)

// labels is a compact fixture: item -> category -> weight.
type labels map[string]map[string]float64

// MustMatrix builds an AnnotationMatrix over items/cats filled from rows.
func MustMatrix(t *testing.T, annotator string, items, cats []string, rows labels) *iaa.AnnotationMatrix[string, string] {
	t.Helper()
	m, err := iaa.NewAnnotationMatrix(annotator, items, cats)
	require.NoError(t, err)
	for k, row := range rows {
		for l, w := range row {
			_, err = m.Add(k, l, w)
			require.NoError(t, err)
		}
	}

	return m
}

func quiet() iaa.Option { return iaa.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))) }

// captured returns an option logging into buf at debug level.
func captured(buf *bytes.Buffer) iaa.Option {
	return iaa.WithLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// twoItemFixture: a1 says x,y; a2 says x,x.
func twoItemFixture(t *testing.T) map[string]*iaa.AnnotationMatrix[string, string] {
	t.Helper()
	items := []string{"i1", "i2"}
	cats := []string{"x", "y"}

	return map[string]*iaa.AnnotationMatrix[string, string]{
		"a1": MustMatrix(t, "a1", items, cats, labels{"i1": {"x": 1}, "i2": {"y": 1}}),
		"a2": MustMatrix(t, "a2", items, cats, labels{"i1": {"x": 1}, "i2": {"x": 1}}),
	}
}

func cell(t *testing.T, c *iaa.ConfusionMatrix[string], r, col string) float64 {
	t.Helper()
	v, err := c.Get(r, col)
	require.NoError(t, err)

	return v
}
