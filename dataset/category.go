// SPDX-License-Identifier: MIT

package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
)

// ParseFunc converts a raw label string into a label value.
type ParseFunc[L comparable] func(string) (L, error)

// ParseString is the identity ParseFunc.
func ParseString(s string) (string, error) { return s, nil }

// ParseInt parses base-10 integer labels.
func ParseInt(s string) (int, error) { return strconv.Atoi(s) }

// Category is a named, ordered label dictionary.
type Category[L comparable] struct {
	Name   string
	Labels []L
}

// Contains reports whether l is in the dictionary.
func (c *Category[L]) Contains(l L) bool { return slices.Contains(c.Labels, l) }

// LoadCategory reads one label per line. Lines are trimmed; blank lines and
// lines starting with '#' are skipped.
func LoadCategory[L comparable](name string, r io.Reader, parse ParseFunc[L]) (*Category[L], error) {
	c := &Category[L]{Name: name}
	seen := make(map[L]struct{})
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		l, err := parse(s)
		if err != nil {
			return nil, fmt.Errorf("category %s line %d %q: %w: %v", name, line, s, ErrParse, err)
		}
		if _, dup := seen[l]; dup {
			return nil, fmt.Errorf("category %s line %d %q: %w", name, line, s, ErrDuplicateLabel)
		}
		seen[l] = struct{}{}
		c.Labels = append(c.Labels, l)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("category %s: %w", name, err)
	}
	if len(c.Labels) == 0 {
		return nil, fmt.Errorf("category %s: %w", name, ErrEmptyCategory)
	}

	return c, nil
}

// LoadCategoryFile opens path and calls LoadCategory.
func LoadCategoryFile[L comparable](name, path string, parse ParseFunc[L]) (*Category[L], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", name, err)
	}
	defer f.Close()

	return LoadCategory(name, f, parse)
}
