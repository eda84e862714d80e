// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"slices"
	"sort"
	"strconv"

	"github.com/katalvlaran/iaa/iaa"
)

// AnnotationDataset collects breakdown turns from several annotators over a
// shared item list and converts them into annotation matrices.
type AnnotationDataset[L comparable] struct {
	category *Category[L]
	parse    ParseFunc[L]
	opts     options

	items   []string
	first   map[string]Record
	byAnnot map[string]map[string]Record
}

// NewAnnotationDataset returns an empty dataset whose labels are drawn from
// category and converted with parse.
func NewAnnotationDataset[L comparable](category *Category[L], parse ParseFunc[L], opts ...Option) (*AnnotationDataset[L], error) {
	if category == nil || len(category.Labels) == 0 {
		return nil, fmt.Errorf("NewAnnotationDataset: %w", ErrEmptyCategory)
	}
	if parse == nil {
		return nil, fmt.Errorf("NewAnnotationDataset: %w", ErrNilParseFunc)
	}

	return &AnnotationDataset[L]{
		category: category,
		parse:    parse,
		opts:     gatherOptions(opts...),
		first:    make(map[string]Record),
		byAnnot:  make(map[string]map[string]Record),
	}, nil
}

// Add stores r when it is a breakdown turn and reports whether it did.
// A later record for the same annotator and turn replaces the earlier one.
func (d *AnnotationDataset[L]) Add(r Record) bool {
	if !r.IsBreakdown() {
		return false
	}
	id := r.ID()
	if _, ok := d.first[id]; !ok {
		d.first[id] = r
		d.items = append(d.items, id)
	}
	m := d.byAnnot[r.Annotator]
	if m == nil {
		m = make(map[string]Record)
		d.byAnnot[r.Annotator] = m
	}
	m[id] = r

	return true
}

// AddAll adds every record and returns how many were kept.
func (d *AnnotationDataset[L]) AddAll(records []Record) int {
	n := 0
	for _, r := range records {
		if d.Add(r) {
			n++
		}
	}

	return n
}

// Annotators returns the annotator ids in sorted order.
func (d *AnnotationDataset[L]) Annotators() []string {
	out := make([]string, 0, len(d.byAnnot))
	for aid := range d.byAnnot {
		out = append(out, aid)
	}
	sort.Strings(out)

	return out
}

// ItemIDs returns the union of turn ids in first-seen order.
func (d *AnnotationDataset[L]) ItemIDs() []string { return append([]string(nil), d.items...) }

// NumAnnotations returns how many records annotator aid contributed.
func (d *AnnotationDataset[L]) NumAnnotations(aid string) int { return len(d.byAnnot[aid]) }

// AnnotationMatrices builds one matrix per annotator over the shared item
// list. With no aids every annotator is included. Labels that do not parse
// or are missing from the category are logged and skipped.
func (d *AnnotationDataset[L]) AnnotationMatrices(aids ...string) (map[string]*iaa.AnnotationMatrix[string, L], error) {
	if len(aids) == 0 {
		aids = d.Annotators()
	}
	log := d.opts.logger

	out := make(map[string]*iaa.AnnotationMatrix[string, L], len(aids))
	for _, aid := range aids {
		recs, ok := d.byAnnot[aid]
		if !ok {
			return nil, fmt.Errorf("AnnotationMatrices(%s): %w", aid, ErrNoAnnotators)
		}
		m, err := iaa.NewAnnotationMatrix(aid, d.items, d.category.Labels)
		if err != nil {
			return nil, fmt.Errorf("AnnotationMatrices(%s): %w", aid, err)
		}
		for _, id := range d.items {
			r, ok := recs[id]
			if !ok {
				continue
			}
			if err := d.fill(m, r); err != nil {
				log.Warn("invalid annotation data", "annotator", aid, "item", id, "err", err)
				continue
			}
			if s := m.RowSum(id); math.Abs(s-1) > d.opts.sumTolerance {
				log.Warn("inconsistent value", "annotator", aid, "item", id, "sum", s)
			}
		}
		out[aid] = m
	}

	return out, nil
}

func (d *AnnotationDataset[L]) fill(m *iaa.AnnotationMatrix[string, L], r Record) error {
	raw := r.Labels()
	if len(raw) == 0 {
		return errNoLabels
	}
	id := r.ID()
	for i, s := range raw {
		w := 1 / float64(len(raw))
		if d.opts.weights != nil {
			if i >= len(d.opts.weights) {
				d.opts.logger.Warn("label without weight", "annotator", r.Annotator, "item", id, "label", s, "position", i)
				continue
			}
			w = d.opts.weights[i]
		}
		l, err := d.parse(s)
		if err != nil {
			d.opts.logger.Warn("unparsable label", "annotator", r.Annotator, "item", id, "label", s, "err", err)
			continue
		}
		if _, err := m.Add(id, l, w); err != nil {
			d.opts.logger.Warn("label rejected", "annotator", r.Annotator, "item", id, "label", s, "err", err)
		}
	}

	return nil
}

// WriteMerged writes one CSV row per item: the turn columns of the first
// record seen, then a breakdown and remark column pair per annotator.
func (d *AnnotationDataset[L]) WriteMerged(w io.Writer) error {
	aids := d.Annotators()
	header := []string{
		"dialogueId", "groupId", "speakerId", "speaker", "time", "turnIndex", "utterance",
		"#annotation", "#O", "#T", "#X",
	}
	for _, aid := range aids {
		header = append(header, aid+":breakdown_category", aid+":Remark")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, id := range d.items {
		r := d.first[id]
		row := slices.Concat([]string{
			r.Dialogue, r.Group, r.SpeakerID, r.Speaker, r.Time, strconv.Itoa(r.Turn), r.Utterance,
		}, []string{
			strconv.Itoa(r.NumAnnotation), strconv.Itoa(r.NumO), strconv.Itoa(r.NumT), strconv.Itoa(r.NumX),
		})
		for _, aid := range aids {
			ar := d.byAnnot[aid][id]
			row = append(row, ar.Breakdown, ar.Remark)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
