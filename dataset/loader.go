// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Filter narrows LoadDir. Empty fields match everything.
type Filter struct {
	Annotators []string
	SystemID   string
}

// LoadDir reads root/<annotator>/<trial>/*.{xlsx,csv} in lexical order. Annotator
// directories not named by f are skipped, as are records of other systems
// when f.SystemID is set.
func LoadDir(root string, f Filter, opts ...Option) ([]Record, error) {
	o := gatherOptions(opts...)

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	var out []Record
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		aid := e.Name()
		if len(f.Annotators) > 0 && !slices.Contains(f.Annotators, aid) {
			continue
		}
		var files []string
		err := filepath.WalkDir(filepath.Join(root, aid), func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && sheetReader(p) != nil {
				files = append(files, p)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		sort.Strings(files)

		n := 0
		for _, p := range files {
			recs, err := sheetReader(p)(p, aid)
			if err != nil {
				return nil, fmt.Errorf("dataset: %w", err)
			}
			for _, r := range recs {
				if f.SystemID != "" && r.SystemID() != f.SystemID {
					continue
				}
				out = append(out, r)
				n++
			}
		}
		o.logger.Info("loaded annotations", "annotator", aid, "files", len(files), "records", n)
	}
	if len(out) == 0 && len(f.Annotators) > 0 {
		return nil, fmt.Errorf("dataset: %v under %s: %w", f.Annotators, root, ErrNoAnnotators)
	}

	return out, nil
}

// SessionStat counts the dialogues and annotated turns of one system.
type SessionStat struct {
	SystemID    string `json:"system_id" yaml:"system_id"`
	Sessions    int    `json:"sessions" yaml:"sessions"`
	Annotations int    `json:"annotations" yaml:"annotations"`
}

// SessionStats groups records by system id, counting distinct bare dialogue
// ids as sessions. The result is sorted by system id.
func SessionStats(records []Record) []SessionStat {
	sessions := make(map[string]map[string]struct{})
	turns := make(map[string]int)
	for _, r := range records {
		sid := r.SystemID()
		if sessions[sid] == nil {
			sessions[sid] = make(map[string]struct{})
		}
		sessions[sid][BareDialogueID(r.Dialogue)] = struct{}{}
		turns[sid]++
	}

	out := make([]SessionStat, 0, len(sessions))
	for sid, s := range sessions {
		out = append(out, SessionStat{SystemID: sid, Sessions: len(s), Annotations: turns[sid]})
	}
	slices.SortFunc(out, func(a, b SessionStat) int { return strings.Compare(a.SystemID, b.SystemID) })

	return out
}
