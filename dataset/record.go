// SPDX-License-Identifier: MIT

package dataset

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Record is one annotated turn of a dialogue sheet.
type Record struct {
	Annotator string
	FileName  string

	Dialogue  string
	Group     string
	SpeakerID string
	Speaker   string
	Time      string
	Turn      int
	Utterance string

	NumAnnotation int
	NumO          int
	NumT          int
	NumX          int

	// Breakdown holds the raw breakdown_category cell, labels separated by '|'.
	Breakdown string
	Remark    string
}

// ID identifies the turn across annotators: file-dialogue-group-turn.
func (r Record) ID() string {
	return r.FileName + "-" + r.Dialogue + "-" + r.Group + "-" + strconv.Itoa(r.Turn)
}

// DialogueID returns the dialogue id as written in the sheet.
func (r Record) DialogueID() string { return r.Dialogue }

// SystemID returns the second '_' field of the base file name with its
// extension removed, or "" when the name has no such field.
func (r Record) SystemID() string { return SystemID(r.FileName) }

// IsBreakdown reports whether enough annotators flagged the turn as a
// breakdown: with n = #T + #X, it requires #annotation > 0, 2n >= #annotation
// and n > 1.
func (r Record) IsBreakdown() bool {
	n := r.NumT + r.NumX

	return r.NumAnnotation > 0 && 2*n >= r.NumAnnotation && n > 1
}

// Labels splits Breakdown on '|' and trims each part. Empty parts are dropped.
func (r Record) Labels() []string {
	var out []string
	for _, s := range strings.Split(r.Breakdown, "|") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}

// SystemID extracts the system id from a sheet file name such as
// "dev_sysA_01.csv" ("sysA").
func SystemID(fileName string) string {
	base := filepath.Base(fileName)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return ""
	}

	return parts[1]
}

// BareDialogueID returns the last non-empty '-' part of a dialogue id.
func BareDialogueID(dialogue string) string {
	parts := strings.Split(dialogue, "-")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}

	return ""
}
