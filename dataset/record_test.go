// SPDX-License-Identifier: MIT

package dataset_test

import (
	"testing"

	"github.com/katalvlaran/iaa/dataset"
	"github.com/stretchr/testify/require"
)

func TestRecord_IsBreakdown(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		total, nt, nx int
		wantBreakdown bool
	}{
		{"majority", 3, 1, 1, true},
		{"exactly half", 4, 1, 1, true},
		{"below half", 5, 1, 1, false},
		{"single vote", 1, 1, 0, false},
		{"no annotators", 0, 2, 0, false},
		{"all X", 2, 0, 2, true},
	}
	for _, tc := range cases {
		r := dataset.Record{NumAnnotation: tc.total, NumT: tc.nt, NumX: tc.nx}
		require.Equal(t, tc.wantBreakdown, r.IsBreakdown(), tc.name)
	}
}

func TestRecord_IDs(t *testing.T) {
	t.Parallel()

	r := dataset.Record{FileName: "dev_sysA_01.csv", Dialogue: "x-1502", Group: "3", Turn: 7}
	require.Equal(t, "dev_sysA_01.csv-x-1502-3-7", r.ID())
	require.Equal(t, "x-1502", r.DialogueID())
	require.Equal(t, "sysA", r.SystemID())

	require.Equal(t, "sysB", dataset.SystemID("/data/a/t1/eval_sysB.v2.csv"))
	require.Equal(t, "", dataset.SystemID("plain.csv"))

	require.Equal(t, "1502", dataset.BareDialogueID("x-1502"))
	require.Equal(t, "1502", dataset.BareDialogueID("x-1502-"))
	require.Equal(t, "solo", dataset.BareDialogueID("solo"))
}

func TestRecord_Labels(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"A", "B"}, dataset.Record{Breakdown: " A | B |"}.Labels())
	require.Nil(t, dataset.Record{Breakdown: "  "}.Labels())
}
