// SPDX-License-Identifier: MIT

package dataset_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/iaa/dataset"
	"github.com/stretchr/testify/require"
)

func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	rowA := "d-1,1,S,system,12:00,1,Hello,2,0,1,1,A,\n" +
		"d-1,1,S,system,12:01,3,Again,2,0,2,0,B,\n" +
		"d-2,1,S,system,12:02,1,Other,2,2,0,0,,\n"
	rowB := "e-7,1,S,system,12:00,1,Hi,2,0,0,2,C,\n"

	writeFile(t, filepath.Join(root, "alice", "trial1", "dev_sysA_01.csv"), sheetHeader+rowA)
	writeFile(t, filepath.Join(root, "alice", "trial2", "dev_sysB_01.csv"), sheetHeader+rowB)
	writeFile(t, filepath.Join(root, "bob", "trial1", "dev_sysA_01.csv"), sheetHeader+rowA)
	writeFile(t, filepath.Join(root, "bob", "trial1", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, "carol", "trial1", "dev_sysA_01.csv"), sheetHeader+rowA)

	return root
}

func TestLoadDir_Filters(t *testing.T) {
	t.Parallel()
	root := fixtureTree(t)

	var buf bytes.Buffer
	recs, err := dataset.LoadDir(root, dataset.Filter{Annotators: []string{"alice", "bob"}}, captured(&buf))
	require.NoError(t, err)
	require.Len(t, recs, 7)
	for _, r := range recs {
		require.NotEqual(t, "carol", r.Annotator)
	}
	require.Contains(t, buf.String(), "annotator=alice")

	recs, err = dataset.LoadDir(root, dataset.Filter{SystemID: "sysB"}, captured(&buf))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "e-7", recs[0].Dialogue)

	_, err = dataset.LoadDir(root, dataset.Filter{Annotators: []string{"dave"}}, captured(&buf))
	require.ErrorIs(t, err, dataset.ErrNoAnnotators)

	_, err = dataset.LoadDir(filepath.Join(root, "missing"), dataset.Filter{})
	require.Error(t, err)
}

func TestSessionStats(t *testing.T) {
	t.Parallel()
	root := fixtureTree(t)

	recs, err := dataset.LoadDir(root, dataset.Filter{Annotators: []string{"alice"}}, captured(&bytes.Buffer{}))
	require.NoError(t, err)

	require.Equal(t, []dataset.SessionStat{
		{SystemID: "sysA", Sessions: 2, Annotations: 3},
		{SystemID: "sysB", Sessions: 1, Annotations: 1},
	}, dataset.SessionStats(recs))
}
