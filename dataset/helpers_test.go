// SPDX-License-Identifier: MIT

package dataset_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/iaa/dataset"
	"github.com/stretchr/testify/require"
)

const sheetHeader = "dialogueId,groupId,speakerId,speaker,time,turnIndex,utterance,#annotation,#O,#T,#X,breakdown_category,Remark\n"

// captured returns an option logging into buf at debug level.
func captured(buf *bytes.Buffer) dataset.Option {
	return dataset.WithLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func mustCategory(t *testing.T, labels ...string) *dataset.Category[string] {
	t.Helper()

	return &dataset.Category[string]{Name: "TD", Labels: labels}
}

// breakdown returns a record every annotator flagged.
func breakdown(annotator string, turn int, labels string) dataset.Record {
	return dataset.Record{
		Annotator:     annotator,
		FileName:      "dev_sysA_01.csv",
		Dialogue:      "d-1",
		Group:         "1",
		Turn:          turn,
		NumAnnotation: 2,
		NumX:          2,
		Breakdown:     labels,
	}
}
