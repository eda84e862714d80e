// SPDX-License-Identifier: MIT

package dataset_test

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/iaa/dataset"
)

func ExampleAnnotationDataset() {
	cat, _ := dataset.LoadCategory("TD", strings.NewReader("A\nB\n"), dataset.ParseString)
	ds, _ := dataset.NewAnnotationDataset(cat, dataset.ParseString,
		dataset.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	sheet := "dialogueId,groupId,speakerId,speaker,time,turnIndex,utterance,#annotation,#O,#T,#X,breakdown_category,Remark\n" +
		"d-1,1,S,system,12:00,1,Hello,2,0,1,1,A|B,\n" +
		"d-1,1,S,system,12:01,3,Fine,2,2,0,0,,\n"
	recs, _ := dataset.ReadCSV(strings.NewReader(sheet), "alice", "dev_sysA_01.csv")
	fmt.Println("kept", ds.AddAll(recs), "of", len(recs))

	ms, _ := ds.AnnotationMatrices()
	fmt.Println(ms["alice"].Row("dev_sysA_01.csv-d-1-1-1"))
	// Output:
	// kept 1 of 2
	// map[A:0.5 B:0.5] true
}
