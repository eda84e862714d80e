// SPDX-License-Identifier: MIT

// Command iaa measures inter-annotator agreement on dialogue breakdown
// annotations.
//
//	iaa pair -1 alice -2 bob        weighted kappa of two annotators
//	iaa all  -a alice,bob,carol     every pairwise kappa with mean ± deviation
//	iaa maa  -a alice,bob,carol     weighted Fleiss kappa and matrix views
//	iaa merge -o merged.csv         one row per turn, one column pair per annotator
//
// Sheets are read from <input>/<annotator>/<trial>/*.{xlsx,csv}, the category
// dictionary from <dic>/<category>[_ja].dic.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "iaa:", err)
		os.Exit(1)
	}
}
