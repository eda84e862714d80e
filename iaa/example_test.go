// SPDX-License-Identifier: MIT

package iaa_test

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/iaa/iaa"
)

// ExampleWeightedKappa compares two annotators over three items, one of them
// split between two labels.
func ExampleWeightedKappa() {
	items := []string{"t1", "t2", "t3"}
	cats := []string{"O", "T", "X"}

	alice, _ := iaa.NewAnnotationMatrix("alice", items, cats)
	alice.Add("t1", "O", 1)
	alice.Add("t2", "T", 0.5)
	alice.Add("t2", "X", 0.5)
	alice.Add("t3", "X", 1)

	bob, _ := iaa.NewAnnotationMatrix("bob", items, cats)
	bob.Add("t1", "O", 1)
	bob.Add("t2", "T", 1)
	bob.Add("t3", "X", 1)

	wk, _ := iaa.NewWeightedKappa(map[string]*iaa.AnnotationMatrix[string, string]{
		"alice": alice, "bob": bob,
	}, iaa.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	fmt.Printf("agreement=%.3f kappa=%.3f\n", wk.Agreement(), wk.Kappa())
	fmt.Print(wk.ConfusionMatrix())
	// Output:
	// agreement=0.889 kappa=0.833
	// *, O, T, X
	// O, 1, 0, 0
	// T, 0, 0.5, 0
	// X, 0, 0.5, 1
}
