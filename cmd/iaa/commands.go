// SPDX-License-Identifier: MIT

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/iaa/dataset"
	"github.com/katalvlaran/iaa/iaa"
	"github.com/katalvlaran/iaa/report"
)

func newPairCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Weighted kappa between two annotators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Annotator1 == "" || a.cfg.Annotator2 == "" {
				return errors.New("pair: both -1 and -2 are required")
			}
			_, ds, _, err := a.load()
			if err != nil {
				return err
			}
			ms, err := ds.AnnotationMatrices(a.cfg.Annotator1, a.cfg.Annotator2)
			if err != nil {
				return err
			}
			k, err := iaa.NewWeightedKappa(ms, iaa.WithLogger(a.log))
			if err != nil {
				return err
			}
			r, err := report.NewPairReport(k)
			if err != nil {
				return err
			}

			return a.emit(cmd, r)
		},
	}
	cmd.Flags().StringVarP(&a.flags.Annotator1, "annotator1", "1", "", "first annotator id")
	cmd.Flags().StringVarP(&a.flags.Annotator2, "annotator2", "2", "", "second annotator id")

	return cmd
}

func newAllCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Weighted kappa of every annotator pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, ds, _, err := a.load()
			if err != nil {
				return err
			}
			ms, err := ds.AnnotationMatrices(a.cfg.Annotators...)
			if err != nil {
				return err
			}
			t, err := iaa.AllPairs(ms, a.cfg.Annotators, iaa.WithLogger(a.log), iaa.WithWorkers(workers))
			if err != nil {
				return err
			}
			r, err := report.NewAllPairsReport(t, cat.Labels)
			if err != nil {
				return err
			}

			return a.emit(cmd, r)
		},
	}
	annotatorsFlag(cmd, a)
	cmd.Flags().IntVar(&workers, "workers", 0, "pairs evaluated concurrently (0: unbounded)")

	return cmd
}

func newMaaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maa",
		Short: "Weighted Fleiss kappa over many annotators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, ds, records, err := a.load()
			if err != nil {
				return err
			}
			ms, err := ds.AnnotationMatrices(a.cfg.Annotators...)
			if err != nil {
				return err
			}
			f, err := iaa.NewWeightedFleissKappa(ms, cat.Labels, iaa.WithLogger(a.log))
			if err != nil {
				return err
			}
			r, err := report.NewMultiReport(f, dataset.SessionStats(records), a.cfg.MatrixOptions(a.log)...)
			if err != nil {
				return err
			}

			return a.emit(cmd, r)
		},
	}
	annotatorsFlag(cmd, a)

	return cmd
}

func newMergeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Write the breakdown turns of all annotators side by side as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			_, ds, _, err := a.load()
			if err != nil {
				return err
			}
			w, closeFn, err := a.output(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeFn(); err == nil {
					err = cerr
				}
			}()

			return ds.WriteMerged(w)
		},
	}
	annotatorsFlag(cmd, a)

	return cmd
}

func annotatorsFlag(cmd *cobra.Command, a *app) {
	cmd.Flags().StringSliceVarP(&a.flags.Annotators, "annotators", "a", nil, "comma separated annotator ids (default all)")
}
