// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/iaa/config"
	"github.com/katalvlaran/iaa/dataset"
	"github.com/katalvlaran/iaa/report"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	configPath string
	flags      config.Config
	cfg        *config.Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "iaa",
		Short:         "Inter-annotator agreement for dialogue breakdown annotations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	def := config.Default()
	pf.StringVar(&a.configPath, "config", "", "TOML configuration file")
	pf.StringVarP(&a.flags.Input, "input", "i", def.Input, "input directory (<input>/<annotator>/<trial>/*.{xlsx,csv})")
	pf.StringVarP(&a.flags.Output, "output", "o", "", "output file (default stdout)")
	pf.StringVarP(&a.flags.Category, "category", "c", def.Category, "category dictionary name")
	pf.StringVar(&a.flags.DictionaryDir, "dic", def.DictionaryDir, "dictionary directory")
	pf.StringVarP(&a.flags.Language, "lang", "l", def.Language, "dictionary language")
	pf.StringVar(&a.flags.SystemFilter, "ds", "", "only use sheets of this system id")
	pf.Float64SliceVar(&a.flags.Weights, "weights", nil, "positional label weights (default equal split)")
	pf.StringVar(&a.flags.Format, "format", def.Format, "report format: "+strings.Join(config.Formats, "|"))
	pf.StringVar(&a.flags.HTML, "html", "", "write heat maps to this HTML file")
	pf.StringVar(&a.flags.PNGDir, "png-dir", "", "write heat map images into this directory")
	pf.StringVar(&a.flags.LogLevel, "log-level", def.LogLevel, "debug|info|warn|error")

	cmd.AddCommand(newPairCmd(a), newAllCmd(a), newMaaCmd(a), newMergeCmd(a))

	return cmd
}

// setup loads the configuration file, applies explicitly set flags and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("input", &cfg.Input, a.flags.Input)
	set("output", &cfg.Output, a.flags.Output)
	set("category", &cfg.Category, a.flags.Category)
	set("dic", &cfg.DictionaryDir, a.flags.DictionaryDir)
	set("lang", &cfg.Language, a.flags.Language)
	set("ds", &cfg.SystemFilter, a.flags.SystemFilter)
	set("format", &cfg.Format, a.flags.Format)
	set("html", &cfg.HTML, a.flags.HTML)
	set("png-dir", &cfg.PNGDir, a.flags.PNGDir)
	set("log-level", &cfg.LogLevel, a.flags.LogLevel)
	set("annotator1", &cfg.Annotator1, a.flags.Annotator1)
	set("annotator2", &cfg.Annotator2, a.flags.Annotator2)
	if flags.Changed("weights") {
		cfg.Weights = a.flags.Weights
	}
	if flags.Changed("annotators") {
		cfg.Annotators = a.flags.Annotators
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return nil
}

// load reads the dictionary and the sheets and keeps the breakdown turns.
func (a *app) load() (*dataset.Category[string], *dataset.AnnotationDataset[string], []dataset.Record, error) {
	cfg := a.cfg
	cat, err := dataset.LoadCategoryFile(cfg.Category, cfg.DictionaryPath(), dataset.ParseString)
	if err != nil {
		return nil, nil, nil, err
	}

	var annotators []string
	switch {
	case len(cfg.Annotators) > 0:
		annotators = cfg.Annotators
	case cfg.Annotator1 != "" && cfg.Annotator2 != "":
		annotators = []string{cfg.Annotator1, cfg.Annotator2}
	}
	records, err := dataset.LoadDir(cfg.Input, dataset.Filter{Annotators: annotators, SystemID: cfg.SystemFilter},
		dataset.WithLogger(a.log))
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []dataset.Option{dataset.WithLogger(a.log)}
	if len(cfg.Weights) > 0 {
		opts = append(opts, dataset.WithWeights(cfg.Weights...))
	}
	ds, err := dataset.NewAnnotationDataset(cat, dataset.ParseString, opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	kept := ds.AddAll(records)
	a.log.Info("breakdown turns", "records", len(records), "kept", kept, "items", len(ds.ItemIDs()))

	return cat, ds, records, nil
}

// output opens the configured output file, or returns the command's stdout.
func (a *app) output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if a.cfg.Output == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(a.cfg.Output)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}

// emit writes r in the configured format plus any requested heat maps.
func (a *app) emit(cmd *cobra.Command, r report.Report) (err error) {
	w, closeFn, err := a.output(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); err == nil {
			err = cerr
		}
	}()
	if err = report.Write(w, a.cfg.Format, r); err != nil {
		return err
	}

	if a.cfg.HTML != "" {
		f, err := os.Create(a.cfg.HTML)
		if err != nil {
			return err
		}
		if err = report.WriteHeatmapHTML(f, r); err != nil {
			f.Close()
			return err
		}
		if err = f.Close(); err != nil {
			return err
		}
		a.log.Info("wrote heat maps", "path", a.cfg.HTML)
	}

	if a.cfg.PNGDir != "" {
		if err = os.MkdirAll(a.cfg.PNGDir, 0o755); err != nil {
			return err
		}
		for _, t := range r.Tables() {
			path := filepath.Join(a.cfg.PNGDir, fmt.Sprintf("%s-%s.png", r.ID()[:8], strings.ReplaceAll(t.Name, " ", "_")))
			if err = report.WriteHeatmapPNG(path, t); err != nil {
				return err
			}
			a.log.Info("wrote heat map", "path", path)
		}
	}

	return nil
}
