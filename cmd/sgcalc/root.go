package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ShaftGear/internal/calc/report"
	"ShaftGear/internal/export"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

// options are the flags shared by every subcommand.
type options struct {
	format    string
	out       string
	overlay   string
	meta      report.Meta
	now       func() time.Time
	materials *material.DB
	validator *validate.Validator
}

func newRootCmd() *cobra.Command {
	opts := &options{now: time.Now}

	root := &cobra.Command{
		Use:   "sgcalc",
		Short: "Shaft and gear design calculations",
		Long: `sgcalc checks shafts and gear pairs against their material limits.

Units: lengths in mm, forces in N, moments and torques in N·m,
power in kW, stresses in MPa.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			db, err := material.Load(opts.overlay)
			if err != nil {
				return err
			}
			opts.materials = db
			opts.validator = validate.New(db)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.format, "format", "f", "text", "output format: text, csv, json, pdf or xlsx")
	pf.StringVarP(&opts.out, "out", "o", "", "write output to this file instead of stdout")
	pf.StringVar(&opts.overlay, "materials", "", "ini file with extra materials")
	pf.StringVar(&opts.meta.Project, "project", "", "project name for reports")
	pf.StringVar(&opts.meta.Author, "author", "", "author name for reports")
	pf.StringVar(&opts.meta.Title, "title", "", "report title")
	pf.StringVar(&opts.meta.Notes, "notes", "", "notes added to reports")

	root.AddCommand(
		newShaftCmd(opts),
		newGearCmd(opts),
		newMaterialsCmd(opts),
		newConvertCmd(opts),
	)
	return root
}

func (o *options) exportFormat() (export.Format, error) {
	f, err := export.ParseFormat(o.format)
	if err != nil {
		return "", err
	}
	if (f == export.PDF || f == export.XLSX) && o.out == "" {
		return "", fmt.Errorf("--format %s needs --out", f)
	}
	return f, nil
}

// output returns the writer selected by --out and a function closing it.
func (o *options) output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if o.out == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(o.out)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func (o *options) writeDocument(cmd *cobra.Command, doc export.Document) error {
	format, err := o.exportFormat()
	if err != nil {
		return err
	}
	w, closeOut, err := o.output(cmd)
	if err != nil {
		return err
	}
	if err := export.Write(w, format, doc); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	if o.out != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", o.out)
	}
	return nil
}
