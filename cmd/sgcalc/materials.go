package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ShaftGear/internal/export"
	"ShaftGear/internal/material"
)

func newMaterialsCmd(opts *options) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List the material database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db := opts.materials
			if category != "" {
				db = material.New(db.ByCategory(category))
			}
			format, err := opts.exportFormat()
			if err != nil {
				return err
			}
			w, closeOut, err := opts.output(cmd)
			if err != nil {
				return err
			}

			switch format {
			case export.CSV:
				err = db.Table().WriteCSV(w)
			case export.XLSX:
				err = db.Table().WriteXLSX(w)
			case export.JSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				err = enc.Encode(db.All())
			case export.TXT:
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tCATEGORY\tYIELD MPa\tUTS MPa\tE GPa\tDENSITY kg/m3")
				for _, m := range db.All() {
					fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\n",
						m.Name, m.Category, m.YieldStrengthMPa, m.UltimateStrengthMPa, m.ElasticModulusGPa, m.DensityKgM3)
				}
				err = tw.Flush()
			default:
				err = fmt.Errorf("materials cannot be written as %s", format)
			}
			if err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list this category")
	return cmd
}
