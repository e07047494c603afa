package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ShaftGear/internal/units"
)

func newConvertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "convert VALUE FROM TO",
		Short:   "Convert a value between engineering units",
		Example: "  sgcalc convert 500 Nm lbft",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("value %q is not a number", args[0])
			}
			out, err := units.Convert(value, args[1], args[2])
			if err != nil {
				return err
			}
			res := units.ConvertResult{Value: out, Unit: args[2], Formatted: units.FormatEngineering(out, 4)}

			w := cmd.OutOrStdout()
			switch opts.format {
			case "json":
				return json.NewEncoder(w).Encode(res)
			case "csv":
				_, err = fmt.Fprintf(w, "value,unit\n%s,%s\n", strconv.FormatFloat(out, 'g', -1, 64), args[2])
				return err
			default:
				_, err = fmt.Fprintf(w, "%s %s = %s %s\n", args[0], args[1], res.Formatted, args[2])
				return err
			}
		},
	}
}
