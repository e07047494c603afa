package main

import (
	"github.com/spf13/cobra"

	"ShaftGear/internal/calc/report"
	"ShaftGear/internal/calc/shaft"
)

func newShaftCmd(opts *options) *cobra.Command {
	var (
		in      shaft.Input
		support string
	)
	cmd := &cobra.Command{
		Use:   "shaft",
		Short: "Check a solid or hollow shaft under combined load",
		Example: `  sgcalc shaft --material "AISI 1045 Steel" --torque 500 --moment 300 --diameter 40 --length 500
  sgcalc shaft --material "AISI 4140 Steel" --torque 800 --diameter 50 --inner 30 --length 600 -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Support = shaft.Support(support)
			res, err := shaft.Run(opts.validator, opts.materials, in)
			if err != nil {
				return err
			}
			mat, err := opts.materials.Lookup(in.Material)
			if err != nil {
				return err
			}
			return opts.writeDocument(cmd, report.Shaft(opts.meta, in, res, mat, opts.now()))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&in.Material, "material", "m", "", "material name")
	f.Float64Var(&in.TorqueNM, "torque", 0, "torque, N·m")
	f.Float64Var(&in.BendingMomentNM, "moment", 0, "bending moment, N·m")
	f.Float64Var(&in.AxialForceN, "axial", 0, "axial force, N")
	f.Float64VarP(&in.OuterDiameterMM, "diameter", "d", 0, "outer diameter, mm")
	f.Float64Var(&in.InnerDiameterMM, "inner", 0, "inner diameter for hollow shafts, mm")
	f.Float64VarP(&in.LengthMM, "length", "l", 0, "span length, mm")
	f.Float64Var(&in.TargetSafetyFactor, "sf", 0, "target safety factor (default 2)")
	f.StringVar(&support, "support", "", "support case, e.g. simply_supported_center_load")
	cmd.MarkFlagRequired("material")
	return cmd
}
