package main

import (
	"github.com/spf13/cobra"

	"ShaftGear/internal/calc/gear"
	"ShaftGear/internal/calc/report"
)

func newGearCmd(opts *options) *cobra.Command {
	var (
		in       gear.Input
		gearType string
		material string
		strength string
	)
	cmd := &cobra.Command{
		Use:     "gear",
		Short:   "Check a spur or helical gear pair for bending and contact stress",
		Example: `  sgcalc gear --material "AISI 4140 Steel" --pinion-teeth 20 --gear-teeth 40 --module 3 --face 50 --power 10 --rpm 1500`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.GearType = gear.Type(gearType)
			in.ContactStrengthModel = gear.StrengthModel(strength)
			if in.PinionMaterial == "" {
				in.PinionMaterial = material
			}
			if in.GearMaterial == "" {
				in.GearMaterial = material
			}
			res, err := gear.Run(opts.validator, opts.materials, in)
			if err != nil {
				return err
			}
			pinion, err := opts.materials.Lookup(in.PinionMaterial)
			if err != nil {
				return err
			}
			wheel, err := opts.materials.Lookup(in.GearMaterial)
			if err != nil {
				return err
			}
			return opts.writeDocument(cmd, report.Gear(opts.meta, in, res, pinion, wheel, opts.now()))
		},
	}

	f := cmd.Flags()
	f.StringVar(&gearType, "type", "spur", "gear type: spur or helical")
	f.StringVarP(&material, "material", "m", "", "material of both gears")
	f.StringVar(&in.PinionMaterial, "pinion-material", "", "pinion material, overrides --material")
	f.StringVar(&in.GearMaterial, "gear-material", "", "gear material, overrides --material")
	f.IntVar(&in.PinionTeeth, "pinion-teeth", 0, "pinion tooth count")
	f.IntVar(&in.GearTeeth, "gear-teeth", 0, "gear tooth count")
	f.Float64Var(&in.ModuleMM, "module", 0, "module, mm")
	f.Float64Var(&in.FaceWidthMM, "face", 0, "face width, mm")
	f.Float64Var(&in.HelixAngleDeg, "helix", 0, "helix angle, degrees")
	f.Float64Var(&in.PressureAngleDeg, "pressure-angle", 0, "pressure angle, degrees (default 20)")
	f.Float64Var(&in.PowerKW, "power", 0, "transmitted power, kW")
	f.Float64Var(&in.PinionRPM, "rpm", 0, "pinion speed, rpm")
	f.Float64Var(&in.ServiceFactor, "service-factor", 0, "service factor (default 1.25)")
	f.IntVar(&in.QualityGrade, "quality", 0, "quality grade 6..12")
	f.StringVar(&strength, "contact-strength", "yield", "contact strength model: yield (2.8·Sy) or hardness (2.22·HB+200)")
	return cmd
}
