// Package report turns calculation inputs and results into export documents.
package report

import (
	"time"

	"ShaftGear/internal/calc/fatigue"
	"ShaftGear/internal/calc/gear"
	"ShaftGear/internal/calc/safety"
	"ShaftGear/internal/calc/shaft"
	"ShaftGear/internal/export"
	"ShaftGear/internal/material"
)

type Meta struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

func (m Meta) document(kind, defaultTitle string, t time.Time) export.Document {
	title := m.Title
	if title == "" {
		title = defaultTitle
	}
	return export.Document{
		Kind:      kind,
		Title:     title,
		Project:   m.Project,
		Author:    m.Author,
		Generated: t,
		Notes:     m.Notes,
	}
}

func materialFields(r material.Record) []export.Field {
	return []export.Field{
		export.Text("Name", r.Name),
		export.Text("Category", r.Category),
		export.Num("Yield strength", r.YieldStrengthMPa, "MPa"),
		export.Num("Ultimate strength", r.UltimateStrengthMPa, "MPa"),
		export.Num("Elastic modulus", r.ElasticModulusGPa, "GPa"),
		export.Num("Poisson ratio", r.PoissonRatio, ""),
		export.Num("Density", r.DensityKgM3, "kg/m³"),
		export.Num("Fatigue strength", r.FatigueStrengthMPa, "MPa"),
		export.Num("Hardness", r.HardnessHB, "HB"),
	}
}

func checkFields(name string, c safety.Check) []export.Field {
	return []export.Field{
		export.Num(name+" safety factor", c.Factor, ""),
		export.Num(name+" required", c.Required, ""),
		export.Bool(name+" status", c.MeetsRequired),
	}
}

func notes(extra ...string) string {
	out := ""
	for _, n := range extra {
		if n == "" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += n
	}
	return out
}

func Shaft(m Meta, in shaft.Input, res shaft.Result, mat material.Record, t time.Time) export.Document {
	doc := m.document("shaft", "Shaft Design Report", t)
	support := in.Support
	if support == "" {
		support = shaft.SimplySupportedCenterLoad
	}
	doc.Summary = []export.Field{
		export.Text("Analysis", "Shaft Design Analysis"),
		export.Num("Outer diameter", in.OuterDiameterMM, "mm"),
		export.Num("Applied torque", in.TorqueNM, "N·m"),
		export.Text("Material", res.Material),
	}
	doc.Parameters = []export.Field{
		export.Text("Material", in.Material),
		export.Num("Torque", in.TorqueNM, "N·m"),
		export.Num("Bending moment", in.BendingMomentNM, "N·m"),
		export.Num("Axial force", in.AxialForceN, "N"),
		export.Num("Outer diameter", in.OuterDiameterMM, "mm"),
		export.Num("Inner diameter", in.InnerDiameterMM, "mm"),
		export.Num("Length", in.LengthMM, "mm"),
		export.Text("Support", string(support)),
	}
	doc.Results = []export.Field{
		export.Num("Cross-section area", res.AreaMM2, "mm²"),
		export.Num("Second moment of area", res.IMM4, "mm⁴"),
		export.Num("Polar moment of area", res.JMM4, "mm⁴"),
		export.Num("Axial stress", res.AxialStressMPa, "MPa"),
		export.Num("Bending stress", res.BendingStressMPa, "MPa"),
		export.Num("Torsional stress", res.TorsionalStressMPa, "MPa"),
		export.Num("Von Mises stress", res.VonMisesMPa, "MPa"),
		export.Num("Deflection", res.DeflectionMM, "mm"),
		export.Num("Deflection limit", res.DeflectionLimitMM, "mm"),
		export.Num("Angle of twist", res.TwistDeg, "°"),
		export.Num("Twist limit", res.TwistLimitDeg, "°"),
		export.Num("Euler buckling load", res.BucklingLoadN, "N"),
		export.Num("Weight", res.WeightKgPerM, "kg/m"),
	}
	doc.Material = materialFields(mat)
	doc.Checks = append(checkFields("Static", res.Safety),
		export.Bool("Yield check", res.Pass),
		export.Bool("Deflection check", res.OKDeflection),
		export.Bool("Twist check", res.OKTwist),
	)
	if in.AxialForceN > 0 {
		doc.Checks = append(doc.Checks,
			export.Num("Buckling safety factor", res.BucklingSF, ""),
			export.Bool("Buckling check", res.OKBuckling),
		)
	}
	doc.Notes = notes(m.Notes, res.Notes)
	return doc
}

func Gear(m Meta, in gear.Input, res gear.Result, pinion, wheel material.Record, t time.Time) export.Document {
	doc := m.document("gear", "Gear Design Report", t)
	g := res.Geometry
	doc.Summary = []export.Field{
		export.Text("Analysis", "Gear Design Analysis"),
		export.Num("Gear ratio", g.Ratio, ""),
		export.Num("Power rating", in.PowerKW, "kW"),
		export.Num("Center distance", g.CenterDistanceMM, "mm"),
	}
	doc.Parameters = []export.Field{
		export.Text("Gear type", string(res.GearType)),
		export.Num("Pinion teeth", float64(in.PinionTeeth), ""),
		export.Num("Gear teeth", float64(in.GearTeeth), ""),
		export.Num("Module", in.ModuleMM, "mm"),
		export.Num("Face width", in.FaceWidthMM, "mm"),
		export.Num("Helix angle", in.HelixAngleDeg, "°"),
		export.Num("Power", in.PowerKW, "kW"),
		export.Num("Pinion speed", in.PinionRPM, "rpm"),
		export.Text("Pinion material", res.Pinion.Material),
		export.Text("Gear material", res.Gear.Material),
		export.Num("Service factor", res.ServiceFactor, ""),
		export.Text("Contact strength model", string(res.ContactStrengthModel)),
	}
	doc.Results = []export.Field{
		export.Num("Pinion pitch diameter", g.PinionPitchDiameterMM, "mm"),
		export.Num("Gear pitch diameter", g.GearPitchDiameterMM, "mm"),
		export.Num("Gear speed", g.GearRPM, "rpm"),
		export.Num("Pinion torque", g.PinionTorqueNM, "N·m"),
		export.Num("Gear torque", g.GearTorqueNM, "N·m"),
		export.Num("Pitch line velocity", g.PitchLineVelocityMS, "m/s"),
		export.Num("Transmitted load", g.TransmittedLoadN, "N"),
		export.Num("Dynamic factor", res.DynamicFactor, ""),
		export.Num("Design load", res.DesignLoadN, "N"),
		export.Num("Pinion Lewis factor", res.Pinion.LewisFactor, ""),
		export.Num("Gear Lewis factor", res.Gear.LewisFactor, ""),
		export.Num("Pinion bending stress", res.Pinion.BendingStressMPa, "MPa"),
		export.Num("Gear bending stress", res.Gear.BendingStressMPa, "MPa"),
		export.Num("Elastic coefficient", res.ElasticCoefficient, "√MPa"),
		export.Num("Contact geometry factor", res.ContactGeometryFactor, ""),
		export.Num("Contact stress", res.ContactStressMPa, "MPa"),
	}
	doc.Material = materialFields(pinion)
	if wheel.Name != pinion.Name {
		doc.Material = append(doc.Material, materialFields(wheel)...)
	}
	doc.Checks = append(doc.Checks, checkFields("Pinion bending", res.Pinion.Bending)...)
	doc.Checks = append(doc.Checks, checkFields("Gear bending", res.Gear.Bending)...)
	doc.Checks = append(doc.Checks, checkFields("Pinion contact", res.Pinion.Contact)...)
	doc.Checks = append(doc.Checks, checkFields("Gear contact", res.Gear.Contact)...)
	doc.Checks = append(doc.Checks,
		export.Bool("Overall", res.Pass),
		export.Bool("Meets required factors", res.MeetsRequired),
	)
	doc.Notes = notes(m.Notes, res.Notes)
	return doc
}

func Fatigue(m Meta, in fatigue.Input, res fatigue.Result, mat material.Record, t time.Time) export.Document {
	doc := m.document("fatigue", "Fatigue Analysis Report", t)
	life := export.Text("Estimated life", "infinite")
	if !res.Life.Infinite {
		life = export.Num("Estimated life", res.Life.Cycles, "cycles")
	}
	feature := in.Feature
	if feature == "" {
		feature = fatigue.Plain
	}
	doc.Summary = []export.Field{
		export.Text("Analysis", "Fatigue Analysis"),
		export.Text("Material", res.Material),
		life,
	}
	doc.Parameters = []export.Field{
		export.Text("Material", in.Material),
		export.Num("Stress amplitude", in.StressAmplitudeMPa, "MPa"),
		export.Num("Diameter", in.DiameterMM, "mm"),
		export.Text("Surface finish", orDefault(string(in.SurfaceFinish), string(fatigue.Machined))),
		export.Text("Loading", orDefault(string(in.Loading), string(fatigue.Bending))),
		export.Text("Feature", string(feature)),
	}
	doc.Results = []export.Field{
		export.Num("Surface factor", res.SurfaceFactor, ""),
		export.Num("Size factor", res.SizeFactor, ""),
		export.Num("Stress concentration", res.StressConcentration, ""),
		export.Num("Endurance limit", res.EnduranceLimitMPa, "MPa"),
		export.Num("Effective amplitude", res.EffectiveAmplitudeMPa, "MPa"),
		life,
	}
	doc.Material = materialFields(mat)
	doc.Checks = checkFields("Fatigue", res.Safety)
	doc.Notes = notes(m.Notes, res.Notes)
	return doc
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
