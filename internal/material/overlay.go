package material

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Load returns the built-in table extended with the materials declared in the
// ini file at overlayPath. Each section is one material; an entry with a
// built-in name replaces it. An empty path returns Default.
//
//	[AISI 1050 Steel]
//	category = Carbon Steel
//	yield_strength_mpa = 340
//	ultimate_strength_mpa = 620
//	elastic_modulus_gpa = 200
//	poisson_ratio = 0.29
//	density_kg_m3 = 7850
//	fatigue_strength_mpa = 300
//	hardness_hb = 180
func Load(overlayPath string) (*DB, error) {
	if overlayPath == "" {
		return Default(), nil
	}
	file, err := ini.Load(overlayPath)
	if err != nil {
		return nil, fmt.Errorf("load material overlay: %w", err)
	}
	extra, err := parseOverlay(file)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(builtin)+len(extra))
	records = append(records, builtin...)
	records = append(records, extra...)
	return New(records), nil
}

func parseOverlay(file *ini.File) ([]Record, error) {
	var out []Record
	for _, sec := range file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		r := Record{
			Name:     sec.Name(),
			Category: sec.Key("category").MustString("Custom"),
		}
		fields := []struct {
			key string
			dst *float64
		}{
			{"yield_strength_mpa", &r.YieldStrengthMPa},
			{"ultimate_strength_mpa", &r.UltimateStrengthMPa},
			{"elastic_modulus_gpa", &r.ElasticModulusGPa},
			{"poisson_ratio", &r.PoissonRatio},
			{"density_kg_m3", &r.DensityKgM3},
			{"fatigue_strength_mpa", &r.FatigueStrengthMPa},
			{"hardness_hb", &r.HardnessHB},
		}
		for _, f := range fields {
			if !sec.HasKey(f.key) {
				return nil, fmt.Errorf("material %q: missing %s", r.Name, f.key)
			}
			v, err := sec.Key(f.key).Float64()
			if err != nil {
				return nil, fmt.Errorf("material %q: %s: %w", r.Name, f.key, err)
			}
			*f.dst = v
		}
		if err := Check(r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Check rejects physically meaningless records.
func Check(r Record) error {
	switch {
	case r.Name == "":
		return fmt.Errorf("material: empty name")
	case r.YieldStrengthMPa <= 0 || r.UltimateStrengthMPa <= 0:
		return fmt.Errorf("material %q: strengths must be positive", r.Name)
	case r.YieldStrengthMPa > r.UltimateStrengthMPa:
		return fmt.Errorf("material %q: yield strength exceeds ultimate strength", r.Name)
	case r.ElasticModulusGPa <= 0 || r.DensityKgM3 <= 0 || r.FatigueStrengthMPa <= 0 || r.HardnessHB <= 0:
		return fmt.Errorf("material %q: modulus, density, fatigue strength and hardness must be positive", r.Name)
	case r.PoissonRatio <= 0 || r.PoissonRatio >= 0.5:
		return fmt.Errorf("material %q: poisson ratio must be in (0, 0.5)", r.Name)
	}
	return nil
}
