package material

import (
	"sort"
	"strings"

	"ShaftGear/internal/calcerr"
)

type Record struct {
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	YieldStrengthMPa    float64 `json:"yield_strength_mpa"`
	UltimateStrengthMPa float64 `json:"ultimate_strength_mpa"`
	ElasticModulusGPa   float64 `json:"elastic_modulus_gpa"`
	PoissonRatio        float64 `json:"poisson_ratio"`
	DensityKgM3         float64 `json:"density_kg_m3"`
	FatigueStrengthMPa  float64 `json:"fatigue_strength_mpa"` // at 10^6 cycles
	HardnessHB          float64 `json:"hardness_hb"`
}

// SpecificStrength is yield strength per unit density in MPa/(g/cm3).
func SpecificStrength(r Record) float64 {
	if r.DensityKgM3 <= 0 {
		return 0
	}
	return r.YieldStrengthMPa / (r.DensityKgM3 / 1000.0)
}

// Source is what calculators and validators need from the database.
type Source interface {
	Lookup(name string) (Record, error)
}

// DB is a read-only material table. It is never modified after New returns.
type DB struct {
	byName map[string]Record
	names  []string
}

func New(records []Record) *DB {
	db := &DB{byName: make(map[string]Record, len(records))}
	for _, r := range records {
		if _, dup := db.byName[r.Name]; !dup {
			db.names = append(db.names, r.Name)
		}
		db.byName[r.Name] = r
	}
	sort.Strings(db.names)
	return db
}

var builtinDB = New(builtin)

// Default returns the built-in table.
func Default() *DB {
	return builtinDB
}

// Lookup resolves a name exactly, then case-insensitively, then as a bare
// designation ("AISI 1045") that prefixes exactly one full name at a word
// boundary. Ambiguous designations are not found.
func (db *DB) Lookup(name string) (Record, error) {
	if r, ok := db.byName[name]; ok {
		return r, nil
	}
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return Record{}, calcerr.NotFound("material", name)
	}
	for _, n := range db.names {
		if strings.EqualFold(n, name) {
			return db.byName[n], nil
		}
	}
	prefix := strings.ToLower(name) + " "
	var match string
	for _, n := range db.names {
		if !strings.HasPrefix(strings.ToLower(n), prefix) {
			continue
		}
		if match != "" {
			return Record{}, calcerr.NotFound("material", name)
		}
		match = n
	}
	if match != "" {
		return db.byName[match], nil
	}
	return Record{}, calcerr.NotFound("material", name)
}

func (db *DB) Has(name string) bool {
	_, err := db.Lookup(name)
	return err == nil
}

func (db *DB) Len() int {
	return len(db.names)
}

func (db *DB) Names() []string {
	out := make([]string, len(db.names))
	copy(out, db.names)
	return out
}

func (db *DB) All() []Record {
	out := make([]Record, 0, len(db.names))
	for _, n := range db.names {
		out = append(out, db.byName[n])
	}
	return out
}

// Categories are presentation groupings only; lookups never use them.
func (db *DB) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range db.byName {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	sort.Strings(out)
	return out
}

func (db *DB) ByCategory(category string) []Record {
	var out []Record
	for _, n := range db.names {
		if r := db.byName[n]; strings.EqualFold(r.Category, category) {
			out = append(out, r)
		}
	}
	return out
}

// Ranked is a material name with the value it was ranked by.
type Ranked struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func (db *DB) rank(n int, key func(Record) float64) []Ranked {
	out := make([]Ranked, 0, len(db.names))
	for _, name := range db.names {
		out = append(out, Ranked{Name: name, Value: key(db.byName[name])})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// StrongestByYield lists the n materials with the highest yield strength (MPa).
func (db *DB) StrongestByYield(n int) []Ranked {
	return db.rank(n, func(r Record) float64 { return r.YieldStrengthMPa })
}

// StrongestBySpecificStrength lists the n lightest-for-strength materials.
func (db *DB) StrongestBySpecificStrength(n int) []Ranked {
	return db.rank(n, SpecificStrength)
}

// Applications maps typical shaft/gear applications to suggested materials.
func Applications() map[string][]string {
	return map[string][]string{
		"General Purpose Shafts":  {"AISI 1045 Steel", "AISI 4140 Steel"},
		"High-Speed Applications": {"AISI 4340 Steel", "Tool Steel D2"},
		"Corrosion Resistance":    {"AISI 316 Stainless Steel", "AISI 17-4 PH Stainless Steel"},
		"Lightweight Design":      {"Aluminum 7075-T6", "Titanium Ti-6Al-4V"},
		"High Temperature":        {"Inconel 718", "AISI 17-4 PH Stainless Steel"},
		"Cost-Effective":          {"AISI 1020 Steel", "Cast Iron ASTM A48 Class 30"},
	}
}
