package material

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/export"
	"ShaftGear/internal/httpx"
)

type Handler struct {
	DB *DB
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if c := r.URL.Query().Get("category"); c != "" {
		out := h.DB.ByCategory(c)
		if out == nil {
			out = []Record{}
		}
		httpx.JSON(w, http.StatusOK, out)
		return
	}
	httpx.JSON(w, http.StatusOK, h.DB.All())
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.DB.Lookup(mux.Vars(r)["name"])
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Record
		SpecificStrength float64 `json:"specific_strength"`
	}{rec, SpecificStrength(rec)})
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.DB.Categories())
}

type Rankings struct {
	ByYield            []Ranked `json:"by_yield"`
	BySpecificStrength []Ranked `json:"by_specific_strength"`
}

// Rankings lists the top materials; ?n= limits the list (default 5).
func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	n := 5
	if s := r.URL.Query().Get("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			httpx.Error(w, r, calcerr.InvalidInput("n", float64(v)))
			return
		}
		n = v
	}
	httpx.JSON(w, http.StatusOK, Rankings{
		ByYield:            h.DB.StrongestByYield(n),
		BySpecificStrength: h.DB.StrongestBySpecificStrength(n),
	})
}

func (h *Handler) Applications(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, Applications())
}

// Export downloads the table as CSV, or XLSX with ?format=xlsx.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format := export.CSV
	if r.URL.Query().Get("format") == string(export.XLSX) {
		format = export.XLSX
	}
	t := h.DB.Table()
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename("materials", format, time.Now())+`"`)

	var err error
	if format == export.XLSX {
		err = t.WriteXLSX(w)
	} else {
		err = t.WriteCSV(w)
	}
	if err != nil {
		httpx.Logger(r.Context()).WithError(err).Error("material export failed")
	}
}

// Table is the material table in export form.
func (db *DB) Table() export.Table {
	t := export.Table{
		Sheet: "Materials",
		Header: []string{
			"name", "category", "yield_strength_mpa", "ultimate_strength_mpa",
			"elastic_modulus_gpa", "poisson_ratio", "density_kg_m3",
			"fatigue_strength_mpa", "hardness_hb",
		},
	}
	for _, m := range db.All() {
		t.Rows = append(t.Rows, []any{
			m.Name, m.Category, m.YieldStrengthMPa, m.UltimateStrengthMPa,
			m.ElasticModulusGPa, m.PoissonRatio, m.DensityKgM3,
			m.FatigueStrengthMPa, m.HardnessHB,
		})
	}
	return t
}
