package importer

import (
	"net/http"
	"time"

	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/export"
	"ShaftGear/internal/httpx"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

const maxUpload = 10 << 20

type Handler struct {
	Materials material.Source
	Validator *validate.Validator
}

func (h *Handler) Shaft(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.Error(w, r, fileRequired(err))
		return
	}
	defer file.Close()

	rows, err := ReadShaftRows(file)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, Shaft(h.Validator, h.Materials, rows))
}

// Template downloads an example sheet to fill in.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", export.XLSX.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename("shaft_import_template", export.XLSX, time.Now())+`"`)
	if err := Template().WriteXLSX(w); err != nil {
		httpx.Logger(r.Context()).WithError(err).Error("write import template")
	}
}

func fileRequired(err error) error {
	ve := &calcerr.ValidationError{}
	ve.Add("file", "required", "an xlsx file is required in the \"file\" form field: "+err.Error())
	return ve
}
