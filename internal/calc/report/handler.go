package report

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"ShaftGear/internal/calc/fatigue"
	"ShaftGear/internal/calc/gear"
	"ShaftGear/internal/calc/shaft"
	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/export"
	"ShaftGear/internal/httpx"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

// Input carries exactly one of Shaft, Gear or Fatigue.
type Input struct {
	Meta
	Format  string         `json:"format"`
	Shaft   *shaft.Input   `json:"shaft,omitempty"`
	Gear    *gear.Input    `json:"gear,omitempty"`
	Fatigue *fatigue.Input `json:"fatigue,omitempty"`
}

type Handler struct {
	Materials material.Source
	Validator *validate.Validator
	Now       func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Build runs the calculation named in in and renders it.
func (h *Handler) Build(in Input) (export.Document, error) {
	n := 0
	for _, set := range []bool{in.Shaft != nil, in.Gear != nil, in.Fatigue != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		ve := &calcerr.ValidationError{}
		ve.Add("shaft", "exactly_one", "exactly one of shaft, gear or fatigue is required")
		return export.Document{}, ve
	}

	t := h.now()
	switch {
	case in.Shaft != nil:
		res, err := shaft.Run(h.Validator, h.Materials, *in.Shaft)
		if err != nil {
			return export.Document{}, err
		}
		mat, err := h.Materials.Lookup(in.Shaft.Material)
		if err != nil {
			return export.Document{}, err
		}
		return Shaft(in.Meta, *in.Shaft, res, mat, t), nil
	case in.Gear != nil:
		res, err := gear.Run(h.Validator, h.Materials, *in.Gear)
		if err != nil {
			return export.Document{}, err
		}
		pinion, err := h.Materials.Lookup(in.Gear.PinionMaterial)
		if err != nil {
			return export.Document{}, err
		}
		wheel, err := h.Materials.Lookup(in.Gear.GearMaterial)
		if err != nil {
			return export.Document{}, err
		}
		return Gear(in.Meta, *in.Gear, res, pinion, wheel, t), nil
	default:
		res, err := fatigue.Run(h.Validator, h.Materials, *in.Fatigue)
		if err != nil {
			return export.Document{}, err
		}
		mat, err := h.Materials.Lookup(in.Fatigue.Material)
		if err != nil {
			return export.Document{}, err
		}
		return Fatigue(in.Meta, *in.Fatigue, res, mat, t), nil
	}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.Error(w, r, err)
		return
	}
	format, err := export.ParseFormat(input.Format)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	doc, err := h.Build(input)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, doc); err != nil {
		httpx.Error(w, r, fmt.Errorf("render %s report: %w", format, err))
		return
	}
	name := export.Filename(doc.Kind+"_design_results", format, doc.Generated)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
