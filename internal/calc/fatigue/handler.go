package fatigue

import (
	"net/http"

	"ShaftGear/internal/httpx"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

func Run(v *validate.Validator, src material.Source, in Input) (Result, error) {
	if err := v.Struct(in); err != nil {
		return Result{}, err
	}
	mat, err := src.Lookup(in.Material)
	if err != nil {
		return Result{}, err
	}
	return Calculate(in, mat)
}

type Handler struct {
	Materials material.Source
	Validator *validate.Validator
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.Error(w, r, err)
		return
	}
	res, err := Run(h.Validator, h.Materials, input)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
