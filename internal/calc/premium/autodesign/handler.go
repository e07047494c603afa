package autodesign

import (
	"net/http"

	"ShaftGear/internal/httpx"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

type Handler struct {
	Materials material.Source
	Validator *validate.Validator
}

func (h *Handler) Shaft(w http.ResponseWriter, r *http.Request) {
	var input ShaftInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.Error(w, r, err)
		return
	}
	res, err := Shaft(h.Validator, h.Materials, input)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
