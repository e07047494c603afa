package recommend

import (
	"net/http"

	"ShaftGear/internal/httpx"
	"ShaftGear/internal/validate"
)

type Handler struct {
	Catalog   Catalog
	Validator *validate.Validator
}

func (h *Handler) Shaft(w http.ResponseWriter, r *http.Request) {
	var input ShaftInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.Error(w, r, err)
		return
	}
	res, err := Shaft(h.Validator, h.Catalog, input)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
