// Package profile serves the signed-in user's own account details.
package profile

import (
	"net/http"
	"strings"

	"ShaftGear/internal/auth"
	"ShaftGear/internal/httpx"
	"ShaftGear/internal/repo"
	"ShaftGear/internal/validate"
)

type Handler struct {
	Repo      repo.Repository
	Validator *validate.Validator
}

type Profile struct {
	repo.User
	Calculations int `json:"calculations"`
}

type UpdateRequest struct {
	Description string `json:"description" validate:"max=500"`
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.Error(w, r, httpx.ErrUnauthorized)
		return
	}
	u, err := h.Repo.GetUser(r.Context(), id.UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	n, err := h.Repo.CountCalculations(r.Context(), id.UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, Profile{User: u, Calculations: n})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.Error(w, r, httpx.ErrUnauthorized)
		return
	}

	var req UpdateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	req.Description = strings.TrimSpace(req.Description)
	if err := h.Validator.Struct(req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	if err := h.Repo.UpdateDescription(r.Context(), id.UserID, req.Description); err != nil {
		httpx.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
