// Package history saves calculations for signed-in users and exports them as
// a backup.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"ShaftGear/internal/auth"
	"ShaftGear/internal/calc/dispatch"
	"ShaftGear/internal/calc/premium/batch"
	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/export"
	"ShaftGear/internal/httpx"
	"ShaftGear/internal/repo"
)

type Handler struct {
	Repo repo.Repository
	Calc *dispatch.Calculator
	Now  func() time.Time
}

// SaveRequest names a calculation and its input. The result is recomputed on
// save so that stored results always match their input.
type SaveRequest struct {
	Kind  string          `json:"kind" validate:"required,oneof=shaft shaft_design gear fatigue"`
	Title string          `json:"title" validate:"max=200"`
	Input json.RawMessage `json:"input" validate:"required"`
}

type Backup struct {
	ExportInfo   BackupInfo         `json:"export_info"`
	Calculations []repo.Calculation `json:"calculations"`
}

type BackupInfo struct {
	Timestamp  time.Time `json:"timestamp"`
	ExportType string    `json:"export_type"`
	Version    string    `json:"version"`
	User       string    `json:"user"`
	Count      int       `json:"count"`
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.Error(w, r, httpx.ErrUnauthorized)
	}
	return id, ok
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req SaveRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	c, err := h.prepare(id.UserID, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	saved, err := h.Repo.SaveCalculation(r.Context(), c)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Logger(r.Context()).WithField("calculation_id", saved.ID).Info("calculation saved")
	httpx.JSON(w, http.StatusCreated, saved)
}

// prepare validates req and recomputes its result.
func (h *Handler) prepare(userID int64, req SaveRequest) (repo.Calculation, error) {
	if err := h.Calc.Validator.Struct(req); err != nil {
		return repo.Calculation{}, err
	}
	result, err := h.Calc.Run(req.Kind, req.Input)
	if err != nil {
		return repo.Calculation{}, err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return repo.Calculation{}, fmt.Errorf("encode result: %w", err)
	}
	var input bytes.Buffer
	if err := json.Compact(&input, req.Input); err != nil {
		return repo.Calculation{}, errors.Join(httpx.ErrBadRequest, err)
	}
	return repo.Calculation{
		UserID: userID,
		Kind:   req.Kind,
		Title:  strings.TrimSpace(req.Title),
		Input:  input.Bytes(),
		Result: raw,
	}, nil
}

// Import restores a backup written by Export into the caller's history.
// Every entry gets a new id and a recomputed result; stored results in the
// backup are ignored. Entries that no longer validate are reported per index
// and skipped.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var b Backup
	if err := httpx.DecodeJSON(w, r, &b); err != nil {
		httpx.Error(w, r, err)
		return
	}
	if b.ExportInfo.ExportType != "calculation_backup" {
		ve := &calcerr.ValidationError{}
		ve.Add("export_info.export_type", "eq", fmt.Sprintf("export_type must be calculation_backup, got %q", b.ExportInfo.ExportType))
		httpx.Error(w, r, ve)
		return
	}
	if n := len(b.Calculations); n == 0 || n > batch.MaxItems {
		httpx.Error(w, r, fmt.Errorf("%w: backup holds %d calculations, want 1 to %d", calcerr.ErrInvalidInput, n, batch.MaxItems))
		return
	}

	out, err := h.restore(r.Context(), id.UserID, b.Calculations)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Logger(r.Context()).WithFields(logrus.Fields{
		"imported": out.Succeeded,
		"failed":   out.Failed,
	}).Info("backup imported")
	httpx.JSON(w, http.StatusOK, out)
}

// restore stops at the first storage error; calculation errors are per item.
func (h *Handler) restore(ctx context.Context, userID int64, list []repo.Calculation) (batch.Result[repo.Calculation], error) {
	out := batch.Result[repo.Calculation]{Items: make([]batch.Item[repo.Calculation], 0, len(list))}
	for i, entry := range list {
		c, err := h.prepare(userID, SaveRequest{Kind: entry.Kind, Title: entry.Title, Input: entry.Input})
		if err != nil {
			out.Add(i, repo.Calculation{}, err)
			continue
		}
		c.CreatedAt = entry.CreatedAt
		saved, err := h.Repo.SaveCalculation(ctx, c)
		if err != nil {
			return batch.Result[repo.Calculation]{}, fmt.Errorf("restore calculation %d: %w", i, err)
		}
		out.Add(i, saved, nil)
	}
	return out, nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	list, err := h.Repo.ListCalculations(r.Context(), id.UserID, r.URL.Query().Get("kind"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func calculationID(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["id"]
	cid, err := uuid.Parse(raw)
	if err != nil {
		ve := &calcerr.ValidationError{}
		ve.Add("id", "uuid", fmt.Sprintf("id must be a uuid, got %q", raw))
		return uuid.Nil, ve
	}
	return cid, nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	cid, err := calculationID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	c, err := h.Repo.GetCalculation(r.Context(), id.UserID, cid)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	cid, err := calculationID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if err := h.Repo.DeleteCalculation(r.Context(), id.UserID, cid); err != nil {
		httpx.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export sends every saved calculation as a JSON backup, or as a flat table
// with ?format=csv or ?format=xlsx.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	list, err := h.Repo.ListCalculations(r.Context(), id.UserID, "")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	format := export.JSON
	if q := r.URL.Query().Get("format"); q != "" {
		if format, err = export.ParseFormat(q); err != nil {
			httpx.Error(w, r, err)
			return
		}
	}

	now := h.now()
	var buf bytes.Buffer
	switch format {
	case export.JSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(Backup{
			ExportInfo: BackupInfo{
				Timestamp:  now.UTC(),
				ExportType: "calculation_backup",
				Version:    "1.0",
				User:       id.Login,
				Count:      len(list),
			},
			Calculations: list,
		})
	case export.CSV:
		err = table(list).WriteCSV(&buf)
	case export.XLSX:
		err = table(list).WriteXLSX(&buf)
	default:
		ve := &calcerr.ValidationError{}
		ve.Add("format", "oneof", "format must be one of [json csv xlsx]")
		err = ve
	}
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename("calculation_backup", format, now)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func table(list []repo.Calculation) export.Table {
	t := export.Table{
		Sheet:  "History",
		Header: []string{"id", "kind", "title", "created_at", "input", "result"},
	}
	for _, c := range list {
		t.Rows = append(t.Rows, []any{
			c.ID.String(), c.Kind, c.Title, c.CreatedAt.UTC().Format(time.RFC3339),
			string(c.Input), string(c.Result),
		})
	}
	return t
}
