package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShaftGear/internal/auth"
	"ShaftGear/internal/calc/dispatch"
	"ShaftGear/internal/material"
	"ShaftGear/internal/repo"
	"ShaftGear/internal/validate"
)

const shaftInput = `{"material":"AISI 1045 Steel","torque_nm":500,"bending_moment_nm":300,"outer_diameter_mm":40,"length_mm":500}`

type fixture struct {
	router *mux.Router
	token  string
	store  *repo.Memory
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := repo.NewMemory()
	uid, err := store.CreateUser(context.Background(), "alice", "alice@example.com", "hash")
	require.NoError(t, err)

	db := material.Default()
	v := validate.New(db)
	env := &auth.Env{JWTKey: []byte("k"), Repo: store, Validator: v}
	tok, _, err := env.IssueToken(uid, "alice")
	require.NoError(t, err)

	h := &Handler{
		Repo: store,
		Calc: &dispatch.Calculator{Materials: db, Validator: v},
		Now:  func() time.Time { return time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC) },
	}
	r := mux.NewRouter()
	api := r.PathPrefix("/api/user").Subrouter()
	api.Use(env.AuthMiddleware)
	api.HandleFunc("/history", h.List).Methods(http.MethodGet)
	api.HandleFunc("/history", h.Save).Methods(http.MethodPost)
	api.HandleFunc("/history/export", h.Export).Methods(http.MethodGet)
	api.HandleFunc("/history/import", h.Import).Methods(http.MethodPost)
	api.HandleFunc("/history/{id}", h.Get).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}", h.Delete).Methods(http.MethodDelete)
	return fixture{router: r, token: tok, store: store}
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestSaveListGetDelete(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/user/history", `{"kind":"shaft","title":" line shaft ","input":`+shaftInput+`}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var saved repo.Calculation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "line shaft", saved.Title)
	assert.Equal(t, "shaft", saved.Kind)

	var result map[string]any
	require.NoError(t, json.Unmarshal(saved.Result, &result))
	assert.Contains(t, result, "von_mises_mpa")

	rec = f.do(http.MethodGet, "/api/user/history?kind=gear", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/user/history", "")
	var list []repo.Calculation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)

	rec = f.do(http.MethodGet, "/api/user/history/"+saved.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodDelete, "/api/user/history/"+saved.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodGet, "/api/user/history/"+saved.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveRejects(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		body string
	}{
		{"unknown kind", `{"kind":"beam","input":{}}`},
		{"missing input", `{"kind":"shaft"}`},
		{"invalid input", `{"kind":"shaft","input":{"material":"AISI 1045 Steel","outer_diameter_mm":-1,"length_mm":1,"torque_nm":1}}`},
		{"unknown material", `{"kind":"fatigue","input":{"material":"Unobtainium","stress_amplitude_mpa":100,"diameter_mm":20}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/api/user/history", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	n, err := f.store.CountCalculations(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBadID(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/user/history/not-a-uuid", "").Code)
}

func TestRequiresSession(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/history", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated,
		f.do(http.MethodPost, "/api/user/history", `{"kind":"shaft","input":`+shaftInput+`}`).Code)

	rec := f.do(http.MethodGet, "/api/user/history/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="calculation_backup_20260504_103000.json"`, rec.Header().Get("Content-Disposition"))

	var b Backup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, "calculation_backup", b.ExportInfo.ExportType)
	assert.Equal(t, "alice", b.ExportInfo.User)
	assert.Equal(t, 1, b.ExportInfo.Count)
	require.Len(t, b.Calculations, 1)
	assert.JSONEq(t, shaftInput, string(b.Calculations[0].Input))

	rec = f.do(http.MethodGet, "/api/user/history/export?format=csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Equal(t, "id,kind,title,created_at,input,result", lines[0])
	assert.Len(t, lines, 2)

	rec = f.do(http.MethodGet, "/api/user/history/export?format=xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PK", rec.Body.String()[:2])

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/user/history/export?format=pdf", "").Code)
}

func TestImportRestoresExportedBackup(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated,
		f.do(http.MethodPost, "/api/user/history", `{"kind":"shaft","title":"line shaft","input":`+shaftInput+`}`).Code)
	rec := f.do(http.MethodGet, "/api/user/history/export", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var b Backup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	original := b.Calculations[0]
	b.Calculations[0].Result = json.RawMessage(`{"pass":false,"stale":true}`)
	b.Calculations = append(b.Calculations,
		repo.Calculation{Kind: "beam", Input: json.RawMessage(`{}`)},
		repo.Calculation{Kind: "fatigue", Input: json.RawMessage(`{"material":"Unobtainium","stress_amplitude_mpa":100,"diameter_mm":20}`)},
	)
	body, err := json.Marshal(b)
	require.NoError(t, err)

	rec = f.do(http.MethodPost, "/api/user/history/import", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Count     int `json:"count"`
		Succeeded int `json:"succeeded"`
		Failed    int `json:"failed"`
		Items     []struct {
			Index  int               `json:"index"`
			OK     bool              `json:"ok"`
			Result *repo.Calculation `json:"result"`
			Error  string            `json:"error"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, 1, out.Succeeded)
	assert.Equal(t, 2, out.Failed)
	require.Len(t, out.Items, 3)

	restored := out.Items[0]
	require.True(t, restored.OK)
	assert.NotEqual(t, original.ID, restored.Result.ID)
	assert.Equal(t, "line shaft", restored.Result.Title)
	assert.True(t, original.CreatedAt.Equal(restored.Result.CreatedAt))
	assert.JSONEq(t, string(original.Result), string(restored.Result.Result))

	assert.Equal(t, 1, out.Items[1].Index)
	assert.False(t, out.Items[1].OK)
	assert.NotEmpty(t, out.Items[1].Error)
	assert.False(t, out.Items[2].OK)

	n, err := f.store.CountCalculations(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestImportRejectsForeignDocument(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name string
		body string
	}{
		{"wrong export type", `{"export_info":{"export_type":"report"},"calculations":[{"kind":"shaft","input":` + shaftInput + `}]}`},
		{"empty backup", `{"export_info":{"export_type":"calculation_backup"},"calculations":[]}`},
		{"unknown field", `{"export_info":{"export_type":"calculation_backup"},"rows":[]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/api/user/history/import", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}
