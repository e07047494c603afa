package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"ShaftGear/internal/auth"
	"ShaftGear/internal/config"
	"ShaftGear/internal/logger"
	"ShaftGear/internal/material"
	"ShaftGear/internal/repo"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "route-test-secret-0123456789"}}
	srv := httptest.NewServer(newHandler(deps{
		cfg:       cfg,
		log:       logger.Discard(),
		materials: material.Default(),
		repo:      repo.NewMemory(),
		storage:   "memory",
		limiter:   auth.NewIPRateLimiter(rate.Inf, 1),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, client *http.Client, method, url, body, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPublicRoutes(t *testing.T) {
	srv := testServer(t)
	c := srv.Client()

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/materials", "", http.StatusOK},
		{http.MethodGet, "/api/materials/categories", "", http.StatusOK},
		{http.MethodGet, "/api/materials/rankings", "", http.StatusOK},
		{http.MethodGet, "/api/materials/applications", "", http.StatusOK},
		{http.MethodGet, "/api/materials/export", "", http.StatusOK},
		{http.MethodGet, "/api/materials/AISI%201045%20Steel", "", http.StatusOK},
		{http.MethodGet, "/api/materials/Unobtainium", "", http.StatusNotFound},
		{http.MethodPost, "/api/tools/shaft/calc", `{"material":"AISI 1045 Steel","torque_nm":500,"outer_diameter_mm":40,"length_mm":500}`, http.StatusOK},
		{http.MethodPost, "/api/tools/shaft/calc", `{"material":"AISI 1045 Steel","outer_diameter_mm":-1}`, http.StatusBadRequest},
		{http.MethodPost, "/api/tools/units/convert", `{"value":1,"from":"m","to":"mm"}`, http.StatusOK},
		{http.MethodGet, "/api/premium/import/shaft/template", "", http.StatusOK},
		{http.MethodGet, "/api/user/history", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/user/history/import", `{}`, http.StatusUnauthorized},
		{http.MethodGet, "/nowhere", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := do(t, c, tc.method, srv.URL+tc.path, tc.body, "")
			assert.Equal(t, tc.want, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestRegisterThenHistory(t *testing.T) {
	srv := testServer(t)
	c := srv.Client()

	resp := do(t, c, http.MethodPost, srv.URL+"/api/register", `{"login":"alice","email":"alice@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var s auth.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))

	resp = do(t, c, http.MethodPost, srv.URL+"/api/user/history",
		`{"kind":"gear","title":"reducer","input":{"pinion_teeth":20,"gear_teeth":40,"module_mm":3,"face_width_mm":50,"power_kw":10,"pinion_rpm":1500,"pinion_material":"AISI 4140 Steel","gear_material":"AISI 4140 Steel"}}`, s.Token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, c, http.MethodGet, srv.URL+"/api/user/profile", "", s.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.EqualValues(t, 1, p["calculations"])
}
