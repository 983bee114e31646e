package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/propostas-api/internal/config"
	"github.com/sjperalta/propostas-api/internal/database"
	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/repository"
	"github.com/sjperalta/propostas-api/internal/services"
	"github.com/sjperalta/propostas-api/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect("file::memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		AdminLogin:         "admin",
		DashboardScope:     config.ScopeGlobal,
		ReportsScope:       config.ScopeGlobal,
		PerformanceScope:   config.ScopeFiltered,
	}
	svcs := services.NewServices(repository.NewRepositories(db), cfg)
	ctx := context.Background()
	require.NoError(t, svcs.User.EnsureSeedAdmin(ctx, "admin123"))
	require.NoError(t, svcs.Catalog.SeedIfEmpty(ctx, models.CatalogBanks, []string{"PAN - DG", "ITAU - DG"}))

	router := gin.New()
	NewHandlers(svcs, version.Info{Version: "1.2.3", Build: 7}).RegisterRoutes(router.Group("/api/v1"), svcs.Auth)
	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) login(login, password string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/login", "", gin.H{"login": login, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(a.t, res.Token)
	return res.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func proposalBody(cpf, value string) gin.H {
	return gin.H{
		"reference_code": "ADE-" + cpf,
		"client_id":      cpf,
		"date":           "2024-03-01",
		"partner":        "Parceiro A",
		"product_type":   models.ProductRefin,
		"value":          value,
		"bank":           "PAN - DG",
	}
}

func TestRouter_PublicEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"1.2.3"`)

	w = api.do(http.MethodGet, "/version", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"build":7`)

	w = api.do(http.MethodPost, "/auth/login", "", gin.H{"login": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPost, "/auth/login", "", gin.H{"login": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/proposals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_ProposalLifecycleAndReports(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login("admin", "admin123")

	w := api.do(http.MethodPost, "/catalogs/partners", admin, gin.H{"description": "Parceiro A"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/users", admin, gin.H{
		"login": "maria", "display_name": "Maria Silva",
		"password": "s3nha", "password_confirm": "s3nha", "role": "digitador",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	maria := api.login("maria", "s3nha")

	// the same CPF twice plus one unique CPF
	var ids []uint
	for _, body := range []gin.H{proposalBody("111", "100"), proposalBody("111", "50"), proposalBody("222", "70")} {
		w = api.do(http.MethodPost, "/proposals", maria, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var res services.MutationResult
		decodeBody(t, w, &res)
		assert.Empty(t, res.Warning)
		ids = append(ids, res.ID)
	}

	w = api.do(http.MethodGet, "/proposals/"+itoa(ids[0]), maria, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"operator":"Maria Silva"`)

	w = api.do(http.MethodGet, "/reports/dashboard", maria, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var dash struct {
		Proposals    int             `json:"proposals"`
		Ignored      int             `json:"ignored"`
		GrossTotal   decimal.Decimal `json:"gross_total"`
		CountedTotal decimal.Decimal `json:"counted_total"`
	}
	decodeBody(t, w, &dash)
	assert.Equal(t, 3, dash.Proposals)
	assert.Equal(t, 2, dash.Ignored)
	assert.True(t, dash.GrossTotal.Equal(decimal.NewFromInt(220)), dash.GrossTotal.String())
	assert.True(t, dash.CountedTotal.Equal(decimal.NewFromInt(70)), dash.CountedTotal.String())

	// filtered scope on a single row of CPF 111 counts it
	w = api.do(http.MethodGet, "/reports/consultation?id="+itoa(ids[1])+"&scope=filtered", maria, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeBody(t, w, &dash)
	assert.Equal(t, 1, dash.Proposals)
	assert.True(t, dash.CountedTotal.Equal(decimal.NewFromInt(50)))

	w = api.do(http.MethodGet, "/reports/consultation?scope=bogus", maria, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = api.do(http.MethodGet, "/reports/dashboard?from=01/03/2024", maria, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/reports/consultation/export?format=csv", maria, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "\ufeff"))

	w = api.do(http.MethodGet, "/reports/consultation/export?format=ods", maria, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/reports/performance/export", maria, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w = api.do(http.MethodDelete, "/proposals/"+itoa(ids[2]), maria, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = api.do(http.MethodDelete, "/proposals/"+itoa(ids[2]), maria, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/audits?action=delete", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var audits struct {
		Total int `json:"total"`
	}
	decodeBody(t, w, &audits)
	assert.Equal(t, 1, audits.Total)
}

func TestRouter_ValidationProblems(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login("admin", "admin123")

	w := api.do(http.MethodPost, "/proposals", admin, gin.H{
		"date":         "01/03/2024",
		"partner":      models.PartnerPlaceholder,
		"product_type": "HIPOTECA",
		"bank":         "PAN - DG",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	var res struct {
		Problems []string `json:"problems"`
	}
	decodeBody(t, w, &res)
	assert.Contains(t, res.Problems, "ADE é obrigatório")
	assert.Contains(t, res.Problems, "CPF é obrigatório")
	assert.Contains(t, res.Problems, "data deve estar no formato AAAA-MM-DD")
	assert.Contains(t, res.Problems, "selecione um parceiro")
	assert.Contains(t, res.Problems, "tipo de produto inválido")

	w = api.do(http.MethodPost, "/proposals", admin, `not an object`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/proposals/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_RoleGating(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login("admin", "admin123")

	w := api.do(http.MethodPost, "/users", admin, gin.H{
		"login": "joao", "display_name": "João", "password": "x", "password_confirm": "x", "role": "operator",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	joao := api.login("joao", "x")

	for _, path := range []string{"/users", "/audits", "/catalogs/banks"} {
		w = api.do(http.MethodGet, path, joao, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}

	w = api.do(http.MethodGet, "/catalogs/banks/options", joao, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "PAN - DG")

	w = api.do(http.MethodGet, "/catalogs/products/options", joao, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodPost, "/users", admin, gin.H{
		"login": "joao", "display_name": "Outro", "password": "x", "password_confirm": "x", "role": "admin",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("admin", "admin123")

	w := api.do(http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"login":"admin"`)

	w = api.do(http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_DeletedUserTokenRejected(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login("admin", "admin123")

	w := api.do(http.MethodPost, "/users", admin, gin.H{
		"login": "ana", "display_name": "Ana", "password": "x", "password_confirm": "x", "role": "digitador",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, w, &created)
	ana := api.login("ana", "x")

	w = api.do(http.MethodGet, "/me", ana, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodDelete, "/users/"+itoa(created.User.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/proposals", ana, proposalBody("333", "10"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &services.ValidationError{Problems: []string{"a", "b"}}, http.StatusUnprocessableEntity},
		{"duplicate", &services.DuplicateError{Entity: "banco", Value: "PAN"}, http.StatusConflict},
		{"not found", &services.NotFoundError{Entity: "proposta", ID: 9}, http.StatusNotFound},
		{"forbidden", &services.ForbiddenError{Role: "digitador"}, http.StatusForbidden},
		{"auth", services.ErrAuthFailure, http.StatusUnauthorized},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			respondError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
