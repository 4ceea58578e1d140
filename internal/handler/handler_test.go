package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/deppfellow/recipe-portal/internal/config"
	"github.com/deppfellow/recipe-portal/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *server.Server {
	logger := zerolog.Nop()

	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "development"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(httptest.NewRequest(method, target, nil), rec), rec
}

func TestCheckHealthHealthy(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing()

	h := NewHealthHandler(testServer())
	h.db = mock

	c, rec := newContext(http.MethodGet, "/status")
	require.NoError(t, h.CheckHealth(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "development", body.Environment)
	assert.Equal(t, "healthy", body.Checks["database"].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckHealthUnhealthyHidesDriverError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing().WillReturnError(errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	h := NewHealthHandler(testServer())
	h.db = mock

	c, rec := newContext(http.MethodGet, "/status")
	require.NoError(t, h.CheckHealth(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
}

func TestCheckHealthDisabledChecks(t *testing.T) {
	s := testServer()
	s.Config.Observability.HealthChecks.Checks = nil

	h := NewHealthHandler(s)

	c, rec := newContext(http.MethodGet, "/status")
	require.NoError(t, h.CheckHealth(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"database"`)
}

func TestServeOpenAPIUI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi.html"), []byte("<html>docs</html>"), 0o600))

	h := NewOpenAPIHandler(testServer())
	h.dir = dir

	c, rec := newContext(http.MethodGet, "/docs")
	require.NoError(t, h.ServeOpenAPIUI(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "docs")
}

func TestServeOpenAPIUIMissingFile(t *testing.T) {
	h := NewOpenAPIHandler(testServer())
	h.dir = t.TempDir()

	c, _ := newContext(http.MethodGet, "/docs")
	assert.Error(t, h.ServeOpenAPIUI(c))
}

func TestNewRequestIsFreshEachCall(t *testing.T) {
	template := &ListRecipesRequest{Country: "India"}

	a := newRequest(template)
	b := newRequest(template)

	assert.Empty(t, a.Country)
	a.Country = "Peru"
	assert.Empty(t, b.Country)
	assert.NotSame(t, a, b)
}

func TestCreateRecipeRequestToModel(t *testing.T) {
	qty := "1"
	req := &CreateRecipeRequest{
		Name:              "Soup",
		Instructions:      "Boil",
		DietaryPreference: "Vegan",
		Ingredients:       []IngredientRequest{{Name: "Water", Quantity: &qty}},
		CountryIDs:        []int64{3},
	}

	in := req.toModel()
	assert.Equal(t, "Soup", in.Name)
	require.Len(t, in.Ingredients, 1)
	assert.Equal(t, "1", *in.Ingredients[0].Quantity)
	assert.Nil(t, in.Ingredients[0].Unit)
	assert.Equal(t, []int64{3}, in.CountryIDs)
}

func TestCreateRecipeRequestValidate(t *testing.T) {
	assert.Error(t, (&CreateRecipeRequest{Name: "Soup"}).Validate())
	assert.NoError(t, (&CreateRecipeRequest{Name: "Soup", Instructions: "Boil", DietaryPreference: "Vegan"}).Validate())
}
