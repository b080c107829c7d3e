package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Ganaderia-api/internal/interfaces/http"
)

const testCompanyID = "00000000-0000-0000-0000-000000000002"

// buildTestApp construye una aplicación Fiber mínima con el middleware de
// empresa y un handler dummy que devuelve la empresa resuelta.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/scoped", apphttp.CompanyMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"company_id": apphttp.GetCompanyID(c)})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, companyHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	if companyHeader != "" {
		req.Header.Set("X-Company-ID", companyHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCompanyMiddleware_ExtraeEmpresaDelHeader(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, testCompanyID)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testCompanyID, body["company_id"])
}

func TestCompanyMiddleware_SinHeaderRetorna400(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"toda ruta de la API exige el header X-Company-ID")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_COMPANY",
		"la respuesta de error debe incluir el código MISSING_COMPANY")
}
