package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/gcharles/autoshop-inventory/internal/interfaces/http"
	pkgjwt "github.com/gcharles/autoshop-inventory/pkg/jwt"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testDepartment = "Operations"
	testIssuer     = "autoshop-inventory-test"
	testExpMin     = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireDashboard para autorizar el acceso por rol
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp() *fiber.App {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	app := fiber.New()
	app.Get("/dashboards/:id",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireDashboard(log),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testDepartment, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza un GET /dashboards/:id y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, dashboard int, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/dashboards/%d", dashboard), nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireDashboard
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Sales accede al dashboard 1 (permitido) → HTTP 200.
func TestRequireDashboard_SalesAccedeDashboard1(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, 1, tokenForRole(t, "Sales"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"Sales debe poder ver el Stock Overview")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Sales", body["role"])
}

// Caso 2: Sales bloqueado en el dashboard 2 → HTTP 403 ACCESS_DENIED.
func TestRequireDashboard_SalesBloqueadoEnDashboard2(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, 2, tokenForRole(t, "Sales"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"Sales no debe poder ver el reporte de stock bajo")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ACCESS_DENIED",
		"la respuesta de error debe incluir el código ACCESS_DENIED")
}

// Caso 3: Management accede a los seis dashboards → HTTP 200 en todos.
func TestRequireDashboard_ManagementAccedeTodo(t *testing.T) {
	app := buildTestApp()
	for d := 1; d <= 6; d++ {
		resp := doRequest(t, app, d, tokenForRole(t, "Management"))
		assert.Equal(t, http.StatusOK, resp.StatusCode, "dashboard %d", d)
		resp.Body.Close()
	}
}

// Caso 4: rol desconocido bloqueado en todo → HTTP 403.
func TestRequireDashboard_RolDesconocidoBloqueado(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, 1, tokenForRole(t, "Intern"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 5: Token sin claim de rol → HTTP 401 MISSING_ROLE.
func TestRequireDashboard_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testDepartment, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, 1, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// Caso 6: índice de dashboard fuera de rango → HTTP 400.
func TestRequireDashboard_IndiceInvalido_Retorna400(t *testing.T) {
	app := buildTestApp()

	for _, d := range []int{0, 7} {
		resp := doRequest(t, app, d, tokenForRole(t, "Management"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "dashboard %d", d)
		resp.Body.Close()
	}
}

// Caso 7: Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireDashboard_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, 1, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 8: Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireDashboard_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, 1, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"role":       apphttp.GetRole(c),
			"department": apphttp.GetDepartment(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "Warehouse"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "Warehouse", body["role"])
	assert.Equal(t, testDepartment, body["department"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con rol y departamento
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Finance", testDepartment, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, department, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "Finance", role)
	assert.Equal(t, testDepartment, department)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Management", testDepartment, testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Management", testDepartment, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
