package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/ngandu/barresto-api/internal/interfaces/http"
	"github.com/ngandu/barresto-api/pkg/jwt"
)

const testSecret = "secret-de-test-suffisamment-long"

// buildTestApp monte une route protégée par AuthMiddleware, et une seconde
// réservée au gérant, comme le routeur réel.
func buildTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/api", apihttp.AuthMiddleware(testSecret))
	protected.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apihttp.GetUserID(c),
			"role":    apihttp.GetRole(c),
		})
	})
	protected.Delete("/investments/x", apihttp.RequireRole("gerant"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "u-42", role, "barresto", 15)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_SansEnTete(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatInvalide(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValide(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, "/api/me", tokenForRole(t, "caissier"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_MauvaisSecret(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate("autre-secret", "u-42", "gerant", "barresto", 15)
	require.NoError(t, err)
	resp := doRequest(t, app, http.MethodGet, "/api/me", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpire(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate(testSecret, "u-42", "gerant", "barresto", -5)
	require.NoError(t, err)
	resp := doRequest(t, app, http.MethodGet, "/api/me", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_RoleAutorise(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodDelete, "/api/investments/x", tokenForRole(t, "gerant"))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRequireRole_RoleInsuffisant(t *testing.T) {
	app := buildTestApp()
	for _, role := range []string{"caissier", "magasinier"} {
		resp := doRequest(t, app, http.MethodDelete, "/api/investments/x", tokenForRole(t, role))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "rôle %s", role)
	}
}

func TestJWT_AllerRetour(t *testing.T) {
	token, err := jwt.Generate(testSecret, "u-7", "magasinier", "barresto", 15)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-7", userID)
	assert.Equal(t, "magasinier", role)
}

func TestJWT_SecretVide(t *testing.T) {
	_, err := jwt.Generate("", "u-7", "gerant", "barresto", 15)
	assert.Error(t, err)
	_, _, err = jwt.Parse("", "token")
	assert.Error(t, err)
}
