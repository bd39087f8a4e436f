package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/pon-gitweb/tallyup-sub002/internal/interfaces/http"
)

// stubModuleChecker implementa la verificación de módulos en memoria.
type stubModuleChecker struct {
	active map[string]bool
	err    error
}

func (s *stubModuleChecker) HasActiveModule(_ context.Context, _, moduleName string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.active[moduleName], nil
}

func buildModuleApp(moduleName string, checker *stubModuleChecker) *fiber.App {
	app := fiber.New()
	app.Get("/gated",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireModule(moduleName, checker),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func doGated(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireModule_ModuloActivo_Pasa(t *testing.T) {
	checker := &stubModuleChecker{active: map[string]bool{"variance_ai": true}}
	resp := doGated(t, buildModuleApp("variance_ai", checker))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireModule_ModuloNoContratado_Retorna403(t *testing.T) {
	checker := &stubModuleChecker{active: map[string]bool{}}
	resp := doGated(t, buildModuleApp("einvoice", checker))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MODULE_DISABLED")
}

func TestRequireModule_FalloDeDB_Retorna503(t *testing.T) {
	checker := &stubModuleChecker{err: errors.New("db caída")}
	resp := doGated(t, buildModuleApp("variance_ai", checker))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MODULE_CHECK_FAILED")
}
