package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/almacen-stock/internal/interfaces/http"
)

func buildRateLimitedApp(requestsPerMin int) *fiber.App {
	app := fiber.New()
	app.Post("/login", apphttp.LoginRateLimit(requestsPerMin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postLogin(t *testing.T, app *fiber.App) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

// El burst es requestsPerMin/10: con 30/min la misma IP tiene 3 intentos
// inmediatos y el cuarto se rechaza con 429.
func TestLoginRateLimit_BloqueaTrasAgotarBurst(t *testing.T) {
	app := buildRateLimitedApp(30)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, postLogin(t, app),
			"los intentos dentro del burst deben pasar")
	}
	assert.Equal(t, http.StatusTooManyRequests, postLogin(t, app),
		"agotado el burst debe responder 429")
}

// Con el límite desactivado (<= 0) todos los intentos pasan.
func TestLoginRateLimit_Desactivado(t *testing.T) {
	app := buildRateLimitedApp(0)

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, postLogin(t, app))
	}
}
