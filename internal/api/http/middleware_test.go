package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	httptransport "github.com/Jack-WebDev/ahsa/internal/api/http"
	"github.com/Jack-WebDev/ahsa/internal/observability"
	"github.com/Jack-WebDev/ahsa/pkg/util"
)

func TestFailedRequestsLogAndCountFinalStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.New(core), metrics, 0)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return util.NewUnauthorized("no token")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusUnauthorized), entries[0].ContextMap()["status"])

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Requests["GET /boom 401"])
	assert.Equal(t, int64(1), snap.Errors["GET /boom UNAUTHORIZED"])
}

func TestSuccessfulRequestsAreCounted(t *testing.T) {
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Requests["GET /ok 204"])
	assert.Empty(t, snap.Errors)
}
