package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestApp(buf *bytes.Buffer, cfg Config) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	cfg.Logger = logger

	app := fiber.New()
	app.Use(New(cfg))
	app.Post("/api/v1/daily-logs/save", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "fail"})
	})
	app.Get("/api/v1/analytics/timesheet/xlsx", func(c *fiber.Ctx) error {
		return c.SendString("binary")
	})
	return app
}

func TestLogger(t *testing.T) {
	t.Run(`request is logged with truncated body`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := newTestApp(buf, Config{
			Tags:      []string{TagBody, TagStatus, TagPath},
			BodyLimit: 8,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/daily-logs/save", strings.NewReader(`[{"employee_id":"e1"}]`))
		_, err := app.Test(req)
		require.NoError(t, err)

		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, `[{"emplo...`, entry[TagBody])
		require.Equal(t, float64(fiber.StatusConflict), entry[TagStatus])
		require.Equal(t, "/api/v1/daily-logs/save", entry[TagPath])
		require.Equal(t, "warning", entry["level"])
	})

	t.Run(`skipped paths are not logged`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := newTestApp(buf, Config{
			Tags:      []string{TagStatus},
			SkipPaths: []string{"/api/v1/analytics/timesheet/"},
		})
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analytics/timesheet/xlsx", nil))
		require.NoError(t, err)
		require.Zero(t, buf.Len())
	})

	t.Run(`default body limit`, func(t *testing.T) {
		require.Equal(t, defaultBodyLimit, Config{}.bodyLimit())
		require.Equal(t, "abc", truncate([]byte("abc"), 3))
		require.Equal(t, "ab...", truncate([]byte("abc"), 2))
	})
}
