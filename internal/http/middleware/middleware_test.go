package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	t.Run("generates one when absent", func(t *testing.T) {
		app := fiber.New()
		app.Use(RequestID())

		var seen string
		app.Get("/", func(c *fiber.Ctx) error {
			seen, _ = c.Locals(RequestIDLocalKey).(string)
			return c.SendStatus(fiber.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))

		require.NoError(t, err)
		rid := resp.Header.Get(RequestIDHeader)
		require.NotEmpty(t, rid)
		_, err = uuid.Parse(rid)
		assert.NoError(t, err)
		assert.Equal(t, rid, seen)
	})

	t.Run("propagates an incoming id", func(t *testing.T) {
		app := fiber.New()
		app.Use(RequestID())
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "client-supplied-id")

		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, "client-supplied-id", resp.Header.Get(RequestIDHeader))
	})
}

func TestLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer

	app := fiber.New()
	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/documents", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusInternalServerError)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/documents", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	type line struct {
		Ts        string  `json:"ts"`
		RequestID string  `json:"request_id"`
		Method    string  `json:"method"`
		Path      string  `json:"path"`
		Status    int     `json:"status"`
		Latency   float64 `json:"latency"`
	}

	var lines []line
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var l line
		require.NoError(t, json.Unmarshal(sc.Bytes(), &l))
		lines = append(lines, l)
	}
	require.Len(t, lines, 2)

	assert.Equal(t, "GET", lines[0].Method)
	assert.Equal(t, "/documents", lines[0].Path)
	assert.Equal(t, fiber.StatusOK, lines[0].Status)
	assert.NotEmpty(t, lines[0].RequestID)
	_, err = time.Parse(time.RFC3339Nano, lines[0].Ts)
	assert.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, lines[1].Status)
}
