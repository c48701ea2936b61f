package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestID(zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("requestID").(string))
	})
	return app
}

func TestRequestIDGenerated(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Fatalf("expected generated uuid, got %q", resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDReused(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, id)

	resp, err := newApp().Test(req)
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestRequestIDReplacesGarbage(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")

	resp, err := newApp().Test(req)
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if got := resp.Header.Get(RequestIDHeader); got == "<script>" {
		t.Fatalf("unsanitized request id echoed")
	}
}

func TestRequestIDLogsErrorStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	app := fiber.New()
	app.Use(RequestID(zap.New(core)))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	for path, want := range map[string]int64{
		"/missing": fiber.StatusNotFound,
		"/boom":    fiber.StatusInternalServerError,
		"/ok":      fiber.StatusCreated,
	} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if resp.StatusCode != int(want) {
			t.Fatalf("%s: response status %d, want %d", path, resp.StatusCode, want)
		}

		entries := logs.TakeAll()
		if len(entries) != 1 {
			t.Fatalf("%s: expected one log entry, got %d", path, len(entries))
		}
		if got := entries[0].ContextMap()["status"]; got != want {
			t.Fatalf("%s: logged status %v, want %d", path, got, want)
		}
	}
}
