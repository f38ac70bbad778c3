package users

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/JoyBrar2001/snapgram/internal/gateway"
)

func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("session", "session-"+userID)
		return c.Next()
	}
}

func newTestApp(t *testing.T, userID string) (*fiber.App, *stubGateway) {
	t.Helper()
	svc, gw := newTestService()
	app := fiber.New()
	RegisterRoutes(app.Group("/users"), svc, authAs(userID))
	return app, gw
}

func TestGetMe(t *testing.T) {
	app, gw := newTestApp(t, "u1")
	seedUser(gw, "u1", "ada")

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("me status: %v %d", err, resp.StatusCode)
	}

	var user gateway.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("expected u1, got %+v", user)
	}
}

func TestGetUserByID(t *testing.T) {
	app, gw := newTestApp(t, "u1")
	seedUser(gw, "u2", "bob")

	req := httptest.NewRequest(http.MethodGet, "/users/u2", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %v %d", err, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/users/missing", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v %d", err, resp.StatusCode)
	}
}

func TestListUsers(t *testing.T) {
	app, gw := newTestApp(t, "u1")
	seedUser(gw, "u1", "ada")
	seedUser(gw, "u2", "bob")

	req := httptest.NewRequest(http.MethodGet, "/users/?limit=1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %v %d", err, resp.StatusCode)
	}

	var users []gateway.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestUpdateProfileForbiddenForOthers(t *testing.T) {
	app, gw := newTestApp(t, "intruder")
	seedUser(gw, "u1", "ada")

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	if err := writer.WriteField("name", "hacked"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/users/u1", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %v %d", err, resp.StatusCode)
	}
	if gw.users["u1"].Name != "ada" {
		t.Fatal("profile must be untouched")
	}
}

func TestUpdateProfile(t *testing.T) {
	app, gw := newTestApp(t, "u1")
	seedUser(gw, "u1", "ada")

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	if err := writer.WriteField("name", "ada l"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.WriteField("bio", "mathematician"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/users/u1", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %v %d", err, resp.StatusCode)
	}

	var user gateway.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.Name != "ada l" || user.Bio != "mathematician" {
		t.Fatalf("unexpected user %+v", user)
	}
}
