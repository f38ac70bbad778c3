package social

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func newTestApp(t *testing.T, userID string) (*fiber.App, *stubGateway) {
	t.Helper()
	svc, gw := newTestService()
	app := fiber.New()
	RegisterRoutes(app.Group("/social"), svc, authAs(userID))
	return app, gw
}

func followBody(t *testing.T, userID string) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(followRequest{UserID: userID})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(body)
}

func TestFollowUnfollowHandlers(t *testing.T) {
	app, _ := newTestApp(t, "alice")

	req := httptest.NewRequest(http.MethodPost, "/social/follow", followBody(t, "bob"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("follow status: %v %d", err, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/social/following/alice", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("following status: %v %d", err, resp.StatusCode)
	}
	var ids []string
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ids) != 1 || ids[0] != "bob" {
		t.Fatalf("expected [bob], got %v", ids)
	}

	req = httptest.NewRequest(http.MethodDelete, "/social/follow", followBody(t, "bob"))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("unfollow status: %v %d", err, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/social/following/alice", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("following status: %v %d", err, resp.StatusCode)
	}
	ids = nil
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty following, got %v", ids)
	}
}

func TestFollowSelfRejected(t *testing.T) {
	app, _ := newTestApp(t, "alice")

	req := httptest.NewRequest(http.MethodPost, "/social/follow", followBody(t, "alice"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v %d", err, resp.StatusCode)
	}
}

func TestFollowRequiresUserID(t *testing.T) {
	app, _ := newTestApp(t, "alice")

	req := httptest.NewRequest(http.MethodPost, "/social/follow", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v %d", err, resp.StatusCode)
	}
}
