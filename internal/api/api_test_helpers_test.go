package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lifelag/lifelag/internal/db"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppWithConfig(t, HandlerConfig{CheckinRatePerMinute: 60, CheckinRateBurst: 20})
}

func newTestAppWithConfig(t *testing.T, config HandlerConfig) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "lifelag-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	config.SecretKey = testSecretKey
	config.Location = time.UTC
	handler, err := NewHandler(database, config)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

type testRequest struct {
	method string
	path   string
	token  string
	cookie string
	body   any
}

func doRequest(t *testing.T, app *fiber.App, req testRequest) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(req.method, req.path, reader)
	if req.body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		request.Header.Set("Authorization", "Bearer "+req.token)
	}
	if req.cookie != "" {
		request.Header.Set("Cookie", req.cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", req.method, req.path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", req.method, req.path, err)
	}
	return response, body
}

func decodeJSON(t *testing.T, body []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("decode response %q: %v", string(body), err)
	}
}

func readAPIError(t *testing.T, body []byte) string {
	t.Helper()
	payload := map[string]string{}
	decodeJSON(t, body, &payload)
	return payload["error"]
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response, body := doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   map[string]string{"email": email, "password": "StrongPass1"},
	})
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", email, response.StatusCode, string(body))
	}

	payload := struct {
		Token string `json:"token"`
	}{}
	decodeJSON(t, body, &payload)
	if payload.Token == "" {
		t.Fatal("expected token in register response")
	}
	return payload.Token
}

func answersBody(value int) map[string]int {
	return map[string]int{
		"energy": value, "sleep": value, "structure": value,
		"initiation": value, "engagement": value, "sustainability": value,
	}
}
