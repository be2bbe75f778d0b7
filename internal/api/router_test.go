package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/secondli/secondli-be/internal/auth"
	"github.com/secondli/secondli-be/internal/storage"
	"github.com/secondli/secondli-be/internal/websocket"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires a fresh store through the real router, mirroring the
// production setup in main.go.
func newTestRouter(t *testing.T) (*chi.Mux, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	sessions := auth.NewManager(store, "session_id", time.Hour, false)
	hub := websocket.NewHub()
	go hub.Run()

	return NewRouter(store, sessions, hub, []string{"http://localhost:3000"}), store
}

// doJSON performs a request against the router, encoding body as JSON when
// present and attaching any cookies.
func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes a JSON response body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// decodeBodySlice decodes a JSON array response body.
func decodeBodySlice(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerUser registers an account and returns its session cookies.
func registerUser(t *testing.T, router http.Handler, username, email, userType string) []*http.Cookie {
	t.Helper()

	payload := map[string]interface{}{
		"username": username,
		"password": "secret1",
		"email":    email,
		"fullName": "Test " + username,
	}
	if userType != "" {
		payload["userType"] = userType
	}

	rec := doJSON(t, router, http.MethodPost, "/api/register", payload, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "register must start a session")
	return cookies
}

// validProperty returns a payload accepted by POST /api/properties.
func validProperty(city string) map[string]interface{} {
	return map[string]interface{}{
		"title":        "2BHK in " + city,
		"description":  "Bright and airy",
		"location":     "Central " + city,
		"city":         city,
		"price":        5000000,
		"bedrooms":     2,
		"bathrooms":    1,
		"area":         900,
		"propertyType": "apartment",
	}
}
