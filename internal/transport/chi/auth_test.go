package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_Disabled_PassThrough(t *testing.T) {
	for name, keys := range map[string][]string{"nil": nil, "empty strings": {"", ""}} {
		t.Run(name, func(t *testing.T) {
			handler := BearerAuthMiddleware(keys)(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/recomendacion/Heat", http.NoBody)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Errorf("got %d, want %d", rr.Code, http.StatusOK)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		method string
		header string
		want   int
	}{
		{"missing header", "/score_titulo/Heat", http.MethodGet, "", http.StatusUnauthorized},
		{"basic scheme", "/score_titulo/Heat", http.MethodGet, "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"invalid token", "/score_titulo/Heat", http.MethodGet, "Bearer wrong-key", http.StatusUnauthorized},
		{"prefix of key", "/score_titulo/Heat", http.MethodGet, "Bearer key", http.StatusUnauthorized},
		{"first key", "/score_titulo/Heat", http.MethodGet, "Bearer key1", http.StatusOK},
		{"second key", "/score_titulo/Heat", http.MethodGet, "Bearer key2", http.StatusOK},
		{"root exempt", "/", http.MethodGet, "", http.StatusOK},
		{"health exempt", "/health", http.MethodGet, "", http.StatusOK},
		{"metrics exempt", "/metrics", http.MethodGet, "", http.StatusOK},
		{"preflight exempt", "/score_titulo/Heat", http.MethodOptions, "", http.StatusOK},
	}

	handler := BearerAuthMiddleware([]string{"key1", "key2"})(okHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("got %d, want %d", rr.Code, tt.want)
			}
			if tt.want != http.StatusUnauthorized {
				return
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != CodeUnauthorized {
				t.Errorf("error code: got %s, want %s", errResp.Code, CodeUnauthorized)
			}
		})
	}
}
