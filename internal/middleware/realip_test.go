package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		headers map[string]string
		want    string
	}{
		{
			name:    "no trusted proxies ignores headers",
			remote:  "203.0.113.7:5000",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1", "X-Real-IP": "198.51.100.2"},
			want:    "203.0.113.7:5000",
		},
		{
			name:    "untrusted peer ignores headers",
			trusted: []string{"10.0.0.1"},
			remote:  "203.0.113.7:5000",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1"},
			want:    "203.0.113.7:5000",
		},
		{
			name:    "trusted address uses left-most forwarded entry",
			trusted: []string{"10.0.0.1"},
			remote:  "10.0.0.1:5000",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.9"},
			want:    "198.51.100.1",
		},
		{
			name:    "trusted range",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.20.30.40:5000",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1"},
			want:    "198.51.100.1",
		},
		{
			name:    "falls back to X-Real-IP",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.0.0.1:5000",
			headers: map[string]string{"X-Real-IP": "198.51.100.2"},
			want:    "198.51.100.2",
		},
		{
			name:    "invalid forwarded value falls back to X-Real-IP",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.0.0.1:5000",
			headers: map[string]string{"X-Forwarded-For": "not-an-ip", "X-Real-IP": "198.51.100.2"},
			want:    "198.51.100.2",
		},
		{
			name:    "trusted peer without headers keeps socket address",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.0.0.1:5000",
			want:    "10.0.0.1:5000",
		},
		{
			name:    "invalid trusted entries are skipped",
			trusted: []string{"proxy.internal", " ", "::1"},
			remote:  "[::1]:5000",
			headers: map[string]string{"X-Forwarded-For": "2001:db8::1"},
			want:    "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := RealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}
