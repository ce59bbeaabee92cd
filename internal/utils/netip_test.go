package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remote: "10.1.2.3:5555", want: "10.1.2.3"},
		{name: "ipv6 remote", remote: "[::1]:80", want: "::1"},
		{name: "headers ignored without trust", remote: "10.1.2.3:1", headers: map[string]string{"X-Forwarded-For": "1.1.1.1"}, want: "10.1.2.3"},
		{name: "left-most forwarded", remote: "10.1.2.3:1", headers: map[string]string{"X-Forwarded-For": " 1.1.1.1 , 2.2.2.2"}, trustProxy: true, want: "1.1.1.1"},
		{name: "cloudflare first", remote: "10.1.2.3:1", headers: map[string]string{"CF-Connecting-IP": "3.3.3.3", "X-Forwarded-For": "1.1.1.1"}, trustProxy: true, want: "3.3.3.3"},
		{name: "real ip last", remote: "10.1.2.3:1", headers: map[string]string{"X-Real-IP": "4.4.4.4"}, trustProxy: true, want: "4.4.4.4"},
		{name: "no headers falls back", remote: "10.1.2.3:1", trustProxy: true, want: "10.1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{" 10.0.0.0/8 ", "192.168.1.7", "::1", "garbage", ""})
	if m.IsEmpty() {
		t.Fatal("matcher is empty")
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.20.30.40", true},
		{"11.0.0.1", false},
		{"192.168.1.7", true},
		{"192.168.1.8", false},
		{"::1", true},
		{"::ffff:10.0.0.1", true},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("nil list should produce an empty matcher")
	}
}
