package validation

import (
	"net"
	"strings"
	"testing"
)

func TestNewAPIURLValidator(t *testing.T) {
	v := NewAPIURLValidator()
	if v == nil {
		t.Fatal("NewAPIURLValidator returned nil")
	}
	if !v.AllowLocalhost {
		t.Error("Expected AllowLocalhost to be true for a local search service")
	}
	if !v.AllowPrivateIPs {
		t.Error("Expected AllowPrivateIPs to be true for a local search service")
	}
	if v.MaxLength != 2048 {
		t.Errorf("Expected MaxLength to be 2048, got %d", v.MaxLength)
	}
}

func TestValidateAndNormalize(t *testing.T) {
	v := NewAPIURLValidator()

	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
		errorMsg    string
	}{
		{
			name:        "empty URL",
			input:       "",
			shouldError: true,
			errorMsg:    "URL cannot be empty",
		},
		{
			name:        "whitespace-only URL",
			input:       "   ",
			shouldError: true,
			errorMsg:    "URL cannot be empty",
		},
		{
			name:     "default local service",
			input:    "http://localhost:9000",
			expected: "http://localhost:9000",
		},
		{
			name:     "bare host and port gets http",
			input:    "localhost:9000",
			expected: "http://localhost:9000",
		},
		{
			name:     "trailing slash removed",
			input:    "https://search.internal/",
			expected: "https://search.internal",
		},
		{
			name:     "path prefix kept",
			input:    "https://gateway.internal/startups/",
			expected: "https://gateway.internal/startups",
		},
		{
			name:        "unsupported scheme",
			input:       "ftp://localhost:9000",
			shouldError: true,
			errorMsg:    "http or https",
		},
		{
			name:        "query string rejected",
			input:       "http://localhost:9000/?x=1",
			shouldError: true,
			errorMsg:    "query or fragment",
		},
		{
			name:        "invalid characters",
			input:       "http://local<host>:9000",
			shouldError: true,
			errorMsg:    "invalid characters",
		},
		{
			name:        "traversal in path",
			input:       "http://localhost:9000/../admin",
			shouldError: true,
			errorMsg:    "directory traversal",
		},
		{
			name:        "too long",
			input:       "http://localhost/" + strings.Repeat("a", 2100),
			shouldError: true,
			errorMsg:    "too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateAndNormalize(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil (result %q)", tt.errorMsg, got)
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestValidatorRejectsLocalAddressesWhenDisallowed(t *testing.T) {
	v := &APIURLValidator{MaxLength: 2048}

	for _, input := range []string{
		"http://localhost:9000",
		"http://127.0.0.1:9000",
		"http://search.localhost",
		"http://192.168.1.10:9000",
		"http://10.0.0.5",
	} {
		if _, err := v.ValidateAndNormalize(input); err == nil {
			t.Errorf("expected %s to be rejected", input)
		}
	}

	if _, err := v.ValidateAndNormalize("https://search.acme.io"); err != nil {
		t.Errorf("public host rejected: %v", err)
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip      string
		private bool
	}{
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"172.32.0.1", false},
		{"192.168.0.1", true},
		{"127.0.0.1", true},
		{"169.254.1.1", true},
		{"8.8.8.8", false},
		{"fd00::1", true},
		{"fe80::1", true},
		{"2001:4860:4860::8888", false},
	}

	for _, tt := range tests {
		ip := net.ParseIP(tt.ip)
		if got := isPrivateIP(ip); got != tt.private {
			t.Errorf("isPrivateIP(%s) = %v, want %v", tt.ip, got, tt.private)
		}
	}
}

func TestIsRemoteResource(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"https://acme.io/logo.png", true},
		{"http://acme.io", true},
		{"  https://acme.io/a.jpg  ", true},
		{"", false},
		{"logo.png", false},
		{"/static/logo.png", false},
		{"data:image/png;base64,AAAA", false},
		{"javascript:alert(1)", false},
		{"https://", false},
	}

	for _, tt := range tests {
		if got := IsRemoteResource(tt.input); got != tt.expected {
			t.Errorf("IsRemoteResource(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
