package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.SiteDir != "/app/site" {
		t.Errorf("SiteDir = %q, want /app/site", cfg.SiteDir)
	}
	if cfg.RedisEnabled() {
		t.Error("redis should be disabled without COURSESITE_REDIS_ADDR")
	}
	if !cfg.Watch {
		t.Error("watch should default to true")
	}
	if cfg.AllowedHosts != nil || cfg.AllowedCIDRS != nil {
		t.Errorf("expected no access restrictions, got hosts=%v cidrs=%v", cfg.AllowedHosts, cfg.AllowedCIDRS)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COURSESITE_SITE_DIR", "/srv/course")
	t.Setenv("COURSESITE_STRICT", "true")
	t.Setenv("COURSESITE_RELOAD_INTERVAL", "10m")
	t.Setenv("COURSESITE_RELOAD_RATE", "1.5")
	t.Setenv("COURSESITE_ALLOWED_CIDRS", "10.0.0.0/8, '192.168.1.4'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SiteDir != "/srv/course" {
		t.Errorf("SiteDir = %q", cfg.SiteDir)
	}
	if !cfg.Strict {
		t.Error("Strict should be true")
	}
	if cfg.ReloadInterval != 10*time.Minute {
		t.Errorf("ReloadInterval = %v", cfg.ReloadInterval)
	}
	if cfg.ReloadRate != 1.5 {
		t.Errorf("ReloadRate = %v", cfg.ReloadRate)
	}
	if len(cfg.AllowedCIDRS) != 2 || cfg.AllowedCIDRS[1] != "192.168.1.4" {
		t.Errorf("AllowedCIDRS = %v", cfg.AllowedCIDRS)
	}
}

func TestLoadRedisPassword(t *testing.T) {
	tests := []struct {
		name     string
		addr     string
		required string
		password string
		wantErr  error
	}{
		{name: "redis disabled", addr: "", required: "true", password: "", wantErr: nil},
		{name: "password missing", addr: "localhost:6379", required: "true", password: "", wantErr: ErrRedisPasswordRequired},
		{name: "password set", addr: "localhost:6379", required: "true", password: "s3cret", wantErr: nil},
		{name: "password optional", addr: "localhost:6379", required: "false", password: "", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("COURSESITE_REDIS_ADDR", tt.addr)
			t.Setenv("COURSESITE_REDIS_PASSWORD_REQUIRED", tt.required)
			t.Setenv("COURSESITE_REDIS_PASSWORD", tt.password)

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{RedisUser: "default", RedisPassword: "s3cret"}
	r := cfg.Redacted()
	if r.RedisPassword == "s3cret" || r.RedisUser == "default" {
		t.Errorf("secrets leaked: %+v", r)
	}
	if cfg.RedisPassword != "s3cret" {
		t.Error("Redacted must not modify the receiver")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{name: "empty", value: "", expected: nil},
		{name: "single value", value: "value1", expected: []string{"value1"}},
		{name: "multiple values", value: "value1, value2, value3", expected: []string{"value1", "value2", "value3"}},
		{name: "quotes and blanks", value: `"a", ,'b'`, expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.value)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", key: "TEST_BOOL", value: "true", def: false, expected: true},
		{name: "false value", key: "TEST_BOOL_FALSE", value: "false", def: true, expected: false},
		{name: "invalid value uses default", key: "TEST_BOOL_INVALID", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", key: "TEST_BOOL_MISSING", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetenvFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.25")
	t.Setenv("TEST_FLOAT_BAD", "abc")

	if got := getenvFloat("TEST_FLOAT", 1); got != 0.25 {
		t.Errorf("getenvFloat() = %v, want 0.25", got)
	}
	if got := getenvFloat("TEST_FLOAT_BAD", 1); got != 1 {
		t.Errorf("getenvFloat() = %v, want default", got)
	}
}
