package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/localcarpetfitter/sitemailer/pkg/constants"
)

var allKeys = []string{
	"PORT", "LOG_LEVEL", "MAIL_TRANSPORT", "MAIL_FROM_ADDRESS", "MAIL_FROM_NAME", "MAIL_TO",
	"FALLBACK_PHONE", "SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_TLS",
	"SENDMAIL_PATH", "MAIL_API_URL", "MAIL_API_KEY", "SLACK_WEBHOOK_URL",
	"CORS_ALLOWED_ORIGINS", "REQUEST_TIMEOUT", "PROBE_INTERVAL",
}

// Helper function to set environment variables for testing
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set environment variable %s: %v", key, err)
	}
	t.Cleanup(func() {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset environment variable %s: %v", key, err)
		}
	})
}

// clearEnv unsets every variable Load reads so tests start from defaults
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset environment variable %s: %v", key, err)
		}
	}
}

func validConfig() *Config {
	return &Config{
		Port:            "8080",
		MailTransport:   TransportSMTP,
		MailFromAddress: "noreply@example.com",
		MailTo:          "info@example.com",
		SMTPHost:        "smtp.example.com",
		SMTPPort:        587,
		SMTPTLS:         "mandatory",
		RequestTimeout:  30 * time.Second,
		ProbeInterval:   time.Minute,
	}
}

// TestLoad_SMTPDefaults tests a minimal smtp configuration falls back to defaults
func TestLoad_SMTPDefaults(t *testing.T) {
	clearEnv(t)
	setEnv(t, "SMTP_HOST", "smtp.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Port != constants.DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, constants.DefaultPort)
	}
	if cfg.MailTransport != TransportSMTP {
		t.Errorf("MailTransport = %q, want %q", cfg.MailTransport, TransportSMTP)
	}
	if cfg.MailFromAddress != constants.DefaultFromAddress {
		t.Errorf("MailFromAddress = %q, want %q", cfg.MailFromAddress, constants.DefaultFromAddress)
	}
	if cfg.MailFromName != constants.DefaultFromName {
		t.Errorf("MailFromName = %q, want %q", cfg.MailFromName, constants.DefaultFromName)
	}
	if cfg.MailTo != constants.DefaultRecipient {
		t.Errorf("MailTo = %q, want %q", cfg.MailTo, constants.DefaultRecipient)
	}
	if cfg.FallbackPhone != constants.DefaultFallbackPhone {
		t.Errorf("FallbackPhone = %q, want %q", cfg.FallbackPhone, constants.DefaultFallbackPhone)
	}
	if cfg.SMTPPort != constants.DefaultSMTPPort {
		t.Errorf("SMTPPort = %d, want %d", cfg.SMTPPort, constants.DefaultSMTPPort)
	}
	if cfg.SMTPTLS != "mandatory" {
		t.Errorf("SMTPTLS = %q, want mandatory", cfg.SMTPTLS)
	}
	if cfg.RequestTimeout != constants.DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, constants.DefaultRequestTimeout)
	}
	if cfg.ProbeInterval != constants.DefaultProbeInterval {
		t.Errorf("ProbeInterval = %v, want %v", cfg.ProbeInterval, constants.DefaultProbeInterval)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("CORSAllowedOrigins = %v, want nil", cfg.CORSAllowedOrigins)
	}
}

// TestLoad_CustomValues tests that every variable is read
func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	setEnv(t, "PORT", "9000")
	setEnv(t, "LOG_LEVEL", "DEBUG")
	setEnv(t, "MAIL_TRANSPORT", "API")
	setEnv(t, "MAIL_API_KEY", "xkeysib-test")
	setEnv(t, "MAIL_API_URL", "http://localhost:9999/send")
	setEnv(t, "MAIL_TO", "owner@example.com")
	setEnv(t, "FALLBACK_PHONE", "0123")
	setEnv(t, "CORS_ALLOWED_ORIGINS", "https://example.com/, ,https://www.example.com")
	setEnv(t, "REQUEST_TIMEOUT", "15s")
	setEnv(t, "PROBE_INTERVAL", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.MailTransport != TransportAPI {
		t.Errorf("MailTransport = %q, want %q", cfg.MailTransport, TransportAPI)
	}
	if cfg.MailAPIURL != "http://localhost:9999/send" {
		t.Errorf("MailAPIURL = %q", cfg.MailAPIURL)
	}
	if cfg.MailTo != "owner@example.com" {
		t.Errorf("MailTo = %q", cfg.MailTo)
	}
	if cfg.FallbackPhone != "0123" {
		t.Errorf("FallbackPhone = %q", cfg.FallbackPhone)
	}
	wantOrigins := []string{"https://example.com", "https://www.example.com"}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, wantOrigins) {
		t.Errorf("CORSAllowedOrigins = %v, want %v", cfg.CORSAllowedOrigins, wantOrigins)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.ProbeInterval != 120*time.Second {
		t.Errorf("ProbeInterval = %v, want 2m", cfg.ProbeInterval)
	}
}

// TestLoad_InvalidNumbersFallBack tests invalid numeric values use defaults
func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	setEnv(t, "SMTP_HOST", "smtp.example.com")
	setEnv(t, "SMTP_PORT", "not-a-port")
	setEnv(t, "REQUEST_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.SMTPPort != constants.DefaultSMTPPort {
		t.Errorf("SMTPPort = %d, want %d", cfg.SMTPPort, constants.DefaultSMTPPort)
	}
	if cfg.RequestTimeout != constants.DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, constants.DefaultRequestTimeout)
	}
}

// TestLoad_MissingSMTPHost tests the default transport requires a host
func TestLoad_MissingSMTPHost(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load() should fail without SMTP_HOST")
	}
	if cfg != nil {
		t.Error("Load() should return nil config on error")
	}
	if !strings.Contains(err.Error(), "SMTP_HOST") {
		t.Errorf("error = %q, want mention of SMTP_HOST", err.Error())
	}
}

// TestValidate tests per-transport validation rules
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid smtp", mutate: func(c *Config) {}},
		{name: "missing from", mutate: func(c *Config) { c.MailFromAddress = "" }, wantErr: "MAIL_FROM_ADDRESS"},
		{name: "missing recipient", mutate: func(c *Config) { c.MailTo = "" }, wantErr: "MAIL_TO"},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: "REQUEST_TIMEOUT"},
		{name: "negative probe interval", mutate: func(c *Config) { c.ProbeInterval = -time.Second }, wantErr: "PROBE_INTERVAL"},
		{name: "bad smtp port", mutate: func(c *Config) { c.SMTPPort = 70000 }, wantErr: "SMTP_PORT"},
		{name: "bad tls policy", mutate: func(c *Config) { c.SMTPTLS = "sometimes" }, wantErr: "SMTP_TLS"},
		{
			name:    "sendmail without path",
			mutate:  func(c *Config) { c.MailTransport = TransportSendmail; c.SendmailPath = "" },
			wantErr: "SENDMAIL_PATH",
		},
		{
			name:   "sendmail ok",
			mutate: func(c *Config) { c.MailTransport = TransportSendmail; c.SendmailPath = "/usr/sbin/sendmail" },
		},
		{
			name:    "api without key",
			mutate:  func(c *Config) { c.MailTransport = TransportAPI; c.MailAPIURL = "https://x" },
			wantErr: "MAIL_API_KEY",
		},
		{
			name:    "slack without webhook",
			mutate:  func(c *Config) { c.MailTransport = TransportSlack },
			wantErr: "SLACK_WEBHOOK_URL",
		},
		{name: "log transport", mutate: func(c *Config) { c.MailTransport = TransportLog; c.SMTPHost = "" }},
		{name: "unknown transport", mutate: func(c *Config) { c.MailTransport = "pigeon" }, wantErr: "unknown MAIL_TRANSPORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
