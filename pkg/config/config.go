package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
)

// Mail transport names accepted in MAIL_TRANSPORT.
const (
	TransportSMTP     = "smtp"
	TransportSendmail = "sendmail"
	TransportAPI      = "api"
	TransportSlack    = "slack"
	TransportLog      = "log"
)

type Config struct {
	Port     string
	LogLevel string

	MailTransport   string
	MailFromAddress string
	MailFromName    string
	MailTo          string
	FallbackPhone   string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPTLS      string // "mandatory", "opportunistic" or "none"

	SendmailPath string

	MailAPIURL string
	MailAPIKey string

	SlackWebhookURL string

	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
	ProbeInterval      time.Duration
}

func Load() (*Config, error) {
	// .env is a local convenience; missing file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", constants.DefaultPort),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		MailTransport:   strings.ToLower(getEnv("MAIL_TRANSPORT", TransportSMTP)),
		MailFromAddress: getEnv("MAIL_FROM_ADDRESS", constants.DefaultFromAddress),
		MailFromName:    getEnv("MAIL_FROM_NAME", constants.DefaultFromName),
		MailTo:          getEnv("MAIL_TO", constants.DefaultRecipient),
		FallbackPhone:   getEnv("FALLBACK_PHONE", constants.DefaultFallbackPhone),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", constants.DefaultSMTPPort),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPTLS:      strings.ToLower(getEnv("SMTP_TLS", "mandatory")),

		SendmailPath: getEnv("SENDMAIL_PATH", constants.DefaultSendmailPath),

		MailAPIURL: getEnv("MAIL_API_URL", constants.MailAPIDefaultURL),
		MailAPIKey: os.Getenv("MAIL_API_KEY"),

		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		ProbeInterval:      getEnvDuration("PROBE_INTERVAL", constants.DefaultProbeInterval),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MailFromAddress == "" {
		return fmt.Errorf("MAIL_FROM_ADDRESS is required")
	}
	if c.MailTo == "" {
		return fmt.Errorf("MAIL_TO is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", c.RequestTimeout)
	}
	if c.ProbeInterval <= 0 {
		return fmt.Errorf("PROBE_INTERVAL must be positive, got %v", c.ProbeInterval)
	}

	switch c.MailTransport {
	case TransportSMTP:
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required for the smtp transport")
		}
		if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
			return fmt.Errorf("SMTP_PORT must be between 1 and 65535, got %d", c.SMTPPort)
		}
		switch c.SMTPTLS {
		case "mandatory", "opportunistic", "none":
		default:
			return fmt.Errorf("SMTP_TLS must be mandatory, opportunistic or none, got %q", c.SMTPTLS)
		}
	case TransportSendmail:
		if c.SendmailPath == "" {
			return fmt.Errorf("SENDMAIL_PATH is required for the sendmail transport")
		}
	case TransportAPI:
		if c.MailAPIKey == "" {
			return fmt.Errorf("MAIL_API_KEY is required for the api transport")
		}
		if c.MailAPIURL == "" {
			return fmt.Errorf("MAIL_API_URL is required for the api transport")
		}
	case TransportSlack:
		if c.SlackWebhookURL == "" {
			return fmt.Errorf("SLACK_WEBHOOK_URL is required for the slack transport")
		}
	case TransportLog:
	default:
		return fmt.Errorf("unknown MAIL_TRANSPORT %q", c.MailTransport)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("90s", "5m") and plain seconds.
// Invalid values fall back to the default.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
