package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding variables are unset.
const (
	DefaultSMTPServer    = "smtp.gmail.com"
	DefaultSMTPPort      = 587
	DefaultTimezone      = "America/Los_Angeles"
	DefaultTimezoneLabel = "PST"
)

// Config holds all runtime configuration. It is constructed once at startup
// and passed by reference into the collaborators; the report core itself
// takes no configuration.
type Config struct {
	// Zoom server-to-server OAuth app credentials.
	ZoomAccountID    string
	ZoomClientID     string
	ZoomClientSecret string

	// Outgoing mail settings.
	SenderEmail    string
	SenderPassword string
	SMTPServer     string
	SMTPPort       int
	Recipients     []string

	// Reporting timezone for displayed dates and times.
	Timezone      string
	TimezoneLabel string
}

// Load reads the configuration from the environment, honoring a .env file in
// the working directory when one exists. Load never fails: missing values
// stay empty and malformed values fall back to defaults; validity is checked
// by the callers that need a particular credential set.
func Load() *Config {
	// Best effort: absence of a .env file is the common case.
	_ = godotenv.Load()

	return &Config{
		ZoomAccountID:    getenv("ZOOM_ACCOUNT_ID"),
		ZoomClientID:     getenv("ZOOM_CLIENT_ID"),
		ZoomClientSecret: getenv("ZOOM_CLIENT_SECRET"),
		SenderEmail:      getenv("SENDER_EMAIL"),
		SenderPassword:   getenv("SENDER_PASSWORD"),
		SMTPServer:       getenvDefault("SMTP_SERVER", DefaultSMTPServer),
		SMTPPort:         safeInt(getenv("SMTP_PORT"), DefaultSMTPPort),
		Recipients:       SplitList(getenv("EMAIL_RECIPIENTS")),
		Timezone:         getenvDefault("REPORT_TIMEZONE", DefaultTimezone),
		TimezoneLabel:    getenvDefault("REPORT_TIMEZONE_LABEL", DefaultTimezoneLabel),
	}
}

// HasZoomCredentials reports whether all Zoom OAuth credentials are present.
func (c *Config) HasZoomCredentials() bool {
	return c.ZoomAccountID != "" && c.ZoomClientID != "" && c.ZoomClientSecret != ""
}

// HasMailCredentials reports whether the sender email and password are set.
func (c *Config) HasMailCredentials() bool {
	return c.SenderEmail != "" && c.SenderPassword != ""
}

// SplitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getenvDefault(key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// safeInt parses an integer, tolerating surrounding whitespace and quotes
// as they commonly leak in from .env files.
func safeInt(s string, def int) int {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Template is the .env template written by the init command.
const Template = `# Zoom API Configuration
ZOOM_ACCOUNT_ID=your_account_id
ZOOM_CLIENT_ID=your_client_id
ZOOM_CLIENT_SECRET=your_client_secret

# Email Configuration
SENDER_EMAIL=your_email@gmail.com
SENDER_PASSWORD=your_app_password
SMTP_SERVER=smtp.gmail.com
SMTP_PORT=587

# Recipients (comma-separated)
EMAIL_RECIPIENTS=manager@company.com,hr@company.com

# Reporting timezone (optional)
REPORT_TIMEZONE=America/Los_Angeles
REPORT_TIMEZONE_LABEL=PST
`
