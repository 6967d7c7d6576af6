package config

import (
	"os"
	"strconv"
)

// App collects the environment-level settings that gate runtime behavior:
// development mode, owner contact addresses, and provider credentials.
type App struct {
	Env string // "development" | "production"

	// owner contact; empty value disables that notification channel
	OwnerEmail string
	OwnerPhone string

	// SMTP (email sender)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// SMS provider (Twilio-compatible HTTP API)
	SMSAPIURL     string
	SMSAccountSID string
	SMSAuthToken  string
	SMSFromNumber string

	// resume storage
	GCSBucket string

	// language model
	VertexProject  string
	VertexLocation string
	VertexModel    string
}

func LoadApp() App {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	return App{
		Env: env,

		OwnerEmail: os.Getenv("OWNER_EMAIL"),
		OwnerPhone: os.Getenv("OWNER_PHONE"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     port,
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		SMSAPIURL:     os.Getenv("SMS_API_URL"),
		SMSAccountSID: os.Getenv("SMS_ACCOUNT_SID"),
		SMSAuthToken:  os.Getenv("SMS_AUTH_TOKEN"),
		SMSFromNumber: os.Getenv("SMS_FROM_NUMBER"),

		GCSBucket: os.Getenv("GCS_BUCKET"),

		VertexProject:  os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation: os.Getenv("VERTEX_LOCATION"),
		VertexModel:    os.Getenv("VERTEX_MODEL"),
	}
}

func (a App) IsDevelopment() bool { return a.Env == "development" }
