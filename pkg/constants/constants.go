// Package constants defines all constant values used throughout the application.
//
// This package centralizes:
// - Contact form field names as posted by the site markup
// - Service and timeframe label tables used when rendering e-mails
// - User-facing result messages for the contact endpoint
// - Slide rotation and notification timings used by the browser client
// - Server timeouts and request limits
//
// Centralizing constants here keeps the server and the browser client
// agreeing on field names and copy without sharing any runtime state.
package constants

import "time"

// Form field names.
// These must match the name attributes of the contact form inputs.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldServiceType = "serviceType"
	FieldRoomSize    = "roomSize"
	FieldTimeframe   = "timeframe"
	FieldMessage     = "message"
)

// FormFields lists every field the contact endpoint reads, in form order.
var FormFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldAddress,
	FieldServiceType,
	FieldRoomSize,
	FieldTimeframe,
	FieldMessage,
}

// RequiredFormFields lists the fields that must be non-empty after trimming.
var RequiredFormFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldServiceType,
}

// ServiceTypeNames maps serviceType codes to the label shown in e-mails.
//
// Codes that are not in this table are shown verbatim (HTML-escaped).
var ServiceTypeNames = map[string]string{
	"carpet":       "Carpet Installation",
	"vinyl":        "Vinyl Flooring",
	"laminate":     "Laminate Flooring",
	"lvt":          "Luxury Vinyl Tiles (LVT)",
	"consultation": "Free Consultation",
	"other":        "Other",
}

// TimeframeNames maps timeframe codes to the label shown in e-mails.
var TimeframeNames = map[string]string{
	"asap":     "As soon as possible",
	"2weeks":   "Within 2 weeks",
	"month":    "Within a month",
	"3months":  "Within 3 months",
	"planning": "Just planning ahead",
}

// Contact endpoint result messages.
const (
	MessageMissingFields = "Please fill in all required fields."
	MessageInvalidEmail  = "Please enter a valid email address."
	MessageSent          = "Thank you! Your message has been sent successfully. We'll get back to you soon!"

	// MessageSendFailedFormat takes the fallback phone number.
	MessageSendFailedFormat = "Failed to send email. Please call us directly at %s."

	// MessageTooLarge is returned when the POST body exceeds MaxContactBodyBytes.
	MessageTooLarge = "Your message is too long. Please shorten it or call us directly."

	// MessageDirectAccess is the plain-text body returned for non-POST requests.
	MessageDirectAccess = "Direct access not allowed"

	// MessageNetworkFailure is shown by the browser client when the request
	// itself fails or the response cannot be decoded.
	MessageNetworkFailure = "Sorry, something went wrong sending your message. Please try again or call us directly."
)

// Mail defaults.
const (
	DefaultFromAddress   = "noreply@localcarpetfitter.co.uk"
	DefaultFromName      = "Local Carpet Fitter Website"
	DefaultRecipient     = "info@localcarpetfitter.co.uk"
	DefaultFallbackPhone = "07412 703260"
	DefaultSendmailPath  = "/usr/sbin/sendmail"
	DefaultSMTPPort      = 587

	// MailAPIDefaultURL is the transactional e-mail endpoint used by the api transport.
	MailAPIDefaultURL = "https://api.brevo.com/v3/smtp/email"
)

// Request limits.
const (
	// MaxContactBodyBytes caps the size of a contact form POST body.
	// The form has nine short fields and one free-text message.
	MaxContactBodyBytes = 64 << 10
)

// Slide rotation timings.
const (
	// SlideInterval is the auto-advance period of a slider.
	SlideInterval = 5000 * time.Millisecond

	// SlideSettleDelay is the pause between marking a slide inactive and
	// marking the next one active. Slightly longer than the 2s CSS
	// transition so the two never overlap.
	SlideSettleDelay = 2100 * time.Millisecond
)

// NotificationDuration is how long a toast notification stays visible.
const NotificationDuration = 5 * time.Second

// Timeouts for various operations.
const (
	// DefaultHTTPTimeout is the default timeout for outbound HTTP clients.
	// Used for the mail API and Slack webhook transports.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultSMTPTimeout bounds dialling and talking to the SMTP relay.
	DefaultSMTPTimeout = 20 * time.Second

	// DefaultRequestTimeout bounds a single contact request, transport call included.
	DefaultRequestTimeout = 30 * time.Second

	// ServerReadTimeout is the maximum duration for reading the entire request.
	// Prevents slow client attacks.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration before timing out writes.
	// Allows time for one transport call and response generation.
	ServerWriteTimeout = 35 * time.Second

	// ServerIdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	ServerIdleTimeout = 120 * time.Second

	// GracefulShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Allows in-flight requests to complete before forcing shutdown.
	GracefulShutdownTimeout = 30 * time.Second

	// DefaultProbeInterval is how often the transport reachability probe runs.
	DefaultProbeInterval = 5 * time.Minute

	// ProbeTimeout bounds a single transport reachability probe.
	ProbeTimeout = 10 * time.Second
)

// Default configuration values.
const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"
)
