// Package contact models a contact form submission and validates it on the
// server side.
package contact

import (
	"errors"
	"html"
	"net/url"
	"strings"

	"github.com/localcarpetfitter/sitemailer/pkg/constants"
)

// Validation failures. Their messages are safe to show to the submitter.
var (
	ErrMissingFields = errors.New(constants.MessageMissingFields)
	ErrInvalidEmail  = errors.New(constants.MessageInvalidEmail)
)

// Submission is one contact form post. All values are trimmed but otherwise
// raw; escaping happens at render time.
type Submission struct {
	FirstName   string `form:"firstName" validate:"required"`
	LastName    string `form:"lastName" validate:"required"`
	Email       string `form:"email" validate:"required,email,dotted_domain"`
	Phone       string `form:"phone"`
	Address     string `form:"address"`
	ServiceType string `form:"serviceType" validate:"required"`
	RoomSize    string `form:"roomSize"`
	Timeframe   string `form:"timeframe"`
	Message     string `form:"message"`
}

// Result is the JSON body returned by the contact endpoint.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FromForm builds a Submission from posted form values, trimming every field.
// Missing fields become empty strings.
func FromForm(values url.Values) *Submission {
	get := func(key string) string {
		return strings.TrimSpace(values.Get(key))
	}
	return &Submission{
		FirstName:   get(constants.FieldFirstName),
		LastName:    get(constants.FieldLastName),
		Email:       get(constants.FieldEmail),
		Phone:       get(constants.FieldPhone),
		Address:     get(constants.FieldAddress),
		ServiceType: get(constants.FieldServiceType),
		RoomSize:    get(constants.FieldRoomSize),
		Timeframe:   get(constants.FieldTimeframe),
		Message:     get(constants.FieldMessage),
	}
}

// FullName is the submitter's raw name as used for the reply-to header.
func (s *Submission) FullName() string {
	return s.FirstName + " " + s.LastName
}

// ServiceLabel returns the display label for a service code, or the
// HTML-escaped code itself when it is not in the table.
func ServiceLabel(code string) string {
	return lookupLabel(constants.ServiceTypeNames, code)
}

// TimeframeLabel returns the display label for a timeframe code, or the
// HTML-escaped code itself when it is not in the table.
func TimeframeLabel(code string) string {
	return lookupLabel(constants.TimeframeNames, code)
}

func lookupLabel(table map[string]string, code string) string {
	if label, ok := table[code]; ok {
		return label
	}
	return html.EscapeString(code)
}
