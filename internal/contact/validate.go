package contact

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
)

// Validator checks submissions. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the custom tags registered.
func NewValidator() *Validator {
	v := validator.New()
	v.SetTagName("validate")
	RegisterValidators(v)
	return &Validator{validate: v}
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("dotted_domain", DottedDomain)
}

// DottedDomain requires the domain part of an address to contain a dot
// that is neither its first nor last character.
func DottedDomain(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	at := strings.LastIndex(val, "@")
	if at < 0 {
		return false
	}
	domain := val[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && !strings.HasSuffix(domain, ".")
}

// ValidationError reports which fields failed. It unwraps to ErrMissingFields
// or ErrInvalidEmail.
type ValidationError struct {
	Err    error
	Fields []string
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate returns a *ValidationError wrapping ErrMissingFields when any
// required field is empty, or ErrInvalidEmail when the address is malformed.
// Missing fields are reported first.
func (v *Validator) Validate(s *Submission) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Err: ErrMissingFields}
	}

	var missing, malformed []string
	for _, fe := range verrs {
		name := formName(fe.StructField())
		if fe.Tag() == "required" {
			missing = append(missing, name)
		} else {
			malformed = append(malformed, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Err: ErrMissingFields, Fields: missing}
	}
	return &ValidationError{Err: ErrInvalidEmail, Fields: malformed}
}

var formNames = map[string]string{
	"FirstName":   constants.FieldFirstName,
	"LastName":    constants.FieldLastName,
	"Email":       constants.FieldEmail,
	"ServiceType": constants.FieldServiceType,
}

func formName(structField string) string {
	if name, ok := formNames[structField]; ok {
		return name
	}
	return strings.ToLower(structField)
}
