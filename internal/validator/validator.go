package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the domain's custom rules.
type Validator struct {
	validate *validator.Validate
}

var (
	personIDPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,20}$`)
	subjectCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{2,20}$`)
)

// New creates a Validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	_ = validate.RegisterValidation("person_id", func(fl validator.FieldLevel) bool {
		return personIDPattern.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("subject_code", func(fl validator.FieldLevel) bool {
		return subjectCodePattern.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("class_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	_ = validate.RegisterValidation("clock_time", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})

	// The QR payload joins fields with commas and has no escaping, so a
	// session topic must never contain one.
	_ = validate.RegisterValidation("qr_safe", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), ",")
	})

	return &Validator{validate: validate}
}

// Validate runs struct validation and converts failures to ValidationErrors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidationError describes one failed field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToValidationErrors converts validator.ValidationErrors into the domain
// error shape.
func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "request", Message: err.Error(), Rule: "struct"}}
	}

	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}

	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "person_id":
		return "must be 1-20 letters, digits, '-' or '_'"
	case "subject_code":
		return "must be 2-20 letters, digits, '-' or '_'"
	case "class_date":
		return "must be a date in YYYY-MM-DD format"
	case "clock_time":
		return "must be a time in HH:MM format"
	case "qr_safe":
		return "must not contain a comma"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
