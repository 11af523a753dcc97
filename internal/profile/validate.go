package profile

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation messages shown to the user.
const (
	MsgNameTooShort     = "Name must be at least 3 characters"
	MsgNameTooLong      = "Name must not exceed 50 characters"
	MsgNameCharacters   = "Name can only contain letters, spaces, hyphens, and apostrophes"
	MsgEmailInvalid     = "Please enter a valid email address"
	MsgEmailTooLong     = "Email address is too long"
	MsgAgeNotWhole      = "Age must be a whole number"
	MsgAgeTooYoung      = "Age must be greater than 18"
	MsgAgeOutOfRange    = "Please enter a valid age"
	msgValidationFailed = "Invalid profile"
)

var (
	personNameRe = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
	emailRe      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// validate caches struct metadata, so one instance serves the package.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	return v
}

// ValidationError is a local validation failure. It never reaches the state store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Form is the raw input collected by a profile form.
type Form struct {
	Name  string
	Email string
	Age   string
}

// FormFrom pre-fills a form from an existing profile. A nil profile yields an empty form.
func FormFrom(p *Profile) Form {
	if p == nil {
		return Form{}
	}
	f := Form{Name: p.Name, Email: p.Email}
	if p.Age != nil {
		f.Age = strconv.Itoa(*p.Age)
	}
	return f
}

type draftInput struct {
	Name  string `validate:"required,min=3,max=50,personname"`
	Email string `validate:"required,emailaddr,max=254"`
	Age   *int   `validate:"omitempty,min=18,max=120"`
}

var messages = map[string]map[string]string{
	"Name": {
		"required":   MsgNameTooShort,
		"min":        MsgNameTooShort,
		"max":        MsgNameTooLong,
		"personname": MsgNameCharacters,
	},
	"Email": {
		"required":  MsgEmailInvalid,
		"emailaddr": MsgEmailInvalid,
		"max":       MsgEmailTooLong,
	},
	"Age": {
		"min": MsgAgeTooYoung,
		"max": MsgAgeOutOfRange,
	},
}

// ParseForm trims and validates f and returns the resulting draft. The first
// failing rule, checked in name, email, age order, is reported as a *ValidationError.
func ParseForm(f Form) (*Profile, error) {
	draft := &Profile{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
	}
	age, ageErr := parseAge(f.Age)
	draft.Age = age

	if err := check(draftInput{Name: draft.Name, Email: draft.Email}); err != nil {
		return nil, err
	}
	if ageErr != nil {
		return nil, ageErr
	}
	if err := Validate(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Validate applies the form rules to an already structured draft. The ID is not checked.
func Validate(p *Profile) error {
	if p == nil {
		return &ValidationError{Message: msgValidationFailed}
	}
	return check(draftInput{Name: p.Name, Email: p.Email, Age: p.Age})
}

func check(in draftInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: msgValidationFailed}
	}
	first := verrs[0]
	msg, ok := messages[first.Field()][first.Tag()]
	if !ok {
		msg = msgValidationFailed
	}
	return &ValidationError{Field: strings.ToLower(first.Field()), Message: msg}
}

// parseAge accepts an empty string (no age) or a whole number, tolerating forms
// like "30.0" and "1e10". Out-of-range values are clamped to int32.
func parseAge(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return nil, &ValidationError{Field: "age", Message: MsgAgeNotWhole}
	}
	n := int(max(min(f, math.MaxInt32), math.MinInt32))
	return &n, nil
}
