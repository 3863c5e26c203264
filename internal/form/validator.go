// Package form validates the contact form. Every evaluation re-checks all six
// fields so the submit gate always reflects the full form.
package form

import (
	"regexp"

	"github.com/kapu/meal-browser-go/internal/domain"
)

// browserSpace is the whitespace set browsers use for \s, which is wider
// than RE2's [\t\n\f\r ].
const browserSpace = `\t\n\x{0b}\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z ]+$`)
	emailPattern = regexp.MustCompile(`^[^` + browserSpace + `@]+@[^` + browserSpace + `@]+\.[^` + browserSpace + `@]+$`)
	phonePattern = regexp.MustCompile(`^[\d` + browserSpace + `\-+()]+$`)
	agePattern   = regexp.MustCompile(`^(1[89]|[2-9]\d)$`)

	// RE2 has no lookahead; these three together accept exactly
	// ^(?=.*[A-Za-z])(?=.*\d)[A-Za-z\d]{8,}$.
	passwordCharset = regexp.MustCompile(`^[A-Za-z\d]{8,}$`)
	passwordLetter  = regexp.MustCompile(`[A-Za-z]`)
	passwordDigit   = regexp.MustCompile(`\d`)
)

// Values holds the current text of each field.
type Values map[domain.FormField]string

// Result is the outcome of one validation pass.
type Result struct {
	Fields        []domain.FormFieldState `json:"fields"`
	SubmitEnabled bool                    `json:"submitEnabled"`
}

// Field returns the state for f.
func (r Result) Field(f domain.FormField) domain.FormFieldState {
	for _, state := range r.Fields {
		if state.Field == f {
			return state
		}
	}
	return domain.FormFieldState{Field: f}
}

// Validator holds the rules for the contact form.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate evaluates every field. An empty field never shows an error but
// still counts as invalid, so an untouched form keeps submit disabled.
func (v *Validator) Validate(values Values) Result {
	result := Result{Fields: make([]domain.FormFieldState, 0, len(domain.FormFields))}
	allValid := true

	for _, field := range domain.FormFields {
		value := values[field]
		valid := v.check(field, value, values)
		result.Fields = append(result.Fields, domain.FormFieldState{
			Field:     field,
			Value:     value,
			Valid:     valid,
			ShowError: !valid && value != "",
		})
		if !valid {
			allValid = false
		}
	}

	result.SubmitEnabled = allValid
	return result
}

func (v *Validator) check(field domain.FormField, value string, values Values) bool {
	switch field {
	case domain.FieldName:
		return namePattern.MatchString(value)
	case domain.FieldEmail:
		return emailPattern.MatchString(value)
	case domain.FieldPhone:
		return phonePattern.MatchString(value)
	case domain.FieldAge:
		return agePattern.MatchString(value)
	case domain.FieldPassword:
		return validPassword(value)
	case domain.FieldConfirmPassword:
		return value != "" && value == values[domain.FieldPassword]
	default:
		return false
	}
}

func validPassword(value string) bool {
	return passwordCharset.MatchString(value) &&
		passwordLetter.MatchString(value) &&
		passwordDigit.MatchString(value)
}
