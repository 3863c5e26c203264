package domain

import "time"

// FormField identifies one input of the contact form.
type FormField string

const (
	FieldName            FormField = "name"
	FieldEmail           FormField = "email"
	FieldPhone           FormField = "phone"
	FieldAge             FormField = "age"
	FieldPassword        FormField = "password"
	FieldConfirmPassword FormField = "repassword"
)

// FormFields lists the contact form inputs in display order.
var FormFields = []FormField{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldAge,
	FieldPassword,
	FieldConfirmPassword,
}

func (f FormField) String() string {
	return string(f)
}

func (f FormField) IsValid() bool {
	for _, known := range FormFields {
		if f == known {
			return true
		}
	}
	return false
}

// FormFieldState is the derived state of one field after validation.
type FormFieldState struct {
	Field     FormField `json:"field"`
	Value     string    `json:"-"`
	Valid     bool      `json:"valid"`
	ShowError bool      `json:"showError"`
}

// ContactSubmission is a validated contact form ready to be stored.
type ContactSubmission struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Age          int
	PasswordHash string
	CreatedAt    time.Time
}
