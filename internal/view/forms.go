package view

import (
	"github.com/kapu/meal-browser-go/internal/domain"
)

const searchInputClass = "form-control bg-transparent text-white"

// SearchInputs renders the name and first-letter search boxes.
func SearchInputs() Node {
	name := Node{Tag: "input", Class: searchInputClass, Attrs: []Attr{
		{"type", "text"},
		{"placeholder", "Search By Name"},
		{"data-input", ActionSearchName},
	}}
	letter := Node{Tag: "input", Class: searchInputClass, Attrs: []Attr{
		{"type", "text"},
		{"maxlength", "1"},
		{"placeholder", "Search By First Letter"},
		{"data-input", ActionSearchLetter},
	}}

	return El("div", "row py-4",
		El("div", "col-md-6", name),
		El("div", "col-md-6", letter),
	)
}

type contactInput struct {
	field       domain.FormField
	inputType   string
	placeholder string
	alert       string
}

// The password hint is broader than what the validator accepts (letters and
// digits only); the validator is authoritative.
var contactInputs = []contactInput{
	{domain.FieldName, "text", "Enter Your Name", "Special characters and numbers not allowed"},
	{domain.FieldEmail, "email", "Enter Your Email", "Email not valid *exemple@yyy.zzz"},
	{domain.FieldPhone, "text", "Enter Your Phone", "Enter valid Phone Number"},
	{domain.FieldAge, "number", "Enter Your Age", "Enter valid age"},
	{domain.FieldPassword, "password", "Enter Your Password", "Enter valid password *Minimum eight characters, at least one letter and one number:*"},
	{domain.FieldConfirmPassword, "password", "Repassword", "Enter valid repassword"},
}

// AlertID is the element id of a field's error message.
func AlertID(field domain.FormField) string {
	return string(field) + "Alert"
}

// InputID is the element id of a field's input.
func InputID(field domain.FormField) string {
	return string(field) + "Input"
}

// SubmitButtonID is the element id of the contact form's submit button.
const SubmitButtonID = "submitBtn"

// ContactForm renders the contact form with every alert hidden and submit
// disabled.
func ContactForm() Node {
	row := El("div", "row g-4")
	for _, in := range contactInputs {
		input := Node{Tag: "input", Class: "form-control", Attrs: []Attr{
			{"id", InputID(in.field)},
			{"type", in.inputType},
			{"placeholder", in.placeholder},
			{"data-form-field", string(in.field)},
		}}
		alert := TextEl("div", "alert alert-danger w-100 mt-2 d-none", in.alert).
			With(Attr{"id", AlertID(in.field)})

		row.Children = append(row.Children, El("div", "col-md-6", input, alert))
	}

	submit := TextEl("button", "btn btn-outline-danger px-2 mt-3", "Submit").
		With(Attr{"id", SubmitButtonID}, Attr{"disabled", ""}).
		On(ActionFormSubmit, "")

	return El("div", "contact min-vh-100 d-flex justify-content-center align-items-center",
		El("div", "container w-75 text-center", row, submit),
	)
}
