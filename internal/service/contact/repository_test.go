package contact

import (
	"strings"
	"testing"

	"github.com/kapu/meal-browser-go/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func TestNewSubmissionHashesPassword(t *testing.T) {
	values := map[domain.FormField]string{
		domain.FieldName:            "Jane Doe",
		domain.FieldEmail:           "jane@example.com",
		domain.FieldPhone:           "555 1234",
		domain.FieldAge:             "30",
		domain.FieldPassword:        "abc12345",
		domain.FieldConfirmPassword: "abc12345",
	}

	sub, err := NewSubmission(values)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if sub.Age != 30 {
		t.Fatalf("expected age 30, got %d", sub.Age)
	}
	if strings.Contains(sub.PasswordHash, "abc12345") {
		t.Fatalf("password must not be stored in clear text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(sub.PasswordHash), []byte("abc12345")); err != nil {
		t.Fatalf("hash does not match password: %v", err)
	}
}

func TestNewSubmissionHashesLongPassword(t *testing.T) {
	password := strings.Repeat("a1", 40)
	sub, err := NewSubmission(map[domain.FormField]string{
		domain.FieldAge:      "30",
		domain.FieldPassword: password,
	})
	if err != nil {
		t.Fatalf("expected no error for an 80 character password, got %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(sub.PasswordHash), passwordKey(password)); err != nil {
		t.Fatalf("hash does not match password: %v", err)
	}

	// differing only past byte 72 must still produce a different key
	other := password[:len(password)-1] + "b"
	if err := bcrypt.CompareHashAndPassword([]byte(sub.PasswordHash), passwordKey(other)); err == nil {
		t.Fatalf("expected a password differing after byte 72 to be rejected")
	}
}

func TestNewSubmissionRejectsNonNumericAge(t *testing.T) {
	_, err := NewSubmission(map[domain.FormField]string{domain.FieldAge: "old"})
	if err == nil {
		t.Fatalf("expected error for non-numeric age")
	}
}
