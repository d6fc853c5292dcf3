package model

import (
	"regexp"
	"sort"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]{7,20}$`)
)

// IsValidEmail accepts the empty string, the field is optional.
func IsValidEmail(email string) bool {
	return email == "" || emailPattern.MatchString(email)
}

// IsValidPhone accepts the empty string, the field is optional.
func IsValidPhone(phone string) bool {
	return phone == "" || phonePattern.MatchString(phone)
}

// EmailError returns a message for the user or "" if the address is fine.
func EmailError(email string) string {
	if !IsValidEmail(email) {
		return "Please enter a valid email address"
	}
	return ""
}

// PhoneError returns a message for the user or "" if the number is fine.
func PhoneError(phone string) string {
	if !IsValidPhone(phone) {
		return "Please enter a valid phone number"
	}
	return ""
}

// Violations maps a field to a message for the user.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// ValidationError rejects a save. Interim edits are never validated.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = e.Violations[f]
	}
	return strings.Join(msgs, " ")
}

func (v Violations) err() error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

// ValidateInvoice checks what the editor requires before saving: a client
// name and a description on every line. Contact data of the client is only
// checked on the client list, see ValidateClient.
func ValidateInvoice(inv Invoice) error {
	v := Violations{}
	if inv.Client.Name == "" {
		v["client.name"] = "Please enter a client name."
	}
	for _, item := range inv.LineItems {
		if item.Description == "" {
			v["lineItems"] = "Please fill in all item descriptions."
			break
		}
	}
	return v.err()
}

// ValidateClient checks a client of the client list before saving.
func ValidateClient(c Client) error {
	v := Violations{}
	if strings.TrimSpace(c.Name) == "" {
		v["name"] = "Please enter a client name."
	}
	if msg := EmailError(c.Email); msg != "" {
		v["email"] = msg
	}
	if msg := PhoneError(c.Phone); msg != "" {
		v["phone"] = msg
	}
	return v.err()
}
