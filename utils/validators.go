package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"studytrack_go/models"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	lowerRegex = regexp.MustCompile(`[a-z]`)
	upperRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex = regexp.MustCompile(`[0-9]`)
)

const (
	maxNameLength  = 255
	maxEmailLength = 255
)

// registrationFieldOrder fixes which field supplies the headline message when
// several fields fail at once.
var registrationFieldOrder = []string{"name", "email", "password", "confirm_password", "role"}

// RegistrationInput is a normalized, validated registration payload.
type RegistrationInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// ValidateRegistration checks a registration payload and returns the
// normalized input plus a field-keyed error map. All failing fields are
// reported, not just the first. Email uniqueness is the caller's concern;
// the password/confirm comparison is only made once the password itself
// passes its own rules.
func ValidateRegistration(name, email, password, confirmPassword, role string) (RegistrationInput, map[string]string) {
	errs := make(map[string]string)

	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		errs["name"] = "Name must be at least 2 characters long."
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errs["name"] = fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength)
	}

	email = NormalizeEmail(email)
	if !IsValidEmail(email) {
		errs["email"] = "Enter a valid email address."
	} else if utf8.RuneCountInString(email) > maxEmailLength {
		errs["email"] = fmt.Sprintf("Ensure this field has no more than %d characters.", maxEmailLength)
	}

	if msg := validatePassword(password); msg != "" {
		errs["password"] = msg
	} else if password != confirmPassword {
		errs["confirm_password"] = "Passwords do not match."
	}

	normalizedRole := models.RoleStudent
	if role != "" {
		normalizedRole = models.Role(role)
		if !normalizedRole.Valid() {
			errs["role"] = fmt.Sprintf("%q is not a valid choice.", role)
		}
	}

	if len(errs) > 0 {
		return RegistrationInput{}, errs
	}

	return RegistrationInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     normalizedRole,
	}, nil
}

// validatePassword applies the password policy in rule order and reports the
// first violation. Length is measured in characters, not bytes. No
// special-character requirement.
func validatePassword(password string) string {
	if utf8.RuneCountInString(password) < 8 {
		return "Password must be at least 8 characters long."
	}
	if !lowerRegex.MatchString(password) {
		return "Password must contain at least one lowercase letter."
	}
	if !upperRegex.MatchString(password) {
		return "Password must contain at least one uppercase letter."
	}
	if !digitRegex.MatchString(password) {
		return "Password must contain at least one number."
	}
	return ""
}

// IsValidEmail performs a syntactic email check.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// FirstRegistrationError picks the headline message for a failed
// registration, walking fields in declaration order.
func FirstRegistrationError(errs map[string]string) string {
	for _, field := range registrationFieldOrder {
		if msg, ok := errs[field]; ok {
			return msg
		}
	}
	for _, msg := range errs {
		return msg
	}
	return ""
}
