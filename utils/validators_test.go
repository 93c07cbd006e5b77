package utils

import (
	"strings"
	"testing"

	"studytrack_go/models"
)

func validRegistration() (name, email, password, confirm, role string) {
	return "Asha Rao", "asha@example.com", "Abcd1234", "Abcd1234", "student"
}

func TestValidateRegistrationPasswordRules(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{
			name:     "no uppercase",
			password: "abcd1234",
			wantErr:  "Password must contain at least one uppercase letter.",
		},
		{
			name:     "no lowercase",
			password: "ABCD1234",
			wantErr:  "Password must contain at least one lowercase letter.",
		},
		{
			name:     "no digit",
			password: "Abcdefgh",
			wantErr:  "Password must contain at least one number.",
		},
		{
			name:     "too short",
			password: "Abc1",
			wantErr:  "Password must be at least 8 characters long.",
		},
		{
			name:     "multibyte runes count as characters, not bytes",
			password: "Aa1€€", // 5 characters, 9 bytes
			wantErr:  "Password must be at least 8 characters long.",
		},
		{
			name:     "eight characters with multibyte runes",
			password: "Aa1€€€€€",
			wantErr:  "",
		},
		{
			name:     "valid",
			password: "Abcd1234",
			wantErr:  "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, errs := ValidateRegistration("Asha Rao", "asha@example.com", tc.password, tc.password, "student")
			if tc.wantErr == "" {
				if errs != nil {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if errs["password"] != tc.wantErr {
				t.Fatalf("expected password error %q, got %q", tc.wantErr, errs["password"])
			}
		})
	}
}

func TestValidateRegistrationNormalizes(t *testing.T) {
	input, errs := ValidateRegistration("  Asha Rao  ", "  Asha@Example.COM ", "Abcd1234", "Abcd1234", "")
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if input.Name != "Asha Rao" {
		t.Errorf("expected trimmed name, got %q", input.Name)
	}
	if input.Email != "asha@example.com" {
		t.Errorf("expected lower-cased trimmed email, got %q", input.Email)
	}
	if input.Role != models.RoleStudent {
		t.Errorf("expected role to default to student, got %q", input.Role)
	}
}

func TestConfirmPasswordMismatchReportedOnConfirmField(t *testing.T) {
	name, email, password, _, role := validRegistration()
	_, errs := ValidateRegistration(name, email, password, "Different1", role)
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	if _, ok := errs["password"]; ok {
		t.Errorf("mismatch must not be reported on password: %v", errs)
	}
	if errs["confirm_password"] != "Passwords do not match." {
		t.Errorf("expected confirm_password error, got %v", errs)
	}
}

func TestValidateRegistrationCollectsAllFieldErrors(t *testing.T) {
	_, errs := ValidateRegistration("A", "not-an-email", "weak", "weak", "admin")
	if len(errs) != 4 {
		t.Fatalf("expected 4 field errors, got %d: %v", len(errs), errs)
	}
	for _, field := range []string{"name", "email", "password", "role"} {
		if errs[field] == "" {
			t.Errorf("expected an error for field %q", field)
		}
	}
}

func TestValidateRegistrationNameRules(t *testing.T) {
	_, errs := ValidateRegistration(" x ", "asha@example.com", "Abcd1234", "Abcd1234", "teacher")
	if errs["name"] != "Name must be at least 2 characters long." {
		t.Fatalf("expected short-name error, got %v", errs)
	}

	longName := strings.Repeat("a", 256)
	_, errs = ValidateRegistration(longName, "asha@example.com", "Abcd1234", "Abcd1234", "teacher")
	if errs["name"] == "" {
		t.Fatal("expected an error for a 256-character name")
	}
}

func TestValidateRegistrationRole(t *testing.T) {
	input, errs := ValidateRegistration("Asha Rao", "asha@example.com", "Abcd1234", "Abcd1234", "teacher")
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if input.Role != models.RoleTeacher {
		t.Errorf("expected teacher role, got %q", input.Role)
	}

	_, errs = ValidateRegistration("Asha Rao", "asha@example.com", "Abcd1234", "Abcd1234", "admin")
	if errs["role"] == "" {
		t.Error("expected an error for unknown role")
	}
}

func TestFirstRegistrationErrorOrder(t *testing.T) {
	errs := map[string]string{
		"password": "Password must be at least 8 characters long.",
		"email":    "Enter a valid email address.",
	}
	if got := FirstRegistrationError(errs); got != "Enter a valid email address." {
		t.Fatalf("expected the email error to headline, got %q", got)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@sub.example.com"}
	invalid := []string{"", "plain", "a@b", "a b@c.com", "@example.com"}

	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}
