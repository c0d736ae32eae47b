package auth

import (
	"errors"
	"strings"
	"testing"

	xerrors "acadetrack-service/internal/pkg/errors"
)

func TestValidateEmail(t *testing.T) {
	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"trailing@",
		"no-domain-dot@host",
		"bad@.com",
		"bad@host.",
		"spaced name@host.com",
	}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Fatalf("expected rejection for %q", email)
		}
	}

	valid := []string{"jane.doe@uni.edu", "a@b.co", "Student+tag@campus.ac.ke"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Fatalf("unexpected rejection for %q: %v", email, err)
		}
	}
}

func TestValidatePasswordLength(t *testing.T) {
	err := ValidatePassword("Ab1xyz")
	if err == nil {
		t.Fatalf("expected short password to be rejected")
	}
	if !strings.Contains(err.Error(), "8 characters") {
		t.Fatalf("expected length-specific message, got %q", err.Error())
	}
}

func TestValidatePasswordClasses(t *testing.T) {
	if err := ValidatePassword("alllowercase1"); err == nil {
		t.Fatalf("expected password without uppercase to be rejected")
	}
	if err := ValidatePassword("Sup3rSecret"); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
}

func TestSignupValidateBeforeAnything(t *testing.T) {
	req := &SignupRequest{
		Email:      "not-an-email",
		Password:   "Sup3rSecret",
		FirstName:  "Jane",
		LastName:   "Doe",
		University: "EFREI",
		Semester:   "S4",
	}
	err := req.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("validation errors must unwrap to ErrInvalidInput, got %v", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "email" {
		t.Fatalf("expected email field error, got %+v", err)
	}
}

func TestSignupValidateRequiredProfileFields(t *testing.T) {
	req := &SignupRequest{
		Email:    "jane@uni.edu",
		Password: "Sup3rSecret",
	}
	err := req.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "first_name" {
		t.Fatalf("expected first_name error, got %v", err)
	}
}

func TestSocialLoginValidate(t *testing.T) {
	req := &SocialLoginRequest{Provider: "twitter", ProviderID: "x", Email: "a@b.co"}
	if err := req.Validate(); err == nil {
		t.Fatalf("expected unsupported provider to be rejected")
	}
	req.Provider = "google"
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Jane.Doe@UNI.EDU "); got != "jane.doe@uni.edu" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
