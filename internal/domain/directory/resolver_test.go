package directory

import (
	"errors"
	"testing"

	"staffhub/internal/domain/auth"
)

func TestResolvePrefersEmployeeLink(t *testing.T) {
	employees := []Employee{
		{ID: "e-1", Email: "shared@example.com", EmployeeCode: "EMP-001"},
		{ID: "e-2", Email: "shared@example.com", EmployeeCode: "EMP-002"},
	}
	account := auth.Account{ID: "u-1", Email: "shared@example.com", EmployeeID: "e-2"}

	got, err := Resolve(account, employees)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != "e-2" {
		t.Fatalf("expected linked employee e-2, got %s", got.ID)
	}
}

func TestResolveMatchesExternalCode(t *testing.T) {
	employees := []Employee{{ID: "e-1", EmployeeCode: "EMP-007", Email: "bond@example.com"}}
	account := auth.Account{Email: "other@example.com", EmployeeID: "EMP-007"}

	got, err := Resolve(account, employees)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != "e-1" {
		t.Fatalf("expected e-1, got %s", got.ID)
	}
}

func TestResolveEmailFallback(t *testing.T) {
	employees := []Employee{{ID: "e-1", Email: "Jo@Example.com"}}
	account := auth.Account{Email: "jo@example.com", EmployeeID: "stale-link"}

	got, err := Resolve(account, employees)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != "e-1" {
		t.Fatalf("expected email fallback to e-1, got %s", got.ID)
	}
}

func TestResolveNoProfile(t *testing.T) {
	account := auth.Account{Email: "ghost@example.com"}
	_, err := Resolve(account, []Employee{{ID: "e-1", Email: "someone@example.com"}})
	if !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestPlaceholderProfile(t *testing.T) {
	account := auth.Account{ID: "u-9", Email: "ops@example.com", Role: auth.RoleAdmin}
	profile := Placeholder(account)

	if profile.ID != "account:u-9" {
		t.Fatalf("unexpected placeholder id %s", profile.ID)
	}
	if profile.Email != account.Email || !profile.IsActive {
		t.Fatalf("placeholder should carry the account email and be active: %+v", profile)
	}
	if profile.FirstName != "ops" {
		t.Fatalf("expected local part as first name, got %s", profile.FirstName)
	}
}

func TestFullName(t *testing.T) {
	if got := (Employee{FirstName: "Ada", LastName: "Park"}).FullName(); got != "Ada Park" {
		t.Fatalf("got %q", got)
	}
	if got := (Employee{FirstName: "Ada"}).FullName(); got != "Ada" {
		t.Fatalf("got %q", got)
	}
}
