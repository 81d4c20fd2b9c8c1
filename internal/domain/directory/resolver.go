package directory

import (
	"errors"
	"strings"

	"staffhub/internal/domain/auth"
)

// ErrNoProfile means the account authenticated fine but has no employee
// record. Callers surface it instead of loading profile-dependent data.
var ErrNoProfile = errors.New("no employee profile for account")

// Resolve picks the employee record belonging to an account. The explicit
// employee link wins; the email fallback covers accounts created before the
// link existed.
func Resolve(account auth.Account, employees []Employee) (Employee, error) {
	if account.EmployeeID != "" {
		for _, e := range employees {
			if e.ID == account.EmployeeID || e.EmployeeCode == account.EmployeeID {
				return e, nil
			}
		}
	}
	for _, e := range employees {
		if strings.EqualFold(e.Email, account.Email) {
			return e, nil
		}
	}
	return Employee{}, ErrNoProfile
}

// Placeholder synthesizes a profile for admin accounts that manage the
// system without being employees themselves.
func Placeholder(account auth.Account) Employee {
	name := account.Email
	if at := strings.IndexByte(name, '@'); at > 0 {
		name = name[:at]
	}
	return Employee{
		ID:        "account:" + account.ID,
		FirstName: name,
		LastName:  "(Administrator)",
		Email:     account.Email,
		Position:  "Administrator",
		IsActive:  true,
	}
}
