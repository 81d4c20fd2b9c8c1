package announcements

import (
	"testing"
	"time"

	"staffhub/internal/domain/directory"
)

var now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func TestVisibleUnpublishedNeverShown(t *testing.T) {
	employee := directory.Employee{Department: "Engineering"}
	a := Announcement{
		IsPublished:      false,
		TargetAudience:   AudienceDepartment,
		DepartmentFilter: "Engineering",
	}
	if Visible(a, employee, now) {
		t.Fatal("unpublished announcement must not be visible regardless of audience")
	}
}

func TestVisibleExpiryBoundary(t *testing.T) {
	employee := directory.Employee{Department: "Engineering"}

	exactlyNow := now
	a := Announcement{IsPublished: true, TargetAudience: AudienceAll, ExpiryDate: &exactlyNow}
	if Visible(a, employee, now) {
		t.Fatal("expiry equal to now is already expired")
	}

	later := now.Add(time.Minute)
	a.ExpiryDate = &later
	if !Visible(a, employee, now) {
		t.Fatal("future expiry should be visible")
	}

	a.ExpiryDate = nil
	if !Visible(a, employee, now) {
		t.Fatal("nil expiry never expires")
	}
}

func TestVisibleAudienceAll(t *testing.T) {
	a := Announcement{IsPublished: true, TargetAudience: AudienceAll}

	if !Visible(a, directory.Employee{Department: "Marketing"}, now) {
		t.Fatal("'all' must be visible to any department")
	}
	if !Visible(a, directory.Employee{}, now) {
		t.Fatal("'all' must be visible even with an empty department")
	}
}

func TestVisibleDepartmentTargeting(t *testing.T) {
	a := Announcement{
		IsPublished:      true,
		TargetAudience:   AudienceDepartment,
		DepartmentFilter: "Engineering",
	}

	if !Visible(a, directory.Employee{Department: "Engineering"}, now) {
		t.Fatal("matching department should see the announcement")
	}
	if Visible(a, directory.Employee{Department: "Marketing"}, now) {
		t.Fatal("other departments must not see it")
	}
	if Visible(a, directory.Employee{}, now) {
		t.Fatal("empty department must not match a department filter")
	}
}

func TestVisibleRoleSpecificHasNoMatchingRule(t *testing.T) {
	a := Announcement{IsPublished: true, TargetAudience: AudienceRole}
	if Visible(a, directory.Employee{Department: "Engineering"}, now) {
		t.Fatal("role_specific has no matching rule and is shown to nobody")
	}
}

func TestVisibleToScenario(t *testing.T) {
	employee := directory.Employee{Department: "Engineering"}
	list := []Announcement{
		{ID: "a-1", IsPublished: true, TargetAudience: AudienceAll},
		{ID: "a-2", IsPublished: true, TargetAudience: AudienceDepartment, DepartmentFilter: "Marketing"},
	}

	visible := VisibleTo(list, employee, now)
	if len(visible) != 1 || visible[0].ID != "a-1" {
		t.Fatalf("expected exactly the 'all' announcement, got %+v", visible)
	}
}
