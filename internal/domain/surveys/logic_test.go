package surveys

import (
	"testing"
	"time"

	"staffhub/internal/domain/directory"
)

var now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func active(mutate func(*Survey)) Survey {
	s := Survey{Status: StatusActive, Type: TypeInternal}
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func TestVisibleRequiresActiveStatus(t *testing.T) {
	employee := directory.Employee{Department: "Engineering"}

	for _, status := range []string{StatusDraft, StatusClosed} {
		s := active(func(s *Survey) { s.Status = status })
		if Visible(s, employee, now) {
			t.Fatalf("status %q must not be visible", status)
		}
	}
	if !Visible(active(nil), employee, now) {
		t.Fatal("active untargeted internal survey should be visible")
	}
}

func TestVisibleEndDateInclusive(t *testing.T) {
	employee := directory.Employee{}

	exactlyNow := now
	s := active(func(s *Survey) { s.EndDate = &exactlyNow })
	if !Visible(s, employee, now) {
		t.Fatal("a survey ending exactly now can still be answered")
	}

	past := now.Add(-time.Second)
	s.EndDate = &past
	if Visible(s, employee, now) {
		t.Fatal("a survey past its end date is closed to the feed")
	}
}

func TestVisibleExcludesExternal(t *testing.T) {
	s := active(func(s *Survey) { s.Type = TypeExternal })
	if Visible(s, directory.Employee{}, now) {
		t.Fatal("external surveys never appear in the internal feed")
	}
}

func TestVisibleDepartmentTargeting(t *testing.T) {
	s := active(func(s *Survey) { s.TargetDepartments = []string{"Sales", "Engineering"} })

	if !Visible(s, directory.Employee{Department: "Engineering"}, now) {
		t.Fatal("targeted department should see the survey")
	}
	if Visible(s, directory.Employee{Department: "Marketing"}, now) {
		t.Fatal("untargeted department must not see the survey")
	}

	s.TargetDepartments = nil
	if !Visible(s, directory.Employee{Department: "Marketing"}, now) {
		t.Fatal("no targeting means everyone sees it")
	}
}
