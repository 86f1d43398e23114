package attendance_test

import (
	"testing"

	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/attendance"
	"github.com/thedigitalbhaiya/ans-sub000/storage/kvstore"
	testutil "github.com/thedigitalbhaiya/ans-sub000/tests"
)

var (
	superAdmin = admin.Account{ID: "a1", Role: admin.RoleSuperAdmin}
	teacher    = admin.Account{ID: "a2", Role: admin.RoleTeacher, AssignedClass: "5", AssignedSection: "a"}
)

func setup(t *testing.T) *attendance.Service {
	conf := testutil.NewTestConfig(t)
	store := testutil.OpenStore(t, conf)
	return attendance.NewService(kvstore.NewAttendanceRepository(store))
}

func TestMarkAndReadBack(t *testing.T) {
	svc := setup(t)

	sheet := attendance.Sheet{
		Class: "5", Section: "a", Date: "2025-07-14",
		Entries: map[string]attendance.Status{
			"ANS/2025/37": attendance.StatusPresent,
			"ANS/2025/12": attendance.StatusAbsent,
		},
	}
	if err := svc.Mark(teacher, sheet); err != nil {
		t.Fatalf("Mark(): %v", err)
	}

	got, err := svc.Sheet("5", "a", "2025-07-14")
	if err != nil {
		t.Fatalf("Sheet(): %v", err)
	}
	if got.Entries["ANS/2025/37"] != attendance.StatusPresent {
		t.Errorf("status = %q, want present", got.Entries["ANS/2025/37"])
	}

	// marking the same date again replaces the sheet
	sheet.Entries["ANS/2025/37"] = attendance.StatusLeave
	if err = svc.Mark(teacher, sheet); err != nil {
		t.Fatalf("Mark(): %v", err)
	}
	got, _ = svc.Sheet("5", "a", "2025-07-14")
	if got.Entries["ANS/2025/37"] != attendance.StatusLeave {
		t.Errorf("status = %q, want leave after re-marking", got.Entries["ANS/2025/37"])
	}
}

func TestTeacherConfinedToAssignedClass(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name           string
		class, section string
		wantErr        error
	}{
		{"own class", "5", "a", nil},
		{"other class", "6", "a", attendance.ErrClassScope},
		{"other section", "5", "b", attendance.ErrClassScope},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Mark(teacher, attendance.Sheet{
				Class: tt.class, Section: tt.section, Date: "2025-07-14",
				Entries: map[string]attendance.Status{"ANS/2025/37": attendance.StatusPresent},
			})
			if err != tt.wantErr {
				t.Errorf("Mark() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// a super admin marks any class
	err := svc.Mark(superAdmin, attendance.Sheet{
		Class: "8", Section: "b", Date: "2025-07-14",
		Entries: map[string]attendance.Status{"ANS/2024/89": attendance.StatusPresent},
	})
	if err != nil {
		t.Errorf("Mark() as Super Admin: %v", err)
	}
}

func TestMarkRejectsUnknownStatus(t *testing.T) {
	svc := setup(t)

	err := svc.Mark(superAdmin, attendance.Sheet{
		Class: "5", Section: "a", Date: "2025-07-14",
		Entries: map[string]attendance.Status{"ANS/2025/37": "half-day"},
	})
	if err != attendance.ErrUnknownStatus {
		t.Errorf("Mark() error = %v, want ErrUnknownStatus", err)
	}
}

func TestStudentHistory(t *testing.T) {
	svc := setup(t)

	days := map[string]attendance.Status{
		"2025-07-14": attendance.StatusPresent,
		"2025-07-15": attendance.StatusAbsent,
		"2025-07-16": attendance.StatusLeave,
	}
	for date, status := range days {
		err := svc.Mark(superAdmin, attendance.Sheet{
			Class: "5", Section: "a", Date: date,
			Entries: map[string]attendance.Status{
				"ANS/2025/37": status,
				"ANS/2025/12": attendance.StatusPresent,
			},
		})
		if err != nil {
			t.Fatalf("Mark(%s): %v", date, err)
		}
	}

	history, err := svc.StudentHistory("ANS/2025/37")
	if err != nil {
		t.Fatalf("StudentHistory(): %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("len(history) = %d, want 3", len(history))
	}
	for date, want := range days {
		if history[date] != want {
			t.Errorf("history[%s] = %q, want %q", date, history[date], want)
		}
	}

	// a student who was never marked has an empty history
	history, err = svc.StudentHistory("ANS/1999/1")
	if err != nil {
		t.Fatalf("StudentHistory(): %v", err)
	}
	if len(history) != 0 {
		t.Errorf("len(history) = %d, want 0", len(history))
	}
}

func TestSheetNotFound(t *testing.T) {
	svc := setup(t)
	if _, err := svc.Sheet("5", "a", "2025-01-01"); err != attendance.ErrNotFound {
		t.Errorf("Sheet() error = %v, want ErrNotFound", err)
	}
}
