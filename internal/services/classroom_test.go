package services

import (
	"testing"

	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/scope"
	"gorm.io/gorm"
)

func seedTwoSchools(t *testing.T, db *gorm.DB) (a, b models.School) {
	t.Helper()
	a = models.School{Name: "School A"}
	b = models.School{Name: "School B"}
	mustCreate(t, db, &a)
	mustCreate(t, db, &b)
	return a, b
}

func TestClassroomService_CreatePerSchoolUniqueness(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClassroomService(db)
	a, b := seedTwoSchools(t, db)

	if _, err := svc.Create(scope.BoundToSchool(a.ID), &CreateClassroomRequest{Name: "7A"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Same name in the same school conflicts.
	if _, err := svc.Create(scope.BoundToSchool(a.ID), &CreateClassroomRequest{Name: "7A"}); err == nil {
		t.Error("expected duplicate name within one school to be rejected")
	}

	// Same name in another school is fine.
	if _, err := svc.Create(scope.BoundToSchool(b.ID), &CreateClassroomRequest{Name: "7A"}); err != nil {
		t.Errorf("expected same name in another school to succeed, got %v", err)
	}
}

func TestClassroomService_DeleteScopedAndGuarded(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClassroomService(db)
	a, b := seedTwoSchools(t, db)

	classroom, err := svc.Create(scope.BoundToSchool(a.ID), &CreateClassroomRequest{Name: "7A"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Another school's admin sees it as missing.
	if err := svc.Delete(scope.BoundToSchool(b.ID), classroom.ID); err == nil {
		t.Error("expected cross-school delete to fail as not found")
	}

	// A classroom with students cannot be deleted.
	if _, err := svc.ImportStudents(scope.BoundToSchool(a.ID), classroom.ID, &ImportStudentsRequest{RawNames: "Budi"}); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if err := svc.Delete(scope.BoundToSchool(a.ID), classroom.ID); err == nil {
		t.Error("expected delete of non-empty classroom to be blocked")
	}

	db.Where("classroom_id = ?", classroom.ID).Delete(&models.Student{})
	if err := svc.Delete(scope.BoundToSchool(a.ID), classroom.ID); err != nil {
		t.Errorf("expected delete of empty classroom to succeed, got %v", err)
	}
}

func TestClassroomService_ImportStudents(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClassroomService(db)
	a, _ := seedTwoSchools(t, db)

	classroom, err := svc.Create(scope.BoundToSchool(a.ID), &CreateClassroomRequest{Name: "7A"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	count, err := svc.ImportStudents(scope.BoundToSchool(a.ID), classroom.ID, &ImportStudentsRequest{
		RawNames: "Ani\nBudi\n\nCitra",
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 students created, got %d", count)
	}

	var students []models.Student
	db.Where("classroom_id = ?", classroom.ID).Order("id").Find(&students)
	if len(students) != 3 {
		t.Fatalf("expected 3 students in classroom, got %d", len(students))
	}
	for _, st := range students {
		if len(st.NIS) != 8 {
			t.Errorf("student %q: expected 8 character NIS, got %q", st.Name, st.NIS)
		}
		if st.SchoolID != a.ID {
			t.Errorf("student %q: expected school %d, got %d", st.Name, a.ID, st.SchoolID)
		}
	}
	if students[2].Name != "Citra" {
		t.Errorf("expected blank line skipped and third student Citra, got %q", students[2].Name)
	}
}

func TestClassroomService_TransferStudents(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClassroomService(db)
	a, b := seedTwoSchools(t, db)

	from, _ := svc.Create(scope.BoundToSchool(a.ID), &CreateClassroomRequest{Name: "7A"})
	to, _ := svc.Create(scope.BoundToSchool(a.ID), &CreateClassroomRequest{Name: "8A"})
	other, _ := svc.Create(scope.BoundToSchool(b.ID), &CreateClassroomRequest{Name: "7A"})

	if _, err := svc.ImportStudents(scope.BoundToSchool(a.ID), from.ID, &ImportStudentsRequest{RawNames: "Ani\nBudi"}); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if _, err := svc.ImportStudents(scope.BoundToSchool(b.ID), other.ID, &ImportStudentsRequest{RawNames: "Dewi"}); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	var mine []models.Student
	db.Where("school_id = ?", a.ID).Order("id").Find(&mine)
	var foreign models.Student
	db.Where("school_id = ?", b.ID).First(&foreign)

	// A target in another school is rejected outright.
	req := &TransferStudentsRequest{TargetClassroomID: other.ID, StudentIDs: []uint{mine[0].ID}}
	if _, err := svc.TransferStudents(scope.BoundToSchool(a.ID), req); err == nil {
		t.Error("expected transfer to foreign classroom to fail")
	}

	// Foreign student ids are skipped silently, not rejected.
	moved, err := svc.TransferStudents(scope.BoundToSchool(a.ID), &TransferStudentsRequest{
		TargetClassroomID: to.ID,
		StudentIDs:        []uint{mine[0].ID, mine[1].ID, foreign.ID},
	})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if moved != 2 {
		t.Errorf("expected 2 students moved, got %d", moved)
	}

	var check models.Student
	db.First(&check, foreign.ID)
	if check.ClassroomID == nil || *check.ClassroomID != other.ID {
		t.Error("expected foreign student to stay in its classroom")
	}
}

func TestClassroomService_TransferPreservesHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClassroomService(db)
	a, _ := seedTwoSchools(t, db)

	from, _ := svc.Create(scope.BoundToSchool(a.ID), &CreateClassroomRequest{Name: "7A"})
	to, _ := svc.Create(scope.BoundToSchool(a.ID), &CreateClassroomRequest{Name: "8A"})
	if _, err := svc.ImportStudents(scope.BoundToSchool(a.ID), from.ID, &ImportStudentsRequest{RawNames: "Budi"}); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	var student models.Student
	db.Where("school_id = ?", a.ID).First(&student)
	mustCreate(t, db, &models.Violation{
		StudentID:    student.ID,
		CategoryName: "Berat",
		Points:       30,
	})

	if _, err := svc.TransferStudents(scope.BoundToSchool(a.ID), &TransferStudentsRequest{
		TargetClassroomID: to.ID,
		StudentIDs:        []uint{student.ID},
	}); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	var violations []models.Violation
	db.Where("student_id = ?", student.ID).Find(&violations)
	if len(violations) != 1 || violations[0].Points != 30 {
		t.Error("expected violation history to survive the transfer unchanged")
	}
}
