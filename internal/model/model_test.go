package model

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"classmate/pkg/types"
)

var fixedNow = time.Date(2024, 2, 14, 9, 30, 0, 0, time.UTC)

func newTestModel() *Model {
	return NewWithClock(func() time.Time { return fixedNow })
}

func mustIndex(t *testing.T, n int) types.Index {
	t.Helper()
	idx, err := types.NewIndex(n)
	if err != nil {
		t.Fatalf("NewIndex(%d): %v", n, err)
	}
	return idx
}

func addStudent(t *testing.T, m *Model, name string, score int) types.Student {
	t.Helper()
	s, err := types.NewStudent(name, "", "", "", nil)
	if err != nil {
		t.Fatalf("NewStudent(%s): %v", name, err)
	}
	stored, err := m.AddStudent(s)
	if err != nil {
		t.Fatalf("AddStudent(%s): %v", name, err)
	}
	if score != 0 {
		idx := mustIndex(t, len(m.Students()))
		if _, err := m.SetPerformance(idx, score); err != nil {
			t.Fatalf("SetPerformance: %v", err)
		}
		stored.Performance = score
	}
	return stored
}

func createSession(t *testing.T, m *Model, kind types.SessionKind, name string) {
	t.Helper()
	if _, err := m.CreateSession(kind, name, nil); err != nil {
		t.Fatalf("CreateSession(%s, %s): %v", kind, name, err)
	}
}

// assertRostersReferenceMasterList checks that every roster entry
// refers to a student currently in the master list.
func assertRostersReferenceMasterList(t *testing.T, m *Model) {
	t.Helper()
	for _, kind := range types.SessionKinds {
		for _, sess := range m.Sessions(kind) {
			for _, id := range sess.Students() {
				if _, ok := m.Student(id); !ok {
					t.Errorf("%s %s roster holds %s which is not in the master list", kind, sess.Name(), id)
				}
			}
		}
	}
}

func studentNames(students []types.Student) []string {
	names := make([]string, 0, len(students))
	for _, s := range students {
		names = append(names, s.Name)
	}
	return names
}

// Functional Validation Tests - Master list

func TestModel_AddStudentAssignsIDAndRejectsDuplicates(t *testing.T) {
	m := newTestModel()
	alex := addStudent(t, m, "Alex", 0)
	if alex.ID == "" {
		t.Fatal("AddStudent should assign an id")
	}

	dup, _ := types.NewStudent("Alex", "", "other@example.com", "", nil)
	if _, err := m.AddStudent(dup); !errors.Is(err, types.ErrDuplicate) {
		t.Errorf("duplicate AddStudent error = %v, want ErrDuplicate", err)
	}
	if len(m.Students()) != 1 {
		t.Errorf("master list size = %d, want 1", len(m.Students()))
	}

	invalid := types.Student{Name: ""}
	if _, err := m.AddStudent(invalid); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("invalid AddStudent error = %v, want ErrInvalidArgument", err)
	}
}

func TestModel_DeleteStudentCascadesToRosters(t *testing.T) {
	m := newTestModel()
	alex := addStudent(t, m, "Alex", 0)
	addStudent(t, m, "Bernice", 0)
	createSession(t, m, types.KindTutorial, "T1")
	createSession(t, m, types.KindLab, "L1")
	createSession(t, m, types.KindConsultation, "C1")

	one := mustIndex(t, 1)
	two := mustIndex(t, 2)
	if err := m.AddStudentToTutorial(one, "T1"); err != nil {
		t.Fatalf("AddStudentToTutorial: %v", err)
	}
	if err := m.AddStudentToTutorial(two, "T1"); err != nil {
		t.Fatalf("AddStudentToTutorial: %v", err)
	}
	if err := m.AddStudentToLab(one, "L1"); err != nil {
		t.Fatalf("AddStudentToLab: %v", err)
	}
	if err := m.AddStudentToConsultation(one, "C1"); err != nil {
		t.Fatalf("AddStudentToConsultation: %v", err)
	}

	removed, err := m.DeleteStudent(one)
	if err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}
	if removed.ID != alex.ID {
		t.Errorf("deleted %s, want %s", removed.Name, alex.Name)
	}

	assertRostersReferenceMasterList(t, m)
	tut, _ := m.Session(types.KindTutorial, "T1")
	if tut.Count() != 1 {
		t.Errorf("tutorial roster size = %d, want 1", tut.Count())
	}
	lab, _ := m.Session(types.KindLab, "L1")
	if lab.Count() != 0 {
		t.Errorf("lab roster size = %d, want 0", lab.Count())
	}
}

func TestModel_IndexAcceptedIffInRange(t *testing.T) {
	for n := 0; n <= 3; n++ {
		for i := 1; i <= 4; i++ {
			t.Run(fmt.Sprintf("n=%d/i=%d", n, i), func(t *testing.T) {
				m := newTestModel()
				for k := 0; k < n; k++ {
					addStudent(t, m, fmt.Sprintf("Student%d", k), 0)
				}
				_, err := m.SetPerformance(mustIndex(t, i), 7)
				accepted := err == nil
				if accepted != (i <= n) {
					t.Errorf("accepted=%v, want %v (err=%v)", accepted, i <= n, err)
				}
				if err != nil && !errors.Is(err, types.ErrIndexOutOfRange) {
					t.Errorf("error = %v, want ErrIndexOutOfRange", err)
				}
			})
		}
	}
}

// Functional Validation Tests - Sessions

func TestModel_CreateSessionDuplicateLeavesStateUnchanged(t *testing.T) {
	m := newTestModel()
	createSession(t, m, types.KindTutorial, "W1")
	before := m.Snapshot()
	version := m.Version()

	if _, err := m.CreateSession(types.KindTutorial, "W1", nil); !errors.Is(err, types.ErrDuplicate) {
		t.Fatalf("second CreateSession error = %v, want ErrDuplicate", err)
	}
	if !reflect.DeepEqual(before, m.Snapshot()) {
		t.Error("model state changed after a failed CreateSession")
	}
	if m.Version() != version {
		t.Error("failed CreateSession should not bump the version")
	}

	// Names may collide across variants.
	createSession(t, m, types.KindLab, "W1")
}

func TestModel_CreateSessionDefaultsToToday(t *testing.T) {
	m := newTestModel()
	sess, err := m.CreateSession(types.KindConsultation, "C1", nil)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if got := sess.Date().Format(types.DateLayout); got != "2024-02-14" {
		t.Errorf("default date = %s, want 2024-02-14", got)
	}

	custom := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	sess, err = m.CreateSession(types.KindConsultation, "C2", &custom)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if !sess.Date().Equal(custom) {
		t.Errorf("date = %s, want %s", sess.Date(), custom)
	}
}

func TestModel_DeleteSession(t *testing.T) {
	m := newTestModel()
	createSession(t, m, types.KindLab, "L1")

	if err := m.DeleteSession(types.KindTutorial, "L1"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("DeleteSession wrong kind error = %v, want ErrNotFound", err)
	}
	if err := m.DeleteSession(types.KindLab, "L1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := m.Session(types.KindLab, "L1"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Session after delete error = %v, want ErrNotFound", err)
	}
}

func TestModel_SessionReturnsCopy(t *testing.T) {
	m := newTestModel()
	createSession(t, m, types.KindTutorial, "T1")
	sess, _ := m.Session(types.KindTutorial, "T1")
	sess.AddAttachment("leak.pdf")

	again, _ := m.Session(types.KindTutorial, "T1")
	if again.CountAttachments() != 0 {
		t.Error("mutating a returned session should not affect the model")
	}
}

// Functional Validation Tests - Rosters

func TestModel_AddStudentToEventErrors(t *testing.T) {
	m := newTestModel()

	if err := m.AddStudentToTutorial(mustIndex(t, 1), "CS1"); !errors.Is(err, types.ErrIndexOutOfRange) {
		t.Errorf("empty model error = %v, want ErrIndexOutOfRange", err)
	}

	addStudent(t, m, "Alex", 0)
	if err := m.AddStudentToTutorial(mustIndex(t, 1), "CS1"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("missing session error = %v, want ErrNotFound", err)
	}

	createSession(t, m, types.KindTutorial, "W1")
	if err := m.AddStudentToTutorial(mustIndex(t, 1), "W1"); err != nil {
		t.Fatalf("AddStudentToTutorial: %v", err)
	}
	if err := m.AddStudentToTutorial(mustIndex(t, 1), "W1"); !errors.Is(err, types.ErrDuplicate) {
		t.Errorf("second add error = %v, want ErrDuplicate", err)
	}
	sess, _ := m.Session(types.KindTutorial, "W1")
	if sess.Count() != 1 {
		t.Errorf("roster size = %d, want 1", sess.Count())
	}
}

func TestModel_AddThenDeleteRestoresRoster(t *testing.T) {
	m := newTestModel()
	addStudent(t, m, "Alex", 0)
	addStudent(t, m, "Bernice", 0)
	addStudent(t, m, "Charlotte", 0)
	createSession(t, m, types.KindLab, "L1")
	_ = m.AddStudentToLab(mustIndex(t, 1), "L1")
	_ = m.AddStudentToLab(mustIndex(t, 2), "L1")

	before, _ := m.Session(types.KindLab, "L1")
	if err := m.AddStudentToLab(mustIndex(t, 3), "L1"); err != nil {
		t.Fatalf("AddStudentToLab: %v", err)
	}
	if err := m.DeleteStudentFromEvent(mustIndex(t, 3), "L1", "lab/"); err != nil {
		t.Fatalf("DeleteStudentFromEvent: %v", err)
	}
	after, _ := m.Session(types.KindLab, "L1")
	if !reflect.DeepEqual(before.Students(), after.Students()) {
		t.Errorf("roster = %v, want %v", after.Students(), before.Students())
	}
}

func TestModel_DeleteStudentFromEventErrors(t *testing.T) {
	m := newTestModel()
	addStudent(t, m, "Alex", 0)
	createSession(t, m, types.KindTutorial, "W1")

	tests := []struct {
		name    string
		index   int
		session string
		tag     string
		wantErr error
	}{
		{"unknown variant", 1, "W1", "zzz/", types.ErrUnknownVariant},
		{"missing session", 1, "W9", "tut/", types.ErrNotFound},
		{"roster index out of range", 1, "W1", "tut/", types.ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.DeleteStudentFromEvent(mustIndex(t, tt.index), tt.session, tt.tag)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestModel_RemoveFromRosterAbsentStudent(t *testing.T) {
	m := newTestModel()
	alex := addStudent(t, m, "Alex", 0)
	createSession(t, m, types.KindTutorial, "W1")

	// The session API treats this as a no-op; the model reports it.
	sess, _ := m.Session(types.KindTutorial, "W1")
	if sess.RemoveStudent(alex.ID) {
		t.Error("session-level remove of an absent student should be a no-op")
	}
	if err := m.RemoveFromRoster(types.KindTutorial, "W1", alex.ID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("RemoveFromRoster error = %v, want ErrNotFound", err)
	}
}

// Functional Validation Tests - Sorting and flagging

func TestModel_SortStudentsMasterList(t *testing.T) {
	m := newTestModel()
	addStudent(t, m, "Three", 3)
	addStudent(t, m, "One", 1)
	addStudent(t, m, "Two", 2)

	target, err := m.SortStudents("CS1", "performance", false)
	if err != nil {
		t.Fatalf("SortStudents: %v", err)
	}
	if target != "all students" {
		t.Errorf("target = %q, want all students", target)
	}
	var scores []int
	for _, s := range m.Students() {
		scores = append(scores, s.Performance)
	}
	if !reflect.DeepEqual(scores, []int{3, 2, 1}) {
		t.Errorf("scores = %v, want [3 2 1]", scores)
	}
}

func TestModel_SortNormalAndReverseAreExactReverses(t *testing.T) {
	m := newTestModel()
	// Ties on performance exercise the tie-breakers.
	addStudent(t, m, "Dana", 5)
	addStudent(t, m, "Ari", 5)
	addStudent(t, m, "Cole", 1)
	addStudent(t, m, "Bea", 9)
	addStudent(t, m, "Eli", 1)

	for _, metric := range SortMetrics {
		t.Run(metric, func(t *testing.T) {
			if _, err := m.SortStudents("all", metric, true); err != nil {
				t.Fatalf("normal sort: %v", err)
			}
			normal := studentNames(m.Students())
			if _, err := m.SortStudents("all", metric, false); err != nil {
				t.Fatalf("reverse sort: %v", err)
			}
			reversed := studentNames(m.Students())

			for i := range normal {
				if normal[i] != reversed[len(reversed)-1-i] {
					t.Fatalf("normal=%v reverse=%v are not exact reverses", normal, reversed)
				}
			}
		})
	}
}

func TestModel_SortStudentsSessionRoster(t *testing.T) {
	m := newTestModel()
	addStudent(t, m, "Alex", 10)
	addStudent(t, m, "Bernice", 30)
	addStudent(t, m, "Charlotte", 20)
	createSession(t, m, types.KindLab, "L1")
	_ = m.AddStudentToLab(mustIndex(t, 1), "L1")
	_ = m.AddStudentToLab(mustIndex(t, 2), "L1")

	target, err := m.SortStudents("L1", "performance", false)
	if err != nil {
		t.Fatalf("SortStudents: %v", err)
	}
	if target != "lab L1" {
		t.Errorf("target = %q, want lab L1", target)
	}
	sess, _ := m.Session(types.KindLab, "L1")
	first, _ := m.Student(sess.Students()[0])
	if first.Name != "Bernice" {
		t.Errorf("first on roster = %s, want Bernice", first.Name)
	}
	if got := studentNames(m.Students()); !reflect.DeepEqual(got, []string{"Alex", "Bernice", "Charlotte"}) {
		t.Errorf("master list should be untouched, got %v", got)
	}
}

func TestModel_SortStudentsUnknownMetric(t *testing.T) {
	m := newTestModel()
	addStudent(t, m, "Alex", 0)
	if _, err := m.SortStudents("all", "height", true); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestModel_FlagLowPerformers(t *testing.T) {
	m := newTestModel()
	addStudent(t, m, "Alex", 80)
	addStudent(t, m, "Bernice", 20)
	addStudent(t, m, "Charlotte", -5)
	createSession(t, m, types.KindTutorial, "T1")
	for i := 3; i >= 1; i-- {
		_ = m.AddStudentToTutorial(mustIndex(t, i), "T1")
	}

	flagged, err := m.FlagLowPerformers(types.KindTutorial, "T1", 50)
	if err != nil {
		t.Fatalf("FlagLowPerformers: %v", err)
	}
	if got := studentNames(flagged); !reflect.DeepEqual(got, []string{"Charlotte", "Bernice"}) {
		t.Errorf("flagged = %v, want [Charlotte Bernice]", got)
	}

	if _, err := m.FlagLowPerformers(types.KindLab, "T1", 50); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("wrong kind error = %v, want ErrNotFound", err)
	}
}

// Functional Validation Tests - Attachments and notes

func TestModel_AttachmentsAndNotes(t *testing.T) {
	m := newTestModel()
	createSession(t, m, types.KindConsultation, "C1")

	if err := m.AddAttachment(types.KindConsultation, "C1", "week1.pdf"); err != nil {
		t.Fatalf("AddAttachment: %v", err)
	}
	if err := m.AddAttachment(types.KindConsultation, "C1", "  "); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("blank attachment error = %v, want ErrInvalidArgument", err)
	}
	if _, err := m.RemoveAttachment(types.KindConsultation, "C1", mustIndex(t, 2)); !errors.Is(err, types.ErrIndexOutOfRange) {
		t.Errorf("RemoveAttachment(2) error = %v, want ErrIndexOutOfRange", err)
	}

	note, err := m.AddNote(types.KindConsultation, "C1", "  asked about recursion ")
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if note.Text != "asked about recursion" || note.Created.Format(types.DateLayout) != "2024-02-14" {
		t.Errorf("note = %+v", note)
	}
	if _, err := m.AddNote(types.KindConsultation, "missing", "x"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("AddNote missing session error = %v, want ErrNotFound", err)
	}

	removed, err := m.RemoveNote(types.KindConsultation, "C1", mustIndex(t, 1))
	if err != nil || removed.Text != note.Text {
		t.Fatalf("RemoveNote = %+v, %v", removed, err)
	}
}

// Functional Validation Tests - Snapshots

func TestModel_SnapshotHydrateRoundTrip(t *testing.T) {
	m := newTestModel()
	addStudent(t, m, "Alex", 12)
	addStudent(t, m, "Bernice", -3)
	createSession(t, m, types.KindTutorial, "T1")
	createSession(t, m, types.KindConsultation, "C1")
	_ = m.AddStudentToTutorial(mustIndex(t, 2), "T1")
	_ = m.AddAttachment(types.KindTutorial, "T1", "a.pdf")
	_, _ = m.AddNote(types.KindTutorial, "T1", "good session")

	first := m.Snapshot()
	restored := newTestModel()
	if err := restored.Hydrate(first); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if second := restored.Snapshot(); !reflect.DeepEqual(first, second) {
		t.Errorf("snapshot mismatch after hydrate:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestModel_HydrateRejectsDanglingRosterAtomically(t *testing.T) {
	m := newTestModel()
	addStudent(t, m, "Existing", 0)
	before := m.Snapshot()

	bad := &types.Snapshot{
		Students: []types.Student{{ID: "s1", Name: "Alex"}},
		Tutorials: []types.SessionRecord{{
			Name:   "T1",
			Date:   "2024-01-01",
			Roster: []types.StudentID{"s1", "ghost"},
		}},
	}
	if err := m.Hydrate(bad); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("Hydrate error = %v, want ErrNotFound", err)
	}
	if !reflect.DeepEqual(before, m.Snapshot()) {
		t.Error("failed Hydrate should leave the model untouched")
	}
}

func TestModel_HydrateRejectsBadDates(t *testing.T) {
	m := newTestModel()
	bad := &types.Snapshot{Labs: []types.SessionRecord{{Name: "L1", Date: "01/02/2024"}}}
	if err := m.Hydrate(bad); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("Hydrate error = %v, want ErrInvalidArgument", err)
	}
}

func TestModel_HydrateRejectsInvalidMaterials(t *testing.T) {
	tests := []struct {
		name string
		rec  types.SessionRecord
	}{
		{"empty note", types.SessionRecord{Name: "T1", Date: "2024-01-01",
			Notes: []types.NoteRecord{{Text: "  ", Date: "2024-01-01"}}}},
		{"empty attachment", types.SessionRecord{Name: "T1", Date: "2024-01-01",
			Attachments: []string{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			addStudent(t, m, "Existing", 0)
			before := m.Snapshot()

			err := m.Hydrate(&types.Snapshot{Tutorials: []types.SessionRecord{tt.rec}})
			if !errors.Is(err, types.ErrInvalidArgument) {
				t.Fatalf("Hydrate error = %v, want ErrInvalidArgument", err)
			}
			if !reflect.DeepEqual(before, m.Snapshot()) {
				t.Error("failed Hydrate should leave the model untouched")
			}
		})
	}
}
