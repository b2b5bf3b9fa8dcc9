package interfaces

import (
	"time"

	"classmate/pkg/types"
)

// Model is the process-wide state every command executes against: the master
// student list and the three session collections.
// All operations are atomic with respect to the model invariants: they either
// complete or fail without observable change.
type Model interface {
	// Master list

	// AddStudent appends s to the master list and returns the stored copy
	// (with its assigned ID). Fails Duplicate on an equal student.
	AddStudent(s types.Student) (types.Student, error)

	// DeleteStudent removes the student at idx and cascades the removal to
	// every session roster.
	DeleteStudent(idx types.Index) (types.Student, error)

	// SetPerformance replaces the score of the student at idx.
	SetPerformance(idx types.Index, score int) (types.Student, error)

	// Students returns the master list in order.
	Students() []types.Student

	// Student resolves a roster reference.
	Student(id types.StudentID) (types.Student, bool)

	// Sessions

	CreateSession(kind types.SessionKind, name string, date *time.Time) (*types.Session, error)
	DeleteSession(kind types.SessionKind, name string) error
	Session(kind types.SessionKind, name string) (*types.Session, error)
	Sessions(kind types.SessionKind) []*types.Session
	SetSessionDate(kind types.SessionKind, name string, date time.Time) error

	// Rosters

	// AddStudentToTutorial, AddStudentToLab and AddStudentToConsultation
	// resolve idx against the master list, then the session name within the
	// variant, then append to the roster.
	AddStudentToTutorial(idx types.Index, name string) error
	AddStudentToLab(idx types.Index, name string) error
	AddStudentToConsultation(idx types.Index, name string) error

	// DeleteStudentFromEvent removes the roster entry at idx. Here idx is a
	// position in that session's roster, not the master list. tag is resolved
	// with types.ParseKind.
	DeleteStudentFromEvent(idx types.Index, name string, tag string) error

	// RemoveFromRoster removes a student by identity; fails NotFound when the
	// student is not on the roster.
	RemoveFromRoster(kind types.SessionKind, name string, id types.StudentID) error

	// Attachments and notes

	AddAttachment(kind types.SessionKind, name, path string) error
	RemoveAttachment(kind types.SessionKind, name string, idx types.Index) (string, error)
	AddNote(kind types.SessionKind, name, text string) (types.Note, error)
	RemoveNote(kind types.SessionKind, name string, idx types.Index) (types.Note, error)

	// Queries and reordering

	// SortStudents reorders the roster of the session named group, or the
	// master list when no session has that name. It returns a description
	// of what was sorted.
	SortStudents(group, metric string, ascending bool) (string, error)

	// FlagLowPerformers lists the roster students scoring below threshold.
	FlagLowPerformers(kind types.SessionKind, name string, threshold int) ([]types.Student, error)
}
