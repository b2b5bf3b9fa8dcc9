package model

import (
	"fmt"
	"log"
	"strings"
	"time"

	"classmate/pkg/types"
)

// Model implements the interfaces.Model contract. It owns the master student
// list and every session; rosters refer to students by ID only.
// Model is not safe for concurrent use. The dispatcher runs one command at a
// time and loans the model to it for the duration of Execute.
type Model struct {
	students []*types.Student
	byID     map[types.StudentID]*types.Student
	sessions map[types.SessionKind][]*types.Session
	now      func() time.Time
	version  uint64
}

// New creates an empty model using the wall clock for default dates.
func New() *Model {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty model that reads "today" from now.
func NewWithClock(now func() time.Time) *Model {
	m := &Model{now: now}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.students = nil
	m.byID = make(map[types.StudentID]*types.Student)
	m.sessions = make(map[types.SessionKind][]*types.Session, len(types.SessionKinds))
}

// Version increases by one after every successful mutation. Callers compare
// versions to decide whether a snapshot needs saving.
func (m *Model) Version() uint64 {
	return m.version
}

func (m *Model) changed() {
	m.version++
}

// AddStudent appends s to the master list.
func (m *Model) AddStudent(s types.Student) (types.Student, error) {
	if err := s.Validate(); err != nil {
		return types.Student{}, err
	}
	for _, existing := range m.students {
		if existing.Equals(s) {
			return types.Student{}, fmt.Errorf("%w: student %s is already in the list", types.ErrDuplicate, s.Name)
		}
	}
	stored := s.Clone()
	if stored.ID == "" {
		stored.ID = types.NewStudentID()
	}
	if _, taken := m.byID[stored.ID]; taken {
		return types.Student{}, fmt.Errorf("%w: student id %s", types.ErrDuplicate, stored.ID)
	}

	m.students = append(m.students, &stored)
	m.byID[stored.ID] = &stored
	m.changed()

	log.Printf("Added student: id=%s name=%s", stored.ID, stored.Name)
	return stored.Clone(), nil
}

// DeleteStudent removes the student at idx from the master list and from
// every roster.
func (m *Model) DeleteStudent(idx types.Index) (types.Student, error) {
	if err := idx.Check(len(m.students)); err != nil {
		return types.Student{}, err
	}
	target := m.students[idx.ZeroBased()]

	rosters := 0
	for _, kind := range types.SessionKinds {
		for _, sess := range m.sessions[kind] {
			if sess.RemoveStudent(target.ID) {
				rosters++
			}
		}
	}
	m.students = append(m.students[:idx.ZeroBased()], m.students[idx.ZeroBased()+1:]...)
	delete(m.byID, target.ID)
	m.changed()

	log.Printf("Deleted student: id=%s name=%s rosters=%d", target.ID, target.Name, rosters)
	return target.Clone(), nil
}

// SetPerformance replaces the performance score of the student at idx.
func (m *Model) SetPerformance(idx types.Index, score int) (types.Student, error) {
	if err := idx.Check(len(m.students)); err != nil {
		return types.Student{}, err
	}
	target := m.students[idx.ZeroBased()]
	target.SetPerformance(score)
	m.changed()
	return target.Clone(), nil
}

// Students returns copies of the master list in order.
func (m *Model) Students() []types.Student {
	out := make([]types.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s.Clone())
	}
	return out
}

// Student resolves a roster reference.
func (m *Model) Student(id types.StudentID) (types.Student, bool) {
	s, ok := m.byID[id]
	if !ok {
		return types.Student{}, false
	}
	return s.Clone(), true
}

// CreateSession adds an empty session. A nil date means today.
func (m *Model) CreateSession(kind types.SessionKind, name string, date *time.Time) (*types.Session, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownVariant, kind)
	}
	if _, ok := m.find(kind, name); ok {
		return nil, fmt.Errorf("%w: %s %s", types.ErrDuplicate, kind, name)
	}
	d := m.now()
	if date != nil {
		d = *date
	}
	sess, err := types.NewSession(kind, name, d)
	if err != nil {
		return nil, err
	}

	m.sessions[kind] = append(m.sessions[kind], sess)
	m.changed()

	log.Printf("Created session: kind=%s name=%s date=%s", kind, name, sess.Date().Format(types.DateLayout))
	return sess.Clone(), nil
}

// DeleteSession removes a session and its roster, attachments and notes.
func (m *Model) DeleteSession(kind types.SessionKind, name string) error {
	list := m.sessions[kind]
	for i, sess := range list {
		if sess.Name() == name {
			m.sessions[kind] = append(list[:i], list[i+1:]...)
			m.changed()
			log.Printf("Deleted session: kind=%s name=%s", kind, name)
			return nil
		}
	}
	return notFound(kind, name)
}

// Session returns a copy of the named session.
func (m *Model) Session(kind types.SessionKind, name string) (*types.Session, error) {
	sess, err := m.lookup(kind, name)
	if err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// Sessions returns copies of every session of kind in creation order.
func (m *Model) Sessions(kind types.SessionKind) []*types.Session {
	out := make([]*types.Session, 0, len(m.sessions[kind]))
	for _, sess := range m.sessions[kind] {
		out = append(out, sess.Clone())
	}
	return out
}

// SetSessionDate changes the date of a session.
func (m *Model) SetSessionDate(kind types.SessionKind, name string, date time.Time) error {
	sess, err := m.lookup(kind, name)
	if err != nil {
		return err
	}
	sess.SetDate(date)
	m.changed()
	return nil
}

func (m *Model) AddStudentToTutorial(idx types.Index, name string) error {
	return m.addStudentToEvent(idx, name, types.KindTutorial)
}

func (m *Model) AddStudentToLab(idx types.Index, name string) error {
	return m.addStudentToEvent(idx, name, types.KindLab)
}

func (m *Model) AddStudentToConsultation(idx types.Index, name string) error {
	return m.addStudentToEvent(idx, name, types.KindConsultation)
}

// addStudentToEvent checks the index before the session so an empty master
// list always reports IndexOutOfRange.
func (m *Model) addStudentToEvent(idx types.Index, name string, kind types.SessionKind) error {
	if err := idx.Check(len(m.students)); err != nil {
		return err
	}
	student := m.students[idx.ZeroBased()]
	sess, err := m.lookup(kind, name)
	if err != nil {
		return err
	}
	if err := sess.AddStudent(student.ID); err != nil {
		return err
	}
	m.changed()

	log.Printf("Added student to session: kind=%s name=%s student=%s", kind, name, student.ID)
	return nil
}

// DeleteStudentFromEvent removes the entry at roster position idx.
func (m *Model) DeleteStudentFromEvent(idx types.Index, name string, tag string) error {
	kind, err := types.ParseKind(tag)
	if err != nil {
		return err
	}
	sess, err := m.lookup(kind, name)
	if err != nil {
		return err
	}
	if err := idx.Check(sess.Count()); err != nil {
		return err
	}
	return m.RemoveFromRoster(kind, name, sess.Students()[idx.ZeroBased()])
}

// RemoveFromRoster removes a student from a session roster by identity.
func (m *Model) RemoveFromRoster(kind types.SessionKind, name string, id types.StudentID) error {
	sess, err := m.lookup(kind, name)
	if err != nil {
		return err
	}
	if !sess.RemoveStudent(id) {
		return fmt.Errorf("%w: student %s is not in %s %s", types.ErrNotFound, id, kind, name)
	}
	m.changed()

	log.Printf("Removed student from session: kind=%s name=%s student=%s", kind, name, id)
	return nil
}

// AddAttachment records a file path on a session. The file is not read.
func (m *Model) AddAttachment(kind types.SessionKind, name, path string) error {
	if err := types.ValidateAttachmentPath(path); err != nil {
		return err
	}
	sess, err := m.lookup(kind, name)
	if err != nil {
		return err
	}
	sess.AddAttachment(strings.TrimSpace(path))
	m.changed()
	return nil
}

func (m *Model) RemoveAttachment(kind types.SessionKind, name string, idx types.Index) (string, error) {
	sess, err := m.lookup(kind, name)
	if err != nil {
		return "", err
	}
	path, err := sess.RemoveAttachmentAt(idx.ZeroBased())
	if err != nil {
		return "", err
	}
	m.changed()
	return path, nil
}

// AddNote attaches a note dated today.
func (m *Model) AddNote(kind types.SessionKind, name, text string) (types.Note, error) {
	if err := types.ValidateNoteText(text); err != nil {
		return types.Note{}, err
	}
	sess, err := m.lookup(kind, name)
	if err != nil {
		return types.Note{}, err
	}
	note := types.Note{Text: strings.TrimSpace(text), Created: types.TruncateDate(m.now())}
	sess.AddNote(note)
	m.changed()
	return note, nil
}

func (m *Model) RemoveNote(kind types.SessionKind, name string, idx types.Index) (types.Note, error) {
	sess, err := m.lookup(kind, name)
	if err != nil {
		return types.Note{}, err
	}
	note, err := sess.RemoveNoteAt(idx.ZeroBased())
	if err != nil {
		return types.Note{}, err
	}
	m.changed()
	return note, nil
}

// FlagLowPerformers lists, in roster order, the students of a session whose
// score is below threshold.
func (m *Model) FlagLowPerformers(kind types.SessionKind, name string, threshold int) ([]types.Student, error) {
	sess, err := m.lookup(kind, name)
	if err != nil {
		return nil, err
	}
	return sess.FlagBelow(threshold, m.Student), nil
}

func (m *Model) find(kind types.SessionKind, name string) (*types.Session, bool) {
	for _, sess := range m.sessions[kind] {
		if sess.Name() == name {
			return sess, true
		}
	}
	return nil, false
}

func (m *Model) lookup(kind types.SessionKind, name string) (*types.Session, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownVariant, kind)
	}
	sess, ok := m.find(kind, name)
	if !ok {
		return nil, notFound(kind, name)
	}
	return sess, nil
}

func notFound(kind types.SessionKind, name string) error {
	return fmt.Errorf("%w: %s %s does not exist", types.ErrNotFound, kind, name)
}
