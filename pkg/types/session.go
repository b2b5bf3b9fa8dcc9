package types

import (
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used for session and note
// dates everywhere they are rendered or persisted.
const DateLayout = "2006-01-02"

// Note is a short dated remark attached to a session. Notes are immutable
// once attached.
type Note struct {
	Text    string
	Created time.Time
}

func (n Note) String() string {
	return fmt.Sprintf("[%s] %s", n.Created.Format(DateLayout), n.Text)
}

// Session is a tutorial, lab or consultation. The three variants share every
// field; Kind is the only discriminator. Rosters hold StudentIDs, never
// students, so the master list stays the single source of truth.
type Session struct {
	kind        SessionKind
	name        string
	date        time.Time
	students    []StudentID
	attachments []string
	notes       []Note
}

// NewSession creates an empty session of the given kind dated on date.
func NewSession(kind SessionKind, name string, date time.Time) (*Session, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, kind)
	}
	if err := ValidateSessionName(name); err != nil {
		return nil, err
	}
	return &Session{kind: kind, name: name, date: TruncateDate(date)}, nil
}

// RestoreSession rebuilds a session from persisted state. Roster duplicates
// are rejected.
func RestoreSession(kind SessionKind, name string, date time.Time, roster []StudentID, attachments []string, notes []Note) (*Session, error) {
	s, err := NewSession(kind, name, date)
	if err != nil {
		return nil, err
	}
	for _, id := range roster {
		if err := s.AddStudent(id); err != nil {
			return nil, err
		}
	}
	s.attachments = append([]string(nil), attachments...)
	s.notes = append([]Note(nil), notes...)
	return s, nil
}

func (s *Session) Kind() SessionKind { return s.kind }

func (s *Session) Name() string { return s.name }

func (s *Session) Date() time.Time { return s.date }

func (s *Session) SetDate(d time.Time) { s.date = TruncateDate(d) }

// Students returns a copy of the roster in roster order.
func (s *Session) Students() []StudentID {
	return append([]StudentID(nil), s.students...)
}

func (s *Session) Count() int { return len(s.students) }

// Has reports whether id is on the roster.
func (s *Session) Has(id StudentID) bool {
	return s.position(id) >= 0
}

// AddStudent appends id to the roster.
func (s *Session) AddStudent(id StudentID) error {
	if s.Has(id) {
		return fmt.Errorf("%w: student is already in %s %s", ErrDuplicate, s.kind, s.name)
	}
	s.students = append(s.students, id)
	return nil
}

// RemoveStudent drops id from the roster. An absent id is a no-op; the
// return value reports whether anything was removed.
func (s *Session) RemoveStudent(id StudentID) bool {
	i := s.position(id)
	if i < 0 {
		return false
	}
	s.students = append(s.students[:i], s.students[i+1:]...)
	return true
}

// RemoveAt removes the roster entry at a zero-based position.
func (s *Session) RemoveAt(index0 int) (StudentID, error) {
	if index0 < 0 || index0 >= len(s.students) {
		return "", fmt.Errorf("%w: %d (roster has %d students)", ErrIndexOutOfRange, index0+1, len(s.students))
	}
	id := s.students[index0]
	s.students = append(s.students[:index0], s.students[index0+1:]...)
	return id, nil
}

// FlagBelow returns, in roster order, the students whose performance score
// is strictly below threshold. lookup resolves roster ids; ids it cannot
// resolve are skipped.
func (s *Session) FlagBelow(threshold int, lookup func(StudentID) (Student, bool)) []Student {
	var flagged []Student
	for _, id := range s.students {
		st, ok := lookup(id)
		if !ok {
			continue
		}
		if st.PerformanceValue() < threshold {
			flagged = append(flagged, st)
		}
	}
	return flagged
}

// SortRoster replaces the roster order. order must be a permutation of the
// current roster.
func (s *Session) SortRoster(order []StudentID) error {
	if len(order) != len(s.students) {
		return fmt.Errorf("%w: new roster order has %d entries, roster has %d", ErrInvalidArgument, len(order), len(s.students))
	}
	for _, id := range order {
		if !s.Has(id) {
			return fmt.Errorf("%w: student %s is not on the roster", ErrNotFound, id)
		}
	}
	s.students = append([]StudentID(nil), order...)
	return nil
}

func (s *Session) Attachments() []string {
	return append([]string(nil), s.attachments...)
}

func (s *Session) CountAttachments() int { return len(s.attachments) }

func (s *Session) AddAttachment(path string) {
	s.attachments = append(s.attachments, path)
}

// RemoveAttachment drops the first attachment equal to path; absent paths
// are a no-op.
func (s *Session) RemoveAttachment(path string) bool {
	for i, p := range s.attachments {
		if p == path {
			s.attachments = append(s.attachments[:i], s.attachments[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAttachmentAt removes the attachment at a zero-based position.
func (s *Session) RemoveAttachmentAt(index0 int) (string, error) {
	if index0 < 0 || index0 >= len(s.attachments) {
		return "", fmt.Errorf("%w: %d (session has %d attachments)", ErrIndexOutOfRange, index0+1, len(s.attachments))
	}
	p := s.attachments[index0]
	s.attachments = append(s.attachments[:index0], s.attachments[index0+1:]...)
	return p, nil
}

func (s *Session) Notes() []Note {
	return append([]Note(nil), s.notes...)
}

func (s *Session) CountNotes() int { return len(s.notes) }

func (s *Session) AddNote(n Note) {
	s.notes = append(s.notes, n)
}

// RemoveNote drops the first note equal to n; absent notes are a no-op.
func (s *Session) RemoveNote(n Note) bool {
	for i, existing := range s.notes {
		if existing.Text == n.Text && existing.Created.Equal(n.Created) {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveNoteAt removes the note at a zero-based position.
func (s *Session) RemoveNoteAt(index0 int) (Note, error) {
	if index0 < 0 || index0 >= len(s.notes) {
		return Note{}, fmt.Errorf("%w: %d (session has %d notes)", ErrIndexOutOfRange, index0+1, len(s.notes))
	}
	n := s.notes[index0]
	s.notes = append(s.notes[:index0], s.notes[index0+1:]...)
	return n, nil
}

func (s *Session) String() string {
	return fmt.Sprintf("%s %s (%s) students=%d attachments=%d notes=%d",
		s.kind.Title(), s.name, s.date.Format(DateLayout), len(s.students), len(s.attachments), len(s.notes))
}

func (s *Session) position(id StudentID) int {
	for i, existing := range s.students {
		if existing == id {
			return i
		}
	}
	return -1
}

// TruncateDate drops the time of day, keeping the calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be in YYYY-MM-DD format", ErrInvalidArgument, s)
	}
	return t, nil
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	return &Session{
		kind:        s.kind,
		name:        s.name,
		date:        s.date,
		students:    s.Students(),
		attachments: s.Attachments(),
		notes:       s.Notes(),
	}
}
