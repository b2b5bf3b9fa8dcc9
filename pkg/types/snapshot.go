package types

// Snapshot is the persisted form of the whole model: the ordered master list
// plus, per variant, the ordered sessions. Dates are ISO-8601 strings so the
// encoding is stable across time zones.
type Snapshot struct {
	Students      []Student       `json:"students" yaml:"students"`
	Tutorials     []SessionRecord `json:"tutorials" yaml:"tutorials"`
	Labs          []SessionRecord `json:"labs" yaml:"labs"`
	Consultations []SessionRecord `json:"consultations" yaml:"consultations"`
}

// SessionRecord is one persisted session.
type SessionRecord struct {
	Name        string       `json:"name" yaml:"name"`
	Date        string       `json:"date" yaml:"date"`
	Roster      []StudentID  `json:"roster" yaml:"roster"`
	Attachments []string     `json:"attachments" yaml:"attachments"`
	Notes       []NoteRecord `json:"notes" yaml:"notes"`
}

// NoteRecord is one persisted note.
type NoteRecord struct {
	Text string `json:"text" yaml:"text"`
	Date string `json:"date" yaml:"date"`
}

// Sessions returns the records of one variant.
func (s *Snapshot) Sessions(kind SessionKind) []SessionRecord {
	switch kind {
	case KindTutorial:
		return s.Tutorials
	case KindLab:
		return s.Labs
	case KindConsultation:
		return s.Consultations
	default:
		return nil
	}
}

// SetSessions replaces the records of one variant.
func (s *Snapshot) SetSessions(kind SessionKind, records []SessionRecord) {
	switch kind {
	case KindTutorial:
		s.Tutorials = records
	case KindLab:
		s.Labs = records
	case KindConsultation:
		s.Consultations = records
	}
}
