package model

import (
	"fmt"
	"log"

	"classmate/pkg/types"
)

// Snapshot captures the whole model in persistable form.
func (m *Model) Snapshot() *types.Snapshot {
	snap := &types.Snapshot{Students: m.Students()}
	for _, kind := range types.SessionKinds {
		records := make([]types.SessionRecord, 0, len(m.sessions[kind]))
		for _, sess := range m.sessions[kind] {
			records = append(records, sessionRecord(sess))
		}
		snap.SetSessions(kind, records)
	}
	return snap
}

func sessionRecord(sess *types.Session) types.SessionRecord {
	rec := types.SessionRecord{
		Name:        sess.Name(),
		Date:        sess.Date().Format(types.DateLayout),
		Roster:      sess.Students(),
		Attachments: sess.Attachments(),
		Notes:       []types.NoteRecord{},
	}
	if rec.Roster == nil {
		rec.Roster = []types.StudentID{}
	}
	if rec.Attachments == nil {
		rec.Attachments = []string{}
	}
	for _, n := range sess.Notes() {
		rec.Notes = append(rec.Notes, types.NoteRecord{Text: n.Text, Date: n.Created.Format(types.DateLayout)})
	}
	return rec
}

// Hydrate replaces the model state with snap. The snapshot is validated in
// full first; on any violation the model is left untouched.
func (m *Model) Hydrate(snap *types.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: snapshot is nil", types.ErrInvalidArgument)
	}

	next := &Model{now: m.now}
	next.reset()

	for i, s := range snap.Students {
		if s.ID == "" {
			return fmt.Errorf("%w: student %d has no id", types.ErrInvalidArgument, i+1)
		}
		if _, err := next.AddStudent(s); err != nil {
			return fmt.Errorf("student %d: %w", i+1, err)
		}
	}

	for _, kind := range types.SessionKinds {
		for _, rec := range snap.Sessions(kind) {
			sess, err := restoreSession(kind, rec)
			if err != nil {
				return fmt.Errorf("%s %s: %w", kind, rec.Name, err)
			}
			if _, dup := next.find(kind, rec.Name); dup {
				return fmt.Errorf("%w: %s %s appears twice", types.ErrDuplicate, kind, rec.Name)
			}
			for _, id := range rec.Roster {
				if _, ok := next.byID[id]; !ok {
					return fmt.Errorf("%w: %s %s roster refers to unknown student %s", types.ErrNotFound, kind, rec.Name, id)
				}
			}
			next.sessions[kind] = append(next.sessions[kind], sess)
		}
	}

	m.students = next.students
	m.byID = next.byID
	m.sessions = next.sessions
	m.changed()

	log.Printf("Hydrated model: students=%d tutorials=%d labs=%d consultations=%d",
		len(snap.Students), len(snap.Tutorials), len(snap.Labs), len(snap.Consultations))
	return nil
}

func restoreSession(kind types.SessionKind, rec types.SessionRecord) (*types.Session, error) {
	date, err := types.ParseDate(rec.Date)
	if err != nil {
		return nil, err
	}
	for _, path := range rec.Attachments {
		if err := types.ValidateAttachmentPath(path); err != nil {
			return nil, err
		}
	}
	notes := make([]types.Note, 0, len(rec.Notes))
	for _, n := range rec.Notes {
		if err := types.ValidateNoteText(n.Text); err != nil {
			return nil, err
		}
		created, err := types.ParseDate(n.Date)
		if err != nil {
			return nil, err
		}
		notes = append(notes, types.Note{Text: n.Text, Created: created})
	}
	return types.RestoreSession(kind, rec.Name, date, rec.Roster, rec.Attachments, notes)
}
