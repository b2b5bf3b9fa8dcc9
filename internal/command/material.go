package command

import (
	"fmt"

	"classmate/pkg/interfaces"
	"classmate/pkg/types"
)

// AttachCommand records a file path on a session.
type AttachCommand struct {
	Kind types.SessionKind
	Name string
	Path string
}

func (c AttachCommand) Execute(m interfaces.Model) (Result, error) {
	if err := m.AddAttachment(c.Kind, c.Name, c.Path); err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: fmt.Sprintf("Attached %s to %s %s", c.Path, c.Kind, c.Name)}, nil
}

// DetachCommand removes the attachment at Index from a session.
type DetachCommand struct {
	Index types.Index
	Kind  types.SessionKind
	Name  string
}

func (c DetachCommand) Execute(m interfaces.Model) (Result, error) {
	path, err := m.RemoveAttachment(c.Kind, c.Name, c.Index)
	if err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: fmt.Sprintf("Removed attachment %s from %s %s", path, c.Kind, c.Name)}, nil
}

// AddNoteCommand attaches a note dated today to a session.
type AddNoteCommand struct {
	Kind types.SessionKind
	Name string
	Text string
}

func (c AddNoteCommand) Execute(m interfaces.Model) (Result, error) {
	note, err := m.AddNote(c.Kind, c.Name, c.Text)
	if err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: fmt.Sprintf("Note added to %s %s: %s", c.Kind, c.Name, note)}, nil
}

// DeleteNoteCommand removes the note at Index from a session.
type DeleteNoteCommand struct {
	Index types.Index
	Kind  types.SessionKind
	Name  string
}

func (c DeleteNoteCommand) Execute(m interfaces.Model) (Result, error) {
	note, err := m.RemoveNote(c.Kind, c.Name, c.Index)
	if err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: fmt.Sprintf("Deleted note from %s %s: %s", c.Kind, c.Name, note)}, nil
}
