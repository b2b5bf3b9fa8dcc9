package command

import (
	"fmt"
	"strings"
	"time"

	"classmate/pkg/interfaces"
	"classmate/pkg/types"
)

// CreateEventCommand creates a tutorial, lab or consultation. A nil Date
// means today.
type CreateEventCommand struct {
	Kind types.SessionKind
	Name string
	Date *time.Time
}

func (c CreateEventCommand) Execute(m interfaces.Model) (Result, error) {
	sess, err := m.CreateSession(c.Kind, c.Name, c.Date)
	if err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: fmt.Sprintf("New %s created: %s on %s",
		c.Kind, sess.Name(), sess.Date().Format(types.DateLayout))}, nil
}

// DeleteEventCommand deletes a session with its roster, attachments and
// notes.
type DeleteEventCommand struct {
	Kind types.SessionKind
	Name string
}

func (c DeleteEventCommand) Execute(m interfaces.Model) (Result, error) {
	if err := m.DeleteSession(c.Kind, c.Name); err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: fmt.Sprintf("Deleted %s %s", c.Kind, c.Name)}, nil
}

// ListEventsCommand lists sessions of the given kinds; no kinds means all.
type ListEventsCommand struct {
	Kinds []types.SessionKind
}

func (c ListEventsCommand) Execute(m interfaces.Model) (Result, error) {
	kinds := c.Kinds
	if len(kinds) == 0 {
		kinds = types.SessionKinds
	}
	var lines []string
	for _, kind := range kinds {
		for i, sess := range m.Sessions(kind) {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, sess))
		}
	}
	if len(lines) == 0 {
		return Result{Feedback: "No events yet."}, nil
	}
	return Result{Feedback: strings.Join(lines, "\n")}, nil
}

// SetDateCommand moves a session to another date.
type SetDateCommand struct {
	Kind types.SessionKind
	Name string
	Date time.Time
}

func (c SetDateCommand) Execute(m interfaces.Model) (Result, error) {
	if err := m.SetSessionDate(c.Kind, c.Name, c.Date); err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: fmt.Sprintf("%s %s is now on %s",
		c.Kind.Title(), c.Name, c.Date.Format(types.DateLayout))}, nil
}

// RosterCommand shows a session's roster, attachments and notes.
type RosterCommand struct {
	Kind types.SessionKind
	Name string
}

func (c RosterCommand) Execute(m interfaces.Model) (Result, error) {
	sess, err := m.Session(c.Kind, c.Name)
	if err != nil {
		return Result{}, Wrap(err)
	}

	var b strings.Builder
	b.WriteString(sess.String())
	for i, id := range sess.Students() {
		s, ok := m.Student(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%d. %s (performance %d)", i+1, s.Name, s.Performance)
	}
	for i, path := range sess.Attachments() {
		fmt.Fprintf(&b, "\nAttachment %d: %s", i+1, path)
	}
	for i, note := range sess.Notes() {
		fmt.Fprintf(&b, "\nNote %d: %s", i+1, note)
	}
	return Result{Feedback: b.String()}, nil
}
