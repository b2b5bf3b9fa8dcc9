package command

import (
	"fmt"
	"strings"

	"classmate/pkg/interfaces"
	"classmate/pkg/types"
)

const (
	MessageAddedToEvent     = "Student at specified index added to event"
	MessageDeletedFromEvent = "Student at specified index deleted from event"
)

// AddStudentToEventCommand adds the master-list student at Index to the
// roster of the named session. EventType is the raw variant tag as typed;
// it is resolved at execution so an unknown tag reports UnknownVariant.
type AddStudentToEventCommand struct {
	Index     types.Index
	EventName string
	EventType string
}

func (c AddStudentToEventCommand) Execute(m interfaces.Model) (Result, error) {
	kind, err := types.ParseKind(c.EventType)
	if err != nil {
		return Result{}, Wrap(err)
	}

	switch kind {
	case types.KindTutorial:
		err = m.AddStudentToTutorial(c.Index, c.EventName)
	case types.KindLab:
		err = m.AddStudentToLab(c.Index, c.EventName)
	case types.KindConsultation:
		err = m.AddStudentToConsultation(c.Index, c.EventName)
	}
	if err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: MessageAddedToEvent}, nil
}

// DeleteStudentFromEventCommand removes the student at roster position Index
// from the named session.
type DeleteStudentFromEventCommand struct {
	Index     types.Index
	EventName string
	EventType string
}

func (c DeleteStudentFromEventCommand) Execute(m interfaces.Model) (Result, error) {
	if _, err := types.ParseKind(c.EventType); err != nil {
		return Result{}, Wrap(err)
	}
	if err := m.DeleteStudentFromEvent(c.Index, c.EventName, c.EventType); err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: MessageDeletedFromEvent}, nil
}

// FlagCommand lists the roster students whose score is below Threshold.
type FlagCommand struct {
	Kind      types.SessionKind
	Name      string
	Threshold int
}

func (c FlagCommand) Execute(m interfaces.Model) (Result, error) {
	flagged, err := m.FlagLowPerformers(c.Kind, c.Name, c.Threshold)
	if err != nil {
		return Result{}, Wrap(err)
	}
	if len(flagged) == 0 {
		return Result{Feedback: fmt.Sprintf("No students in %s %s scored below %d", c.Kind, c.Name, c.Threshold)}, nil
	}

	lines := []string{fmt.Sprintf("%d student(s) in %s %s scored below %d:", len(flagged), c.Kind, c.Name, c.Threshold)}
	for i, s := range flagged {
		lines = append(lines, fmt.Sprintf("%d. %s (performance %d)", i+1, s.Name, s.Performance))
	}
	return Result{Feedback: strings.Join(lines, "\n")}, nil
}
