package command

import (
	"fmt"

	"classmate/pkg/interfaces"
)

// SortStudentCommand reorders the master list, or the roster of the session
// named Group, by Metric.
type SortStudentCommand struct {
	Group     string
	Metric    string
	Ascending bool
}

func (c SortStudentCommand) Execute(m interfaces.Model) (Result, error) {
	target, err := m.SortStudents(c.Group, c.Metric, c.Ascending)
	if err != nil {
		return Result{}, Wrap(err)
	}
	order := "normal"
	if !c.Ascending {
		order = "reverse"
	}
	return Result{Feedback: fmt.Sprintf("Sorted %s by %s (%s order)", target, c.Metric, order)}, nil
}
