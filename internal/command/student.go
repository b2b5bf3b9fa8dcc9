package command

import (
	"fmt"
	"strings"

	"classmate/pkg/interfaces"
	"classmate/pkg/types"
)

// AddCommand adds a new student to the master list.
type AddCommand struct {
	Student types.Student
}

func (c AddCommand) Execute(m interfaces.Model) (Result, error) {
	stored, err := m.AddStudent(c.Student)
	if err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: fmt.Sprintf("New student added: %s", stored)}, nil
}

// DeleteCommand removes the student at Index from the master list and from
// every roster.
type DeleteCommand struct {
	Index types.Index
}

func (c DeleteCommand) Execute(m interfaces.Model) (Result, error) {
	removed, err := m.DeleteStudent(c.Index)
	if err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: fmt.Sprintf("Deleted student: %s", removed)}, nil
}

// ListCommand shows the master list.
type ListCommand struct{}

func (ListCommand) Execute(m interfaces.Model) (Result, error) {
	students := m.Students()
	if len(students) == 0 {
		return Result{Feedback: "No students yet."}, nil
	}
	return Result{Feedback: formatStudents(students)}, nil
}

// PerformanceCommand sets the performance score of one student.
type PerformanceCommand struct {
	Index types.Index
	Score int
}

func (c PerformanceCommand) Execute(m interfaces.Model) (Result, error) {
	s, err := m.SetPerformance(c.Index, c.Score)
	if err != nil {
		return Result{}, Wrap(err)
	}
	return Result{Feedback: fmt.Sprintf("Performance of %s set to %d", s.Name, s.Performance)}, nil
}

func formatStudents(students []types.Student) string {
	var b strings.Builder
	for i, s := range students {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s (performance %d)", i+1, s, s.Performance)
	}
	return b.String()
}
