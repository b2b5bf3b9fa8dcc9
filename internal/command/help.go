package command

import "classmate/pkg/interfaces"

// ConsultationSyntax is the fixed consultation help text.
const ConsultationSyntax = "Consultation Input Format:\n" +
	"touch recur [name] Consultations [day] [time] [duration] [period]"

// HelpConsultationCommand returns ConsultationSyntax.
type HelpConsultationCommand struct{}

func (HelpConsultationCommand) Execute(interfaces.Model) (Result, error) {
	return Result{Feedback: ConsultationSyntax}, nil
}

// HelpCommand returns a summary of every command. The dispatcher builds
// Text from its table.
type HelpCommand struct {
	Text string
}

func (c HelpCommand) Execute(interfaces.Model) (Result, error) {
	return Result{Feedback: c.Text}, nil
}

// ExitCommand ends the interactive shell.
type ExitCommand struct{}

func (ExitCommand) Execute(interfaces.Model) (Result, error) {
	return Result{Feedback: "Goodbye!", Exit: true}, nil
}
