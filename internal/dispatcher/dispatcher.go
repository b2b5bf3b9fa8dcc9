package dispatcher

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"classmate/internal/command"
	"classmate/internal/parser"
	"classmate/pkg/interfaces"
	"classmate/pkg/types"
)

// entry is one row of the command table.
type entry struct {
	parse   parser.Func
	usage   string
	summary string
}

// Dispatcher maps a command word to its parser and runs the parsed command
// against the model it owns.
// FUNCTIONAL DISCOVERY: One table drives parsing, dispatch and the help
// summary, so a command cannot be reachable without also being documented.
type Dispatcher struct {
	model interfaces.Model
	table map[string]entry
	order []string
}

// New creates a dispatcher over m.
func New(m interfaces.Model) *Dispatcher {
	d := &Dispatcher{model: m, table: make(map[string]entry)}

	d.register(command.AddWord, parser.ParseAdd, command.AddUsage, "add a student to the master list")
	d.register(command.DeleteWord, parser.ParseDelete, command.DeleteUsage, "delete a student and remove them from every event")
	d.register(command.ListWord, parser.ParseList, command.ListUsage, "list all students")
	d.register(command.PerformanceWord, parser.ParsePerformance, command.PerformanceUsage, "set a student's performance score")
	d.register(command.CreateEventWord, parser.ParseCreate, command.CreateEventUsage, "create a tutorial, lab or consultation")
	d.register(command.DeleteEventWord, parser.ParseRemove, command.DeleteEventUsage, "delete an event")
	d.register(command.ListEventsWord, parser.ParseEvents, command.ListEventsUsage, "list events")
	d.register(command.SetDateWord, parser.ParseSetDate, command.SetDateUsage, "change the date of an event")
	d.register(command.RosterWord, parser.ParseRoster, command.RosterUsage, "show the students, attachments and notes of an event")
	d.register(command.AddStudentToEventWord, parser.ParseAddStudentToEvent, command.AddStudentToEventUsage, "add a student to an event")
	d.register(command.DeleteStudentFromEventWord, parser.ParseDeleteStudentFromEvent, command.DeleteStudentFromEventUsage, "remove a student from an event by roster position")
	d.register(command.FlagWord, parser.ParseFlag, command.FlagUsage, "list students in an event scoring below a threshold")
	d.register(command.AttachWord, parser.ParseAttach, command.AttachUsage, "attach a file path to an event")
	d.register(command.DetachWord, parser.ParseDetach, command.DetachUsage, "remove an attachment from an event")
	d.register(command.AddNoteWord, parser.ParseNote, command.AddNoteUsage, "add a note to an event")
	d.register(command.DeleteNoteWord, parser.ParseDeleteNote, command.DeleteNoteUsage, "remove a note from an event")
	d.register(command.SortStudentWord, parser.ParseSortStudent, command.SortStudentUsage, "sort all students or an event roster")
	d.register(command.HelpWord, d.parseHelp, command.HelpUsage, "show this summary, or the consultation format")
	d.register(command.ExitWord, parser.ParseExit, command.ExitUsage, "leave the program")

	return d
}

func (d *Dispatcher) register(keyword string, parse parser.Func, usage, summary string) {
	d.table[keyword] = entry{parse: parse, usage: usage, summary: summary}
	d.order = append(d.order, keyword)
}

// Keywords lists the command words in table order.
func (d *Dispatcher) Keywords() []string {
	return slices.Clone(d.order)
}

// Usage returns the usage line of keyword.
func (d *Dispatcher) Usage(keyword string) (string, bool) {
	e, ok := d.table[keyword]
	return e.usage, ok
}

// Summary is the text of a bare "help".
func (d *Dispatcher) Summary() string {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, kw := range d.order {
		e := d.table[kw]
		fmt.Fprintf(&b, "\n  %-60s %s", e.usage, e.summary)
	}
	return b.String()
}

func (d *Dispatcher) parseHelp(args string) (command.Command, error) {
	return parser.ParseHelp(args, d.Summary())
}

// Parse turns line into a command without running it.
func (d *Dispatcher) Parse(line string) (command.Command, error) {
	keyword, args := parser.SplitKeyword(line)
	if keyword == "" {
		return nil, &parser.Error{Reason: "empty command"}
	}
	e, ok := d.table[keyword]
	if !ok {
		return nil, fmt.Errorf("%w: %q (type %q to see all commands)", types.ErrUnknownCommand, keyword, command.HelpWord)
	}
	return e.parse(args)
}

// Dispatch parses line and executes it against the model.
// Every failure matches one of the types sentinels: parse failures are
// *parser.Error and execution failures are *command.Error.
func (d *Dispatcher) Dispatch(line string) (command.Result, error) {
	cmd, err := d.Parse(line)
	if err != nil {
		log.Printf("Rejected command: line=%q kind=%s err=%v", line, types.KindOf(err), err)
		return command.Result{}, err
	}

	res, err := cmd.Execute(d.model)
	if err != nil {
		log.Printf("Command failed: line=%q kind=%s err=%v", line, types.KindOf(err), err)
		return command.Result{}, err
	}

	log.Printf("Command executed: %T", cmd)
	return res, nil
}
