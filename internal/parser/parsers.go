package parser

import (
	"strconv"
	"strings"
	"time"

	"classmate/internal/command"
	"classmate/internal/model"
	"classmate/pkg/types"
)

// Func parses the arguments that follow a command word.
type Func func(args string) (command.Command, error)

var (
	addSyntax           = syntax{command.AddWord, command.AddUsage}
	deleteSyntax        = syntax{command.DeleteWord, command.DeleteUsage}
	performanceSyntax   = syntax{command.PerformanceWord, command.PerformanceUsage}
	createSyntax        = syntax{command.CreateEventWord, command.CreateEventUsage}
	removeSyntax        = syntax{command.DeleteEventWord, command.DeleteEventUsage}
	eventsSyntax        = syntax{command.ListEventsWord, command.ListEventsUsage}
	dateSyntax          = syntax{command.SetDateWord, command.SetDateUsage}
	rosterSyntax        = syntax{command.RosterWord, command.RosterUsage}
	addToEventSyntax    = syntax{command.AddStudentToEventWord, command.AddStudentToEventUsage}
	removeFromEvtSyntax = syntax{command.DeleteStudentFromEventWord, command.DeleteStudentFromEventUsage}
	flagSyntax          = syntax{command.FlagWord, command.FlagUsage}
	attachSyntax        = syntax{command.AttachWord, command.AttachUsage}
	detachSyntax        = syntax{command.DetachWord, command.DetachUsage}
	noteSyntax          = syntax{command.AddNoteWord, command.AddNoteUsage}
	deleteNoteSyntax    = syntax{command.DeleteNoteWord, command.DeleteNoteUsage}
	sortSyntax          = syntax{command.SortStudentWord, command.SortStudentUsage}
	helpSyntax          = syntax{command.HelpWord, command.HelpUsage}
)

// ParseAdd parses "n/NAME [p/PHONE] [e/EMAIL] [a/ADDRESS] [t/TAG]...".
func ParseAdd(args string) (command.Command, error) {
	mm := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixTag)
	if mm.Preamble() != "" {
		return nil, addSyntax.errorf("unexpected text %q before the first prefix", mm.Preamble())
	}
	if !mm.Has(PrefixName) {
		return nil, addSyntax.errorf("missing %s", PrefixName)
	}
	for _, p := range []Prefix{PrefixName, PrefixPhone, PrefixEmail, PrefixAddress} {
		if mm.Count(p) > 1 {
			return nil, addSyntax.errorf("%s given more than once", p)
		}
	}

	name, _ := mm.Value(PrefixName)
	if name == "" {
		return nil, addSyntax.errorf("missing name after %s", PrefixName)
	}
	phone, _ := mm.Value(PrefixPhone)
	email, _ := mm.Value(PrefixEmail)
	address, _ := mm.Value(PrefixAddress)
	s, err := types.NewStudent(name, phone, email, address, mm.Values(PrefixTag))
	if err != nil {
		return nil, err
	}
	return command.AddCommand{Student: s}, nil
}

// ParseDelete parses "INDEX".
func ParseDelete(args string) (command.Command, error) {
	idx, err := singleIndex(deleteSyntax, args)
	if err != nil {
		return nil, err
	}
	return command.DeleteCommand{Index: idx}, nil
}

// ParseList accepts and ignores any arguments.
func ParseList(string) (command.Command, error) {
	return command.ListCommand{}, nil
}

// ParsePerformance parses "INDEX SCORE".
func ParsePerformance(args string) (command.Command, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return nil, performanceSyntax.errorf("expected an index and a score")
	}
	idx, err := parseIndex(performanceSyntax, fields[0])
	if err != nil {
		return nil, err
	}
	score, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, performanceSyntax.errorf("score %q is not a whole number", fields[1])
	}
	return command.PerformanceCommand{Index: idx, Score: score}, nil
}

// ParseCreate parses "tut/NAME [d/DATE]" and its lab and consultation forms.
func ParseCreate(args string) (command.Command, error) {
	mm := Tokenize(args, PrefixTutorial, PrefixLab, PrefixConsultation, PrefixDate)
	if mm.Preamble() != "" {
		return nil, createSyntax.errorf("unexpected text %q before the first prefix", mm.Preamble())
	}
	kind, name, err := eventTarget(createSyntax, mm)
	if err != nil {
		return nil, err
	}
	cmd := command.CreateEventCommand{Kind: kind, Name: name}
	if mm.Has(PrefixDate) {
		date, err := parseDate(createSyntax, mm)
		if err != nil {
			return nil, err
		}
		cmd.Date = &date
	}
	return cmd, nil
}

// ParseRemove parses "tut/NAME" and its lab and consultation forms.
func ParseRemove(args string) (command.Command, error) {
	kind, name, err := eventOnly(removeSyntax, args)
	if err != nil {
		return nil, err
	}
	return command.DeleteEventCommand{Kind: kind, Name: name}, nil
}

// ParseRoster parses "tut/NAME" and its lab and consultation forms.
func ParseRoster(args string) (command.Command, error) {
	kind, name, err := eventOnly(rosterSyntax, args)
	if err != nil {
		return nil, err
	}
	return command.RosterCommand{Kind: kind, Name: name}, nil
}

// ParseEvents parses "[tut/] [lab/] [con/]". No prefix selects every kind.
func ParseEvents(args string) (command.Command, error) {
	mm := Tokenize(args, eventPrefixes...)
	if mm.Preamble() != "" {
		return nil, eventsSyntax.errorf("unexpected text %q", mm.Preamble())
	}
	var kinds []types.SessionKind
	for _, p := range mm.Prefixes() {
		if v, _ := mm.Value(p); v != "" {
			return nil, eventsSyntax.errorf("%s takes no value", p)
		}
		kind, _ := types.ParseKind(string(p))
		kinds = append(kinds, kind)
	}
	return command.ListEventsCommand{Kinds: kinds}, nil
}

// ParseSetDate parses "tut/NAME d/DATE" and its lab and consultation forms.
func ParseSetDate(args string) (command.Command, error) {
	mm := Tokenize(args, PrefixTutorial, PrefixLab, PrefixConsultation, PrefixDate)
	if mm.Preamble() != "" {
		return nil, dateSyntax.errorf("unexpected text %q before the first prefix", mm.Preamble())
	}
	kind, name, err := eventTarget(dateSyntax, mm)
	if err != nil {
		return nil, err
	}
	if !mm.Has(PrefixDate) {
		return nil, dateSyntax.errorf("missing %s", PrefixDate)
	}
	date, err := parseDate(dateSyntax, mm)
	if err != nil {
		return nil, err
	}
	return command.SetDateCommand{Kind: kind, Name: name, Date: date}, nil
}

// ParseAddStudentToEvent parses "INDEX EVENT_NAME tut/". The event type may
// also be given as a bare third word, which is resolved when the command
// runs.
func ParseAddStudentToEvent(args string) (command.Command, error) {
	idx, name, tag, err := eventMembership(addToEventSyntax, args)
	if err != nil {
		return nil, err
	}
	return command.AddStudentToEventCommand{Index: idx, EventName: name, EventType: tag}, nil
}

// ParseDeleteStudentFromEvent parses "INDEX EVENT_NAME tut/", where INDEX is
// a position in the session roster.
func ParseDeleteStudentFromEvent(args string) (command.Command, error) {
	idx, name, tag, err := eventMembership(removeFromEvtSyntax, args)
	if err != nil {
		return nil, err
	}
	return command.DeleteStudentFromEventCommand{Index: idx, EventName: name, EventType: tag}, nil
}

// ParseFlag parses "THRESHOLD tut/NAME".
func ParseFlag(args string) (command.Command, error) {
	mm := Tokenize(args, eventPrefixes...)
	fields := mm.PreambleTokens()
	if len(fields) != 1 {
		return nil, flagSyntax.errorf("expected one threshold before the event")
	}
	threshold, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, flagSyntax.errorf("threshold %q is not a whole number", fields[0])
	}
	kind, name, err := eventTarget(flagSyntax, mm)
	if err != nil {
		return nil, err
	}
	return command.FlagCommand{Kind: kind, Name: name, Threshold: threshold}, nil
}

// ParseAttach parses "tut/NAME f/PATH". PATH runs to the end of the line.
func ParseAttach(args string) (command.Command, error) {
	mm := TokenizeTrailing(args, PrefixFile, eventPrefixes...)
	if mm.Preamble() != "" {
		return nil, attachSyntax.errorf("unexpected text %q before the first prefix", mm.Preamble())
	}
	kind, name, err := eventTarget(attachSyntax, mm)
	if err != nil {
		return nil, err
	}
	path, ok := mm.Value(PrefixFile)
	if !ok || path == "" {
		return nil, attachSyntax.errorf("missing %s", PrefixFile)
	}
	return command.AttachCommand{Kind: kind, Name: name, Path: path}, nil
}

// ParseDetach parses "INDEX tut/NAME".
func ParseDetach(args string) (command.Command, error) {
	idx, kind, name, err := indexedEvent(detachSyntax, args)
	if err != nil {
		return nil, err
	}
	return command.DetachCommand{Index: idx, Kind: kind, Name: name}, nil
}

// ParseNote parses "tut/NAME r/TEXT". TEXT runs to the end of the line.
func ParseNote(args string) (command.Command, error) {
	mm := TokenizeTrailing(args, PrefixRemark, eventPrefixes...)
	if mm.Preamble() != "" {
		return nil, noteSyntax.errorf("unexpected text %q before the first prefix", mm.Preamble())
	}
	kind, name, err := eventTarget(noteSyntax, mm)
	if err != nil {
		return nil, err
	}
	text, ok := mm.Value(PrefixRemark)
	if !ok || text == "" {
		return nil, noteSyntax.errorf("missing %s", PrefixRemark)
	}
	return command.AddNoteCommand{Kind: kind, Name: name, Text: text}, nil
}

// ParseDeleteNote parses "INDEX tut/NAME".
func ParseDeleteNote(args string) (command.Command, error) {
	idx, kind, name, err := indexedEvent(deleteNoteSyntax, args)
	if err != nil {
		return nil, err
	}
	return command.DeleteNoteCommand{Index: idx, Kind: kind, Name: name}, nil
}

// ParseSortStudent parses "GROUP METRIC ORDER". Each word may carry an s/
// prefix. ORDER "reverse" sorts descending; any other word sorts ascending.
func ParseSortStudent(args string) (command.Command, error) {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return nil, sortSyntax.errorf("expected GROUP METRIC ORDER, got %d argument(s)", len(fields))
	}
	for i, f := range fields {
		fields[i] = strings.TrimPrefix(f, string(PrefixSort))
		if fields[i] == "" {
			return nil, sortSyntax.errorf("%s needs a value", PrefixSort)
		}
	}
	group, metric, order := fields[0], strings.ToLower(fields[1]), fields[2]
	if !model.IsSortMetric(metric) {
		return nil, sortSyntax.errorf("unknown metric %q (expected one of %s)",
			metric, strings.Join(model.SortMetrics, ", "))
	}
	return command.SortStudentCommand{
		Group:     group,
		Metric:    metric,
		Ascending: !strings.EqualFold(order, "reverse"),
	}, nil
}

// ParseHelp parses "" or "consultation". summary is the text shown for a
// bare help.
func ParseHelp(args, summary string) (command.Command, error) {
	switch {
	case args == "":
		return command.HelpCommand{Text: summary}, nil
	case strings.EqualFold(args, "consultation"):
		return command.HelpConsultationCommand{}, nil
	default:
		return nil, helpSyntax.errorf("no help topic %q", args)
	}
}

// ParseExit accepts and ignores any arguments.
func ParseExit(string) (command.Command, error) {
	return command.ExitCommand{}, nil
}

// eventTarget reads the single session prefix and its name from mm.
func eventTarget(s syntax, mm ArgumentMultimap) (types.SessionKind, string, error) {
	var found []Prefix
	for _, p := range eventPrefixes {
		for range mm.Count(p) {
			found = append(found, p)
		}
	}
	switch len(found) {
	case 0:
		return "", "", s.errorf("missing tut/, lab/ or con/")
	case 1:
	default:
		return "", "", s.errorf("expected exactly one of tut/, lab/ or con/")
	}

	name, _ := mm.Value(found[0])
	if name == "" {
		return "", "", s.errorf("missing event name after %s", found[0])
	}
	if err := types.ValidateSessionName(name); err != nil {
		return "", "", err
	}
	kind, err := types.ParseKind(string(found[0]))
	if err != nil {
		return "", "", err
	}
	return kind, name, nil
}

func eventOnly(s syntax, args string) (types.SessionKind, string, error) {
	mm := Tokenize(args, eventPrefixes...)
	if mm.Preamble() != "" {
		return "", "", s.errorf("unexpected text %q before the first prefix", mm.Preamble())
	}
	return eventTarget(s, mm)
}

func indexedEvent(s syntax, args string) (types.Index, types.SessionKind, string, error) {
	mm := Tokenize(args, eventPrefixes...)
	fields := mm.PreambleTokens()
	if len(fields) != 1 {
		return types.Index{}, "", "", s.errorf("expected one index before the event")
	}
	idx, err := parseIndex(s, fields[0])
	if err != nil {
		return types.Index{}, "", "", err
	}
	kind, name, err := eventTarget(s, mm)
	if err != nil {
		return types.Index{}, "", "", err
	}
	return idx, kind, name, nil
}

// eventMembership reads "INDEX EVENT_NAME" followed by either one variant
// prefix or a bare variant word. The variant tag is returned unresolved.
func eventMembership(s syntax, args string) (types.Index, string, string, error) {
	mm := Tokenize(args, eventPrefixes...)
	fields := mm.PreambleTokens()

	var found []Prefix
	for _, p := range eventPrefixes {
		for range mm.Count(p) {
			found = append(found, p)
		}
	}

	var name, tag string
	switch len(found) {
	case 0:
		if len(fields) != 3 {
			return types.Index{}, "", "", s.errorf("expected INDEX EVENT_NAME EVENT_TYPE")
		}
		name, tag = fields[1], fields[2]
	case 1:
		value, _ := mm.Value(found[0])
		switch {
		case len(fields) == 2 && value == "":
			name = fields[1]
		case len(fields) == 1 && value != "" && len(strings.Fields(value)) == 1:
			name = value
		default:
			return types.Index{}, "", "", s.errorf("expected INDEX EVENT_NAME %s", found[0])
		}
		tag = string(found[0])
	default:
		return types.Index{}, "", "", s.errorf("expected exactly one event type, got %d", len(found))
	}

	idx, err := parseIndex(s, fields[0])
	if err != nil {
		return types.Index{}, "", "", err
	}
	return idx, name, tag, nil
}

func singleIndex(s syntax, args string) (types.Index, error) {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return types.Index{}, s.errorf("expected exactly one index")
	}
	return parseIndex(s, fields[0])
}

func parseIndex(s syntax, token string) (types.Index, error) {
	n, err := strconv.Atoi(token)
	if err != nil || n <= 0 {
		return types.Index{}, s.errorf("index %q must be a positive whole number", token)
	}
	idx, err := types.NewIndex(n)
	if err != nil {
		return types.Index{}, s.errorf("%v", err)
	}
	return idx, nil
}

func parseDate(s syntax, mm ArgumentMultimap) (time.Time, error) {
	raw, _ := mm.Value(PrefixDate)
	date, err := types.ParseDate(raw)
	if err != nil {
		return time.Time{}, s.errorf("date %q must be YYYY-MM-DD", raw)
	}
	return date, nil
}
