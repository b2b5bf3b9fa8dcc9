package command

// Command words and usage lines. The dispatcher table and every parse error
// quote these.
const (
	AddWord  = "add"
	AddUsage = "add n/NAME [p/PHONE] [e/EMAIL] [a/ADDRESS] [t/TAG]..."

	DeleteWord  = "delete"
	DeleteUsage = "delete INDEX"

	ListWord  = "list"
	ListUsage = "list"

	PerformanceWord  = "performance"
	PerformanceUsage = "performance INDEX SCORE"

	CreateEventWord  = "create"
	CreateEventUsage = "create tut/NAME|lab/NAME|con/NAME [d/YYYY-MM-DD]"

	DeleteEventWord  = "remove"
	DeleteEventUsage = "remove tut/NAME|lab/NAME|con/NAME"

	ListEventsWord  = "events"
	ListEventsUsage = "events [tut/] [lab/] [con/]"

	SetDateWord  = "date"
	SetDateUsage = "date tut/NAME|lab/NAME|con/NAME d/YYYY-MM-DD"

	RosterWord  = "roster"
	RosterUsage = "roster tut/NAME|lab/NAME|con/NAME"

	AddStudentToEventWord  = "addStudent"
	AddStudentToEventUsage = "addStudent INDEX EVENT_NAME tut/|lab/|con/"

	DeleteStudentFromEventWord  = "deleteStudent"
	DeleteStudentFromEventUsage = "deleteStudent INDEX EVENT_NAME tut/|lab/|con/"

	FlagWord  = "flag"
	FlagUsage = "flag THRESHOLD tut/NAME|lab/NAME|con/NAME"

	AttachWord  = "attach"
	AttachUsage = "attach tut/NAME|lab/NAME|con/NAME f/PATH"

	DetachWord  = "detach"
	DetachUsage = "detach INDEX tut/NAME|lab/NAME|con/NAME"

	AddNoteWord  = "note"
	AddNoteUsage = "note tut/NAME|lab/NAME|con/NAME r/TEXT"

	DeleteNoteWord  = "deleteNote"
	DeleteNoteUsage = "deleteNote INDEX tut/NAME|lab/NAME|con/NAME"

	SortStudentWord  = "sortStudent"
	SortStudentUsage = "sortStudent GROUP performance|name normal|reverse"

	HelpWord  = "help"
	HelpUsage = "help [consultation]"

	ExitWord  = "exit"
	ExitUsage = "exit"
)
