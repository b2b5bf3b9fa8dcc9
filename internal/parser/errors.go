package parser

import (
	"fmt"

	"classmate/pkg/types"
)

// Error is a ParseError: the input did not match the usage of Keyword.
type Error struct {
	Keyword string
	Usage   string
	Reason  string
}

func (e *Error) Error() string {
	if e.Keyword == "" {
		return fmt.Sprintf("%s: %s", types.ErrParse, e.Reason)
	}
	return fmt.Sprintf("%s for %s: %s (usage: %s)", types.ErrParse, e.Keyword, e.Reason, e.Usage)
}

// Unwrap lets errors.Is(err, types.ErrParse) and types.KindOf see the kind.
func (e *Error) Unwrap() error {
	return types.ErrParse
}

// syntax is the keyword and usage line a parse function reports against.
type syntax struct {
	keyword string
	usage   string
}

func (s syntax) errorf(format string, args ...any) error {
	return &Error{Keyword: s.keyword, Usage: s.usage, Reason: fmt.Sprintf(format, args...)}
}
