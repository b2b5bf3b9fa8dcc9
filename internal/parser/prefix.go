// Package parser turns one line of user input into a command.Command.
//
// Arguments are tokenized against a table of prefixes such as "n/" or "tut/"
// and each command word has its own parse function. Every syntax failure is
// reported as a *Error that matches types.ErrParse.
package parser

import (
	"cmp"
	"slices"
)

// Prefix marks the start of a named argument.
type Prefix string

const (
	PrefixName         Prefix = "n/"
	PrefixPhone        Prefix = "p/"
	PrefixEmail        Prefix = "e/"
	PrefixAddress      Prefix = "a/"
	PrefixTag          Prefix = "t/"
	PrefixTutorial     Prefix = "tut/"
	PrefixLab          Prefix = "lab/"
	PrefixConsultation Prefix = "con/"
	PrefixSort         Prefix = "s/"
	PrefixDate         Prefix = "d/"
	PrefixFile         Prefix = "f/"
	PrefixRemark       Prefix = "r/"
)

// Prefixes is every recognised prefix, longest first so that matching never
// stops at a shorter prefix that happens to share a start.
var Prefixes = byLength(
	PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixTag,
	PrefixTutorial, PrefixLab, PrefixConsultation,
	PrefixSort, PrefixDate, PrefixFile, PrefixRemark,
)

// eventPrefixes are the session variant prefixes.
var eventPrefixes = []Prefix{PrefixTutorial, PrefixLab, PrefixConsultation}

func byLength(prefixes ...Prefix) []Prefix {
	out := slices.Clone(prefixes)
	slices.SortStableFunc(out, func(a, b Prefix) int {
		return cmp.Compare(len(b), len(a))
	})
	return out
}

func (p Prefix) String() string {
	return string(p)
}
