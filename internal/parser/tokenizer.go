package parser

import (
	"strings"
	"unicode"
)

// ArgumentMultimap holds the tokenized arguments of one command. Values of a
// repeated prefix keep the order they were typed in.
type ArgumentMultimap struct {
	preamble string
	values   map[Prefix][]string
	order    []Prefix
}

// Values returns every value given for p, in input order.
func (a ArgumentMultimap) Values(p Prefix) []string {
	return append([]string(nil), a.values[p]...)
}

// Value returns the last value given for p.
func (a ArgumentMultimap) Value(p Prefix) (string, bool) {
	vs := a.values[p]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// Has reports whether p appeared at least once.
func (a ArgumentMultimap) Has(p Prefix) bool {
	return len(a.values[p]) > 0
}

// Count returns how many times p appeared.
func (a ArgumentMultimap) Count(p Prefix) int {
	return len(a.values[p])
}

// Preamble is the text before the first prefix.
func (a ArgumentMultimap) Preamble() string {
	return a.preamble
}

// PreambleTokens splits the preamble on whitespace.
func (a ArgumentMultimap) PreambleTokens() []string {
	return strings.Fields(a.preamble)
}

// Prefixes lists the prefixes that appeared, in order of first appearance.
func (a ArgumentMultimap) Prefixes() []Prefix {
	return append([]Prefix(nil), a.order...)
}

type match struct {
	prefix Prefix
	start  int
}

// Tokenize splits args on the given prefixes, or on every known prefix when
// none are given. A prefix only counts at the start of args or right after
// whitespace, so "x/tut/" is plain text. Each value runs to the next prefix
// and is trimmed.
func Tokenize(args string, prefixes ...Prefix) ArgumentMultimap {
	return tokenize(args, "", prefixes)
}

// TokenizeTrailing is Tokenize, except that the first occurrence of trailing
// takes the rest of args as its value. Free text such as a note can then
// contain words that look like prefixes.
func TokenizeTrailing(args string, trailing Prefix, prefixes ...Prefix) ArgumentMultimap {
	return tokenize(args, trailing, append([]Prefix{trailing}, prefixes...))
}

func tokenize(args string, trailing Prefix, prefixes []Prefix) ArgumentMultimap {
	if len(prefixes) == 0 {
		prefixes = Prefixes
	} else {
		prefixes = byLength(prefixes...)
	}

	var matches []match
	prev := ' '
scan:
	for i, r := range args {
		if unicode.IsSpace(prev) {
			for _, p := range prefixes {
				if strings.HasPrefix(args[i:], string(p)) {
					matches = append(matches, match{prefix: p, start: i})
					if p == trailing {
						break scan
					}
					break
				}
			}
		}
		prev = r
	}

	mm := ArgumentMultimap{values: make(map[Prefix][]string)}
	if len(matches) == 0 {
		mm.preamble = strings.TrimSpace(args)
		return mm
	}
	mm.preamble = strings.TrimSpace(args[:matches[0].start])

	for i, m := range matches {
		end := len(args)
		if i+1 < len(matches) {
			end = matches[i+1].start
		}
		value := strings.TrimSpace(args[m.start+len(m.prefix) : end])
		if _, seen := mm.values[m.prefix]; !seen {
			mm.order = append(mm.order, m.prefix)
		}
		mm.values[m.prefix] = append(mm.values[m.prefix], value)
	}
	return mm
}

// SplitKeyword separates the command word from the rest of the line.
func SplitKeyword(line string) (keyword, args string) {
	line = strings.TrimSpace(line)
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		return line[:i], strings.TrimSpace(line[i:])
	}
	return line, ""
}
