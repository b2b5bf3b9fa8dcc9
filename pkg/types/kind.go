package types

import (
	"fmt"
	"strings"
)

// SessionKind names the three session variants. The string value doubles as
// the persisted variant tag.
type SessionKind string

const (
	KindTutorial     SessionKind = "tutorial"
	KindLab          SessionKind = "lab"
	KindConsultation SessionKind = "consultation"
)

// SessionKinds lists every variant in the order the model searches them.
var SessionKinds = []SessionKind{KindTutorial, KindLab, KindConsultation}

// Prefix is the command-line prefix that selects the variant.
func (k SessionKind) Prefix() string {
	switch k {
	case KindTutorial:
		return "tut/"
	case KindLab:
		return "lab/"
	case KindConsultation:
		return "con/"
	default:
		return ""
	}
}

// Title is the capitalised display name of the variant.
func (k SessionKind) Title() string {
	switch k {
	case KindTutorial:
		return "Tutorial"
	case KindLab:
		return "Lab"
	case KindConsultation:
		return "Consultation"
	default:
		return string(k)
	}
}

// Valid reports whether k is one of the three variants.
func (k SessionKind) Valid() bool {
	switch k {
	case KindTutorial, KindLab, KindConsultation:
		return true
	default:
		return false
	}
}

// ParseKind resolves a variant tag. Both the prefix form ("tut/") and the
// bare word ("tutorial") are accepted, case-insensitively.
func ParseKind(tag string) (SessionKind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "tut/", "tutorial":
		return KindTutorial, nil
	case "lab/", "lab":
		return KindLab, nil
	case "con/", "consultation":
		return KindConsultation, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, tag)
	}
}
