package types

import (
	"fmt"
	"regexp"
	"strings"
)

// Regexes compiled once at package initialization.
var (
	phoneRegex       = regexp.MustCompile(`^[0-9]{3,15}$`)
	emailRegex       = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	tagRegex         = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	sessionNameRegex = regexp.MustCompile(`^\S+$`)
)

const (
	maxStudentNameLength = 100
	maxSessionNameLength = 50
	maxNoteLength        = 500
)

// Validate checks every attribute of the student against its domain rule.
func (s Student) Validate() error {
	if s.Name == "" || len(s.Name) > maxStudentNameLength {
		return fmt.Errorf("%w: student name must be 1-%d characters", ErrInvalidArgument, maxStudentNameLength)
	}
	if s.Phone != "" && !IsValidPhone(s.Phone) {
		return fmt.Errorf("%w: phone %q must be 3-15 digits", ErrInvalidArgument, s.Phone)
	}
	if s.Email != "" && !IsValidEmail(s.Email) {
		return fmt.Errorf("%w: email %q must look like local-part@domain", ErrInvalidArgument, s.Email)
	}
	for _, t := range s.Tags {
		if !IsValidTag(t) {
			return fmt.Errorf("%w: tag %q must be alphanumeric", ErrInvalidArgument, t)
		}
	}
	return nil
}

// ValidateSessionName enforces the session-name rule: 1-50 characters with no
// whitespace, since roster commands take the name as a single token.
func ValidateSessionName(name string) error {
	if name == "" || len(name) > maxSessionNameLength || !sessionNameRegex.MatchString(name) {
		return fmt.Errorf("%w: session name must be 1-%d characters without spaces", ErrInvalidArgument, maxSessionNameLength)
	}
	return nil
}

// ValidateNoteText enforces the note rule: 1-500 characters after trimming.
func ValidateNoteText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxNoteLength {
		return fmt.Errorf("%w: note must be 1-%d characters", ErrInvalidArgument, maxNoteLength)
	}
	return nil
}

// ValidateAttachmentPath rejects empty paths. The file itself is never
// opened; attachments record paths only.
func ValidateAttachmentPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: attachment path cannot be empty", ErrInvalidArgument)
	}
	return nil
}

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidTag(tag string) bool {
	return tagRegex.MatchString(tag)
}
